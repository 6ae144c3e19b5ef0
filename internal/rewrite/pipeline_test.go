package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
	"chrc/internal/config"
	"chrc/internal/rewrite"
)

func TestNewPipelineRespectsConfigFlags(t *testing.T) {
	p := ast.NewChrProgram("t")
	cfg := config.Default()
	cfg.HeadReorder = false
	cfg.GuardReorder = false
	cfg.ConstraintStoreIndex = false

	pipeline := rewrite.NewPipeline(cfg, p)
	// A disabled-everything config runs zero passes; Run must not panic
	// and must leave an occurrence untouched.
	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo"},
		Partners: []*ast.OccPartner{
			{Atom: &ast.HeadAtom{Name: "a"}},
			{Atom: &ast.HeadAtom{Name: "b"}},
		},
	}
	p.OccRules = append(p.OccRules, occ)

	pipeline.Run(p)

	assert.Equal(t, "a", occ.Partners[0].Atom.Name)
	assert.Equal(t, "b", occ.Partners[1].Atom.Name)
}

func TestNewPipelineRunsIndexSynthesisAgainstOwnProgram(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "bar", Arity: 1})

	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		Partners: []*ast.OccPartner{
			{Atom: &ast.HeadAtom{Name: "bar", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}}},
		},
	}
	p.OccRules = append(p.OccRules, occ)

	cfg := config.Default()
	rewrite.NewPipeline(cfg, p).Run(p)

	assert.NotEmpty(t, p.Decl("bar").Indexes)
}
