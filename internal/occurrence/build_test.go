package occurrence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
	"chrc/internal/config"
	"chrc/internal/occurrence"
)

func atom(name string, args ...ast.Expr) *ast.HeadAtom {
	return &ast.HeadAtom{Name: name, Args: args}
}

func TestBuildExpandsSimplificationIntoOneOccurrencePerHeadAtom(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})
	p.AddDecl(&ast.ChrConstraintDecl{Name: "bar", Arity: 1})

	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RuleSimplification,
		HeadDel:  []*ast.HeadAtom{atom("foo"), atom("bar")},
	})

	occurrence.Build(p, config.Default())

	assert.Len(t, p.OccRules, 2)
	assert.Equal(t, "bar", p.OccRules[0].ActiveConstraint.Name)
	assert.Equal(t, "foo", p.OccRules[1].ActiveConstraint.Name)
	for _, occ := range p.OccRules {
		assert.False(t, occ.KeepActive())
		assert.Len(t, occ.Partners, 1, "the other head atom is this occurrence's only partner")
	}
}

func TestBuildSkipsPassiveHeadAtoms(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})
	p.AddDecl(&ast.ChrConstraintDecl{Name: "bar", Arity: 1})

	passive := atom("bar")
	passive.Pragmas = ast.PragmaSet{ast.PragmaPassive}

	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RulePropagation,
		HeadKeep: []*ast.HeadAtom{atom("foo"), passive},
	})

	occurrence.Build(p, config.Default())

	assert.Len(t, p.OccRules, 1, "a passive head atom never becomes an active occurrence")
	assert.Equal(t, "foo", p.OccRules[0].ActiveConstraint.Name)
	assert.True(t, p.OccRules[0].KeepActive())
}

func TestBuildSortsByNameThenOccurrenceIndex(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 0})

	p.Rules = append(p.Rules,
		&ast.Rule{Name: "r1", RuleKind: ast.RulePropagation, HeadKeep: []*ast.HeadAtom{atom("foo")}},
		&ast.Rule{Name: "r2", RuleKind: ast.RulePropagation, HeadKeep: []*ast.HeadAtom{atom("foo")}},
	)

	occurrence.Build(p, config.Default())

	assert.Len(t, p.OccRules, 2)
	assert.Equal(t, 0, p.OccRules[0].OccurrenceIndex)
	assert.Equal(t, 1, p.OccRules[1].OccurrenceIndex)
}

func TestBuildOccurrencesReorderStillExpandsBothHeadSets(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "keep", Arity: 0})
	p.AddDecl(&ast.ChrConstraintDecl{Name: "del", Arity: 0})

	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RuleSimpagation,
		HeadKeep: []*ast.HeadAtom{atom("keep")},
		HeadDel:  []*ast.HeadAtom{atom("del")},
	})

	cfg := config.Default()
	cfg.OccurrencesReorder = true
	occurrence.Build(p, cfg)

	assert.Len(t, p.OccRules, 2)
	names := []string{p.OccRules[0].ActiveConstraint.Name, p.OccRules[1].ActiveConstraint.Name}
	assert.ElementsMatch(t, []string{"keep", "del"}, names)
}
