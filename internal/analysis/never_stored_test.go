package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/analysis"
	"chrc/internal/ast"
	"chrc/internal/config"
	"chrc/internal/occurrence"
)

func TestNeverStoredMarksSimpleConsumedConstraint(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})

	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RuleSimplification,
		HeadDel: []*ast.HeadAtom{
			{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		},
	})

	occurrence.Build(p, config.Default())
	dropped := analysis.NeverStored(p, config.Default())

	assert.Empty(t, dropped)
	assert.True(t, p.Decl("foo").NeverStored)
}

func TestNeverStoredDropsOccurrenceOfAlreadyMarkedConstraint(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})

	p.Rules = append(p.Rules,
		&ast.Rule{
			Name:     "r1",
			RuleKind: ast.RuleSimplification,
			HeadDel: []*ast.HeadAtom{
				{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
			},
		},
		&ast.Rule{
			Name:     "r2",
			RuleKind: ast.RuleSimplification,
			HeadDel: []*ast.HeadAtom{
				{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "Y"}}},
			},
		},
	)

	occurrence.Build(p, config.Default())
	assert.Len(t, p.OccRules, 2)

	dropped := analysis.NeverStored(p, config.Default())

	assert.Len(t, dropped, 1)
	assert.Len(t, p.OccRules, 1, "second occurrence of an already-never-stored constraint is dropped")
}

func TestNeverStoredKeepsConstraintWithGuard(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})

	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RuleSimplification,
		HeadDel: []*ast.HeadAtom{
			{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		},
		Guard: &ast.Identifier{Name: "ground"},
	})

	occurrence.Build(p, config.Default())
	analysis.NeverStored(p, config.Default())

	assert.False(t, p.Decl("foo").NeverStored, "a guarded occurrence forces storage")
}

func TestNeverStoredDisabledByConfig(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})
	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RuleSimplification,
		HeadDel: []*ast.HeadAtom{
			{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		},
	})
	occurrence.Build(p, config.Default())

	cfg := config.Default()
	cfg.NeverStored = false
	dropped := analysis.NeverStored(p, cfg)

	assert.Nil(t, dropped)
	assert.False(t, p.Decl("foo").NeverStored)
}
