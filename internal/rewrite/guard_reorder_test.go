package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
	"chrc/internal/rewrite"
)

func TestGuardReorderHoistsConjunctToEarliestPartner(t *testing.T) {
	// foo(X), bar(Y) <=> X > 0 | ...
	// "X > 0" only needs X, which the active constraint already owns, so
	// it should hoist all the way to bucket 0 (before any partner).
	conjunct := &ast.InfixExpr{
		Op:    ">",
		Left:  &ast.LogicalVariable{Name: "X"},
		Right: &ast.Literal{Text: "0"},
	}
	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		Partners: []*ast.OccPartner{
			{Atom: &ast.HeadAtom{Name: "bar", Args: []ast.Expr{&ast.LogicalVariable{Name: "Y"}}}},
		},
		GuardParts: [][]ast.Expr{{}, {conjunct}},
	}

	changed := rewrite.GuardReorder{}.Apply(occ)

	assert.True(t, changed)
	assert.Equal(t, []ast.Expr{conjunct}, occ.GuardParts[0])
	assert.Empty(t, occ.GuardParts[1])
}

func TestGuardReorderKeepsConjunctDependingOnLaterPartner(t *testing.T) {
	// foo(X), bar(Y) <=> Y > 0 | ...
	// "Y > 0" needs bar's Y, so it cannot hoist before bar.
	conjunct := &ast.InfixExpr{
		Op:    ">",
		Left:  &ast.LogicalVariable{Name: "Y"},
		Right: &ast.Literal{Text: "0"},
	}
	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		Partners: []*ast.OccPartner{
			{Atom: &ast.HeadAtom{Name: "bar", Args: []ast.Expr{&ast.LogicalVariable{Name: "Y"}}}},
		},
		GuardParts: [][]ast.Expr{{}, {conjunct}},
	}

	rewrite.GuardReorder{}.Apply(occ)

	assert.Empty(t, occ.GuardParts[0])
	assert.Equal(t, []ast.Expr{conjunct}, occ.GuardParts[1])
}

func TestGuardReorderNoopWithoutPartners(t *testing.T) {
	occ := &ast.OccRule{
		ActiveConstraint: &ast.HeadAtom{Name: "foo"},
		GuardParts:       [][]ast.Expr{{&ast.Literal{Text: "1"}}},
	}
	assert.False(t, rewrite.GuardReorder{}.Apply(occ))
}
