package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
)

func TestCloneOccRuleIsIndependent(t *testing.T) {
	active := &ast.HeadAtom{Name: "foo"}
	partner := &ast.HeadAtom{Name: "bar"}
	original := &ast.OccRule{
		ActiveConstraint: active,
		Partners:         []*ast.OccPartner{{Atom: partner, Keep: true}},
		GuardParts:       [][]ast.Expr{{&ast.Literal{Text: "1"}}, {}},
	}

	clone := ast.CloneOccRule(original)
	clone.Partners[0].Keep = false
	clone.GuardParts[0] = append(clone.GuardParts[0], &ast.Literal{Text: "2"})

	assert.True(t, original.Partners[0].Keep, "cloning must not mutate the original's partner slice")
	assert.Len(t, original.GuardParts[0], 1, "cloning must not mutate the original's guard slice")
	assert.Same(t, active, clone.ActiveConstraint, "underlying nodes are shared, not deep-copied")
}
