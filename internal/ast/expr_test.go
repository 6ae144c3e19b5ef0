package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
)

func TestPrefixExprModeMapsBindingOperators(t *testing.T) {
	assert.Equal(t, ast.BindingBound, (&ast.PrefixExpr{Op: "+"}).Mode())
	assert.Equal(t, ast.BindingFresh, (&ast.PrefixExpr{Op: "-"}).Mode())
	assert.Equal(t, ast.BindingFresh, (&ast.PrefixExpr{Op: "?"}).Mode())
	assert.Equal(t, ast.BindingUnknown, (&ast.PrefixExpr{Op: "!"}).Mode())
}

func TestLogicalVariableIsAnonymous(t *testing.T) {
	assert.True(t, (&ast.LogicalVariable{Name: "_"}).IsAnonymous())
	assert.False(t, (&ast.LogicalVariable{Name: "X"}).IsAnonymous())
}

func TestInfixExprIsConjunctionAndIsAssignment(t *testing.T) {
	and := &ast.InfixExpr{Op: "&&"}
	assert.True(t, and.IsConjunction())
	assert.False(t, and.IsAssignment())

	assign := &ast.InfixExpr{Op: "="}
	assert.False(t, assign.IsConjunction())
	assert.True(t, assign.IsAssignment())
}

func TestTernaryExprStringKeepsThenAndElseDistinct(t *testing.T) {
	tern := &ast.TernaryExpr{
		Cond: &ast.Identifier{Name: "c"},
		Then: &ast.Literal{Text: "1"},
		Else: &ast.Literal{Text: "2"},
	}
	assert.Equal(t, "c ? 1 : 2", tern.String())
}

func TestChrCountExprString(t *testing.T) {
	count := &ast.ChrCountExpr{Arg: &ast.ChrConstraintExpr{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}}}
	assert.Equal(t, "#foo($X)", count.String())
}

func TestPostfixExprStringVariants(t *testing.T) {
	field := &ast.PostfixExpr{Op: ".", Operand: &ast.Identifier{Name: "s"}, Field: "x"}
	assert.Equal(t, "s.x", field.String())

	index := &ast.PostfixExpr{Op: "[]", Operand: &ast.Identifier{Name: "s"}, Args: []ast.Expr{&ast.Literal{Text: "0"}}}
	assert.Equal(t, "s[0]", index.String())

	call := &ast.PostfixExpr{Op: "()", Operand: &ast.Identifier{Name: "f"}, Args: []ast.Expr{&ast.Literal{Text: "1"}}}
	assert.Equal(t, "f(1)", call.String())
}
