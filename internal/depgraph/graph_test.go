package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chrc/internal/ast"
	"chrc/internal/depgraph"
)

func TestObservedViaSelfPartner(t *testing.T) {
	g := depgraph.New()
	foo := depgraph.Node{Type: depgraph.CHR, Name: "foo"}
	g.AddNode(foo)
	g.AddPartner(foo, foo)

	assert.True(t, g.Observed("foo"))
}

func TestObservedViaBuiltinEdge(t *testing.T) {
	g := depgraph.New()
	foo := depgraph.Node{Type: depgraph.CHR, Name: "foo"}
	builtin := depgraph.Node{Type: depgraph.BUILTIN}
	g.AddEdge(foo, builtin)

	assert.True(t, g.Observed("foo"))
}

func TestNotObservedWhenIsolated(t *testing.T) {
	g := depgraph.New()
	foo := depgraph.Node{Type: depgraph.CHR, Name: "foo"}
	g.AddNode(foo)

	assert.False(t, g.Observed("foo"))
}

func TestBuildPopulatesPartnersAndEdges(t *testing.T) {
	p := ast.NewChrProgram("t")
	p.AddDecl(&ast.ChrConstraintDecl{Name: "foo", Arity: 1})
	p.AddDecl(&ast.ChrConstraintDecl{Name: "bar", Arity: 1})

	p.Rules = append(p.Rules, &ast.Rule{
		Name:     "r1",
		RuleKind: ast.RuleSimplification,
		HeadDel: []*ast.HeadAtom{
			{Name: "foo", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
			{Name: "bar", Args: []ast.Expr{&ast.LogicalVariable{Name: "X"}}},
		},
		Body: &ast.ChrConstraintCall{Name: "baz"},
	})

	g := depgraph.Build(p)

	assert.True(t, g.Observed("foo"), "foo partners with bar")
	assert.True(t, g.Observed("bar"), "bar partners with foo")

	dump := g.Dump()
	assert.Contains(t, dump, "bar [ { foo } ] --> baz")
	assert.Contains(t, dump, "foo [ { bar } ] --> baz")
}

func TestAddEdgePanicsOnNonChrSource(t *testing.T) {
	g := depgraph.New()
	builtin := depgraph.Node{Type: depgraph.BUILTIN}
	assert.Panics(t, func() { g.AddEdge(builtin, builtin) })
}
