// Package depgraph builds and queries the CHR-constraint dependency
// graph used by the late-storage analysis: which constraints a rule's
// body can produce, and which head atoms act as each other's "partner".
package depgraph

import (
	"fmt"
	"sort"
	"strings"

	"chrc/internal/ast"
)

// NodeType distinguishes a CHR constraint node from the distinguished
// BUILTIN sink used for any non-CHR effect a body might have.
type NodeType int

const (
	CHR NodeType = iota
	BUILTIN
)

// Node identifies one vertex of the graph: a named CHR constraint, or
// the single shared BUILTIN sink.
type Node struct {
	Type NodeType
	Name string
}

func (n Node) String() string {
	if n.Type == BUILTIN {
		return "BUILTIN"
	}
	return n.Name
}

var builtinNode = Node{Type: BUILTIN}

// Graph is a directed graph over CHR constraint nodes (plus the BUILTIN
// sink) with edges ("can produce") and a separate symmetric partner
// relation ("appears together with in some rule head").
type Graph struct {
	nodes    map[Node]bool
	edges    map[Node]map[Node]bool
	partners map[Node]map[Node]bool
}

func New() *Graph {
	return &Graph{
		nodes:    map[Node]bool{},
		edges:    map[Node]map[Node]bool{},
		partners: map[Node]map[Node]bool{},
	}
}

// AddNode registers n, creating it if not already present.
func (g *Graph) AddNode(n Node) {
	g.nodes[n] = true
}

// AddEdge records that src's body can produce dst. src must be a CHR
// node; dst may be CHR or BUILTIN.
func (g *Graph) AddEdge(src, dst Node) {
	if src.Type != CHR {
		panic("depgraph: AddEdge src must be CHR")
	}
	g.AddNode(src)
	if dst.Type == CHR {
		g.AddNode(dst)
	}
	if g.edges[src] == nil {
		g.edges[src] = map[Node]bool{}
	}
	g.edges[src][dst] = true
}

// AddPartner records that a and b co-occur as head atoms of the same
// rule. Both must be CHR nodes; the relation is symmetric.
func (g *Graph) AddPartner(a, b Node) {
	if a.Type != CHR || b.Type != CHR {
		panic("depgraph: AddPartner requires two CHR nodes")
	}
	g.AddNode(a)
	g.AddNode(b)
	if g.partners[a] == nil {
		g.partners[a] = map[Node]bool{}
	}
	if g.partners[b] == nil {
		g.partners[b] = map[Node]bool{}
	}
	g.partners[a][b] = true
	g.partners[b][a] = true
}

// Observed reports whether constraint c can be "seen" by some other
// rule: a BFS starting at c that follows both the edge and the partner
// relations either comes back to c through a partner link, or reaches
// the BUILTIN sink through an edge. This is the predicate late storage
// uses to decide whether to keep a kept active constraint in the store.
func (g *Graph) Observed(name string) bool {
	start := Node{Type: CHR, Name: name}
	visited := map[Node]bool{start: true}
	queue := []Node{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if g.partners[cur][start] {
			return true
		}

		for p := range g.partners[cur] {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}

		for dst := range g.edges[cur] {
			if dst.Type == BUILTIN {
				return true
			}
			if !visited[dst] {
				visited[dst] = true
				queue = append(queue, dst)
			}
		}
	}
	return false
}

// Dump renders the graph one line per CHR node, lexicographically
// sorted, in the form "NAME [ { partner, partner } ] --> dst, dst".
func (g *Graph) Dump() string {
	var names []string
	for n := range g.nodes {
		if n.Type == CHR {
			names = append(names, n.Name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		n := Node{Type: CHR, Name: name}

		var partners []string
		for p := range g.partners[n] {
			partners = append(partners, p.Name)
		}
		sort.Strings(partners)

		var dsts []string
		for d := range g.edges[n] {
			dsts = append(dsts, d.String())
		}
		sort.Strings(dsts)

		fmt.Fprintf(&b, "%s [ { %s } ] --> %s\n", name, strings.Join(partners, ", "), strings.Join(dsts, ", "))
	}
	return b.String()
}

// Build populates a fresh Graph from every rule in p, grounded on the
// original compiler's RuleDependencyGraph::do_populate: each rule's body
// contributes destination nodes (CHR constraint calls become CHR nodes,
// everything else collapses to BUILTIN), and every head atom gets an
// edge to every destination plus a partner link to every other head atom.
func Build(p *ast.ChrProgram) *Graph {
	g := New()
	for _, name := range p.DeclNames() {
		g.AddNode(Node{Type: CHR, Name: name})
	}

	for _, r := range p.Rules {
		dsts := collectDestinations(r.Body)

		var heads []*ast.HeadAtom
		heads = append(heads, r.HeadDel...)
		heads = append(heads, r.HeadKeep...)

		for _, h := range heads {
			src := Node{Type: CHR, Name: h.Name}
			for _, d := range dsts {
				g.AddEdge(src, d)
			}
			for _, other := range heads {
				if other == h {
					continue
				}
				g.AddPartner(src, Node{Type: CHR, Name: other.Name})
			}
		}
	}
	return g
}

// collectDestinations walks a rule body collecting one Node per effect
// it can have: a CHR constraint call becomes a CHR node, a unification
// or any other body form collapses to the shared BUILTIN sink.
func collectDestinations(b ast.Body) []Node {
	var out []Node
	seen := map[Node]bool{}
	add := func(n Node) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	ast.ApplyBody(b, func(body ast.Body) bool {
		switch v := body.(type) {
		case *ast.ChrConstraintCall:
			add(Node{Type: CHR, Name: v.Name})
		case *ast.Unification:
			add(builtinNode)
		case *ast.HostExpression, *ast.LocalDecl:
			add(builtinNode)
		}
		return true
	}, func(e ast.Expr) bool {
		if _, ok := e.(*ast.ChrConstraintExpr); ok {
			add(builtinNode)
		}
		if _, ok := e.(*ast.BuiltinCall); ok {
			add(builtinNode)
		}
		return true
	})

	return out
}
