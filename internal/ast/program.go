package ast

import (
	"fmt"
	"sort"
	"strings"
)

// IndexKey is one synthesized constraint-store index: the sorted set of
// argument positions it indexes on.
type IndexKey []int

func (k IndexKey) equal(other IndexKey) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

func (k IndexKey) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "<" + strings.Join(parts, ",") + ">"
}

// ChrConstraintDecl declares a CHR constraint's name, arity, and the
// facts later inferred about it by the analysis passes.
type ChrConstraintDecl struct {
	StartPos, End Position
	Name          string
	Arity         int
	Pragmas       PragmaSet
	Indexes       []IndexKey

	// Inferred by internal/analysis.
	NeverStored bool
}

func (n *ChrConstraintDecl) Pos() Position    { return n.StartPos }
func (n *ChrConstraintDecl) EndPos() Position { return n.End }
func (n *ChrConstraintDecl) Kind() NodeKind   { return KindChrConstraintDecl }
func (n *ChrConstraintDecl) String() string {
	s := fmt.Sprintf("%s/%d", n.Name, n.Arity)
	if p := n.Pragmas.String(); p != "" {
		s += " " + p
	}
	return s
}

// AddIndex looks up idx among the declaration's existing indexes; if an
// equal index already exists its position is returned, otherwise idx is
// appended and its new position returned. Mirrors the original
// compiler's dedup-on-append behavior used by index synthesis.
func (n *ChrConstraintDecl) AddIndex(idx IndexKey) int {
	for i, existing := range n.Indexes {
		if existing.equal(idx) {
			return i
		}
	}
	n.Indexes = append(n.Indexes, idx)
	return len(n.Indexes) - 1
}

// ChrProgram owns every declaration and rule parsed from one
// "chr_program" block, plus the occurrence rules derived from them by
// internal/occurrence. ChrConstraint/HeadAtom references to a
// declaration are weak handles resolved by name through Decl, never an
// owning pointer, so clones and partial programs never form cycles.
type ChrProgram struct {
	StartPos, End Position
	Name          string

	// AutoPersistent gates pass E: when true and no rule body anywhere
	// backtracks, every declaration is tagged persistent. Defaults to
	// true, matching the original compiler.
	AutoPersistent bool

	// AutoCatchFailure mirrors the original compiler's global
	// catch_failure default; the interface is preserved for the back
	// end but its semantics are not exercised by the passes above.
	AutoCatchFailure bool

	decls     map[string]*ChrConstraintDecl
	declOrder []string

	Rules    []*Rule
	OccRules []*OccRule
}

func NewChrProgram(name string) *ChrProgram {
	return &ChrProgram{Name: name, AutoPersistent: true, decls: make(map[string]*ChrConstraintDecl)}
}

func (n *ChrProgram) Pos() Position    { return n.StartPos }
func (n *ChrProgram) EndPos() Position { return n.End }
func (n *ChrProgram) Kind() NodeKind   { return KindChrProgram }
func (n *ChrProgram) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chr_program %s {\n", n.Name)
	for _, name := range n.DeclNames() {
		fmt.Fprintf(&b, "  %s\n", n.decls[name].String())
	}
	for _, r := range n.Rules {
		fmt.Fprintf(&b, "  %s\n", r.String())
	}
	b.WriteString("}")
	return b.String()
}

// AddDecl registers a constraint declaration, preserving insertion
// order for deterministic iteration and output.
func (n *ChrProgram) AddDecl(d *ChrConstraintDecl) {
	if _, exists := n.decls[d.Name]; !exists {
		n.declOrder = append(n.declOrder, d.Name)
	}
	n.decls[d.Name] = d
}

// Decl resolves a weak name handle to the owned declaration, or nil if
// undeclared.
func (n *ChrProgram) Decl(name string) *ChrConstraintDecl { return n.decls[name] }

// DeclNames returns every declared constraint name in declaration order.
func (n *ChrProgram) DeclNames() []string {
	out := make([]string, len(n.declOrder))
	copy(out, n.declOrder)
	return out
}

// SortedDeclNames returns every declared constraint name in
// lexicographic order, used by the dependency-graph dump.
func (n *ChrProgram) SortedDeclNames() []string {
	out := n.DeclNames()
	sort.Strings(out)
	return out
}

// NumDecls reports how many constraints are declared.
func (n *ChrProgram) NumDecls() int { return len(n.declOrder) }
