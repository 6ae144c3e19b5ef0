package ast

import (
	"strconv"
	"strings"
)

// HeadAtom is one CHR-constraint atom appearing in a rule head.
type HeadAtom struct {
	StartPos, End Position
	Name          string
	Args          []Expr
	Pragmas       PragmaSet
}

func (n *HeadAtom) Pos() Position    { return n.StartPos }
func (n *HeadAtom) EndPos() Position { return n.End }
func (n *HeadAtom) Kind() NodeKind   { return KindHeadAtom }
func (n *HeadAtom) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	s := n.Name + "(" + strings.Join(parts, ", ") + ")"
	if p := n.Pragmas.String(); p != "" {
		s += " " + p
	}
	return s
}

// LogicalVarNames returns, in argument order, the names of every
// LogicalVariable argument (including "_" if present).
func (n *HeadAtom) LogicalVarNames() []string {
	var names []string
	for _, a := range n.Args {
		if lv, ok := a.(*LogicalVariable); ok {
			names = append(names, lv.Name)
		}
	}
	return names
}

// RuleKind classifies a rule by the arrow used to write it.
type RuleKind int

const (
	RulePropagation RuleKind = iota
	RuleSimplification
	RuleSimpagation
	RulePropagationNoHistory
)

func (k RuleKind) String() string {
	switch k {
	case RulePropagation:
		return "==>"
	case RuleSimplification:
		return "<=>"
	case RuleSimpagation:
		return "\\"
	case RulePropagationNoHistory:
		return "=>>"
	default:
		return "?"
	}
}

// Rule is a single CHR rule as written in source: a head split into the
// kept and removed atom lists, an optional guard, and a body.
type Rule struct {
	StartPos, End Position
	Name          string
	RuleKind      RuleKind
	HeadKeep      []*HeadAtom
	HeadDel       []*HeadAtom
	Guard         Expr // nil if no guard; otherwise the top-level &&-conjunction
	Body          Body
	Pragmas       PragmaSet
}

func (n *Rule) Pos() Position    { return n.StartPos }
func (n *Rule) EndPos() Position { return n.End }
func (n *Rule) Kind() NodeKind   { return KindRule }
func (n *Rule) String() string {
	var b strings.Builder
	if n.Name != "" {
		b.WriteString(n.Name + " @ ")
	}
	heads := make([]string, 0, len(n.HeadDel)+len(n.HeadKeep))
	for _, a := range n.HeadDel {
		heads = append(heads, a.String())
	}
	switch n.RuleKind {
	case RuleSimpagation:
		kept := make([]string, len(n.HeadKeep))
		for i, a := range n.HeadKeep {
			kept[i] = a.String()
		}
		b.WriteString(strings.Join(kept, ", "))
		b.WriteString(" \\ ")
		b.WriteString(strings.Join(heads, ", "))
	default:
		for _, a := range n.HeadKeep {
			heads = append(heads, a.String())
		}
		b.WriteString(strings.Join(heads, ", "))
	}
	b.WriteString(" " + n.RuleKind.String() + " ")
	if n.Guard != nil {
		b.WriteString(n.Guard.String() + " | ")
	}
	if n.Body != nil {
		b.WriteString(n.Body.String())
	}
	return b.String()
}

// GuardConjuncts splits Guard at top-level "&&"/"and" operators, exactly
// as the original compiler's OccRule constructor does. A nil Guard
// yields an empty slice.
func (r *Rule) GuardConjuncts() []Expr {
	var out []Expr
	var walk func(e Expr)
	walk = func(e Expr) {
		if e == nil {
			return
		}
		if inf, ok := e.(*InfixExpr); ok && inf.IsConjunction() {
			walk(inf.Left)
			walk(inf.Right)
			return
		}
		out = append(out, e)
	}
	walk(r.Guard)
	return out
}

// OccPartner is one non-active head atom participating in an occurrence
// rule, tagged with whether it comes from the kept or deleted head set.
// UseIndex is -1 (full scan) until pass H assigns the offset into the
// partner's declaration's Indexes that the synthesized key landed at.
type OccPartner struct {
	Atom     *HeadAtom
	Keep     bool
	UseIndex int
}

// OccRule is one scheduling unit derived from a Rule: exactly one head
// atom is distinguished as "active", the rest become partners to be
// matched against the constraint store.
type OccRule struct {
	StartPos, End          Position
	Rule                   *Rule
	OccurrenceIndex        int
	ActiveConstraint       *HeadAtom
	KeepActiveConstraint   bool
	StoreActiveConstraintF bool
	Partners               []*OccPartner
	GuardParts             [][]Expr // len == len(Partners)+1
	Body                   Body
}

func (n *OccRule) Pos() Position    { return n.StartPos }
func (n *OccRule) EndPos() Position { return n.End }
func (n *OccRule) Kind() NodeKind   { return KindOccRule }
func (n *OccRule) String() string {
	return n.ActiveConstraint.Name + "_" + strconv.Itoa(n.OccurrenceIndex)
}

// KeepActive reports whether the active constraint stays in the store
// after this occurrence fires (true for a propagation-style atom).
func (n *OccRule) KeepActive() bool { return n.KeepActiveConstraint }

// StoreActiveConstraint reports whether the back end stores the active
// constraint of this occurrence before running its body; cleared by the
// late-storage pass when the constraint is never observed. The
// constraint's fail-through store block is emitted either way.
func (n *OccRule) StoreActiveConstraint() bool { return n.StoreActiveConstraintF }

// SetStoreActiveConstraint may only be called when KeepActiveConstraint
// is true: a deleted active constraint is never re-stored.
func (n *OccRule) SetStoreActiveConstraint(v bool) {
	if !n.KeepActiveConstraint {
		panic("ast: SetStoreActiveConstraint on a non-kept active constraint")
	}
	n.StoreActiveConstraintF = v
}
