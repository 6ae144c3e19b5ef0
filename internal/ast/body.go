package ast

import "strings"

// Body is the sealed set of rule-body statement variants.
type Body interface {
	Node
	isBody()
}

// Keyword is a bare host keyword appearing in a body (e.g. "true",
// "fail", "otherwise"), emitted verbatim by the back end.
type Keyword struct {
	StartPos, End Position
	Name          string
}

func (n *Keyword) Pos() Position    { return n.StartPos }
func (n *Keyword) EndPos() Position { return n.End }
func (n *Keyword) Kind() NodeKind   { return KindKeyword }
func (n *Keyword) String() string   { return n.Name }
func (*Keyword) isBody()            {}

// HostExpression wraps an opaque host-language expression statement,
// carrying an optional pragma set (e.g. "expr() # no_history").
type HostExpression struct {
	StartPos, End Position
	Expression    Expr
	Pragmas       PragmaSet
}

func (n *HostExpression) Pos() Position    { return n.StartPos }
func (n *HostExpression) EndPos() Position { return n.End }
func (n *HostExpression) Kind() NodeKind   { return KindHostExpression }
func (n *HostExpression) String() string {
	s := n.Expression.String()
	if p := n.Pragmas.String(); p != "" {
		s += " " + p
	}
	return s
}
func (*HostExpression) isBody() {}

// LocalDecl declares and initializes a host local variable:
// "var = expr" where var is a LocalVariable, not a logical variable.
type LocalDecl struct {
	StartPos, End Position
	Var           *LocalVariable
	Value         Expr
}

func (n *LocalDecl) Pos() Position    { return n.StartPos }
func (n *LocalDecl) EndPos() Position { return n.End }
func (n *LocalDecl) Kind() NodeKind   { return KindLocalDecl }
func (n *LocalDecl) String() string   { return n.Var.String() + " = " + n.Value.String() }
func (*LocalDecl) isBody()           {}

// Unification binds a logical variable to a value: "$Var %= expr".
type Unification struct {
	StartPos, End Position
	Var           *LogicalVariable
	Value         Expr
}

func (n *Unification) Pos() Position    { return n.StartPos }
func (n *Unification) EndPos() Position { return n.End }
func (n *Unification) Kind() NodeKind   { return KindUnification }
func (n *Unification) String() string   { return n.Var.String() + " %= " + n.Value.String() }
func (*Unification) isBody()           {}

// ChrConstraintCall invokes a CHR constraint from a rule body, adding a
// new active constraint to the store.
type ChrConstraintCall struct {
	StartPos, End Position
	Name          string
	Args          []Expr
	Pragmas       PragmaSet
}

func (n *ChrConstraintCall) Pos() Position    { return n.StartPos }
func (n *ChrConstraintCall) EndPos() Position { return n.End }
func (n *ChrConstraintCall) Kind() NodeKind   { return KindChrConstraintCall }
func (n *ChrConstraintCall) String() string {
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
func (*ChrConstraintCall) isBody() {}

// SequenceOp distinguishes "," (sequential, all-must-succeed) from ";"
// (ordered choice, try-in-order) composition.
type SequenceOp string

const (
	SeqAnd    SequenceOp = ","
	SeqChoice SequenceOp = ";"
)

// Sequence composes a list of bodies with the given operator.
type Sequence struct {
	StartPos, End Position
	Op            SequenceOp
	Items         []Body
}

func (n *Sequence) Pos() Position    { return n.StartPos }
func (n *Sequence) EndPos() Position { return n.End }
func (n *Sequence) Kind() NodeKind   { return KindSequence }
func (n *Sequence) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	sep := string(n.Op) + " "
	return strings.Join(parts, sep)
}
func (*Sequence) isBody() {}

// Try runs Inner and, on failure, backtracks if Backtrack is set.
type Try struct {
	StartPos, End Position
	Var           *LocalVariable
	Inner         Body
	Backtrack     bool
}

func (n *Try) Pos() Position    { return n.StartPos }
func (n *Try) EndPos() Position { return n.End }
func (n *Try) Kind() NodeKind   { return KindTry }
func (n *Try) String() string {
	suffix := ""
	if n.Backtrack {
		suffix = "[_bt]"
	}
	return n.Var.String() + " <-- Try" + suffix + " " + n.Inner.String()
}
func (*Try) isBody() {}

// Behavior is a looping construct: while Cond holds, run Body.
type Behavior struct {
	StartPos, End Position
	Cond          Expr
	Body          Body
}

func (n *Behavior) Pos() Position    { return n.StartPos }
func (n *Behavior) EndPos() Position { return n.End }
func (n *Behavior) Kind() NodeKind   { return KindBehavior }
func (n *Behavior) String() string {
	return "behavior while (" + n.Cond.String() + ") " + n.Body.String()
}
func (*Behavior) isBody() {}
