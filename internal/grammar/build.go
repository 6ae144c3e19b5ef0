package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"chrc/internal/ast"
)

// Build lowers a parsed ProgramSrc into an ast.ChrProgram, resolving
// pragma names and rule-kind arrows the way the original compiler's
// ast_program_builder / ast_rule_builder do.
func Build(filename string, src *ProgramSrc) (*ast.ChrProgram, error) {
	p := ast.NewChrProgram(src.Name)
	p.StartPos = toPos(filename, src.Pos)
	p.End = toPos(filename, src.EndPos)

	var errs []string

	for _, item := range src.Items {
		switch {
		case item.Decl != nil:
			p.AddDecl(buildDecl(filename, item.Decl))
		case item.Rule != nil:
			rule, err := buildRule(filename, item.Rule)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			p.Rules = append(p.Rules, rule)
		}
	}

	if len(errs) > 0 {
		return p, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return p, nil
}

func toPos(filename string, p lexer.Position) ast.Position {
	return ast.Position{Filename: filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func buildPragmas(src *PragmasSrc) ast.PragmaSet {
	if src == nil {
		return nil
	}
	var out ast.PragmaSet
	for _, n := range src.Names {
		if !out.Has(ast.Pragma(n)) {
			out = append(out, ast.Pragma(n))
		}
	}
	return out
}

func buildDecl(filename string, src *DeclSrc) *ast.ChrConstraintDecl {
	return &ast.ChrConstraintDecl{
		StartPos: toPos(filename, src.Pos),
		End:      toPos(filename, src.End),
		Name:     src.Name,
		Arity:    src.Arity,
		Pragmas:  buildPragmas(src.Pragmas),
	}
}

func buildAtom(filename string, src *AtomSrc) *ast.HeadAtom {
	args := make([]ast.Expr, len(src.Args))
	for i, a := range src.Args {
		args[i] = buildExpr(filename, a)
	}
	return &ast.HeadAtom{
		StartPos: toPos(filename, src.Pos),
		Name:     src.Name,
		Args:     args,
		Pragmas:  buildPragmas(src.Pragmas),
	}
}

func buildRule(filename string, src *RuleSrc) (*ast.Rule, error) {
	r := &ast.Rule{
		StartPos: toPos(filename, src.Pos),
		End:      toPos(filename, src.End),
		Name:     src.Name,
	}

	head := make([]*ast.HeadAtom, len(src.Head))
	for i, a := range src.Head {
		head[i] = buildAtom(filename, a)
	}

	switch {
	case len(src.DelHead) > 0:
		r.RuleKind = ast.RuleSimpagation
		r.HeadKeep = head
		r.HeadDel = make([]*ast.HeadAtom, len(src.DelHead))
		for i, a := range src.DelHead {
			r.HeadDel[i] = buildAtom(filename, a)
		}
	case src.Arrow == "<=>":
		r.RuleKind = ast.RuleSimplification
		r.HeadDel = head
	case src.Arrow == "=>>":
		r.RuleKind = ast.RulePropagationNoHistory
		r.HeadKeep = head
	default:
		r.RuleKind = ast.RulePropagation
		r.HeadKeep = head
	}

	if src.Guard != nil {
		r.Guard = buildExprTop(filename, src.Guard)
	}
	if src.Body != nil {
		r.Body = buildBody(filename, src.Body)
	}
	return r, nil
}

func buildBody(filename string, src *BodySrc) ast.Body {
	seqs := make([]ast.Body, len(src.Or))
	for i, s := range src.Or {
		seqs[i] = buildSeq(filename, s)
	}
	if len(seqs) == 1 {
		return seqs[0]
	}
	return &ast.Sequence{StartPos: toPos(filename, src.Pos), Op: ast.SeqChoice, Items: seqs}
}

func buildSeq(filename string, src *BodySeqSrc) ast.Body {
	stmts := make([]ast.Body, len(src.Stmts))
	for i, s := range src.Stmts {
		stmts[i] = buildStmt(filename, s)
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ast.Sequence{StartPos: toPos(filename, src.Pos), Op: ast.SeqAnd, Items: stmts}
}

func buildStmt(filename string, src *StmtSrc) ast.Body {
	switch {
	case src.Unify != nil:
		return &ast.Unification{
			StartPos: toPos(filename, src.Unify.Pos),
			Var:      &ast.LogicalVariable{Name: strings.TrimPrefix(src.Unify.Var, "$")},
			Value:    buildExprTop(filename, src.Unify.Value),
		}
	case src.Call != nil:
		args := make([]ast.Expr, len(src.Call.Args))
		for i, a := range src.Call.Args {
			args[i] = buildExpr(filename, a)
		}
		return &ast.ChrConstraintCall{
			StartPos: toPos(filename, src.Call.Pos),
			Name:     src.Call.Name,
			Args:     args,
			Pragmas:  buildPragmas(src.Call.Pragmas),
		}
	default:
		e := buildExprTop(filename, src.Expr)
		if inf, ok := e.(*ast.InfixExpr); ok && inf.IsAssignment() {
			if lv, ok := inf.Left.(*ast.LocalVariable); ok {
				return &ast.LocalDecl{StartPos: toPos(filename, src.Pos), Var: lv, Value: inf.Right}
			}
		}
		return &ast.HostExpression{
			StartPos:   toPos(filename, src.Pos),
			Expression: e,
		}
	}
}

func buildExprTop(filename string, src *ExprSrc) ast.Expr { return buildExpr(filename, src) }

func buildExpr(filename string, src *ExprSrc) ast.Expr {
	cond := buildOr(filename, src.Cond)
	if src.Then == nil {
		return cond
	}
	return &ast.TernaryExpr{
		StartPos: toPos(filename, src.Pos),
		Cond:     cond,
		Then:     buildOr(filename, src.Then),
		Else:     buildOr(filename, src.Else),
	}
}

func buildOr(filename string, src *OrExprSrc) ast.Expr {
	left := buildAnd(filename, src.Left)
	for _, r := range src.Rest {
		left = &ast.InfixExpr{StartPos: toPos(filename, src.Pos), Op: "||", Left: left, Right: buildAnd(filename, r.Right)}
	}
	return left
}

func buildAnd(filename string, src *AndExprSrc) ast.Expr {
	left := buildCmp(filename, src.Left)
	for _, r := range src.Rest {
		left = &ast.InfixExpr{StartPos: toPos(filename, src.Pos), Op: "&&", Left: left, Right: buildCmp(filename, r.Right)}
	}
	return left
}

func buildCmp(filename string, src *CmpExprSrc) ast.Expr {
	left := buildAdd(filename, src.Left)
	for _, r := range src.Rest {
		if r.Op == "=" {
			left = asLocalVariable(left)
		}
		left = &ast.InfixExpr{StartPos: toPos(filename, src.Pos), Op: r.Op, Left: left, Right: buildAdd(filename, r.Right)}
	}
	return left
}

// asLocalVariable re-tags a bare identifier as a LocalVariable when it
// appears as a guard assignment's left-hand side, since the grammar
// cannot tell the two apart syntactically.
func asLocalVariable(e ast.Expr) ast.Expr {
	if id, ok := e.(*ast.Identifier); ok {
		return &ast.LocalVariable{StartPos: id.StartPos, End: id.End, Name: id.Name}
	}
	return e
}

func buildAdd(filename string, src *AddExprSrc) ast.Expr {
	left := buildMul(filename, src.Left)
	for _, r := range src.Rest {
		left = &ast.InfixExpr{StartPos: toPos(filename, src.Pos), Op: r.Op, Left: left, Right: buildMul(filename, r.Right)}
	}
	return left
}

func buildMul(filename string, src *MulExprSrc) ast.Expr {
	left := buildUnary(filename, src.Left)
	for _, r := range src.Rest {
		left = &ast.InfixExpr{StartPos: toPos(filename, src.Pos), Op: r.Op, Left: left, Right: buildUnary(filename, r.Right)}
	}
	return left
}

func buildUnary(filename string, src *UnaryExprSrc) ast.Expr {
	if src.Op != "" {
		return &ast.PrefixExpr{StartPos: toPos(filename, src.Pos), Op: src.Op, Operand: buildUnary(filename, src.Operand)}
	}
	return buildPostfix(filename, src.Primary)
}

func buildPostfix(filename string, src *PostfixExprSrc) ast.Expr {
	e := buildPrimary(filename, src.Primary)
	for _, op := range src.Ops {
		switch {
		case op.Field != "":
			e = &ast.PostfixExpr{StartPos: toPos(filename, src.Pos), Op: ".", Operand: e, Field: op.Field}
		case op.Index != nil:
			e = &ast.PostfixExpr{StartPos: toPos(filename, src.Pos), Op: "[]", Operand: e, Args: []ast.Expr{buildExpr(filename, op.Index)}}
		default:
			args := make([]ast.Expr, len(op.Call))
			for i, a := range op.Call {
				args[i] = buildExpr(filename, a)
			}
			if ident, ok := e.(*ast.Identifier); ok {
				e = &ast.BuiltinCall{StartPos: toPos(filename, src.Pos), Name: ident.Name, Args: args}
			} else {
				e = &ast.PostfixExpr{StartPos: toPos(filename, src.Pos), Op: "()", Operand: e, Args: args}
			}
		}
	}
	return e
}

func buildPrimary(filename string, src *PrimaryExprSrc) ast.Expr {
	switch {
	case src.Count != nil:
		args := make([]ast.Expr, len(src.Count.Args))
		for i, a := range src.Count.Args {
			args[i] = buildExpr(filename, a)
		}
		return &ast.ChrCountExpr{
			StartPos: toPos(filename, src.Pos),
			Arg:      &ast.ChrConstraintExpr{StartPos: toPos(filename, src.Count.Pos), Name: src.Count.Name, Args: args},
		}
	case src.LogicalVar != "":
		return &ast.LogicalVariable{StartPos: toPos(filename, src.Pos), Name: strings.TrimPrefix(src.LogicalVar, "$")}
	case src.Integer != "":
		return &ast.Literal{StartPos: toPos(filename, src.Pos), Text: src.Integer}
	case src.Str != "":
		return &ast.Literal{StartPos: toPos(filename, src.Pos), Text: src.Str}
	case src.Paren != nil:
		return buildExpr(filename, src.Paren)
	default:
		return &ast.Identifier{StartPos: toPos(filename, src.Pos), Name: src.Ident}
	}
}
