package ast

// ApplyExpr walks e and every descendant expression pre-order, calling
// visit on each. If visit returns false the walk does not descend into
// that node's children (but sibling walks continue).
func ApplyExpr(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch n := e.(type) {
	case *Identifier, *LogicalVariable, *LocalVariable, *Literal:
		// leaves
	case *PrefixExpr:
		ApplyExpr(n.Operand, visit)
	case *PostfixExpr:
		ApplyExpr(n.Operand, visit)
		for _, a := range n.Args {
			ApplyExpr(a, visit)
		}
	case *InfixExpr:
		ApplyExpr(n.Left, visit)
		ApplyExpr(n.Right, visit)
	case *TernaryExpr:
		ApplyExpr(n.Cond, visit)
		ApplyExpr(n.Then, visit)
		ApplyExpr(n.Else, visit)
	case *BuiltinCall:
		for _, a := range n.Args {
			ApplyExpr(a, visit)
		}
	case *ChrConstraintExpr:
		for _, a := range n.Args {
			ApplyExpr(a, visit)
		}
	case *ChrCountExpr:
		ApplyExpr(n.Arg, visit)
	}
}

// applyExprLight is ApplyExpr but does not descend into a ChrCountExpr's
// argument, matching the original compiler's "light" expression check
// used where counting a constraint must not count as using it.
func applyExprLight(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch n := e.(type) {
	case *Identifier, *LogicalVariable, *LocalVariable, *Literal:
	case *PrefixExpr:
		applyExprLight(n.Operand, visit)
	case *PostfixExpr:
		applyExprLight(n.Operand, visit)
		for _, a := range n.Args {
			applyExprLight(a, visit)
		}
	case *InfixExpr:
		applyExprLight(n.Left, visit)
		applyExprLight(n.Right, visit)
	case *TernaryExpr:
		applyExprLight(n.Cond, visit)
		applyExprLight(n.Then, visit)
		applyExprLight(n.Else, visit)
	case *BuiltinCall:
		for _, a := range n.Args {
			applyExprLight(a, visit)
		}
	case *ChrConstraintExpr:
		for _, a := range n.Args {
			applyExprLight(a, visit)
		}
	case *ChrCountExpr:
		// do not descend into n.Arg
	}
}

// CheckExpr reports whether any node in e's tree satisfies pred.
func CheckExpr(e Expr, pred func(Expr) bool) bool {
	found := false
	ApplyExpr(e, func(n Expr) bool {
		if found {
			return false
		}
		if pred(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// CheckExprLight is CheckExpr but does not look inside a ChrCountExpr's
// counted argument.
func CheckExprLight(e Expr, pred func(Expr) bool) bool {
	found := false
	applyExprLight(e, func(n Expr) bool {
		if found {
			return false
		}
		if pred(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ApplyBody walks b and every descendant body statement pre-order,
// calling visitBody on each body node and visitExpr on every embedded
// expression reachable from it.
func ApplyBody(b Body, visitBody func(Body) bool, visitExpr func(Expr) bool) {
	if b == nil || (visitBody != nil && !visitBody(b)) {
		return
	}
	switch n := b.(type) {
	case *Keyword:
	case *HostExpression:
		if visitExpr != nil {
			ApplyExpr(n.Expression, visitExpr)
		}
	case *LocalDecl:
		if visitExpr != nil {
			ApplyExpr(n.Var, visitExpr)
			ApplyExpr(n.Value, visitExpr)
		}
	case *Unification:
		if visitExpr != nil {
			ApplyExpr(n.Var, visitExpr)
			ApplyExpr(n.Value, visitExpr)
		}
	case *ChrConstraintCall:
		if visitExpr != nil {
			for _, a := range n.Args {
				ApplyExpr(a, visitExpr)
			}
		}
	case *Sequence:
		for _, it := range n.Items {
			ApplyBody(it, visitBody, visitExpr)
		}
	case *Try:
		ApplyBody(n.Inner, visitBody, visitExpr)
	case *Behavior:
		if visitExpr != nil {
			ApplyExpr(n.Cond, visitExpr)
		}
		ApplyBody(n.Body, visitBody, visitExpr)
	}
}

// CheckBody reports whether any expression reachable from b's tree
// satisfies pred.
func CheckBody(b Body, pred func(Expr) bool) bool {
	found := false
	ApplyBody(b, nil, func(e Expr) bool {
		if found {
			return false
		}
		if pred(e) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Walk performs a generic pre-order traversal over any Node. fn
// returning false prunes that subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case Expr:
		ApplyExpr(v, func(e Expr) bool {
			if e == v.(Expr) {
				return true
			}
			return fn(e)
		})
	case *HeadAtom:
		for _, a := range v.Args {
			Walk(a, fn)
		}
	case *Rule:
		for _, a := range v.HeadDel {
			Walk(a, fn)
		}
		for _, a := range v.HeadKeep {
			Walk(a, fn)
		}
		if v.Guard != nil {
			Walk(v.Guard, fn)
		}
		if v.Body != nil {
			Walk(v.Body, fn)
		}
	case *OccRule:
		Walk(v.ActiveConstraint, fn)
		for _, p := range v.Partners {
			Walk(p.Atom, fn)
		}
		if v.Body != nil {
			Walk(v.Body, fn)
		}
	case *ChrConstraintDecl:
	case *ChrProgram:
		for _, name := range v.DeclNames() {
			Walk(v.Decl(name), fn)
		}
		for _, r := range v.Rules {
			Walk(r, fn)
		}
	case Body:
		ApplyBody(v, func(b Body) bool {
			if b == v {
				return true
			}
			return fn(b)
		}, func(e Expr) bool { return fn(e) })
	}
}
