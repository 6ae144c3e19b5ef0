package rewrite

import "chrc/internal/ast"

// GuardReorder hoists each guard conjunct as early as possible: into the
// bucket right after the last partner it depends on, rather than
// leaving every conjunct in the final bucket. A conjunct may move past
// partner i once every logical variable it needs (other than the active
// constraint's own) and every local variable it needs has already been
// bound by an earlier partner or an earlier-hoisted assignment.
// Grounded on the original compiler's OccRuleGuardReorder visitor.
type GuardReorder struct{}

func (GuardReorder) Name() string { return "guard-reorder" }
func (GuardReorder) Description() string {
	return "hoist guard conjuncts to the earliest feasible partner position"
}

func (GuardReorder) Apply(occ *ast.OccRule) bool {
	if len(occ.Partners) == 0 {
		return false
	}

	activeNames := map[string]bool{}
	for _, n := range occ.ActiveConstraint.LogicalVarNames() {
		activeNames[n] = true
	}

	notDeclHead := map[string]bool{}
	for _, p := range occ.Partners {
		for _, n := range p.Atom.LogicalVarNames() {
			if n != "_" && !activeNames[n] {
				notDeclHead[n] = true
			}
		}
	}

	notDeclAssign := map[string]bool{}
	last := len(occ.GuardParts) - 1
	remaining := occ.GuardParts[last]
	for _, c := range remaining {
		if inf, ok := c.(*ast.InfixExpr); ok && inf.IsAssignment() {
			if lv, ok := inf.Left.(*ast.LocalVariable); ok {
				notDeclAssign[lv.Name] = true
			}
		}
	}

	changed := false
	for i, partner := range occ.Partners {
		var stillRemaining []ast.Expr
		for _, conjunct := range remaining {
			dependsOn := notDeclHead
			check := conjunct
			isAssign := false
			var lhsName string
			if inf, ok := conjunct.(*ast.InfixExpr); ok && inf.IsAssignment() {
				isAssign = true
				if lv, ok := inf.Left.(*ast.LocalVariable); ok {
					lhsName = lv.Name
				}
				check = inf.Right
			}

			if referencesUndeclared(check, dependsOn, notDeclAssign) {
				stillRemaining = append(stillRemaining, conjunct)
				continue
			}

			occ.GuardParts[i] = append(occ.GuardParts[i], conjunct)
			changed = true
			if isAssign && lhsName != "" {
				delete(notDeclAssign, lhsName)
			}
		}
		remaining = stillRemaining

		for _, n := range partner.Atom.LogicalVarNames() {
			delete(notDeclHead, n)
		}
	}
	occ.GuardParts[last] = remaining
	return changed
}

// referencesUndeclared reports whether e mentions any logical variable
// in headNames or local variable in assignNames.
func referencesUndeclared(e ast.Expr, headNames, assignNames map[string]bool) bool {
	return ast.CheckExpr(e, func(n ast.Expr) bool {
		switch v := n.(type) {
		case *ast.LogicalVariable:
			return headNames[v.Name]
		case *ast.LocalVariable:
			return assignNames[v.Name]
		}
		return false
	})
}
