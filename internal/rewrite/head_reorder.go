package rewrite

import "chrc/internal/ast"

// HeadReorder greedily orders an occurrence rule's partners so that the
// ones most likely to narrow the constraint-store search are matched
// first: a partner scores +100 for every literal or host-variable
// argument and +10 for every logical-variable argument already bound by
// an earlier partner (or the active constraint). Ties keep the
// earliest-positioned candidate. Grounded on the original compiler's
// OccRuleHeadReorder visitor.
type HeadReorder struct{}

func (HeadReorder) Name() string { return "head-reorder" }
func (HeadReorder) Description() string {
	return "order partners by descending binding weight"
}

func (HeadReorder) Apply(occ *ast.OccRule) bool {
	if len(occ.Partners) < 2 {
		return false
	}

	seen := map[string]bool{}
	for _, name := range occ.ActiveConstraint.LogicalVarNames() {
		if name != "_" {
			seen[name] = true
		}
	}

	changed := false
	for i := 0; i < len(occ.Partners); i++ {
		bestIdx := i
		bestWeight := -1
		var bestNew []string

		for j := i; j < len(occ.Partners); j++ {
			weight, newVars := weighPartner(occ.Partners[j].Atom, seen)
			if weight > bestWeight {
				bestWeight = weight
				bestIdx = j
				bestNew = newVars
			}
		}

		if bestIdx != i {
			occ.Partners[i], occ.Partners[bestIdx] = occ.Partners[bestIdx], occ.Partners[i]
			changed = true
		}
		for _, v := range bestNew {
			seen[v] = true
		}
	}
	return changed
}

// weighPartner scores a candidate partner and returns the logical
// variable names it would newly introduce.
func weighPartner(atom *ast.HeadAtom, seen map[string]bool) (int, []string) {
	weight := 0
	var newVars []string
	for _, arg := range atom.Args {
		switch a := arg.(type) {
		case *ast.LogicalVariable:
			if a.IsAnonymous() {
				continue
			}
			if seen[a.Name] {
				weight += 10
			} else {
				newVars = append(newVars, a.Name)
			}
		default:
			// literal or host variable: always contributes full weight
			weight += 100
		}
	}
	return weight, newVars
}
