package rewrite

import "chrc/internal/ast"

// IndexSynthesis computes, for each partner (in the head-reordered
// order), the set of argument positions that are already bound when
// that partner is matched — literal arguments, host variables, and
// logical variables seen in an earlier partner or the active
// constraint — and registers that position set as a constraint-store
// index on the partner's declaration, reusing an existing equal index
// rather than duplicating it. Grounded on the original compiler's
// OccRuleUpdateConstraintStoreIndexes visitor.
type IndexSynthesis struct {
	Program *ast.ChrProgram
}

func (IndexSynthesis) Name() string { return "index-synthesis" }
func (IndexSynthesis) Description() string {
	return "synthesize constraint-store indexes from bound-argument positions"
}

func (p IndexSynthesis) Apply(occ *ast.OccRule) bool {
	changed := false
	seen := map[string]bool{}
	for _, n := range occ.ActiveConstraint.LogicalVarNames() {
		if n != "_" {
			seen[n] = true
		}
	}

	for _, partner := range occ.Partners {
		var index ast.IndexKey
		introduced := map[string]bool{}

		for pos, arg := range partner.Atom.Args {
			switch a := arg.(type) {
			case *ast.LogicalVariable:
				if a.IsAnonymous() {
					continue
				}
				if seen[a.Name] {
					index = append(index, pos)
				} else {
					introduced[a.Name] = true
				}
			default:
				index = append(index, pos)
			}
		}

		for n := range introduced {
			seen[n] = true
		}

		if len(index) == 0 {
			partner.UseIndex = -1
			continue
		}

		decl := p.declFor(partner.Atom.Name)
		if decl == nil {
			continue
		}
		before := len(decl.Indexes)
		partner.UseIndex = decl.AddIndex(index)
		if len(decl.Indexes) != before {
			changed = true
		}
	}
	return changed
}

func (p IndexSynthesis) declFor(name string) *ast.ChrConstraintDecl {
	if p.Program == nil {
		return nil
	}
	return p.Program.Decl(name)
}
