package analysis

import (
	"chrc/internal/ast"
	"chrc/internal/depgraph"
)

// LateStorage clears StoreActiveConstraint on every occurrence whose
// kept active constraint is never observed by any other rule, so the
// emitter runs that occurrence's body without storing the active
// constraint first; the constraint's fail-through block still stores
// it. Grounded on program_late_storage.cpp.
func LateStorage(p *ast.ChrProgram, g *depgraph.Graph) {
	for _, occ := range p.OccRules {
		if !occ.KeepActiveConstraint {
			continue
		}
		if !g.Observed(occ.ActiveConstraint.Name) {
			occ.SetStoreActiveConstraint(false)
		}
	}
}
