// Package analysis implements the whole-program property inferences
// that run after occurrence expansion and before code emission:
// auto-persistent inference, never-stored inference, and late storage.
package analysis

import (
	"chrc/internal/ast"
	"chrc/internal/config"
)

// DroppedOccurrence records an occurrence rule removed by NeverStored,
// for the optional "unused occurrence of rule" diagnostic.
type DroppedOccurrence struct {
	Rule       *ast.Rule
	Constraint string
	Index      int
	Reason     string
}

// NeverStored runs the original compiler's two-phase never-stored
// inference: first it marks a constraint declaration never_stored when
// every occurrence observed for it so far proves it is always consumed
// immediately (no partners, no guard, distinct logical-variable
// arguments, deleted rather than kept), dropping any occurrence whose
// active constraint is already known never-stored; then it drops any
// remaining occurrence whose partner's declaration turned out to be
// never-stored. Grounded on program_never_stored.cpp.
func NeverStored(p *ast.ChrProgram, cfg config.Config) []DroppedOccurrence {
	if !cfg.NeverStored {
		return nil
	}

	var dropped []DroppedOccurrence

	// Phase 1: mark never_stored, dropping occurrences of an
	// already-never-stored active constraint as we go.
	var phase1 []*ast.OccRule
	var activeDecl *ast.ChrConstraintDecl
	mayBeNeverStored := true

	for _, occ := range p.OccRules {
		decl := p.Decl(occ.ActiveConstraint.Name)
		if decl != activeDecl {
			activeDecl = decl
			mayBeNeverStored = true
		}

		if decl != nil && decl.NeverStored {
			dropped = append(dropped, DroppedOccurrence{
				Rule: occ.Rule, Constraint: occ.ActiveConstraint.Name,
				Index: occ.OccurrenceIndex, Reason: "active constraint is never stored",
			})
			continue
		}

		if occ.KeepActiveConstraint {
			mayBeNeverStored = false
		}

		if mayBeNeverStored && !occ.KeepActiveConstraint &&
			len(occ.Partners) == 0 && allGuardsEmpty(occ) &&
			!hasDuplicateOrBoundArgs(occ.ActiveConstraint) {
			if decl != nil {
				decl.NeverStored = true
			}
		}

		phase1 = append(phase1, occ)
	}

	// Phase 2: drop any occurrence whose partner is never-stored.
	var phase2 []*ast.OccRule
	for _, occ := range phase1 {
		dropThis := false
		for _, partner := range occ.Partners {
			if d := p.Decl(partner.Atom.Name); d != nil && d.NeverStored {
				dropThis = true
				break
			}
		}
		if dropThis {
			dropped = append(dropped, DroppedOccurrence{
				Rule: occ.Rule, Constraint: occ.ActiveConstraint.Name,
				Index: occ.OccurrenceIndex, Reason: "a partner is never stored",
			})
			continue
		}
		phase2 = append(phase2, occ)
	}

	p.OccRules = phase2
	return dropped
}

func allGuardsEmpty(occ *ast.OccRule) bool {
	for _, gp := range occ.GuardParts {
		if len(gp) > 0 {
			return false
		}
	}
	return true
}

// hasDuplicateOrBoundArgs reports whether the active constraint's own
// arguments repeat a logical variable name or include a literal/host
// variable — either of which forces a store to implement correctly.
func hasDuplicateOrBoundArgs(atom *ast.HeadAtom) bool {
	seen := map[string]bool{}
	for _, arg := range atom.Args {
		lv, ok := arg.(*ast.LogicalVariable)
		if !ok {
			return true
		}
		if lv.IsAnonymous() {
			continue
		}
		if seen[lv.Name] {
			return true
		}
		seen[lv.Name] = true
	}
	return false
}
