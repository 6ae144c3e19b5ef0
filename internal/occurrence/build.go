// Package occurrence expands each parsed Rule into one OccRule per
// non-passive head atom, the scheduling unit the rest of the pipeline
// operates on.
package occurrence

import (
	"sort"

	"chrc/internal/ast"
	"chrc/internal/config"
)

// Build expands every rule in p into occurrence rules and appends them,
// in final sorted order, to p.OccRules. It is idempotent only in the
// sense that calling it twice doubles the occurrences; callers run it
// exactly once per program.
func Build(p *ast.ChrProgram, cfg config.Config) {
	occurrenceIndex := map[string]int{}

	type built struct {
		occ *ast.OccRule
	}
	var all []built

	for _, r := range p.Rules {
		setDel := r.HeadDel
		setKeep := r.HeadKeep

		firstSet, firstKeep := setDel, false
		secondSet, secondKeep := setKeep, true
		if !cfg.OccurrencesReorder {
			firstSet, firstKeep = setKeep, true
			secondSet, secondKeep = setDel, false
		}

		emit := func(set []*ast.HeadAtom, keep bool) {
			for _, active := range set {
				if active.Pragmas.Has(ast.PragmaPassive) {
					continue
				}
				idx := occurrenceIndex[active.Name]
				occurrenceIndex[active.Name] = idx + 1
				occ := buildOne(r, active, keep, setDel, setKeep, idx)
				all = append(all, built{occ})
			}
		}
		emit(firstSet, firstKeep)
		emit(secondSet, secondKeep)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].occ, all[j].occ
		if a.ActiveConstraint.Name != b.ActiveConstraint.Name {
			return a.ActiveConstraint.Name < b.ActiveConstraint.Name
		}
		return a.OccurrenceIndex < b.OccurrenceIndex
	})

	for _, b := range all {
		p.OccRules = append(p.OccRules, b.occ)
	}
}

// buildOne constructs a single OccRule with active constraint `active`
// (drawn from headDel or headKeep, as `activeKeep` says) and partners
// made of every other head atom from both head sets, mirroring
// ast/occ_rule.cpp's constructor.
func buildOne(r *ast.Rule, active *ast.HeadAtom, activeKeep bool, headDel, headKeep []*ast.HeadAtom, occIdx int) *ast.OccRule {
	var partners []*ast.OccPartner
	addPartners := func(set []*ast.HeadAtom, keep bool) {
		for _, a := range set {
			if a == active {
				continue
			}
			partners = append(partners, &ast.OccPartner{Atom: a, Keep: keep, UseIndex: -1})
		}
	}
	addPartners(headDel, false)
	addPartners(headKeep, true)

	guardParts := make([][]ast.Expr, len(partners)+1)
	guardParts[len(partners)] = r.GuardConjuncts()

	return &ast.OccRule{
		StartPos:               r.StartPos,
		End:                    r.End,
		Rule:                   r,
		OccurrenceIndex:        occIdx,
		ActiveConstraint:       active,
		KeepActiveConstraint:   activeKeep,
		StoreActiveConstraintF: activeKeep,
		Partners:               partners,
		GuardParts:             guardParts,
		Body:                   r.Body,
	}
}
