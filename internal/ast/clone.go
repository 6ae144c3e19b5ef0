package ast

// CloneOccRule makes an independent copy of an OccRule's own slices
// (Partners, GuardParts) so that rewrite passes can reorder one
// occurrence's partners without disturbing another occurrence derived
// from the same Rule. The underlying HeadAtom/Expr nodes are shared,
// since the rewrite passes only ever reorder or relocate references to
// them, never mutate their fields in place.
func CloneOccRule(o *OccRule) *OccRule {
	clone := *o
	clone.Partners = make([]*OccPartner, len(o.Partners))
	for i, p := range o.Partners {
		pc := *p
		clone.Partners[i] = &pc
	}
	clone.GuardParts = make([][]Expr, len(o.GuardParts))
	for i, gp := range o.GuardParts {
		clone.GuardParts[i] = append([]Expr(nil), gp...)
	}
	return &clone
}
