package ast

import "strings"

// Pragma is one of the fixed set of CHR annotations recognized on
// constraint declarations, rules, and body statements.
type Pragma string

const (
	PragmaPassive      Pragma = "passive"
	PragmaNoHistory    Pragma = "no_history"
	PragmaNoReactivate Pragma = "no_reactivate"
	PragmaBang         Pragma = "bang"
	PragmaPersistent   Pragma = "persistent"
	PragmaCatchFailure Pragma = "catch_failure"
)

// ValidPragmas lists every pragma this compiler recognizes. The grammar
// builder does not consult it: an unrecognized pragma name is kept in
// the node's PragmaSet as written and is not reported as an error.
var ValidPragmas = map[Pragma]bool{
	PragmaPassive:      true,
	PragmaNoHistory:    true,
	PragmaNoReactivate: true,
	PragmaBang:         true,
	PragmaPersistent:   true,
	PragmaCatchFailure: true,
}

// PragmaSet is an ordered, duplicate-free collection of pragmas attached
// to a single node.
type PragmaSet []Pragma

// Has reports whether p is present in the set.
func (s PragmaSet) Has(p Pragma) bool {
	for _, x := range s {
		if x == p {
			return true
		}
	}
	return false
}

// String renders the set using the original compiler's convention: a
// bare "# name" for a single pragma, "# { name, name }" for more than
// one, and "" for an empty set.
func (s PragmaSet) String() string {
	if len(s) == 0 {
		return ""
	}
	if len(s) == 1 {
		return "# " + string(s[0])
	}
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = string(p)
	}
	return "# { " + strings.Join(names, ", ") + " }"
}
