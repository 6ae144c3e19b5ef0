package emit

import (
	"fmt"
	"strings"

	"chrc/internal/ast"
)

// bodyEmitter emits the per-occurrence search scaffold — guard buckets
// interleaved with partner search loops, the commit/store step, and the
// body statements — following ProgramAbstractCode/BodyAbstractCode's
// per-variant scaffolding.
type bodyEmitter struct {
	*Emitter
	seqCounter int
}

// emitOccurrence walks occ.Partners in order (§4.10 items 1-4): before
// matching partner i it runs guard_parts[i], then opens partner i's
// search loop (indexed or full scan) and checks candidate argument
// equations; once every partner is matched it runs the final guard
// bucket and commits.
func (b *bodyEmitter) emitOccurrence(occ *ast.OccRule, nextLabel string) {
	seen := map[string]bool{}
	for _, n := range occ.ActiveConstraint.LogicalVarNames() {
		if n != "_" {
			seen[n] = true
		}
	}
	b.emitPartnerLoop(occ, 0, seen, nextLabel)
}

func (b *bodyEmitter) emitPartnerLoop(occ *ast.OccRule, i int, seen map[string]bool, nextLabel string) {
	b.emitGuardBucket(occ.GuardParts[i], nextLabel)

	if i == len(occ.Partners) {
		b.emitCommit(occ)
		return
	}

	partner := occ.Partners[i]
	varName := fmt.Sprintf("p%d", i)
	if partner.UseIndex < 0 {
		b.line("For each %s in store %s", varName, partner.Atom.Name)
	} else {
		key := b.indexKey(partner)
		b.line("For each %s in store %s using index %d keyed by (%s)", varName, partner.Atom.Name, partner.UseIndex, key)
	}
	b.depth++
	b.emitArgChecks(partner, varName, seen)
	b.emitPartnerLoop(occ, i+1, seen, nextLabel)
	b.depth--
	b.line("End for")
}

// indexKey renders the bound argument values a partner's indexed search
// is keyed by, reading the position tuple pass H registered on the
// partner's declaration at UseIndex.
func (b *bodyEmitter) indexKey(partner *ast.OccPartner) string {
	if b.program == nil {
		return ""
	}
	decl := b.program.Decl(partner.Atom.Name)
	if decl == nil || partner.UseIndex >= len(decl.Indexes) {
		return ""
	}
	key := decl.Indexes[partner.UseIndex]
	parts := make([]string, len(key))
	for i, pos := range key {
		parts[i] = partner.Atom.Args[pos].String()
	}
	return strings.Join(parts, ", ")
}

// emitGuardBucket writes one bucket of guard conjuncts followed by a
// single failure check, jumping to the next occurrence on failure. An
// empty bucket emits nothing.
func (b *bodyEmitter) emitGuardBucket(bucket []ast.Expr, nextLabel string) {
	if len(bucket) == 0 {
		return
	}
	for _, conjunct := range bucket {
		b.line("%s", conjunct.String())
	}
	b.line("If guard is failure")
	b.depth++
	b.line("Goto %s", nextLabel)
	b.depth--
	b.line("End if")
}

// emitArgChecks checks, for the candidate bound to varName, every
// argument of partner's call against what is already known: literals
// and host-level expressions must match the candidate's value exactly,
// a logical variable already seen must unify, and a logical variable
// seen here for the first time binds to the candidate's value. Failure
// moves on to the next candidate rather than aborting the occurrence.
func (b *bodyEmitter) emitArgChecks(partner *ast.OccPartner, varName string, seen map[string]bool) {
	for pos, arg := range partner.Atom.Args {
		switch a := arg.(type) {
		case *ast.LogicalVariable:
			if a.IsAnonymous() {
				continue
			}
			if seen[a.Name] {
				b.line("Check %s.arg(%d) unifies with %s", varName, pos, a.String())
			} else {
				b.line("Bind %s = %s.arg(%d)", a.Name, varName, pos)
				seen[a.Name] = true
				continue
			}
		default:
			b.line("Check %s.arg(%d) == %s", varName, pos, arg.String())
		}
		b.line("If check is failure")
		b.depth++
		b.line("Continue")
		b.depth--
		b.line("End if")
	}
}

// emitCommit implements §4.10 item 4: a deleted active constraint, or
// one the late-storage pass decided never needs storing, runs its body
// without storing; otherwise the active constraint is stored first.
func (b *bodyEmitter) emitCommit(occ *ast.OccRule) {
	if !occ.KeepActive() || !occ.StoreActiveConstraint() {
		b.emitBody(occ.Body)
		return
	}
	b.line("Store constraint %s", occ.ActiveConstraint.Name)
	b.emitBody(occ.Body)
}

func (b *bodyEmitter) emitBody(body ast.Body) {
	switch n := body.(type) {
	case nil:
		return
	case *ast.Keyword:
		b.line("%s", n.Name)
	case *ast.HostExpression:
		suffix := ""
		if p := n.Pragmas.String(); p != "" {
			suffix = " " + p
		}
		b.line("%s%s", n.Expression.String(), suffix)
	case *ast.LocalDecl:
		b.line("%s = %s", n.Var.String(), n.Value.String())
	case *ast.Unification:
		b.line("%s %%= %s", n.Var.String(), n.Value.String())
	case *ast.ChrConstraintCall:
		b.line("%s", n.String())
	case *ast.Sequence:
		b.emitSequence(n)
	case *ast.Try:
		b.emitTry(n)
	case *ast.Behavior:
		b.emitBehavior(n)
	}
}

func (b *bodyEmitter) emitSequence(seq *ast.Sequence) {
	if seq.Op == ast.SeqAnd {
		for _, item := range seq.Items {
			b.emitBody(item)
		}
		return
	}

	num := b.seqCounter
	b.seqCounter++
	for i, item := range seq.Items {
		if i > 0 {
			b.line("If _or_%d_%d is failure", num, i-1)
			b.depth++
		}
		b.line("_or_%d_%d <-- Try", num, i)
		b.depth++
		b.emitBody(item)
		b.depth--
		b.line("End try")
	}
	for range seq.Items[1:] {
		b.depth--
		b.line("End if")
	}
}

func (b *bodyEmitter) emitTry(t *ast.Try) {
	suffix := ""
	if t.Backtrack {
		suffix = "[_bt]"
	}
	b.line("%s <-- Try%s", t.Var.String(), suffix)
	b.depth++
	b.emitBody(t.Inner)
	b.depth--
	b.line("End try%s", suffix)
}

func (b *bodyEmitter) emitBehavior(beh *ast.Behavior) {
	b.line("Behavior")
	b.depth++
	b.line("While (%s)", beh.Cond.String())
	b.depth++
	b.line("_ret_beha_ <-- Try")
	b.depth++
	b.emitBody(beh.Body)
	b.depth--
	b.line("End try")
	b.line("If _ret_beha_ is success")
	b.depth++
	b.line("continue")
	b.depth--
	b.line("Else")
	b.depth++
	b.line("break")
	b.depth--
	b.line("End if")
	b.depth--
	b.line("End while")
	b.depth--
	b.line("End behavior")
}
