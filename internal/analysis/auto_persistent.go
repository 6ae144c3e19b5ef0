package analysis

import "chrc/internal/ast"

// AutoPersistent implements pass E: scan every rule body in the program
// and, if none anywhere contains a Try, a Behavior, or a ";"-style
// choice Sequence, tag every declaration persistent — the program is
// then known deterministic and the runtime can elide backtrack
// bookkeeping. Gated by the program's AutoPersistent flag (default
// true); suppressed as soon as any backtracking construct is seen
// anywhere. There is no single original_source file covering this
// inference directly; it is modeled on the single-pass, predicate-driven
// style of the teacher's semantic analyzer passes.
func AutoPersistent(p *ast.ChrProgram) {
	if !p.AutoPersistent {
		return
	}
	for _, r := range p.Rules {
		if canBacktrack(r.Body) {
			return
		}
	}
	for _, name := range p.DeclNames() {
		decl := p.Decl(name)
		if !decl.Pragmas.Has(ast.PragmaPersistent) {
			decl.Pragmas = append(decl.Pragmas, ast.PragmaPersistent)
		}
	}
}

func canBacktrack(b ast.Body) bool {
	found := false
	ast.ApplyBody(b, func(n ast.Body) bool {
		if found {
			return false
		}
		switch v := n.(type) {
		case *ast.Try:
			found = true
			return false
		case *ast.Behavior:
			found = true
			return false
		case *ast.Sequence:
			if v.Op == ast.SeqChoice {
				found = true
				return false
			}
		}
		return true
	}, nil)
	return found
}
