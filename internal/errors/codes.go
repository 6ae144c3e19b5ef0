package errors

// Error code ranges, re-keyed from the teacher's E####/W#### convention
// to this compiler's four diagnostic kinds:
//
//	E01xx  structural parse errors
//	E02xx  semantic rejections (duplicate names, malformed heads/guards)
//	E09xx  internal invariant violations (pipeline assertion failures)
//	W01xx  diagnostics (e.g. unused-rule warnings)
const (
	ErrorUnexpectedToken  = "E0100"
	ErrorUnterminatedExpr = "E0101"
	ErrorBadArrow         = "E0102"

	ErrorDuplicateConstraint  = "E0200"
	ErrorUndeclaredConstraint = "E0201"
	ErrorNonChrHeadAtom       = "E0202"
	ErrorChrCallInGuard       = "E0203"
	ErrorMutatingOpInGuard    = "E0204"
	ErrorReservedKeyword      = "E0205"
	ErrorBadGuardAssignment   = "E0206"
	ErrorArityMismatch        = "E0207"

	ErrorInternalInvariant = "E0900"

	WarningUnusedRule = "W0100"
)

// Description returns a short, stable human-readable description for a
// code.
func Description(code string) string {
	switch code {
	case ErrorUnexpectedToken:
		return "unexpected token"
	case ErrorUnterminatedExpr:
		return "unterminated expression"
	case ErrorBadArrow:
		return "rule arrow is not one of ==>, <=>, =>>, or \\"
	case ErrorDuplicateConstraint:
		return "constraint declared more than once"
	case ErrorUndeclaredConstraint:
		return "head atom names an undeclared constraint"
	case ErrorNonChrHeadAtom:
		return "rule head atom does not name a declared CHR constraint"
	case ErrorChrCallInGuard:
		return "guard may not call a CHR constraint"
	case ErrorMutatingOpInGuard:
		return "guard may not use a mutating operator"
	case ErrorReservedKeyword:
		return "reserved keyword used as an identifier"
	case ErrorBadGuardAssignment:
		return "guard assignment left-hand side must be a local variable"
	case ErrorArityMismatch:
		return "constraint call arity does not match its declaration"
	case ErrorInternalInvariant:
		return "internal invariant violated"
	case WarningUnusedRule:
		return "an occurrence of this rule can never fire and was removed"
	default:
		return "unknown diagnostic"
	}
}
