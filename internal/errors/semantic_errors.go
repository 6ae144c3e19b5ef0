package errors

import (
	"fmt"
	"strings"

	"chrc/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for constructing a
// CompilerError with suggestions, notes, and help text.
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError starts a builder for an error-level diagnostic.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{Level: Error, Code: code, Message: message, Position: pos, Length: 1},
	}
}

// NewSemanticWarning starts a builder for a warning-level diagnostic.
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{Level: Warning, Code: code, Message: message, Position: pos, Length: 1},
	}
}

func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *SemanticErrorBuilder) Build() CompilerError { return b.err }

// DuplicateConstraint reports a constraint declared more than once.
func DuplicateConstraint(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateConstraint, fmt.Sprintf("constraint '%s' is already declared", name), pos).
		WithLength(len(name)).
		WithSuggestion("rename one of the declarations, or remove the duplicate").
		WithNote("constraint names must be unique within a chr_program block").
		Build()
}

// UndeclaredConstraint reports a head or body atom naming an undeclared
// constraint, with similarly-named declarations offered as suggestions.
func UndeclaredConstraint(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndeclaredConstraint, fmt.Sprintf("undeclared constraint '%s'", name), pos).
		WithLength(len(name))
	if similar := findSimilarNames(name, similarNames); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", strings.Join(similar, "', '")))
	} else {
		builder = builder.WithNote("every constraint used in a rule must first be declared")
	}
	return builder.Build()
}

// ChrCallInGuard reports a guard conjunct that calls a CHR constraint,
// which is never allowed: guards may only test, never add to the store.
func ChrCallInGuard(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorChrCallInGuard, fmt.Sprintf("guard may not call CHR constraint '%s'", name), pos).
		WithLength(len(name)).
		WithHelp("move the call into the rule body").
		Build()
}

// MutatingOpInGuard reports use of a mutating operator (++, --, +=, ...)
// inside a guard expression.
func MutatingOpInGuard(op string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorMutatingOpInGuard, fmt.Sprintf("guard may not use mutating operator '%s'", op), pos).
		WithLength(len(op)).
		WithNote("guards must be side-effect free").
		Build()
}

// ReservedKeyword reports a reserved word used where an identifier was
// expected.
func ReservedKeyword(word string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorReservedKeyword, fmt.Sprintf("'%s' is a reserved keyword", word), pos).
		WithLength(len(word)).
		Build()
}

// BadGuardAssignment reports a guard "=" binding whose left-hand side is
// not a plain local variable.
func BadGuardAssignment(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorBadGuardAssignment, "guard assignment left-hand side must be a local variable", pos).
		WithSuggestion("bind a local variable, then use it in the rest of the guard").
		Build()
}

// ArityMismatch reports a constraint call whose argument count does not
// match its declaration.
func ArityMismatch(name string, expected, actual int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorArityMismatch,
		fmt.Sprintf("constraint '%s' expects %d argument(s), got %d", name, expected, actual), pos).
		WithHelp("check the constraint's declaration for its arity").
		Build()
}

// UnusedRule reports an occurrence rule that analysis proved can never
// fire, matching program_never_stored.cpp's warning text.
func UnusedRule(ruleName, constraintName string, occurrence int, pos ast.Position) CompilerError {
	name := ruleName
	if name == "" {
		name = constraintName
	}
	return NewSemanticWarning(WarningUnusedRule,
		fmt.Sprintf("an unused occurrence of rule '%s' (%s/%d) has been detected and removed", name, constraintName, occurrence), pos).
		Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// levenshteinDistance computes simple edit distance, used to suggest
// near-miss constraint names.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
