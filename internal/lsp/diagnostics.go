package lsp

import (
	"chrc/internal/errors"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertParseErrors turns grammar/build failures into LSP diagnostics.
// Most failures surface as plain errors rather than errors.CompilerError
// (participle's own syntax errors in particular), so anything else is
// reported as a one-character diagnostic at 1:1.
func ConvertParseErrors(errs []error) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, err := range errs {
		diagnostics = append(diagnostics, toDiagnostic(err))
	}
	return diagnostics
}

func toDiagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	line, col := uint32(0), uint32(0)
	message := err.Error()

	if ce, ok := err.(errors.CompilerError); ok {
		if ce.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}
		line = uint32(ce.Position.Line - 1)
		col = uint32(ce.Position.Column - 1)
		message = ce.Message
	}

	length := uint32(1)
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + length},
		},
		Severity: &severity,
		Source:   strPtr("chrc"),
		Message:  message,
	}
}

func strPtr(s string) *string { return &s }
