// Package errors implements structured, leveled compiler diagnostics
// with Rust-style caret-annotated formatting, grounded on the teacher's
// internal/errors package.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"chrc/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a structured diagnostic with optional suggestions.
type CompilerError struct {
	Level       ErrorLevel
	Code        string
	Message     string
	Position    ast.Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

func (e CompilerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Suggestion is a suggested fix attached to a CompilerError.
type Suggestion struct {
	Message     string
	Replacement string
	Position    ast.Position
	Length      int
}

// ErrorReporter formats diagnostics against one source file's text.
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
	lineErr  bool
}

// NewErrorReporter creates a reporter for a file. lineError switches on
// the "path:line:col:" machine-readable prefix (config.Config.LineError).
func NewErrorReporter(filename, source string, lineError bool) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
		lineErr:  lineError,
	}
}

// FormatError renders err as a caret-annotated diagnostic.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if er.lineErr {
		fmt.Fprintf(&result, "%s:%d:%d: ", er.filename, err.Position.Line, err.Position.Column)
	}

	if err.Code != "" {
		fmt.Fprintf(&result, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&result, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	fmt.Fprintf(&result, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))

	if err.Position.Line > 1 && err.Position.Line-1 < len(er.lines) {
		fmt.Fprintf(&result, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line-1)), dim("│"), er.lines[err.Position.Line-2])
	}

	if err.Position.Line <= len(er.lines) && err.Position.Line > 0 {
		lineContent := er.lines[err.Position.Line-1]
		fmt.Fprintf(&result, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)), dim("│"), lineContent)

		marker := er.createMarker(err.Position.Column, err.Length, err.Level)
		fmt.Fprintf(&result, "%s %s %s\n", indent, dim("│"), marker)
	}

	if err.Position.Line < len(er.lines) {
		fmt.Fprintf(&result, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line+1)), dim("│"), er.lines[err.Position.Line])
	}

	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
		for i, s := range err.Suggestions {
			sc := color.New(color.FgCyan).SprintFunc()
			if i == 0 {
				fmt.Fprintf(&result, "%s %s %s: %s\n", indent, sc("help"), sc("try"), s.Message)
			} else {
				fmt.Fprintf(&result, "%s %s %s\n", indent, sc("    "), s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
				replacement := strings.ReplaceAll(s.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				fmt.Fprintf(&result, "%s %s %s\n", indent, sc("│"), sc(replacement))
			}
		}
	}

	for _, note := range err.Notes {
		nc := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), nc("note:"), note)
	}

	if err.HelpText != "" {
		hc := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), hc("help:"), err.HelpText)
	}

	result.WriteString("\n")
	return result.String()
}

func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	var markerColor func(...interface{}) string
	switch level {
	case Warning:
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		markerColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	marker := strings.Repeat("^", length)
	return spaces + markerColor(marker)
}

func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
