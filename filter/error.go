package filter

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorKind categorizes parse errors for programmatic handling.
type ErrorKind string

const (
	KindUnexpectedToken ErrorKind = "unexpected-token"
	KindUnterminatedStr ErrorKind = "unterminated-string"
	KindBadScalar       ErrorKind = "bad-scalar"
	KindTrailingInput   ErrorKind = "trailing-input"
	KindEmptyExpression ErrorKind = "empty-expression"
)

// ErrorContext selects the rendering used by FormatError.
type ErrorContext int

const (
	ErrorContextTerminal ErrorContext = iota
	ErrorContextPlain
)

// ParseError is a structured filter-parse error with enough context to
// render either a terse log line or a colored terminal message.
type ParseError struct {
	Kind        ErrorKind
	Message     string
	Position    int
	Input       string
	Suggestions []string
}

func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextTerminal)
}

// FormatError renders e for the given context.
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlain()
	}
	return e.formatTerminal()
}

func (e *ParseError) formatPlain() string {
	msg := e.Message
	if e.Position >= 0 {
		msg += fmt.Sprintf(" (at position %d)", e.Position)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ParseError) formatTerminal() string {
	baseMsg := pterm.Red(e.Message)
	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	if e.Position >= 0 {
		context += fmt.Sprintf("\n  %s %d", pterm.Yellow("Position:"), e.Position)
	}
	if e.Input != "" {
		context += fmt.Sprintf("\n  %s %q", pterm.Yellow("Input:"), e.Input)
	}
	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:"))
		for _, s := range e.Suggestions {
			context += fmt.Sprintf("\n  - %s", s)
		}
	}
	return fmt.Sprintf("%s%s", baseMsg, context)
}

func newParseError(kind ErrorKind, pos int, input string, message string, suggestions ...string) *ParseError {
	return &ParseError{
		Kind:        kind,
		Message:     message,
		Position:    pos,
		Input:       input,
		Suggestions: suggestions,
	}
}
