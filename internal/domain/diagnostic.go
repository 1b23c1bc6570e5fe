package domain

import (
	"fmt"
	"strings"
)

// NoErrorsFound is the report of a validation pass that collected nothing.
// Callers compare against it verbatim.
const NoErrorsFound = "No errors are found"

type Severity string

const (
	SeverityWarning Severity = "Warning"
	SeverityError   Severity = "Error"
	// SeverityException marks the terminal entry of a pass that could not
	// finish reading the document or schema.
	SeverityException Severity = "Exception"
)

type Position struct {
	Line   int
	Column int
}

type Diagnostic struct {
	Severity Severity
	Position *Position
	Message  string
}

// Exception converts a read failure into the terminal diagnostic.
func Exception(err error) Diagnostic {
	return Diagnostic{Severity: SeverityException, Message: err.Error()}
}

// String renders "<Severity>: (line L, pos P) <message>", dropping the
// parenthesised part when the position is unknown.
func (d Diagnostic) String() string {
	if d.Severity != SeverityException && d.Position != nil && d.Position.Line > 0 {
		return fmt.Sprintf("%s: (line %d, pos %d) %s", d.Severity, d.Position.Line, d.Position.Column, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is the append-only sink of one validation pass.
type Diagnostics []Diagnostic

func (ds *Diagnostics) Append(d Diagnostic) { *ds = append(*ds, d) }

// Report joins the rendered diagnostics with newlines, or returns NoErrorsFound.
func (ds Diagnostics) Report() string {
	if len(ds) == 0 {
		return NoErrorsFound
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}
