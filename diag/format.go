package diag

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pterm/pterm"

	"github.com/d-fournier/wrappy/errors"
)

// Formatter renders one diagnostic, trailing newline included.
type Formatter interface {
	Format(Diagnostic) string
}

// Format names an output style for diagnostics
type Format string

const (
	FormatTerminal Format = "terminal" // Coloured, for interactive shells
	FormatPlain    Format = "plain"    // compiler-style "file:line:col: error: msg"
	FormatJSON     Format = "json"     // one JSON object per line
)

// NewFormatter returns the formatter for a named format.
func NewFormatter(f Format) (Formatter, error) {
	switch f {
	case FormatTerminal:
		return TerminalFormatter{}, nil
	case FormatPlain:
		return PlainFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	default:
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unknown diagnostics format %q", f),
			"use one of: terminal, plain, json")
	}
}

// PlainFormatter creates concise messages for logs and CI output
type PlainFormatter struct{}

func (PlainFormatter) Format(d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", d.Locus, d.Severity, d.Message)
	if d.Hint != "" {
		fmt.Fprintf(&b, " (hint: %s)", d.Hint)
	}
	b.WriteString("\n")
	return b.String()
}

// TerminalFormatter creates coloured messages for a terminal
type TerminalFormatter struct{}

func (TerminalFormatter) Format(d Diagnostic) string {
	var label string
	switch d.Severity {
	case SeverityError:
		label = pterm.Red("error")
	case SeverityWarning:
		label = pterm.Yellow("warning")
	case SeverityNote:
		label = pterm.Blue("note")
	default:
		label = string(d.Severity)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", pterm.Gray(d.Locus.String()), label, d.Message)
	if d.Code != "" {
		fmt.Fprintf(&b, " %s", pterm.Gray("["+string(d.Code)+"]"))
	}
	if d.Hint != "" {
		fmt.Fprintf(&b, "\n  %s %s", pterm.LightCyan("hint:"), d.Hint)
	}
	b.WriteString("\n")
	return b.String()
}

// JSONFormatter emits one object per diagnostic for tooling
type JSONFormatter struct{}

func (JSONFormatter) Format(d Diagnostic) string {
	data, err := json.Marshal(d)
	if err != nil {
		// Diagnostic only holds strings and ints
		return fmt.Sprintf(`{"severity":"error","message":%q}`+"\n", err.Error())
	}
	return string(data) + "\n"
}
