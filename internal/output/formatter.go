// Package output prints user-facing results: colored status lines,
// aligned tables and JSON for --json.
//
// Everything goes to one writer (stdout by default). Diagnostics belong
// in the logger package, which writes to stderr.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	labelColor   = color.New(color.Bold)
)

var out io.Writer = color.Output

// SetWriter redirects all output. nil restores stdout.
func SetWriter(w io.Writer) {
	if w == nil {
		w = color.Output
	}
	out = w
}

// Writer returns the current output writer.
func Writer() io.Writer {
	return out
}

// JSON outputs data as indented JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ErrorJSON is the --json shape of a failed command.
type ErrorJSON struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

// Table outputs data as a formatted table
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) {
		padded := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	line(headers)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
}

// Fields prints label/value pairs with aligned values.
func Fields(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		_, _ = labelColor.Fprintf(out, "%-*s", width+1, p[0]+":")
		fmt.Fprintf(out, " %s\n", p[1])
	}
}

// Block prints text indented under a title, e.g. a declaration preview.
func Block(title, text string) {
	_, _ = labelColor.Fprintln(out, title)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(out, "    %s\n", l)
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(out, "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(out, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(out, "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(out, "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	fmt.Fprintf(out, format+"\n", args...)
}
