// Package render formats lookup results and diagnostics for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"srcmap/internal/diagnostic"
	"srcmap/sourcemap"
)

// SetColor turns coloured output on or off for every renderer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

var (
	yellowBold = color.New(color.FgYellow, color.Bold).SprintFunc()
	redBold    = color.New(color.FgRed, color.Bold).SprintFunc()
	greenBold  = color.New(color.FgGreen, color.Bold).SprintFunc()
	blue       = color.New(color.FgBlue).SprintFunc()
	cyan       = color.New(color.FgCyan).SprintFunc()
	faint      = color.New(color.Faint).SprintFunc()
)

// Entry renders e on one line:
//
//	3:10 -> src/a.js:1:4 (name)
//
// Positions are printed zero-based, as stored.
func Entry(e sourcemap.Entry) string {
	gen := fmt.Sprintf("%d:%d", e.GeneratedLine, e.GeneratedColumn)
	if !e.HasSource() {
		return cyan(gen) + " " + faint("(no source)")
	}

	s := fmt.Sprintf("%s %s %s:%d:%d", cyan(gen), blue("->"), greenBold(e.SourceURL), e.SourceLine, e.SourceColumn)
	if e.Name != "" {
		s += " " + yellowBold("("+e.Name+")")
	}

	return s
}

// Snippet renders the source line of e from content with a caret under the
// source column:
//
//	   |
//	 2 | const a = foo(b);
//	   |           ^
//
// Line numbers in the margin are one-based. It returns "" when the line is
// outside content.
func Snippet(e sourcemap.Entry, content string) string {
	lines := strings.Split(content, "\n")
	if !e.HasSource() || e.SourceLine >= len(lines) {
		return ""
	}

	src := strings.TrimSuffix(lines[e.SourceLine], "\r")
	num := strconv.Itoa(e.SourceLine + 1)
	margin := strings.Repeat(" ", len(num))

	out := []string{
		fmt.Sprintf(" %s %s", margin, blue("|")),
		fmt.Sprintf(" %s %s %s", blue(num), blue("|"), src),
		fmt.Sprintf(" %s %s %s%s", margin, blue("|"), caretPad(src, e.SourceColumn), redBold("^")),
	}

	return strings.Join(out, "\n")
}

// caretPad returns whitespace as wide as the first col runes of line. Tabs are
// kept so the caret lines up with the rendered source.
func caretPad(line string, col int) string {
	var b strings.Builder

	i := 0
	for _, r := range line {
		if i >= col {
			break
		}

		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}

		i++
	}

	// Columns past the end of the line still get padded.
	for ; i < col; i++ {
		b.WriteByte(' ')
	}

	return b.String()
}

// Diagnostic renders d with a coloured severity header:
//
//	warning: [unused_source] source "b.js" is never referenced
//	  --> app.js.map sources[1]
//	  = did you mean: a.js
func Diagnostic(d diagnostic.Diagnostic) string {
	var header string

	switch d.Severity {
	case diagnostic.DiagnosticError:
		header = redBold("error:")
	case diagnostic.DiagnosticWarning:
		header = yellowBold("warning:")
	default:
		header = blue("info:")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	lines := []string{header + " " + msg}

	if where := strings.TrimSpace(d.Document + " " + d.Location); where != "" {
		lines = append(lines, fmt.Sprintf("  %s %s", blue("-->"), where))
	}

	if len(d.Suggestions) > 0 {
		lines = append(lines, fmt.Sprintf("  %s did you mean: %s", blue("="), strings.Join(d.Suggestions, ", ")))
	}

	return strings.Join(lines, "\n")
}
