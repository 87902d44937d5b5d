// Package diagfmt renders diagnostics and tokens for humans.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"flint/internal/diag"
	"flint/internal/source"
)

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	noteColor = color.New(color.Faint)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// Pretty writes every diagnostic in the bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending source line with a ^~~~ underline.
// Call bag.Sort() first for deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", file.Path, start.Line, start.Col, sev, d.Code, d.Message)

	if line := file.GetLine(start.Line); line != "" {
		fmt.Fprintf(w, "  %s\n", line)
		fmt.Fprintf(w, "  %s\n", underline(line, start.Col, d.Primary.Len()))
	}

	for _, note := range d.Notes {
		msg := "note: " + note.Msg
		if opts.Color {
			msg = noteColor.Sprint(msg)
		}
		fmt.Fprintf(w, "  %s\n", msg)
	}
}

// underline builds the ^~~~ marker, using display widths so wide runes in
// the source line do not skew the caret position.
func underline(line string, col uint32, spanLen uint32) string {
	prefix := line
	if n := int(col) - 1; n >= 0 && n < len(line) {
		prefix = line[:n]
	}
	pad := runewidth.StringWidth(prefix)
	marks := int(spanLen)
	if marks < 1 {
		marks = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", marks-1)
}
