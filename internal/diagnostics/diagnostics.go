// Package diagnostics renders checker.Error values to terminal output
// with source context, with color gated by fatih/color and
// mattn/go-isatty so piped output stays plain.
package diagnostics

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/checker"
	"github.com/cool-lang/coolc/internal/config"
)

// Formatter renders errors against their originating source for display.
// Colorize is resolved once at construction, not re-checked per error, so
// a single run's output is consistent even if stdout is redirected mid-way.
type Formatter struct {
	Colorize bool

	bold Filter
	red  Filter
	dim  Filter
}

// Filter matches fatih/color's SprintFunc signature, kept as a named type
// here so NewFormatter can install either real color functions or the
// identity function without importing fatih/color into every caller.
type Filter func(a ...interface{}) string

func identity(a ...interface{}) string { return fmt.Sprint(a...) }

// NewFormatter resolves mode against out: ColorAlways/ColorNever are
// absolute, ColorAuto defers to isatty on out when out is an *os.File.
func NewFormatter(mode config.ColorMode, out io.Writer) *Formatter {
	colorize := false
	switch mode {
	case config.ColorAlways:
		colorize = true
	case config.ColorNever:
		colorize = false
	default:
		if f, ok := out.(interface{ Fd() uintptr }); ok {
			colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	f := &Formatter{Colorize: colorize}
	if colorize {
		f.bold = color.New(color.Bold).SprintFunc()
		f.red = color.New(color.FgRed).SprintFunc()
		f.dim = color.New(color.Faint).SprintFunc()
	} else {
		f.bold, f.red, f.dim = identity, identity, identity
	}
	return f
}

// Format renders one error as a header line plus a caret pointing at its
// span within the source line, optionally colorized.
func (f *Formatter) Format(err checker.Error, source *ast.Source) string {
	span := err.Span()
	header := fmt.Sprintf("%s:%s: %s", source.Path, span.Start, f.bold(err.Message()))
	if span.Start.Line == 0 {
		return f.red(header) + "\n"
	}

	lines := strings.Split(source.Contents, "\n")
	if span.Start.Line < 1 || span.Start.Line > len(lines) {
		return f.red(header) + "\n"
	}

	var out strings.Builder
	out.WriteString(f.red(header))
	out.WriteString("\n\n")

	lineNum := strconv.Itoa(span.Start.Line) + ":"
	out.WriteString(f.dim(fmt.Sprintf("%-4s", lineNum)))
	out.WriteString(lines[span.Start.Line-1])
	out.WriteString("\n")

	for range 4 + span.Start.Column - 1 {
		out.WriteString(" ")
	}
	carets := span.End.Column - span.Start.Column
	if carets < 1 {
		carets = 1
	}
	out.WriteString(f.red(strings.Repeat("^", carets)))
	out.WriteString("\n")

	return out.String()
}

// FormatAll renders every error against the source it belongs to, looked
// up by Span().SourceID in bySourceID.
func (f *Formatter) FormatAll(errs []checker.Error, bySourceID map[int]*ast.Source) string {
	var out strings.Builder
	for _, err := range errs {
		source, ok := bySourceID[err.Span().SourceID]
		if !ok {
			out.WriteString(f.red(err.Message()))
			out.WriteString("\n")
			continue
		}
		out.WriteString(f.Format(err, source))
	}
	return out.String()
}
