package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/checker"
	"github.com/cool-lang/coolc/internal/config"
	"github.com/cool-lang/coolc/internal/diagnostics"
	"github.com/cool-lang/coolc/internal/parser"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// runRepl drives an interactive loop reading one class declaration at a
// time (COOL has no standalone top-level expression, so the REPL wraps
// whatever the user typed in an implicit Main.main if it looks like a bare
// expression, and otherwise analyzes it as written), printing the
// resolved type of main() or any errors. Uses liner for history and
// line-editing, and fatih/color for the banner and error highlighting.
func runRepl(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".coolc_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("coolc repl"))
	fmt.Fprintln(out, dim("Type a class declaration or bare expression, :quit to exit."))

	for {
		input, err := line.Prompt("cool> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ":quit" || input == ":q" {
			break
		}
		line.AppendHistory(input)
		evalLine(out, input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func evalLine(out io.Writer, input string) {
	src := input
	if !strings.Contains(src, "class ") {
		src = fmt.Sprintf("class Main { main() : Object { %s }; };", input)
	}

	source := &ast.Source{Path: "<repl>", Contents: src, ID: 0}
	p := parser.New(source)
	prog := p.Parse()
	for _, perr := range p.Errors() {
		fmt.Fprintf(out, "%s: %s\n", red("syntax error"), perr.Message)
	}
	if len(p.Errors()) > 0 {
		return
	}

	ctx, errs := checker.Analyze(prog, checker.Config{MaxInferenceIterations: 10})
	if len(errs) > 0 {
		f := diagnostics.NewFormatter(config.ColorAlways, out)
		fmt.Fprint(out, f.FormatAll(errs, map[int]*ast.Source{0: source}))
		return
	}

	mainType, err := ctx.GetType("Main")
	if err != nil || mainType == nil {
		fmt.Fprintln(out, green("ok"))
		return
	}
	m, _ := mainType.GetMethod("main")
	if m != nil {
		fmt.Fprintf(out, "%s %s\n", dim("-:"), green(m.ReturnType.Name))
	}
}
