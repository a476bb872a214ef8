package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/checker"
	"github.com/cool-lang/coolc/internal/config"
	"github.com/cool-lang/coolc/internal/diagnostics"
	"github.com/cool-lang/coolc/internal/parser"
	"github.com/cool-lang/coolc/internal/printer"
)

// loadSources reads and validates every input file in one loop, collecting
// the sources and indexing each by ID for later diagnostic lookup.
func loadSources(stdout io.Writer, files []string) ([]*ast.Source, map[int]*ast.Source) {
	sources := make([]*ast.Source, 0, len(files))
	idToSource := make(map[int]*ast.Source)
	nextID := 0

	for _, file := range files {
		source, err := loadSource(file, nextID)
		if err != nil {
			fmt.Fprintln(stdout, err.Error())
			continue
		}
		sources = append(sources, source)
		idToSource[source.ID] = source
		nextID++
	}

	return sources, idToSource
}

func loadSource(file string, id int) (*ast.Source, error) {
	if path.Ext(file) != ".cl" {
		return nil, fmt.Errorf("%s: file does not have .cl extension", file)
	}
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file does not exist", file)
	}
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read file", file)
	}
	return &ast.Source{ID: id, Path: file, Contents: string(bytes)}, nil
}

// build parses and analyzes every file, printing any syntax or semantic
// error to stderr. It returns false when any file failed, so main can set
// a nonzero exit code.
func build(stdout io.Writer, stderr io.Writer, files []string) bool {
	if len(files) == 0 {
		fmt.Fprintln(stderr, "build: no input files")
		return false
	}

	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		fmt.Fprintln(stderr, err)
		cfg = config.Default()
	}

	sources, idToSource := loadSources(stdout, files)
	if len(sources) == 0 {
		return false
	}

	var classes []*ast.ClassDecl
	ok := true
	for _, source := range sources {
		p := parser.New(source)
		prog := p.Parse()
		classes = append(classes, prog.Classes...)
		for _, perr := range p.Errors() {
			fmt.Fprintf(stderr, "%s:%s: %s\n", source.Path, perr.Span.Start, perr.Message)
			ok = false
		}
	}
	if !ok {
		return false
	}

	prog := &ast.Program{Classes: classes}
	ctx, errs := checker.Analyze(prog, checker.Config{MaxInferenceIterations: cfg.InferenceIterations})
	fmt.Fprintf(stderr, "run %s: %d class(es), %d diagnostic(s)\n", ctx.RunID, len(prog.Classes), len(errs))

	f := diagnostics.NewFormatter(cfg.Color, stderr)
	shown := errs
	if cfg.MaxErrors > 0 && len(shown) > cfg.MaxErrors {
		shown = shown[:cfg.MaxErrors]
	}
	fmt.Fprint(stderr, f.FormatAll(shown, idToSource))

	return len(errs) == 0
}

// printAST parses (and, if computed is set, fully analyzes) every file and
// pretty-prints the resulting tree to stdout — `coolc print` for
// inspecting what the front end actually saw.
func printAST(stdout io.Writer, stderr io.Writer, files []string, computed bool) bool {
	if len(files) == 0 {
		fmt.Fprintln(stderr, "print: no input files")
		return false
	}

	sources, idToSource := loadSources(stdout, files)
	if len(sources) == 0 {
		return false
	}

	var classes []*ast.ClassDecl
	for _, source := range sources {
		p := parser.New(source)
		prog := p.Parse()
		classes = append(classes, prog.Classes...)
		for _, perr := range p.Errors() {
			fmt.Fprintf(stderr, "%s:%s: %s\n", source.Path, perr.Span.Start, perr.Message)
		}
	}
	prog := &ast.Program{Classes: classes}

	if computed {
		_, errs := checker.Analyze(prog, checker.Config{MaxInferenceIterations: 10})
		cfg := config.Default()
		f := diagnostics.NewFormatter(cfg.Color, stderr)
		fmt.Fprint(stderr, f.FormatAll(errs, idToSource))
		fmt.Fprint(stdout, printer.ComputedPrint(prog, printer.DefaultOptions()))
		return len(errs) == 0
	}

	fmt.Fprint(stdout, printer.FormatPrint(prog, printer.DefaultOptions()))
	return true
}
