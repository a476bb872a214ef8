package main

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/checker"
	"github.com/cool-lang/coolc/internal/parser"
)

// validate parses and analyzes contents, publishing every syntax and
// semantic diagnostic it finds. Shaped after cmd/lsp-server/main.go's
// validate, but feeding checker.Analyze instead of just the parser, since
// coolc's front end has a semantic analysis core to surface, not only a
// parser.
func (s *Server) validate(lspContext *glsp.Context, uri protocol.DocumentUri, contents string) {
	source := &ast.Source{Path: uri, Contents: contents, ID: 0}
	p := parser.New(source)
	prog := p.Parse()

	var diags []protocol.Diagnostic
	for _, perr := range p.Errors() {
		diags = append(diags, toDiagnostic(perr.Span, perr.Message))
	}

	if len(p.Errors()) == 0 {
		_, errs := checker.Analyze(prog, checker.Config{MaxInferenceIterations: 10})
		for _, err := range errs {
			diags = append(diags, toDiagnostic(err.Span(), err.Message()))
		}
	}

	if diags == nil {
		diags = []protocol.Diagnostic{}
	}

	go lspContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func toDiagnostic(span ast.Span, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := "coolc"
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(max0(span.Start.Line - 1)),
				Character: protocol.UInteger(max0(span.Start.Column - 1)),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(max0(span.End.Line - 1)),
				Character: protocol.UInteger(max0(span.End.Column - 1)),
			},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// hoverAt parses contents fresh (the server keeps no cached analysis
// result between requests — coolc programs are small enough that
// reparsing per hover is cheap, and it sidesteps keeping a stale Context
// around across edits) and reports the resolved type of whatever
// expression contains the cursor.
func hoverAt(contents string, line, col int) *protocol.Hover {
	source := &ast.Source{Path: "<hover>", Contents: contents, ID: 0}
	p := parser.New(source)
	prog := p.Parse()
	if len(p.Errors()) > 0 {
		return nil
	}

	checker.Analyze(prog, checker.Config{MaxInferenceIterations: 10})

	expr := findExprAt(prog, ast.Location{Line: line, Column: col})
	if expr == nil || expr.ComputedType() == nil {
		return nil
	}

	contents2 := fmt.Sprintf("```cool\n%s\n```", expr.ComputedType().Name)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: contents2,
		},
	}
}
