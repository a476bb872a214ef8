package printer

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/checker"
)

func ident(name string) *ast.Ident { return ast.NewIdent(name, ast.Span{}) }

func sampleProgram() *ast.Program {
	body := ast.NewIf(
		ast.NewComparison(ast.LessThan, ast.NewId("n", ast.Span{}), ast.NewIntLit(1, ast.Span{}), ast.Span{}, ast.Span{}),
		ast.NewIntLit(1, ast.Span{}),
		ast.NewArithmetic(ast.Mul, ast.NewId("n", ast.Span{}),
			ast.NewMemberCall(ident("fact"), []ast.Expr{
				ast.NewArithmetic(ast.Sub, ast.NewId("n", ast.Span{}), ast.NewIntLit(1, ast.Span{}), ast.Span{}, ast.Span{}),
			}, ast.Span{}),
			ast.Span{}, ast.Span{}),
		ast.Span{}, ast.Span{},
	)
	main := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("fact"), []*ast.Param{ast.NewParam(ident("n"), ident("Int"), ast.Span{})}, ident("Int"), body, ast.Span{}),
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), ast.NewNew(ident("Main"), ast.Span{}), ast.Span{}),
	}, ast.Span{})
	return &ast.Program{Classes: []*ast.ClassDecl{main}}
}

func TestFormatPrintRendersRawTree(t *testing.T) {
	out := FormatPrint(sampleProgram(), DefaultOptions())
	snaps.MatchSnapshot(t, out)
}

func TestComputedPrintAnnotatesResolvedTypes(t *testing.T) {
	prog := sampleProgram()
	_, errs := checker.Analyze(prog, checker.Config{MaxInferenceIterations: 5})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	out := ComputedPrint(prog, DefaultOptions())
	snaps.MatchSnapshot(t, out)
}

func TestComputedPrintResolvesAutoType(t *testing.T) {
	letIn := ast.NewLetIn(
		[]*ast.LetBinding{ast.NewLetBinding(ident("x"), ident("AUTO_TYPE"), ast.NewIntLit(0, ast.Span{}), ast.Span{}, ast.Span{})},
		ast.NewId("x", ast.Span{}),
		ast.Span{},
	)
	mainClass := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident("Int"), letIn, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainClass}}

	_, errs := checker.Analyze(prog, checker.Config{MaxInferenceIterations: 5})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	out := ComputedPrint(prog, DefaultOptions())
	snaps.MatchSnapshot(t, out)
}
