package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cool-lang/coolc/internal/ast"
)

func mainWithBody(body ast.Expr, ret string) *ast.ClassDecl {
	return ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident(ret), body, ast.Span{}),
	}, ast.Span{})
}

func TestCheckerFlagsNonBoolIfCondition(t *testing.T) {
	body := ast.NewIf(ast.NewIntLit(1, ast.Span{}), ast.NewIntLit(2, ast.Span{}), ast.NewIntLit(3, ast.Span{}), ast.Span{}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(body, "Int")}}
	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})

	found := false
	for _, e := range errs {
		if _, ok := e.(ConditionNotBoolError); ok {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckerArithmeticRequiresInt(t *testing.T) {
	body := ast.NewArithmetic(ast.Add, ast.NewStringLit("a", ast.Span{}), ast.NewIntLit(1, ast.Span{}), ast.Span{}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(body, "Int")}}
	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})

	found := false
	for _, e := range errs {
		if _, ok := e.(InvalidOperationError); ok {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckerComparisonRequiresIntNotBool(t *testing.T) {
	// `<` requires Int operands, not Bool.
	body := ast.NewComparison(ast.LessThan, ast.NewIntLit(1, ast.Span{}), ast.NewIntLit(2, ast.Span{}), ast.Span{}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(body, "Bool")}}
	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})
	assert.Equal(t, 0, len(errs))

	boolBody := ast.NewComparison(ast.LessThan, ast.NewBoolLit(true, ast.Span{}), ast.NewBoolLit(false, ast.Span{}), ast.Span{}, ast.Span{})
	boolProg := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(boolBody, "Bool")}}
	_, boolErrs := Analyze(boolProg, Config{MaxInferenceIterations: 3})

	found := false
	for _, e := range boolErrs {
		if _, ok := e.(InvalidOperationError); ok {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckerAllowsConcreteArgumentAgainstAutoTypeParam(t *testing.T) {
	// f(x : AUTO_TYPE) : Int { 5 }, called as self.f(3) — an AUTO_TYPE
	// parameter must not reject a concrete argument before inference has
	// had a chance to narrow it.
	fMethod := ast.NewFuncDecl(
		ident("f"),
		[]*ast.Param{ast.NewParam(ident("x"), ident("AUTO_TYPE"), ast.Span{})},
		ident("Int"),
		ast.NewIntLit(5, ast.Span{}),
		ast.Span{},
	)
	call := ast.NewMemberCall(ident("f"), []ast.Expr{ast.NewIntLit(3, ast.Span{})}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
			fMethod,
			ast.NewFuncDecl(ident("main"), nil, ident("Int"), call, ast.Span{}),
		}, ast.Span{}),
	}}

	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})
	assert.Equal(t, 0, len(errs))
}

func TestCheckerAllowsNewOnPrimitiveTypes(t *testing.T) {
	// `new Int`/`new String`/`new Bool` are legal.
	body := ast.NewNew(ident("Int"), ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(body, "Int")}}
	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})
	assert.Equal(t, 0, len(errs))
}

func TestCheckerUndefinedVariable(t *testing.T) {
	body := ast.NewId("nope", ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(body, "Object")}}
	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})

	found := false
	for _, e := range errs {
		if _, ok := e.(VariableNotDefinedError); ok {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckerSelfIsReadonly(t *testing.T) {
	body := ast.NewAssign(ident("self"), ast.NewIntLit(1, ast.Span{}), ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainWithBody(body, "Object")}}
	_, errs := Analyze(prog, Config{MaxInferenceIterations: 3})

	found := false
	for _, e := range errs {
		if _, ok := e.(SelfIsReadonlyError); ok {
			found = true
		}
	}
	assert.True(t, found)
}
