package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cool-lang/coolc/internal/ast"
)

func autoAttr(name string) *ast.AttrDecl {
	return ast.NewAttrDecl(ident(name), ident("AUTO_TYPE"), ast.NewIntLit(0, ast.Span{}), ast.Span{}, ast.Span{})
}

func TestInferencerNarrowsAttributeFromInitializer(t *testing.T) {
	a := ast.NewClassDecl(ident("A"), nil, []ast.Feature{autoAttr("x")}, ast.Span{})
	b := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), ast.NewBlock(nil, ast.Span{}), ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{a, b}}

	ctx, errs := Analyze(prog, Config{MaxInferenceIterations: 5})

	assert.Equal(t, 0, len(errs))
	aType, _ := ctx.GetType("A")
	assert.Equal(t, ctx.IntType, aType.Attributes[0].Type)
}

func TestInferencerNarrowsFromArithmeticUse(t *testing.T) {
	// main() : Int { let x : AUTO_TYPE in x + 1 }
	letIn := ast.NewLetIn(
		[]*ast.LetBinding{ast.NewLetBinding(ident("x"), ident("AUTO_TYPE"), nil, ast.Span{}, ast.Span{})},
		ast.NewArithmetic(ast.Add, ast.NewId("x", ast.Span{}), ast.NewIntLit(1, ast.Span{}), ast.Span{}, ast.Span{}),
		ast.Span{},
	)
	mainClass := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident("Int"), letIn, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainClass}}

	ctx, errs := Analyze(prog, Config{MaxInferenceIterations: 5})

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, ctx.IntType, letIn.Bindings[0].ResolvedType)
	assert.Equal(t, ctx.IntType, letIn.ComputedType())
}

func TestInferencerDefaultsUnresolvedAutoTypeToObject(t *testing.T) {
	letIn := ast.NewLetIn(
		[]*ast.LetBinding{ast.NewLetBinding(ident("x"), ident("AUTO_TYPE"), nil, ast.Span{}, ast.Span{})},
		ast.NewId("x", ast.Span{}),
		ast.Span{},
	)
	mainClass := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), letIn, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainClass}}

	ctx, _ := Analyze(prog, Config{MaxInferenceIterations: 5})

	assert.Equal(t, ctx.ObjectType, letIn.Bindings[0].ResolvedType)
}

func TestInferencerNarrowsAutoParamFromCallSiteArgument(t *testing.T) {
	// id(x : AUTO_TYPE) : AUTO_TYPE { x }, called as self.id("s") from
	// main(): the parameter and the method's return type should both
	// narrow to String, and the call site should type-check cleanly.
	idMethod := ast.NewFuncDecl(
		ident("id"),
		[]*ast.Param{ast.NewParam(ident("x"), ident("AUTO_TYPE"), ast.Span{})},
		ident("AUTO_TYPE"),
		ast.NewId("x", ast.Span{}),
		ast.Span{},
	)
	call := ast.NewMemberCall(ident("id"), []ast.Expr{ast.NewStringLit("s", ast.Span{})}, ast.Span{})
	mainClass := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		idMethod,
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), call, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainClass}}

	ctx, errs := Analyze(prog, Config{MaxInferenceIterations: 5})

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, ctx.StringType, idMethod.ResolvedMethod.ParamTypes[0])
	assert.Equal(t, ctx.StringType, idMethod.ResolvedMethod.ReturnType)
	assert.Equal(t, ctx.StringType, call.ComputedType())
}

func TestInferencerNarrowsAutoParamFromBodyUse(t *testing.T) {
	// f(x : AUTO_TYPE) : Int { x + 1 } — the parameter is pinned to Int
	// purely by how the body uses it, with no call site ever visited.
	body := ast.NewArithmetic(ast.Add, ast.NewId("x", ast.Span{}), ast.NewIntLit(1, ast.Span{}), ast.Span{}, ast.Span{})
	fMethod := ast.NewFuncDecl(
		ident("f"),
		[]*ast.Param{ast.NewParam(ident("x"), ident("AUTO_TYPE"), ast.Span{})},
		ident("Int"),
		body,
		ast.Span{},
	)
	mainClass := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		fMethod,
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), ast.NewBlock(nil, ast.Span{}), ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainClass}}

	ctx, errs := Analyze(prog, Config{MaxInferenceIterations: 5})

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, ctx.IntType, fMethod.ResolvedMethod.ParamTypes[0])
}

func TestInferencerCaseBranchesIterateAllBranches(t *testing.T) {
	// case x of a : Int => 1; b : String => 2; esac — every branch must be
	// visited and contribute to the LCA, not just the first.
	caseOf := ast.NewCaseOf(ast.NewIntLit(0, ast.Span{}), []*ast.CaseBranch{
		ast.NewCaseBranch(ident("a"), ident("Int"), ast.NewIntLit(1, ast.Span{}), ast.Span{}),
		ast.NewCaseBranch(ident("b"), ident("String"), ast.NewIntLit(2, ast.Span{}), ast.Span{}),
	}, ast.Span{})
	mainClass := ast.NewClassDecl(ident("Main"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), caseOf, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{mainClass}}

	_, errs := Analyze(prog, Config{MaxInferenceIterations: 5})
	assert.Equal(t, 0, len(errs))
	for _, br := range caseOf.Branches {
		assert.NotNil(t, br.ResolvedType)
	}
}
