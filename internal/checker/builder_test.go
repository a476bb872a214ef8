package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cool-lang/coolc/internal/ast"
)

func ident(name string) *ast.Ident { return ast.NewIdent(name, ast.Span{}) }

func TestBuildTypesResolvesParentAndAttributes(t *testing.T) {
	a := ast.NewClassDecl(ident("A"), nil, []ast.Feature{
		ast.NewAttrDecl(ident("x"), ident("Int"), nil, ast.Span{}, ast.Span{}),
	}, ast.Span{})
	b := ast.NewClassDecl(ident("B"), ident("A"), []ast.Feature{
		ast.NewFuncDecl(ident("main"), nil, ident("Object"), nil, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{a, b}}
	prog.Classes[1].Name = ident("Main")
	b.Name = ident("Main")

	errs := &ErrorList{}
	ctx := CollectTypes(prog, errs)
	BuildTypes(prog, ctx, errs)

	assert.Equal(t, 0, errs.Len())
	aType, _ := ctx.GetType("A")
	assert.Equal(t, ctx.ObjectType, aType.Parent)
	assert.Len(t, aType.Attributes, 1)
	assert.Equal(t, ctx.IntType, aType.Attributes[0].Type)
}

func TestBuildTypesRejectsSealedParent(t *testing.T) {
	a := ast.NewClassDecl(ident("A"), ident("Int"), nil, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{a}}
	errs := &ErrorList{}
	ctx := CollectTypes(prog, errs)
	BuildTypes(prog, ctx, errs)

	assert.Equal(t, 2, errs.Len()) // invalid inheritance + missing Main
	aType, _ := ctx.GetType("A")
	assert.Equal(t, ctx.ObjectType, aType.Parent)
}

func TestBuildTypesRejectsWrongSignatureOverride(t *testing.T) {
	a := ast.NewClassDecl(ident("A"), nil, []ast.Feature{
		ast.NewFuncDecl(ident("f"), nil, ident("Int"), nil, ast.Span{}),
	}, ast.Span{})
	b := ast.NewClassDecl(ident("B"), ident("A"), []ast.Feature{
		ast.NewFuncDecl(ident("f"), nil, ident("String"), nil, ast.Span{}),
	}, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{a, b}}
	errs := &ErrorList{}
	ctx := CollectTypes(prog, errs)
	BuildTypes(prog, ctx, errs)

	found := false
	for _, e := range errs.Errors() {
		if _, ok := e.(WrongSignatureError); ok {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildTypesDetectsMissingMain(t *testing.T) {
	a := ast.NewClassDecl(ident("A"), nil, nil, ast.Span{})
	prog := &ast.Program{Classes: []*ast.ClassDecl{a}}
	errs := &ErrorList{}
	ctx := CollectTypes(prog, errs)
	BuildTypes(prog, ctx, errs)

	found := false
	for _, e := range errs.Errors() {
		if _, ok := e.(NoMainClassError); ok {
			found = true
		}
	}
	assert.True(t, found)
}
