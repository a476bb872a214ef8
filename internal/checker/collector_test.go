package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cool-lang/coolc/internal/ast"
)

func classDecl(name, parent string) *ast.ClassDecl {
	var p *ast.Ident
	if parent != "" {
		p = ast.NewIdent(parent, ast.Span{})
	}
	return ast.NewClassDecl(ast.NewIdent(name, ast.Span{}), p, nil, ast.Span{})
}

func TestCollectTypesSortsParentFirst(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		classDecl("C", "B"),
		classDecl("B", "A"),
		classDecl("A", ""),
	}}
	errs := &ErrorList{}
	CollectTypes(prog, errs)

	assert.Equal(t, 0, errs.Len())
	var names []string
	for _, d := range prog.Classes {
		names = append(names, d.Name.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestCollectTypesDetectsCycle(t *testing.T) {
	a := classDecl("A", "B")
	b := classDecl("B", "A")
	prog := &ast.Program{Classes: []*ast.ClassDecl{a, b}}
	errs := &ErrorList{}
	CollectTypes(prog, errs)

	assert.Equal(t, 1, errs.Len())
	assert.Nil(t, a.Parent)
	assert.Nil(t, b.Parent)
}

func TestCollectTypesRejectsBuiltinName(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{classDecl("Int", "")}}
	errs := &ErrorList{}
	CollectTypes(prog, errs)

	assert.Equal(t, 1, errs.Len())
	assert.Equal(t, "1Int", prog.Classes[0].Name.Name)
}

func TestCollectTypesRejectsDuplicateName(t *testing.T) {
	prog := &ast.Program{Classes: []*ast.ClassDecl{
		classDecl("Foo", ""),
		classDecl("Foo", ""),
	}}
	errs := &ErrorList{}
	CollectTypes(prog, errs)

	assert.Equal(t, 1, errs.Len())
	names := map[string]bool{prog.Classes[0].Name.Name: true, prog.Classes[1].Name.Name: true}
	assert.True(t, names["Foo"])
	assert.True(t, names["1Foo"])
}
