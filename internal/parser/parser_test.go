package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cool-lang/coolc/internal/ast"
)

func parseProgram(t *testing.T, src string) (*ast.Program, *Parser) {
	t.Helper()
	p := New(&ast.Source{Path: "t.cl", Contents: src})
	prog := p.Parse()
	return prog, p
}

func TestParsesSimpleClass(t *testing.T) {
	prog, p := parseProgram(t, `class Main { main() : Object { 0 }; };`)
	assert.Empty(t, p.Errors())
	assert.Len(t, prog.Classes, 1)
	assert.Equal(t, "Main", prog.Classes[0].Name.Name)
	assert.Len(t, prog.Classes[0].Features, 1)
}

func TestParsesInheritsClause(t *testing.T) {
	prog, p := parseProgram(t, `class Main inherits IO { };`)
	assert.Empty(t, p.Errors())
	assert.Equal(t, "IO", prog.Classes[0].Parent.Name)
}

func TestParsesAttributeWithInitializer(t *testing.T) {
	prog, p := parseProgram(t, `class A { x : Int <- 5; };`)
	assert.Empty(t, p.Errors())
	attr, ok := prog.Classes[0].Features[0].(*ast.AttrDecl)
	assert.True(t, ok)
	assert.Equal(t, "x", attr.Name.Name)
	lit, ok := attr.Init.(*ast.IntLit)
	assert.True(t, ok)
	assert.Equal(t, int32(5), lit.Value)
}

func TestParsesMethodWithParams(t *testing.T) {
	prog, p := parseProgram(t, `class A { add(x : Int, y : Int) : Int { x + y }; };`)
	assert.Empty(t, p.Errors())
	m, ok := prog.Classes[0].Features[0].(*ast.FuncDecl)
	assert.True(t, ok)
	assert.Len(t, m.Params, 2)
	_, ok = m.Body.(*ast.Arithmetic)
	assert.True(t, ok)
}

func TestOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), not (1 + 2) * 3.
	prog, p := parseProgram(t, `class A { m() : Int { 1 + 2 * 3 }; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	add, ok := m.Body.(*ast.Arithmetic)
	assert.True(t, ok)
	assert.Equal(t, ast.Add, add.Op)
	_, ok = add.Left.(*ast.IntLit)
	assert.True(t, ok)
	mul, ok := add.Right.(*ast.Arithmetic)
	assert.True(t, ok)
	assert.Equal(t, ast.Mul, mul.Op)
}

func TestParsesDispatchChain(t *testing.T) {
	prog, p := parseProgram(t, `class A { m() : Object { self.foo().bar(1, 2) }; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	outer, ok := m.Body.(*ast.FunctionCall)
	assert.True(t, ok)
	assert.Equal(t, "bar", outer.Method.Name)
	assert.Len(t, outer.Args, 2)
	inner, ok := outer.Obj.(*ast.FunctionCall)
	assert.True(t, ok)
	assert.Equal(t, "foo", inner.Method.Name)
}

func TestParsesStaticDispatch(t *testing.T) {
	prog, p := parseProgram(t, `class A { m() : Object { self@IO.foo() }; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	call, ok := m.Body.(*ast.FunctionCall)
	assert.True(t, ok)
	assert.Equal(t, "IO", call.CastType.Name)
}

func TestParsesLetInWithMultipleBindings(t *testing.T) {
	prog, p := parseProgram(t, `class A { m() : Int { let x : Int <- 1, y : Int <- 2 in x + y }; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	letIn, ok := m.Body.(*ast.LetIn)
	assert.True(t, ok)
	assert.Len(t, letIn.Bindings, 2)
}

func TestParsesCaseOf(t *testing.T) {
	prog, p := parseProgram(t, `class A { m() : Object { case self of x : Int => 1; y : String => 2; esac }; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	caseOf, ok := m.Body.(*ast.CaseOf)
	assert.True(t, ok)
	assert.Len(t, caseOf.Branches, 2)
}

func TestParsesIfWhileNewIsvoidNot(t *testing.T) {
	prog, p := parseProgram(t, `class A { m() : Object {
		if isvoid self then while not true loop 1 pool else new A fi
	}; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	ifExpr, ok := m.Body.(*ast.If)
	assert.True(t, ok)
	_, ok = ifExpr.Cond.(*ast.IsVoid)
	assert.True(t, ok)
	_, ok = ifExpr.Then.(*ast.While)
	assert.True(t, ok)
	_, ok = ifExpr.Else.(*ast.New)
	assert.True(t, ok)
}

func TestReportsErrorOnMissingSemicolon(t *testing.T) {
	_, p := parseProgram(t, `class A { x : Int <- 1 };`)
	assert.NotEmpty(t, p.Errors())
}

func TestAssignmentIsLowestPrecedence(t *testing.T) {
	prog, p := parseProgram(t, `class A { m() : Int { x <- 1 + 2 }; };`)
	assert.Empty(t, p.Errors())
	m := prog.Classes[0].Features[0].(*ast.FuncDecl)
	assign, ok := m.Body.(*ast.Assign)
	assert.True(t, ok)
	_, ok = assign.Value.(*ast.Arithmetic)
	assert.True(t, ok)
}
