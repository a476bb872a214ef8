package ast

import "github.com/cool-lang/coolc/internal/type_system"

// ClassDecl is one `class Id [inherits Id] { ... };` declaration.
type ClassDecl struct {
	Name     *Ident
	Parent   *Ident // nil means "inherits Object" implicitly
	Features []Feature
	span     Span

	// ResolvedType is filled in by TypeBuilder (P2).
	ResolvedType *type_system.Type
}

func NewClassDecl(name *Ident, parent *Ident, features []Feature, span Span) *ClassDecl {
	return &ClassDecl{Name: name, Parent: parent, Features: features, span: span}
}

func (d *ClassDecl) Span() Span { return d.span }

// Feature is a class member: an attribute or a method declaration.
type Feature interface {
	Node
	isFeature()
}

// Param is one formal parameter of a method.
type Param struct {
	Name *Ident
	Type *Ident
	span Span
}

func NewParam(name, typ *Ident, span Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

func (p *Param) Span() Span { return p.span }

// AttrDecl is `id : Type [<- expr]`, at class scope.
type AttrDecl struct {
	Name  *Ident
	Type  *Ident
	Init  Expr // nil if there is no initializer
	Arrow Span // location of "<-", used for the diagnostic when Init doesn't conform
	span  Span

	ResolvedType *type_system.Type
	Scope        *type_system.Scope
}

func NewAttrDecl(name, typ *Ident, init Expr, arrow, span Span) *AttrDecl {
	return &AttrDecl{Name: name, Type: typ, Init: init, Arrow: arrow, span: span}
}

func (*AttrDecl) isFeature()   {}
func (d *AttrDecl) Span() Span { return d.span }

// FuncDecl is `id(params) : Type { body }`, at class scope.
type FuncDecl struct {
	Name       *Ident
	Params     []*Param
	ReturnType *Ident
	Body       Expr
	span       Span

	ResolvedMethod *type_system.Method
}

func NewFuncDecl(name *Ident, params []*Param, ret *Ident, body Expr, span Span) *FuncDecl {
	return &FuncDecl{Name: name, Params: params, ReturnType: ret, Body: body, span: span}
}

func (*FuncDecl) isFeature()   {}
func (d *FuncDecl) Span() Span { return d.span }
