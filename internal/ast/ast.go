// Package ast defines the node vocabulary the semantic analysis core
// consumes: a whole-program COOL AST as produced by an external parser
// (internal/parser here, a minimal one written to feed the core).
package ast

// Node is implemented by every AST variant. Span locates the node in its
// source file for diagnostics.
type Node interface {
	Span() Span
}

// Ident is a bare identifier token: a class name, variable name, method
// name or formal parameter name. An empty Name means the identifier was
// missing from malformed input; the parser still emits a node so passes
// can degrade gracefully instead of panicking on a nil pointer.
type Ident struct {
	Name string
	span Span
}

func NewIdent(name string, span Span) *Ident {
	return &Ident{Name: name, span: span}
}

func (i *Ident) Span() Span { return i.span }

// Program is the root of a whole COOL program: every class declared across
// every input file, in source order (TypeCollector re-sorts this slice by
// inheritance depth in place).
type Program struct {
	Classes []*ClassDecl
}

func (p *Program) Span() Span {
	if len(p.Classes) == 0 {
		return Span{}
	}
	return MergeSpans(p.Classes[0].Span(), p.Classes[len(p.Classes)-1].Span())
}
