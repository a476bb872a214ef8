package main

import "github.com/cool-lang/coolc/internal/ast"

// contains reports whether loc falls within span, inclusive of both ends.
func contains(span ast.Span, loc ast.Location) bool {
	after := loc.Line > span.Start.Line || (loc.Line == span.Start.Line && loc.Column >= span.Start.Column)
	before := loc.Line < span.End.Line || (loc.Line == span.End.Line && loc.Column <= span.End.Column)
	return after && before
}

// findExprAt walks prog's expression trees looking for the innermost node
// whose span contains loc, using a direct recursive type switch rather
// than double-dispatch Visitor/Accept — the same dispatch style used
// throughout internal/checker.
func findExprAt(prog *ast.Program, loc ast.Location) ast.Expr {
	for _, c := range prog.Classes {
		for _, f := range c.Features {
			m, ok := f.(*ast.FuncDecl)
			if !ok {
				if a, ok := f.(*ast.AttrDecl); ok && a.Init != nil && contains(a.Init.Span(), loc) {
					if found := findInExpr(a.Init, loc); found != nil {
						return found
					}
				}
				continue
			}
			if m.Body != nil && contains(m.Body.Span(), loc) {
				if found := findInExpr(m.Body, loc); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

func findInExpr(e ast.Expr, loc ast.Location) ast.Expr {
	if e == nil || !contains(e.Span(), loc) {
		return nil
	}

	var children []ast.Expr
	switch n := e.(type) {
	case *ast.Assign:
		children = []ast.Expr{n.Value}
	case *ast.If:
		children = []ast.Expr{n.Cond, n.Then, n.Else}
	case *ast.While:
		children = []ast.Expr{n.Cond, n.Body}
	case *ast.Block:
		children = n.Exprs
	case *ast.LetIn:
		for _, b := range n.Bindings {
			if b.Init != nil {
				children = append(children, b.Init)
			}
		}
		children = append(children, n.Body)
	case *ast.CaseOf:
		children = append(children, n.Subject)
		for _, br := range n.Branches {
			children = append(children, br.Body)
		}
	case *ast.FunctionCall:
		children = append([]ast.Expr{n.Obj}, n.Args...)
	case *ast.MemberCall:
		children = n.Args
	case *ast.IsVoid:
		children = []ast.Expr{n.Value}
	case *ast.Complement:
		children = []ast.Expr{n.Value}
	case *ast.Not:
		children = []ast.Expr{n.Value}
	case *ast.Equal:
		children = []ast.Expr{n.Left, n.Right}
	case *ast.Arithmetic:
		children = []ast.Expr{n.Left, n.Right}
	case *ast.Comparison:
		children = []ast.Expr{n.Left, n.Right}
	}

	for _, child := range children {
		if found := findInExpr(child, loc); found != nil {
			return found
		}
	}
	return e
}
