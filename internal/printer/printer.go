// Package printer renders a COOL AST back to source text. It supplies two
// related passes, matching the two moments in the pipeline a reader wants
// to inspect the tree: FormatPrint renders the raw parse (no computed
// types available yet), and ComputedPrint renders the post-analysis tree
// with every expression's resolved type annotated inline, the way a
// compiler's `-dump-type` flag would.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cool-lang/coolc/internal/ast"
)

// Options controls indentation.
type Options struct {
	Indent string
}

func DefaultOptions() Options {
	return Options{Indent: "  "}
}

// Printer walks a Program and writes COOL source to writer. ShowTypes
// switches FormatPrinter mode off and ComputedPrinter mode on: when true,
// every expression gets a trailing `: Type` annotation from its
// ComputedType.
type Printer struct {
	writer      io.Writer
	opts        Options
	indentLevel int
	needIndent  bool
	ShowTypes   bool
}

func NewPrinter(writer io.Writer, opts Options) *Printer {
	return &Printer{writer: writer, opts: opts, needIndent: true}
}

func (p *Printer) writeString(s string) {
	if p.needIndent && len(s) > 0 {
		io.WriteString(p.writer, strings.Repeat(p.opts.Indent, p.indentLevel))
		p.needIndent = false
	}
	io.WriteString(p.writer, s)
}

func (p *Printer) newline() {
	io.WriteString(p.writer, "\n")
	p.needIndent = true
}

func (p *Printer) indent()   { p.indentLevel++ }
func (p *Printer) dedent()   { p.indentLevel-- }

// PrintProgram renders every class declaration in prog.Classes, in the
// order they currently appear (TypeCollector sorts this parent-first, so a
// printout taken after P1 already reads top-down by inheritance depth).
func (p *Printer) PrintProgram(prog *ast.Program) {
	for i, c := range prog.Classes {
		p.printClass(c)
		if i < len(prog.Classes)-1 {
			p.newline()
			p.newline()
		}
	}
}

func (p *Printer) printClass(c *ast.ClassDecl) {
	p.writeString("class ")
	p.writeString(c.Name.Name)
	if c.Parent != nil {
		p.writeString(" inherits ")
		p.writeString(c.Parent.Name)
	}
	p.writeString(" {")
	p.newline()
	p.indent()
	for _, f := range c.Features {
		p.printFeature(f)
	}
	p.dedent()
	p.writeString("};")
}

func (p *Printer) printFeature(f ast.Feature) {
	switch d := f.(type) {
	case *ast.AttrDecl:
		p.writeString(d.Name.Name)
		p.writeString(" : ")
		p.writeString(d.Type.Name)
		if d.Init != nil {
			p.writeString(" <- ")
			p.printExpr(d.Init)
		}
		p.writeString(";")
		p.newline()
	case *ast.FuncDecl:
		p.writeString(d.Name.Name)
		p.writeString("(")
		for i, param := range d.Params {
			p.writeString(param.Name.Name)
			p.writeString(" : ")
			p.writeString(param.Type.Name)
			if i < len(d.Params)-1 {
				p.writeString(", ")
			}
		}
		p.writeString(") : ")
		p.writeString(d.ReturnType.Name)
		p.writeString(" {")
		p.newline()
		p.indent()
		p.printExpr(d.Body)
		p.newline()
		p.dedent()
		p.writeString("};")
		p.newline()
	default:
		p.writeString("/* unknown feature */")
	}
}

func (p *Printer) printExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Assign:
		p.writeString(n.Name.Name)
		p.writeString(" <- ")
		p.printExpr(n.Value)
	case *ast.If:
		p.writeString("if ")
		p.printExpr(n.Cond)
		p.writeString(" then ")
		p.printExpr(n.Then)
		p.writeString(" else ")
		p.printExpr(n.Else)
		p.writeString(" fi")
	case *ast.While:
		p.writeString("while ")
		p.printExpr(n.Cond)
		p.writeString(" loop ")
		p.printExpr(n.Body)
		p.writeString(" pool")
	case *ast.Block:
		p.writeString("{")
		p.newline()
		p.indent()
		for _, sub := range n.Exprs {
			p.printExpr(sub)
			p.writeString(";")
			p.newline()
		}
		p.dedent()
		p.writeString("}")
	case *ast.LetIn:
		p.writeString("let ")
		for i, b := range n.Bindings {
			p.writeString(b.Name.Name)
			p.writeString(" : ")
			p.writeString(b.Type.Name)
			if b.Init != nil {
				p.writeString(" <- ")
				p.printExpr(b.Init)
			}
			if i < len(n.Bindings)-1 {
				p.writeString(", ")
			}
		}
		p.writeString(" in ")
		p.printExpr(n.Body)
	case *ast.CaseOf:
		p.writeString("case ")
		p.printExpr(n.Subject)
		p.writeString(" of")
		p.newline()
		p.indent()
		for _, br := range n.Branches {
			p.writeString(br.Name.Name)
			p.writeString(" : ")
			p.writeString(br.Type.Name)
			p.writeString(" => ")
			p.printExpr(br.Body)
			p.writeString(";")
			p.newline()
		}
		p.dedent()
		p.writeString("esac")
	case *ast.FunctionCall:
		p.printExpr(n.Obj)
		if n.CastType != nil {
			p.writeString("@")
			p.writeString(n.CastType.Name)
		}
		p.writeString(".")
		p.writeString(n.Method.Name)
		p.printArgs(n.Args)
	case *ast.MemberCall:
		p.writeString(n.Method.Name)
		p.printArgs(n.Args)
	case *ast.New:
		p.writeString("new ")
		p.writeString(n.Type.Name)
	case *ast.IsVoid:
		p.writeString("isvoid ")
		p.printExpr(n.Value)
	case *ast.Complement:
		p.writeString("~")
		p.printExpr(n.Value)
	case *ast.Not:
		p.writeString("not ")
		p.printExpr(n.Value)
	case *ast.Equal:
		p.printExpr(n.Left)
		p.writeString(" = ")
		p.printExpr(n.Right)
	case *ast.Arithmetic:
		p.printExpr(n.Left)
		p.writeString(" ")
		p.writeString(string(n.Op))
		p.writeString(" ")
		p.printExpr(n.Right)
	case *ast.Comparison:
		p.printExpr(n.Left)
		p.writeString(" ")
		p.writeString(string(n.Op))
		p.writeString(" ")
		p.printExpr(n.Right)
	case *ast.IntLit:
		p.writeString(strconv.FormatInt(int64(n.Value), 10))
	case *ast.StringLit:
		p.writeString(strconv.Quote(n.Value))
	case *ast.BoolLit:
		if n.Value {
			p.writeString("true")
		} else {
			p.writeString("false")
		}
	case *ast.Id:
		p.writeString(n.Name)
	default:
		p.writeString(fmt.Sprintf("/* unknown expr %T */", e))
		return
	}

	if p.ShowTypes {
		if t := e.ComputedType(); t != nil {
			p.writeString(" : ")
			p.writeString(t.Name)
		}
	}
}

func (p *Printer) printArgs(args []ast.Expr) {
	p.writeString("(")
	for i, a := range args {
		p.printExpr(a)
		if i < len(args)-1 {
			p.writeString(", ")
		}
	}
	p.writeString(")")
}

// FormatPrint renders prog as it was parsed, with no type annotations.
func FormatPrint(prog *ast.Program, opts Options) string {
	var b strings.Builder
	p := NewPrinter(&b, opts)
	p.PrintProgram(prog)
	return b.String()
}

// ComputedPrint renders prog after semantic analysis, with every
// expression's resolved type inlined; equivalent to the reference
// implementation's ComputedVisitor. The inlined expression types are the
// ones analysis settled on. Declared type annotations (attribute, parameter,
// return, let-binding and case-branch types) are printed as written in the
// source, so an `AUTO_TYPE` annotation is printed as `AUTO_TYPE`, not as its
// inferred type.
func ComputedPrint(prog *ast.Program, opts Options) string {
	var b strings.Builder
	p := NewPrinter(&b, opts)
	p.ShowTypes = true
	p.PrintProgram(prog)
	return b.String()
}
