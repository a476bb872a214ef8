package ast

import "github.com/cool-lang/coolc/internal/type_system"

// Expr is the sum type of every expression-position node COOL supports.
// Every variant carries a computed_type slot, first filled in by the
// Inferencer (P4) and then set again by TypeChecker (P3), which runs last.
//
//sumtype:decl
type Expr interface {
	Node
	isExpr()
	ComputedType() *type_system.Type
	SetComputedType(*type_system.Type)
}

func (*Assign) isExpr()        {}
func (*If) isExpr()            {}
func (*While) isExpr()         {}
func (*Block) isExpr()         {}
func (*LetIn) isExpr()         {}
func (*CaseOf) isExpr()        {}
func (*FunctionCall) isExpr()  {}
func (*MemberCall) isExpr()    {}
func (*New) isExpr()           {}
func (*IsVoid) isExpr()        {}
func (*Complement) isExpr()    {}
func (*Not) isExpr()           {}
func (*Equal) isExpr()         {}
func (*Arithmetic) isExpr()    {}
func (*Comparison) isExpr()    {}
func (*IntLit) isExpr()        {}
func (*StringLit) isExpr()     {}
func (*BoolLit) isExpr()       {}
func (*Id) isExpr()            {}

// exprBase factors out the computed_type decoration every variant carries.
type exprBase struct {
	computedType *type_system.Type
}

func (b *exprBase) ComputedType() *type_system.Type { return b.computedType }
func (b *exprBase) SetComputedType(t *type_system.Type) { b.computedType = t }

// Assign is `id <- expr`.
type Assign struct {
	exprBase
	Name  *Ident
	Value Expr
	span  Span
}

func NewAssign(name *Ident, value Expr, span Span) *Assign {
	return &Assign{Name: name, Value: value, span: span}
}
func (e *Assign) Span() Span { return e.span }

// If is `if cond then thenBody else elseBody fi`. Else is nil for a
// parse that omitted it (the grammar actually requires else, but the AST
// tolerates its absence so hand-built test fixtures don't need to supply a
// placeholder).
type If struct {
	exprBase
	Cond, Then, Else Expr
	Token            Span // location of the "if" keyword, for CONDITION_NOT_BOOL
	span             Span
}

func NewIf(cond, then, els Expr, token, span Span) *If {
	return &If{Cond: cond, Then: then, Else: els, Token: token, span: span}
}
func (e *If) Span() Span { return e.span }

// While is `while cond loop body pool`.
type While struct {
	exprBase
	Cond, Body Expr
	Token      Span
	span       Span
}

func NewWhile(cond, body Expr, token, span Span) *While {
	return &While{Cond: cond, Body: body, Token: token, span: span}
}
func (e *While) Span() Span { return e.span }

// Block is `{ expr; ...; expr; }`; its type is that of its last expr.
type Block struct {
	exprBase
	Exprs []Expr
	span  Span
}

func NewBlock(exprs []Expr, span Span) *Block {
	return &Block{Exprs: exprs, span: span}
}
func (e *Block) Span() Span { return e.span }

// LetBinding is one `id : Type [<- expr]` clause inside a let.
type LetBinding struct {
	Name  *Ident
	Type  *Ident
	Init  Expr
	Arrow Span
	span  Span

	ResolvedType *type_system.Type
}

func NewLetBinding(name, typ *Ident, init Expr, arrow, span Span) *LetBinding {
	return &LetBinding{Name: name, Type: typ, Init: init, Arrow: arrow, span: span}
}
func (b *LetBinding) Span() Span { return b.span }

// LetIn is `let b1, ..., bn in body`.
type LetIn struct {
	exprBase
	Bindings []*LetBinding
	Body     Expr
	span     Span

	Scope *type_system.Scope
}

func NewLetIn(bindings []*LetBinding, body Expr, span Span) *LetIn {
	return &LetIn{Bindings: bindings, Body: body, span: span}
}
func (e *LetIn) Span() Span { return e.span }

// CaseBranch is one `id : Type => expr` arm of a case expression.
type CaseBranch struct {
	Name *Ident
	Type *Ident
	Body Expr
	span Span

	ResolvedType *type_system.Type
	Scope        *type_system.Scope
}

func NewCaseBranch(name, typ *Ident, body Expr, span Span) *CaseBranch {
	return &CaseBranch{Name: name, Type: typ, Body: body, span: span}
}
func (b *CaseBranch) Span() Span { return b.span }

// CaseOf is `case expr of branch1; ...; branchN; esac`.
type CaseOf struct {
	exprBase
	Subject  Expr
	Branches []*CaseBranch
	span     Span
}

func NewCaseOf(subject Expr, branches []*CaseBranch, span Span) *CaseOf {
	return &CaseOf{Subject: subject, Branches: branches, span: span}
}
func (e *CaseOf) Span() Span { return e.span }

// FunctionCall is `obj[@Type].id(args)`: dispatch on an explicit receiver,
// optionally statically dispatched via a `@Type` cast.
type FunctionCall struct {
	exprBase
	Obj      Expr
	CastType *Ident // non-nil for `obj@Type.id(args)`
	Method   *Ident
	Args     []Expr
	span     Span
}

func NewFunctionCall(obj Expr, castType, method *Ident, args []Expr, span Span) *FunctionCall {
	return &FunctionCall{Obj: obj, CastType: castType, Method: method, Args: args, span: span}
}
func (e *FunctionCall) Span() Span { return e.span }

// MemberCall is `id(args)`: dispatch on the implicit self receiver.
type MemberCall struct {
	exprBase
	Method *Ident
	Args   []Expr
	span   Span
}

func NewMemberCall(method *Ident, args []Expr, span Span) *MemberCall {
	return &MemberCall{Method: method, Args: args, span: span}
}
func (e *MemberCall) Span() Span { return e.span }

// New is `new Type`.
type New struct {
	exprBase
	Type *Ident
	span Span
}

func NewNew(typ *Ident, span Span) *New {
	return &New{Type: typ, span: span}
}
func (e *New) Span() Span { return e.span }

// IsVoid is `isvoid expr`.
type IsVoid struct {
	exprBase
	Value Expr
	span  Span
}

func NewIsVoid(value Expr, span Span) *IsVoid {
	return &IsVoid{Value: value, span: span}
}
func (e *IsVoid) Span() Span { return e.span }

// Complement is `~expr`.
type Complement struct {
	exprBase
	Value Expr
	span  Span
}

func NewComplement(value Expr, span Span) *Complement {
	return &Complement{Value: value, span: span}
}
func (e *Complement) Span() Span { return e.span }

// Not is `not expr`.
type Not struct {
	exprBase
	Value Expr
	span  Span
}

func NewNot(value Expr, span Span) *Not {
	return &Not{Value: value, span: span}
}
func (e *Not) Span() Span { return e.span }

// Equal is `left = right`.
type Equal struct {
	exprBase
	Left, Right Expr
	span        Span
}

func NewEqual(left, right Expr, span Span) *Equal {
	return &Equal{Left: left, Right: right, span: span}
}
func (e *Equal) Span() Span { return e.span }

type ArithOp string

const (
	Add ArithOp = "+"
	Sub ArithOp = "-"
	Mul ArithOp = "*"
	Div ArithOp = "/"
)

// Arithmetic is a binary `+ - * /` expression; both operands must be Int.
type Arithmetic struct {
	exprBase
	Op          ArithOp
	Left, Right Expr
	Symbol      Span
	span        Span
}

func NewArithmetic(op ArithOp, left, right Expr, symbol, span Span) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right, Symbol: symbol, span: span}
}
func (e *Arithmetic) Span() Span { return e.span }

type CompareOp string

const (
	LessThan      CompareOp = "<"
	LessThanEqual CompareOp = "<="
)

// Comparison is a binary `< <=` expression; both operands must be Int.
type Comparison struct {
	exprBase
	Op          CompareOp
	Left, Right Expr
	Symbol      Span
	span        Span
}

func NewComparison(op CompareOp, left, right Expr, symbol, span Span) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right, Symbol: symbol, span: span}
}
func (e *Comparison) Span() Span { return e.span }

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Value int32
	span  Span
}

func NewIntLit(value int32, span Span) *IntLit {
	return &IntLit{Value: value, span: span}
}
func (e *IntLit) Span() Span { return e.span }

// StringLit is a string literal.
type StringLit struct {
	exprBase
	Value string
	span  Span
}

func NewStringLit(value string, span Span) *StringLit {
	return &StringLit{Value: value, span: span}
}
func (e *StringLit) Span() Span { return e.span }

// BoolLit is `true` or `false`.
type BoolLit struct {
	exprBase
	Value bool
	span  Span
}

func NewBoolLit(value bool, span Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}
func (e *BoolLit) Span() Span { return e.span }

// Id is an identifier used in expression position.
type Id struct {
	exprBase
	Name string
	span Span
}

func NewId(name string, span Span) *Id {
	return &Id{Name: name, span: span}
}
func (e *Id) Span() Span { return e.span }
