package checker

import (
	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/type_system"
)

// Checker is pass P3: a full expression-level type check
// over every class body, threading a lexical Scope and the enclosing
// class ("current") through each visit so SELF_TYPE can be fixed and
// conformance checked at every construct.
//
// Dispatch is an exhaustive type switch over ast.Expr rather than a
// visitor with Accept methods: the AST is a closed tagged union (see the
// //sumtype:decl comments in internal/ast), so a switch gives the same
// exhaustiveness guarantee with one fewer indirection per node and no
// reliance on double dispatch.
type Checker struct {
	ctx  *type_system.Context
	errs *ErrorList
}

func NewChecker(ctx *type_system.Context, errs *ErrorList) *Checker {
	return &Checker{ctx: ctx, errs: errs}
}

// CheckProgram type-checks every class body in prog. Classes are
// independent of each other at this pass (P2 already resolved every
// signature), so order doesn't matter here.
func (c *Checker) CheckProgram(prog *ast.Program) {
	for _, decl := range prog.Classes {
		c.checkClass(decl)
	}
}

func (c *Checker) checkClass(decl *ast.ClassDecl) {
	if decl.ResolvedType == nil {
		return
	}
	current := decl.ResolvedType

	classScope := type_system.NewScope()
	classScope.Define("self", c.ctx.SelfType)
	for _, attr := range current.AllAttributes() {
		classScope.Define(attr.Name, attr.Type)
	}

	for _, feature := range decl.Features {
		switch f := feature.(type) {
		case *ast.AttrDecl:
			c.checkAttr(current, f, classScope)
		case *ast.FuncDecl:
			c.checkMethod(current, f, classScope)
		}
	}
}

func (c *Checker) checkAttr(current *type_system.Type, f *ast.AttrDecl, classScope *type_system.Scope) {
	f.Scope = classScope
	if f.Init == nil {
		return
	}
	initType := c.visit(f.Init, current, classScope)
	if f.ResolvedType.IsAutoType() {
		// Still AUTO_TYPE: Inferencer, which runs before this pass, did not
		// resolve it (or was skipped), so the initializer is not checked
		// against it.
		return
	}
	declared := type_system.FixedType(f.ResolvedType, current)
	actual := type_system.FixedType(initType, current)
	if !type_system.Conforms(actual, declared) {
		c.errs.Add(NewIncompatibleTypesError(initType.Name, f.ResolvedType.Name, f.Arrow))
	}
}

func (c *Checker) checkMethod(current *type_system.Type, f *ast.FuncDecl, classScope *type_system.Scope) {
	if f.ResolvedMethod == nil || f.Body == nil {
		return
	}
	methodScope := classScope.Child()
	for i, p := range f.Params {
		if i < len(f.ResolvedMethod.ParamTypes) {
			methodScope.Define(p.Name.Name, f.ResolvedMethod.ParamTypes[i])
		}
	}

	actual := c.visit(f.Body, current, methodScope)
	declared := f.ResolvedMethod.ReturnType

	if declared.IsAutoType() {
		return
	}

	if declared.IsSelfType() {
		// A method declared to return SELF_TYPE must actually return
		// SELF_TYPE, not merely something that conforms to the current
		// class: conformance alone would let a subclass instance silently
		// widen to the defining class, breaking the "returns the type of
		// whatever self actually is" contract SELF_TYPE exists for.
		if !actual.IsSelfType() {
			c.errs.Add(NewIncompatibleTypesError(actual.Name, type_system.SelfTypeName, f.Body.Span()))
		}
		return
	}

	if !type_system.Conforms(type_system.FixedType(actual, current), declared) {
		c.errs.Add(NewIncompatibleTypesError(actual.Name, declared.Name, f.Body.Span()))
	}
}

// visit type-checks node, records its result on node via SetComputedType,
// and returns that result so callers can chain conformance checks without
// re-reading the node.
func (c *Checker) visit(node ast.Expr, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	t := c.visitSwitch(node, current, scope)
	node.SetComputedType(t)
	return t
}

func (c *Checker) visitSwitch(node ast.Expr, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	switch n := node.(type) {
	case *ast.Assign:
		return c.visitAssign(n, current, scope)
	case *ast.If:
		return c.visitIf(n, current, scope)
	case *ast.While:
		return c.visitWhile(n, current, scope)
	case *ast.Block:
		return c.visitBlock(n, current, scope)
	case *ast.LetIn:
		return c.visitLetIn(n, current, scope)
	case *ast.CaseOf:
		return c.visitCaseOf(n, current, scope)
	case *ast.FunctionCall:
		return c.visitFunctionCall(n, current, scope)
	case *ast.MemberCall:
		return c.visitMemberCall(n, current, scope)
	case *ast.New:
		return c.visitNew(n)
	case *ast.IsVoid:
		c.visit(n.Value, current, scope)
		return c.ctx.BoolType
	case *ast.Complement:
		return c.visitComplement(n, current, scope)
	case *ast.Not:
		return c.visitNot(n, current, scope)
	case *ast.Equal:
		return c.visitEqual(n, current, scope)
	case *ast.Arithmetic:
		return c.visitArithmetic(n, current, scope)
	case *ast.Comparison:
		return c.visitComparison(n, current, scope)
	case *ast.IntLit:
		return c.ctx.IntType
	case *ast.StringLit:
		return c.ctx.StringType
	case *ast.BoolLit:
		return c.ctx.BoolType
	case *ast.Id:
		return c.visitId(n, scope)
	default:
		return c.ctx.ErrorType
	}
}

func (c *Checker) visitAssign(n *ast.Assign, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	valueType := c.visit(n.Value, current, scope)

	if n.Name.Name == "self" {
		c.errs.Add(NewSelfIsReadonlyError(n.Name.Span()))
		return c.ctx.ErrorType
	}

	declared, ok := scope.Find(n.Name.Name)
	if !ok {
		c.errs.Add(NewVariableNotDefinedError(n.Name.Name, n.Name.Span()))
		return c.ctx.ErrorType
	}

	if declared.IsAutoType() {
		return valueType
	}

	if !type_system.Conforms(type_system.FixedType(valueType, current), type_system.FixedType(declared, current)) {
		c.errs.Add(NewIncompatibleTypesError(valueType.Name, declared.Name, n.Span()))
		return c.ctx.ErrorType
	}
	return valueType
}

func (c *Checker) visitIf(n *ast.If, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	condType := c.visit(n.Cond, current, scope)
	if condType != c.ctx.BoolType {
		c.errs.Add(NewConditionNotBoolError("if", condType.Name, n.Token))
	}

	thenType := c.visit(n.Then, current, scope)
	var elseType *type_system.Type
	if n.Else != nil {
		elseType = c.visit(n.Else, current, scope)
	} else {
		elseType = c.ctx.VoidType
	}

	if thenType.IsSelfType() && elseType.IsSelfType() {
		return thenType
	}
	return type_system.LCA([]*type_system.Type{
		type_system.FixedType(thenType, current),
		type_system.FixedType(elseType, current),
	}, c.ctx)
}

func (c *Checker) visitWhile(n *ast.While, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	condType := c.visit(n.Cond, current, scope)
	if condType != c.ctx.BoolType {
		c.errs.Add(NewConditionNotBoolError("while", condType.Name, n.Token))
	}
	c.visit(n.Body, current, scope)
	return c.ctx.VoidType
}

func (c *Checker) visitBlock(n *ast.Block, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	result := c.ctx.VoidType
	for _, e := range n.Exprs {
		result = c.visit(e, current, scope)
	}
	return result
}

func (c *Checker) resolveAnnotation(id *ast.Ident, current *type_system.Type) *type_system.Type {
	if id.Name == type_system.SelfTypeName {
		return c.ctx.SelfType
	}
	t, err := c.ctx.GetType(id.Name)
	if err != nil {
		c.errs.Add(NewUnknownTypeError(id.Name, id.Span()))
		return c.ctx.ErrorType
	}
	return t
}

func (c *Checker) visitLetIn(n *ast.LetIn, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	cur := scope
	for _, b := range n.Bindings {
		// Inferencer may already have narrowed this binding's resolved type
		// past its raw AUTO_TYPE annotation; re-deriving from b.Type here
		// would silently undo that.
		typ := b.ResolvedType
		if typ == nil {
			typ = c.resolveAnnotation(b.Type, current)
			b.ResolvedType = typ
		}

		if b.Init != nil {
			initType := c.visit(b.Init, current, cur)
			if !typ.IsAutoType() && !type_system.Conforms(type_system.FixedType(initType, current), type_system.FixedType(typ, current)) {
				c.errs.Add(NewIncompatibleTypesError(initType.Name, typ.Name, b.Arrow))
			}
		}

		cur = cur.Child()
		cur.Define(b.Name.Name, typ)
	}
	n.Scope = cur
	return c.visit(n.Body, current, cur)
}

func (c *Checker) visitCaseOf(n *ast.CaseOf, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	c.visit(n.Subject, current, scope)

	if len(n.Branches) == 0 {
		return c.ctx.ErrorType
	}

	var branchTypes []*type_system.Type
	allSelf := true
	for _, br := range n.Branches {
		typ := br.ResolvedType
		if typ == nil {
			typ = c.resolveAnnotation(br.Type, current)
			br.ResolvedType = typ
		}

		branchScope := scope.Child()
		branchScope.Define(br.Name.Name, typ)
		br.Scope = branchScope

		bodyType := c.visit(br.Body, current, branchScope)
		if !bodyType.IsSelfType() {
			allSelf = false
		}
		branchTypes = append(branchTypes, type_system.FixedType(bodyType, current))
	}

	if allSelf {
		return c.ctx.SelfType
	}
	return type_system.LCA(branchTypes, c.ctx)
}

func (c *Checker) visitFunctionCall(n *ast.FunctionCall, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	objType := c.visit(n.Obj, current, scope)

	lookupType := type_system.FixedType(objType, current)
	if n.CastType != nil {
		castType := c.resolveAnnotation(n.CastType, current)
		if castType.IsSelfType() {
			c.errs.Add(NewInvalidCastError("static dispatch cannot target SELF_TYPE", n.CastType.Span()))
			return c.ctx.ErrorType
		}
		if !type_system.Conforms(lookupType, castType) {
			c.errs.Add(NewIncompatibleTypesError(objType.Name, castType.Name, n.CastType.Span()))
			return c.ctx.ErrorType
		}
		lookupType = castType
	}

	return c.dispatch(lookupType, objType, n.Method, n.Args, current, scope)
}

func (c *Checker) visitMemberCall(n *ast.MemberCall, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	return c.dispatch(current, c.ctx.SelfType, n.Method, n.Args, current, scope)
}

// dispatch resolves method on lookupType and checks the call's arguments
// against it. objType is the statically-known type of the receiver
// expression (possibly SELF_TYPE itself), used only to resolve a
// SELF_TYPE-returning method's result.
func (c *Checker) dispatch(lookupType, objType *type_system.Type, methodID *ast.Ident, args []ast.Expr, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	method, owner := lookupType.GetMethod(methodID.Name)
	if method == nil {
		c.errs.Add(NewUndefinedMethodError(methodID.Name, lookupType.Name, methodID.Span()))
		for _, a := range args {
			c.visit(a, current, scope)
		}
		return c.ctx.ErrorType
	}

	if len(args) != len(method.ParamTypes) {
		c.errs.Add(NewArityMismatchError(methodID.Name, owner.Name, len(method.ParamTypes), len(args), methodID.Span()))
	}

	for i, a := range args {
		argType := c.visit(a, current, scope)
		if i >= len(method.ParamTypes) {
			continue
		}
		paramType := method.ParamTypes[i]
		if paramType.IsAutoType() || argType.IsAutoType() {
			continue
		}
		if !type_system.Conforms(type_system.FixedType(argType, current), type_system.FixedType(paramType, current)) {
			c.errs.Add(NewIncompatibleTypesError(argType.Name, paramType.Name, a.Span()))
		}
	}

	if method.ReturnType.IsSelfType() {
		return objType
	}
	return method.ReturnType
}

func (c *Checker) visitNew(n *ast.New) *type_system.Type {
	if n.Type.Name == type_system.SelfTypeName {
		return c.ctx.SelfType
	}
	t, err := c.ctx.GetType(n.Type.Name)
	if err != nil {
		c.errs.Add(NewUnknownTypeError(n.Type.Name, n.Type.Span()))
		return c.ctx.ErrorType
	}
	// Sealed only blocks inheritance, not instantiation: `new Int`,
	// `new String`, and `new Bool` are all legal.
	return t
}

func (c *Checker) visitComplement(n *ast.Complement, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	valType := c.visit(n.Value, current, scope)
	if valType != c.ctx.IntType && !valType.IsAutoType() {
		c.errs.Add(NewComplementRequiresIntError(n.Span()))
		return c.ctx.ErrorType
	}
	return c.ctx.IntType
}

func (c *Checker) visitNot(n *ast.Not, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	valType := c.visit(n.Value, current, scope)
	if valType != c.ctx.BoolType && !valType.IsAutoType() {
		c.errs.Add(NewNotRequiresBoolError(n.Span()))
		return c.ctx.ErrorType
	}
	return c.ctx.BoolType
}

func (c *Checker) visitEqual(n *ast.Equal, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	leftType := c.visit(n.Left, current, scope)
	rightType := c.visit(n.Right, current, scope)

	leftFixed := type_system.FixedType(leftType, current)
	rightFixed := type_system.FixedType(rightType, current)
	if isPrimitive(leftFixed, c.ctx) || isPrimitive(rightFixed, c.ctx) {
		if leftFixed != rightFixed {
			c.errs.Add(NewInvalidOperationError(leftType.Name, rightType.Name, n.Span()))
		}
	}
	// Equality between two reference types is always legal (it compares
	// object identity at runtime), so = always types as Bool regardless.
	return c.ctx.BoolType
}

func isPrimitive(t *type_system.Type, ctx *type_system.Context) bool {
	return t == ctx.IntType || t == ctx.StringType || t == ctx.BoolType
}

func (c *Checker) visitArithmetic(n *ast.Arithmetic, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	leftType := c.visit(n.Left, current, scope)
	rightType := c.visit(n.Right, current, scope)
	if (leftType != c.ctx.IntType && !leftType.IsAutoType()) || (rightType != c.ctx.IntType && !rightType.IsAutoType()) {
		c.errs.Add(NewInvalidOperationError(leftType.Name, rightType.Name, n.Symbol))
		return c.ctx.ErrorType
	}
	return c.ctx.IntType
}

func (c *Checker) visitComparison(n *ast.Comparison, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	leftType := c.visit(n.Left, current, scope)
	rightType := c.visit(n.Right, current, scope)
	if (leftType != c.ctx.IntType && !leftType.IsAutoType()) || (rightType != c.ctx.IntType && !rightType.IsAutoType()) {
		c.errs.Add(NewInvalidOperationError(leftType.Name, rightType.Name, n.Symbol))
		return c.ctx.ErrorType
	}
	return c.ctx.BoolType
}

func (c *Checker) visitId(n *ast.Id, scope *type_system.Scope) *type_system.Type {
	if n.Name == "self" {
		return c.ctx.SelfType
	}
	typ, ok := scope.Find(n.Name)
	if !ok {
		c.errs.Add(NewVariableNotDefinedError(n.Name, n.Span()))
		return c.ctx.ErrorType
	}
	return typ
}
