package checker

import (
	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/type_system"
)

// Inferencer is pass P4: it resolves every AUTO_TYPE slot — attribute,
// let-binding, case branch, method return — that TypeBuilder left in place,
// propagating constraints both downward (an initializer's computed type
// narrows the slot it initializes) and from point of use (an AUTO_TYPE
// local read as an arithmetic operand is pinned to Int). It carries no
// ErrorList: Checker is the sole diagnostic-emitting pass, run once after
// inference has resolved every AUTO_TYPE slot it can (see Analyze).
// Inferencer's own visit never errors, only narrows.
type Inferencer struct {
	ctx     *type_system.Context
	changed bool
}

func NewInferencer(ctx *type_system.Context) *Inferencer {
	return &Inferencer{ctx: ctx}
}

// Run iterates class bodies to a fixed point — narrowing may unlock
// further narrowing elsewhere (a let bound from an AUTO_TYPE attribute,
// for instance) — bounded by maxIterations, then defaults every slot still
// unresolved to Object (the fallback for dead AUTO_TYPE code that nothing
// ever narrows).
func (inf *Inferencer) Run(prog *ast.Program, maxIterations int) {
	if maxIterations <= 0 {
		maxIterations = 10
	}
	for i := 0; i < maxIterations; i++ {
		inf.changed = false
		for _, decl := range prog.Classes {
			inf.inferClass(decl)
		}
		if !inf.changed {
			break
		}
	}
	inf.finalize(prog)
}

func (inf *Inferencer) inferClass(decl *ast.ClassDecl) {
	if decl.ResolvedType == nil {
		return
	}
	current := decl.ResolvedType

	classScope := type_system.NewScope()
	classScope.Define("self", inf.ctx.SelfType)
	for _, attr := range current.AllAttributes() {
		classScope.Define(attr.Name, attr.Type)
	}

	for _, feature := range decl.Features {
		switch f := feature.(type) {
		case *ast.AttrDecl:
			inf.inferAttr(current, f, classScope)
		case *ast.FuncDecl:
			inf.inferMethod(current, f, classScope)
		}
	}

	// A method elsewhere in the class may have narrowed this attribute's
	// scope binding through plain use without an initializer to drive
	// inferAttr; fold that back into the canonical Attribute record.
	for _, a := range current.Attributes {
		if a.Type.IsAutoType() {
			if bound, ok := classScope.Find(a.Name); ok && !bound.IsAutoType() {
				a.Type = bound
				inf.changed = true
			}
		}
	}
}

func (inf *Inferencer) inferAttr(current *type_system.Type, f *ast.AttrDecl, classScope *type_system.Scope) {
	f.Scope = classScope
	if f.Init == nil {
		return
	}
	actual := inf.visit(f.Init, current, classScope)
	if f.ResolvedType.IsAutoType() && !actual.IsAutoType() {
		for _, a := range current.Attributes {
			if a.Name == f.Name.Name {
				a.Type = actual
			}
		}
		f.ResolvedType = actual
		classScope.SetType(f.Name.Name, actual)
		inf.changed = true
	}
}

func (inf *Inferencer) inferMethod(current *type_system.Type, f *ast.FuncDecl, classScope *type_system.Scope) {
	if f.ResolvedMethod == nil || f.Body == nil {
		return
	}
	methodScope := classScope.Child()
	for i, p := range f.Params {
		if i < len(f.ResolvedMethod.ParamTypes) {
			methodScope.Define(p.Name.Name, f.ResolvedMethod.ParamTypes[i])
		}
	}

	actual := inf.visit(f.Body, current, methodScope)
	if f.ResolvedMethod.ReturnType.IsAutoType() && !actual.IsAutoType() {
		// Narrowing the shared *Method value is deliberate: every call site
		// dispatching to this method should see its inferred return type,
		// not just the declaring class's own view of it — one inferred
		// signature per method, not a fresh one per call site.
		f.ResolvedMethod.ReturnType = actual
		inf.changed = true
	}

	// A param's body use (not just a call-site argument) can also narrow
	// it: e.g. `f(x : AUTO_TYPE) : Int { x + 1 }` pins x to Int purely from
	// how the body uses it, with no caller having been visited yet.
	for i, p := range f.Params {
		if i >= len(f.ResolvedMethod.ParamTypes) {
			continue
		}
		if !f.ResolvedMethod.ParamTypes[i].IsAutoType() {
			continue
		}
		if narrowed, ok := methodScope.Find(p.Name.Name); ok && !narrowed.IsAutoType() {
			f.ResolvedMethod.ParamTypes[i] = narrowed
			inf.changed = true
		}
	}
}

func (inf *Inferencer) visit(node ast.Expr, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	t := inf.visitSwitch(node, current, scope)
	node.SetComputedType(t)
	return t
}

func (inf *Inferencer) visitSwitch(node ast.Expr, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	switch n := node.(type) {
	case *ast.Assign:
		return inf.visitAssign(n, current, scope)
	case *ast.If:
		return inf.visitIf(n, current, scope)
	case *ast.While:
		inf.visit(n.Cond, current, scope)
		inf.visit(n.Body, current, scope)
		return inf.ctx.VoidType
	case *ast.Block:
		result := inf.ctx.VoidType
		for _, e := range n.Exprs {
			result = inf.visit(e, current, scope)
		}
		return result
	case *ast.LetIn:
		return inf.visitLetIn(n, current, scope)
	case *ast.CaseOf:
		return inf.visitCaseOf(n, current, scope)
	case *ast.FunctionCall:
		return inf.visitFunctionCall(n, current, scope)
	case *ast.MemberCall:
		return inf.visitMemberCall(n, current, scope)
	case *ast.New:
		return inf.visitNew(n)
	case *ast.IsVoid:
		inf.visit(n.Value, current, scope)
		return inf.ctx.BoolType
	case *ast.Complement:
		inf.requireUnary(n.Value, current, scope, inf.ctx.IntType)
		return inf.ctx.IntType
	case *ast.Not:
		inf.requireUnary(n.Value, current, scope, inf.ctx.BoolType)
		return inf.ctx.BoolType
	case *ast.Equal:
		inf.visit(n.Left, current, scope)
		inf.visit(n.Right, current, scope)
		return inf.ctx.BoolType
	case *ast.Arithmetic:
		inf.requireUnary(n.Left, current, scope, inf.ctx.IntType)
		inf.requireUnary(n.Right, current, scope, inf.ctx.IntType)
		return inf.ctx.IntType
	case *ast.Comparison:
		inf.requireUnary(n.Left, current, scope, inf.ctx.IntType)
		inf.requireUnary(n.Right, current, scope, inf.ctx.IntType)
		return inf.ctx.BoolType
	case *ast.IntLit:
		return inf.ctx.IntType
	case *ast.StringLit:
		return inf.ctx.StringType
	case *ast.BoolLit:
		return inf.ctx.BoolType
	case *ast.Id:
		if n.Name == "self" {
			return inf.ctx.SelfType
		}
		typ, ok := scope.Find(n.Name)
		if !ok {
			return inf.ctx.ErrorType
		}
		return typ
	default:
		return inf.ctx.ErrorType
	}
}

func (inf *Inferencer) visitAssign(n *ast.Assign, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	valueType := inf.visit(n.Value, current, scope)
	if n.Name.Name != "self" {
		if declared, ok := scope.Find(n.Name.Name); ok && declared.IsAutoType() && !valueType.IsAutoType() {
			scope.SetType(n.Name.Name, valueType)
			inf.changed = true
		}
	}
	return valueType
}

func (inf *Inferencer) visitIf(n *ast.If, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	inf.visit(n.Cond, current, scope)
	thenType := inf.visit(n.Then, current, scope)
	var elseType *type_system.Type
	if n.Else != nil {
		elseType = inf.visit(n.Else, current, scope)
	} else {
		elseType = inf.ctx.VoidType
	}
	if thenType.IsAutoType() || elseType.IsAutoType() {
		return inf.ctx.AutoType
	}
	if thenType.IsSelfType() && elseType.IsSelfType() {
		return thenType
	}
	return type_system.LCA([]*type_system.Type{
		type_system.FixedType(thenType, current),
		type_system.FixedType(elseType, current),
	}, inf.ctx)
}

// requireUnary visits e and, if it resolved to AUTO_TYPE because it names
// a not-yet-inferred local, narrows that binding to want — the type its
// use as an operand demands — and reports the change.
func (inf *Inferencer) requireUnary(e ast.Expr, current *type_system.Type, scope *type_system.Scope, want *type_system.Type) *type_system.Type {
	actual := inf.visit(e, current, scope)
	if !actual.IsAutoType() {
		return actual
	}
	if id, ok := e.(*ast.Id); ok && id.Name != "self" {
		if scope.SetType(id.Name, want) {
			inf.changed = true
			id.SetComputedType(want)
			return want
		}
	}
	return actual
}

func (inf *Inferencer) resolveAnnotation(id *ast.Ident) *type_system.Type {
	if id.Name == type_system.SelfTypeName {
		return inf.ctx.SelfType
	}
	t, err := inf.ctx.GetType(id.Name)
	if err != nil {
		return inf.ctx.ErrorType
	}
	return t
}

func (inf *Inferencer) visitLetIn(n *ast.LetIn, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	cur := scope
	frames := make([]*type_system.Scope, len(n.Bindings))
	for i, b := range n.Bindings {
		typ := b.ResolvedType
		if typ == nil {
			typ = inf.resolveAnnotation(b.Type)
			b.ResolvedType = typ
		}
		if b.Init != nil {
			initType := inf.visit(b.Init, current, cur)
			if typ.IsAutoType() && !initType.IsAutoType() {
				typ = initType
				b.ResolvedType = typ
				inf.changed = true
			}
		}
		cur = cur.Child()
		cur.Define(b.Name.Name, typ)
		frames[i] = cur
	}
	n.Scope = cur
	bodyType := inf.visit(n.Body, current, cur)

	for i, b := range n.Bindings {
		if !b.ResolvedType.IsAutoType() {
			continue
		}
		if narrowed, ok := frames[i].Find(b.Name.Name); ok && !narrowed.IsAutoType() {
			b.ResolvedType = narrowed
			inf.changed = true
		}
	}
	return bodyType
}

func (inf *Inferencer) visitCaseOf(n *ast.CaseOf, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	inf.visit(n.Subject, current, scope)
	if len(n.Branches) == 0 {
		return inf.ctx.ErrorType
	}

	var branchTypes []*type_system.Type
	allSelf := true
	anyAuto := false

	for _, br := range n.Branches {
		if br.ResolvedType == nil {
			br.ResolvedType = inf.resolveAnnotation(br.Type)
		}
		branchScope := scope.Child()
		branchScope.Define(br.Name.Name, br.ResolvedType)
		br.Scope = branchScope

		bodyType := inf.visit(br.Body, current, branchScope)

		if br.ResolvedType.IsAutoType() {
			if narrowed, ok := branchScope.Find(br.Name.Name); ok && !narrowed.IsAutoType() {
				br.ResolvedType = narrowed
				inf.changed = true
			}
		}
		if bodyType.IsAutoType() {
			anyAuto = true
		}
		if !bodyType.IsSelfType() {
			allSelf = false
		}
		branchTypes = append(branchTypes, type_system.FixedType(bodyType, current))
	}

	if anyAuto {
		return inf.ctx.AutoType
	}
	if allSelf {
		return inf.ctx.SelfType
	}
	return type_system.LCA(branchTypes, inf.ctx)
}

func (inf *Inferencer) visitFunctionCall(n *ast.FunctionCall, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	objType := inf.visit(n.Obj, current, scope)
	lookupType := type_system.FixedType(objType, current)

	if n.CastType != nil {
		if n.CastType.Name == type_system.SelfTypeName {
			return inf.ctx.ErrorType
		}
		if castType, err := inf.ctx.GetType(n.CastType.Name); err == nil {
			lookupType = castType
		}
	}
	return inf.dispatch(lookupType, objType, n.Method, n.Args, current, scope)
}

func (inf *Inferencer) visitMemberCall(n *ast.MemberCall, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	return inf.dispatch(current, inf.ctx.SelfType, n.Method, n.Args, current, scope)
}

func (inf *Inferencer) dispatch(lookupType, objType *type_system.Type, methodID *ast.Ident, args []ast.Expr, current *type_system.Type, scope *type_system.Scope) *type_system.Type {
	method, _ := lookupType.GetMethod(methodID.Name)
	if method == nil {
		for _, a := range args {
			inf.visit(a, current, scope)
		}
		return inf.ctx.ErrorType
	}

	for i, a := range args {
		if i >= len(method.ParamTypes) {
			inf.visit(a, current, scope)
			continue
		}
		paramType := method.ParamTypes[i]
		if paramType.IsAutoType() {
			// An AUTO_TYPE parameter is narrowed from the call site itself:
			// a concrete argument pins the parameter's type for every call,
			// not just this one (same one-signature-per-method rule as
			// inferMethod's return-type narrowing).
			argType := inf.visit(a, current, scope)
			if !argType.IsAutoType() {
				method.ParamTypes[i] = argType
				inf.changed = true
			}
			continue
		}
		inf.requireUnary(a, current, scope, paramType)
	}

	if method.ReturnType.IsAutoType() {
		return inf.ctx.AutoType
	}
	if method.ReturnType.IsSelfType() {
		return objType
	}
	return method.ReturnType
}

func (inf *Inferencer) visitNew(n *ast.New) *type_system.Type {
	if n.Type.Name == type_system.SelfTypeName {
		return inf.ctx.SelfType
	}
	t, err := inf.ctx.GetType(n.Type.Name)
	if err != nil {
		return inf.ctx.ErrorType
	}
	return t
}

// finalize defaults every AUTO_TYPE slot the fixed point left untouched —
// dead code, or a binding genuinely never constrained by any expression —
// to Object.
func (inf *Inferencer) finalize(prog *ast.Program) {
	for _, decl := range prog.Classes {
		if decl.ResolvedType == nil {
			continue
		}
		current := decl.ResolvedType
		for _, a := range current.Attributes {
			if a.Type.IsAutoType() {
				a.Type = inf.ctx.ObjectType
			}
		}
		for _, feature := range decl.Features {
			switch f := feature.(type) {
			case *ast.AttrDecl:
				if f.ResolvedType.IsAutoType() {
					f.ResolvedType = inf.ctx.ObjectType
				}
				if f.Init != nil {
					inf.finalizeExpr(f.Init)
				}
			case *ast.FuncDecl:
				if f.ResolvedMethod != nil {
					if f.ResolvedMethod.ReturnType.IsAutoType() {
						f.ResolvedMethod.ReturnType = inf.ctx.ObjectType
					}
					for i, pt := range f.ResolvedMethod.ParamTypes {
						if pt.IsAutoType() {
							f.ResolvedMethod.ParamTypes[i] = inf.ctx.ObjectType
						}
					}
				}
				if f.Body != nil {
					inf.finalizeExpr(f.Body)
				}
			}
		}
	}
}

func (inf *Inferencer) finalizeExpr(node ast.Expr) {
	switch n := node.(type) {
	case *ast.Assign:
		inf.finalizeExpr(n.Value)
	case *ast.If:
		inf.finalizeExpr(n.Cond)
		inf.finalizeExpr(n.Then)
		if n.Else != nil {
			inf.finalizeExpr(n.Else)
		}
	case *ast.While:
		inf.finalizeExpr(n.Cond)
		inf.finalizeExpr(n.Body)
	case *ast.Block:
		for _, e := range n.Exprs {
			inf.finalizeExpr(e)
		}
	case *ast.LetIn:
		for _, b := range n.Bindings {
			if b.ResolvedType.IsAutoType() {
				b.ResolvedType = inf.ctx.ObjectType
			}
			if b.Init != nil {
				inf.finalizeExpr(b.Init)
			}
		}
		inf.finalizeExpr(n.Body)
	case *ast.CaseOf:
		inf.finalizeExpr(n.Subject)
		for _, br := range n.Branches {
			if br.ResolvedType.IsAutoType() {
				br.ResolvedType = inf.ctx.ObjectType
			}
			inf.finalizeExpr(br.Body)
		}
	case *ast.FunctionCall:
		inf.finalizeExpr(n.Obj)
		for _, a := range n.Args {
			inf.finalizeExpr(a)
		}
	case *ast.MemberCall:
		for _, a := range n.Args {
			inf.finalizeExpr(a)
		}
	case *ast.IsVoid:
		inf.finalizeExpr(n.Value)
	case *ast.Complement:
		inf.finalizeExpr(n.Value)
	case *ast.Not:
		inf.finalizeExpr(n.Value)
	case *ast.Equal:
		inf.finalizeExpr(n.Left)
		inf.finalizeExpr(n.Right)
	case *ast.Arithmetic:
		inf.finalizeExpr(n.Left)
		inf.finalizeExpr(n.Right)
	case *ast.Comparison:
		inf.finalizeExpr(n.Left)
		inf.finalizeExpr(n.Right)
	}
}
