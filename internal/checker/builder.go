package checker

import (
	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/type_system"
)

// BuildTypes is pass P2. prog.Classes must already be sorted
// parent-first (CollectTypes does this) so that by the time a class's
// features are built, its parent's Type is fully wired: parent pointer set,
// attributes and methods installed, ready for DefineMethod's
// override-signature check and AllAttributes' inherited walk.
func BuildTypes(prog *ast.Program, ctx *type_system.Context, errs *ErrorList) {
	for _, decl := range prog.Classes {
		buildClass(decl, ctx, errs)
	}
	verifyMain(prog, ctx, errs)
}

func buildClass(decl *ast.ClassDecl, ctx *type_system.Context, errs *ErrorList) {
	t, err := ctx.GetType(decl.Name.Name)
	if err != nil {
		// registered by CollectTypes; absence means a prior pass bug.
		return
	}
	decl.ResolvedType = t

	resolveParent(t, decl, ctx, errs)

	for _, feature := range decl.Features {
		switch f := feature.(type) {
		case *ast.AttrDecl:
			buildAttr(t, f, ctx, errs, decl.Name.Name)
		case *ast.FuncDecl:
			buildMethod(t, f, ctx, errs, decl.Name.Name)
		}
	}
}

func resolveParent(t *type_system.Type, decl *ast.ClassDecl, ctx *type_system.Context, errs *ErrorList) {
	if decl.Parent == nil {
		t.SetParent(ctx.ObjectType)
		return
	}

	parentName := decl.Parent.Name
	pt, perr := ctx.GetType(parentName)
	switch {
	case perr != nil:
		errs.Add(NewUnknownTypeError(parentName, decl.Parent.Span()))
		pt = ctx.ObjectType
	case pt.Sealed:
		errs.Add(NewInvalidInheritanceError(parentName, decl.Parent.Span()))
		pt = ctx.ObjectType
	}
	t.SetParent(pt)
}

// resolveTypeName looks a type annotation up in ctx, substituting ErrorType
// and recording UnknownTypeError when it doesn't resolve, so a single bad
// annotation never halts the pass — later passes always get something to
// work with.
func resolveTypeName(name string, ctx *type_system.Context, span ast.Span, errs *ErrorList) *type_system.Type {
	t, err := ctx.GetType(name)
	if err != nil {
		errs.Add(NewUnknownTypeError(name, span))
		return ctx.ErrorType
	}
	return t
}

func buildAttr(t *type_system.Type, f *ast.AttrDecl, ctx *type_system.Context, errs *ErrorList, className string) {
	typ := resolveTypeName(f.Type.Name, ctx, f.Type.Span(), errs)
	f.ResolvedType = typ
	if err := t.DefineAttribute(f.Name.Name, typ); err != nil {
		errs.Add(NewDuplicateAttributeError(f.Name.Name, className, f.Name.Span()))
	}
}

func buildMethod(t *type_system.Type, f *ast.FuncDecl, ctx *type_system.Context, errs *ErrorList, className string) {
	paramNames := make([]string, len(f.Params))
	paramTypes := make([]*type_system.Type, len(f.Params))

	seen := make(map[string]bool, len(f.Params))
	for i, p := range f.Params {
		if seen[p.Name.Name] {
			errs.Add(NewLocalAlreadyDefinedError(p.Name.Name, f.Name.Name, p.Name.Span()))
		}
		seen[p.Name.Name] = true
		paramNames[i] = p.Name.Name
		paramTypes[i] = resolveTypeName(p.Type.Name, ctx, p.Type.Span(), errs)
	}

	ret := resolveTypeName(f.ReturnType.Name, ctx, f.ReturnType.Span(), errs)

	if err := t.DefineMethod(f.Name.Name, paramNames, paramTypes, ret); err != nil {
		// Duplicate formal parameters were already reported above with their
		// real name and location; only a signature clash is new information.
		if err.Error() == "wrong_signature" {
			errs.Add(NewWrongSignatureError(f.Name.Name, className, f.Name.Span()))
		}
	}

	method, _ := t.GetMethod(f.Name.Name)
	f.ResolvedMethod = method
}

// verifyMain enforces the whole-program entry point contract: a class
// named Main exists, and it has a zero-argument method named main
// (inherited or its own), checked from a single call site at the end of
// the pass rather than embedded per-class.
func verifyMain(prog *ast.Program, ctx *type_system.Context, errs *ErrorList) {
	mainType, err := ctx.GetType("Main")
	if err != nil {
		errs.Add(NewNoMainClassError(prog.Span()))
		return
	}

	method, _ := mainType.GetMethod("main")
	if method == nil {
		errs.Add(NewMissingMainMethodError(prog.Span()))
		return
	}

	if len(method.ParamNames) != 0 {
		errs.Add(NewMainTakesArgsError(prog.Span()))
	}
}
