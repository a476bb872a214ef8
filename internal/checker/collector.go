package checker

import (
	"sort"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/type_system"
)

// CollectTypes is pass P1: register every user class name
// into a fresh Context, reject duplicates and invalid names by mangling
// them, detect cyclic inheritance, and sort prog.Classes so that every
// parent precedes its children.
func CollectTypes(prog *ast.Program, errs *ErrorList) *type_system.Context {
	ctx := type_system.NewContext()

	c := &collector{
		ctx:        ctx,
		errs:       errs,
		declByName: make(map[string]*ast.ClassDecl),
		parentName: make(map[string]string),
		level:      make(map[string]int),
	}

	for _, decl := range prog.Classes {
		c.registerClass(decl)
	}

	for name := range c.declByName {
		c.levelOf(name, nil)
	}

	sort.SliceStable(prog.Classes, func(i, j int) bool {
		return c.level[prog.Classes[i].Name.Name] < c.level[prog.Classes[j].Name.Name]
	})

	return ctx
}

type collector struct {
	ctx        *type_system.Context
	errs       *ErrorList
	declByName map[string]*ast.ClassDecl
	parentName map[string]string
	level      map[string]int
}

func isBuiltinName(name string) bool {
	for _, n := range type_system.BuiltinNames {
		if n == name {
			return true
		}
	}
	return false
}

// registerClass installs decl's name into the context, mangling it with a
// leading "1" (repeated until unique) on a duplicate or built-in name, and
// recording one diagnostic at the original identifier token either way.
func (c *collector) registerClass(decl *ast.ClassDecl) {
	if isBuiltinName(decl.Name.Name) {
		c.errs.Add(NewInvalidClassNameError(decl.Name.Name, decl.Name.Span()))
		c.mangleUntilUnique(decl)
	} else if _, err := c.ctx.CreateType(decl.Name.Name); err != nil {
		c.errs.Add(NewInvalidClassNameError(decl.Name.Name, decl.Name.Span()))
		c.mangleUntilUnique(decl)
	}

	name := decl.Name.Name
	c.declByName[name] = decl
	if decl.Parent != nil {
		c.parentName[name] = decl.Parent.Name
	} else {
		c.parentName[name] = type_system.ObjectName
	}
}

func (c *collector) mangleUntilUnique(decl *ast.ClassDecl) {
	for {
		decl.Name = ast.NewIdent("1"+decl.Name.Name, decl.Name.Span())
		if isBuiltinName(decl.Name.Name) {
			continue
		}
		if _, err := c.ctx.CreateType(decl.Name.Name); err == nil {
			return
		}
	}
}

// levelOf computes the inheritance depth of name, memoized, detecting
// cyclic heritage via the DFS path under construction. On a cycle it
// reroots every class in the cycle to Object and emits exactly one
// CyclicHeritageError, rather than rewriting only the single node that
// closed the cycle — leaving any cycle member parentless would crash
// every later pass that walks Parent chains.
func (c *collector) levelOf(name string, path []string) int {
	if lvl, ok := c.level[name]; ok {
		return lvl
	}

	for i, p := range path {
		if p == name {
			c.breakCycle(path[i:])
			return c.level[name]
		}
	}

	parent, ok := c.parentName[name]
	if !ok {
		// Not a user class: Object or another built-in root.
		return 0
	}

	lvl := c.levelOf(parent, append(path, name)) + 1
	c.level[name] = lvl
	return lvl
}

func (c *collector) breakCycle(cycle []string) {
	first := c.declByName[cycle[0]]
	c.errs.Add(NewCyclicHeritageError(first.Parent.Span()))
	for _, n := range cycle {
		decl := c.declByName[n]
		decl.Parent = nil
		c.parentName[n] = type_system.ObjectName
		c.level[n] = 1
	}
}
