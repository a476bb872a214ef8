// Package type_system implements COOL's data model: named
// types organized into a single-inheritance forest rooted at Object, the
// conformance lattice, least-common-ancestor computation, and the lexical
// Scope tree passes thread through a program.
package type_system

import "fmt"

// Built-in and sentinel type names. The sealed ones (inheriting from them is
// always an error) are listed in sealedNames.
const (
	IntName      = "Int"
	StringName   = "String"
	BoolName     = "Bool"
	ObjectName   = "Object"
	IOName       = "IO"
	SelfTypeName = "SELF_TYPE"
	AutoTypeName = "AUTO_TYPE"
	ErrorName    = "<error>"
	VoidName     = "<void>"
)

var sealedNames = map[string]bool{
	IntName:      true,
	StringName:   true,
	BoolName:     true,
	SelfTypeName: true,
	AutoTypeName: true,
}

// BuiltinNames lists every type the analyzer installs before looking at
// user declarations; TypeCollector rejects any user class using one of
// these names.
var BuiltinNames = []string{IntName, StringName, BoolName, ObjectName, IOName, SelfTypeName, AutoTypeName}

// Attribute is a (name, type) pair declared on a class.
type Attribute struct {
	Name string
	Type *Type
}

// Method is a (name, ordered params, return type) signature.
type Method struct {
	Name        string
	ParamNames  []string
	ParamTypes  []*Type
	ReturnType  *Type
	DefiningType *Type // the class that introduced or most recently overrode this signature
}

// SameSignature reports whether two methods have identical arity and
// parameter/return types by name. Overriding a parent method requires this
// (overriding a parent method requires this).
func (m *Method) SameSignature(other *Method) bool {
	if len(m.ParamTypes) != len(other.ParamTypes) {
		return false
	}
	for i := range m.ParamTypes {
		if m.ParamTypes[i].Name != other.ParamTypes[i].Name {
			return false
		}
	}
	return m.ReturnType.Name == other.ReturnType.Name
}

// Type is a named entity in the inheritance forest: a user class or one of
// the built-ins. Exactly one Type exists per name within a
// Context.
type Type struct {
	Name       string
	Parent     *Type
	Attributes []*Attribute
	methods    map[string]*Method
	Sealed     bool
	// Builtin marks Object, Int, String, Bool, IO, SELF_TYPE, AUTO_TYPE so
	// diagnostics and the collector can special-case them without string
	// comparisons scattered around.
	Builtin bool
}

func newType(name string) *Type {
	return &Type{
		Name:    name,
		methods: make(map[string]*Method),
		Sealed:  sealedNames[name],
	}
}

func (t *Type) SetParent(parent *Type) { t.Parent = parent }

// DefineAttribute installs an attribute on t. Redeclaring a name already
// present on t itself (not on an ancestor) is rejected; duplicates are
// only checked "in the same class."
func (t *Type) DefineAttribute(name string, typ *Type) error {
	for _, a := range t.Attributes {
		if a.Name == name {
			return fmt.Errorf("attribute %q is already defined in %q", name, t.Name)
		}
	}
	t.Attributes = append(t.Attributes, &Attribute{Name: name, Type: typ})
	return nil
}

// AllAttributes returns every attribute visible on t, inherited ones first,
// in parent-first declaration order.
func (t *Type) AllAttributes() []*Attribute {
	var chain []*Type
	for c := t; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	var out []*Attribute
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].Attributes...)
	}
	return out
}

// DefineMethod installs a method on t, enforcing unique parameter names and
// that an inherited method of the same name isn't overridden with a
// different signature (WRONG_SIGNATURE).
func (t *Type) DefineMethod(name string, paramNames []string, paramTypes []*Type, ret *Type) error {
	seen := make(map[string]bool, len(paramNames))
	for _, p := range paramNames {
		if seen[p] {
			return fmt.Errorf("parameter %q is already defined in method %q", p, name)
		}
		seen[p] = true
	}

	m := &Method{Name: name, ParamNames: paramNames, ParamTypes: paramTypes, ReturnType: ret, DefiningType: t}

	if inherited, owner := t.lookupInherited(name); inherited != nil && owner != t {
		if !m.SameSignature(inherited) {
			return fmt.Errorf("wrong_signature")
		}
	}
	t.methods[name] = m
	return nil
}

func (t *Type) lookupInherited(name string) (*Method, *Type) {
	if t.Parent == nil {
		return nil, nil
	}
	return t.Parent.GetMethod(name)
}

// GetMethod resolves name on t, walking the parent chain. The second
// return value is the type that defines it (t itself or an ancestor).
func (t *Type) GetMethod(name string) (*Method, *Type) {
	for c := t; c != nil; c = c.Parent {
		if m, ok := c.methods[name]; ok {
			return m, c
		}
	}
	return nil, nil
}

// OwnMethods returns only the methods declared directly on t (not
// inherited).
func (t *Type) OwnMethods() map[string]*Method {
	return t.methods
}

// Size is the storage footprint a hypothetical downstream code generator
// would need: 4 bytes per attribute slot.
func (t *Type) Size() int {
	return 4 * len(t.AllAttributes())
}

// AttrOffset is the byte offset of attribute name within t's object layout.
func (t *Type) AttrOffset(name string) int {
	for i, a := range t.AllAttributes() {
		if a.Name == name {
			return 4 * i
		}
	}
	return -1
}

// IsSelfType reports whether t is the SELF_TYPE sentinel.
func (t *Type) IsSelfType() bool { return t != nil && t.Name == SelfTypeName }

// IsAutoType reports whether t is the AUTO_TYPE inference placeholder.
func (t *Type) IsAutoType() bool { return t != nil && t.Name == AutoTypeName }

// IsError reports whether t is the ErrorType sentinel.
func (t *Type) IsError() bool { return t != nil && t.Name == ErrorName }

// IsVoid reports whether t is the VoidType sentinel (the result of while
// loops, of an empty block, and of an if with no else branch).
func (t *Type) IsVoid() bool { return t != nil && t.Name == VoidName }
