package type_system

import (
	"fmt"

	"github.com/google/uuid"
)

// Context is the global type environment for one program: a
// name -> Type map plus type-creation operations, and fast access to the
// built-ins and sentinels every pass needs constantly.
type Context struct {
	types map[string]*Type

	ObjectType *Type
	IntType    *Type
	StringType *Type
	BoolType   *Type
	IOType     *Type
	SelfType   *Type
	AutoType   *Type
	ErrorType  *Type
	VoidType   *Type

	// RunID tags this Context so diagnostics from the same Analyze call
	// can be correlated in logs spanning several source files or REPL
	// turns, without threading a request ID through every pass signature.
	RunID uuid.UUID
}

// NewContext creates a context with only the built-in types installed.
// ErrorType and VoidType are
// sentinels: deliberately not registered in the name table, since user code
// can never reference "<error>" or "<void>" as a type name.
func NewContext() *Context {
	ctx := &Context{types: make(map[string]*Type), RunID: uuid.New()}

	obj := ctx.mustCreate(ObjectName)
	obj.Builtin = true
	i := ctx.mustCreate(IntName)
	i.Builtin = true
	i.SetParent(obj)
	s := ctx.mustCreate(StringName)
	s.Builtin = true
	s.SetParent(obj)
	b := ctx.mustCreate(BoolName)
	b.Builtin = true
	b.SetParent(obj)
	io := ctx.mustCreate(IOName)
	io.Builtin = true
	io.SetParent(obj)
	st := ctx.mustCreate(SelfTypeName)
	st.Builtin = true
	at := ctx.mustCreate(AutoTypeName)
	at.Builtin = true

	ctx.ObjectType, ctx.IntType, ctx.StringType, ctx.BoolType, ctx.IOType = obj, i, s, b, io
	ctx.SelfType, ctx.AutoType = st, at
	ctx.ErrorType = newType(ErrorName)
	ctx.VoidType = newType(VoidName)

	_ = obj.DefineMethod("abort", nil, nil, obj)
	_ = obj.DefineMethod("type_name", nil, nil, s)
	_ = obj.DefineMethod("copy", nil, nil, st)

	_ = io.DefineMethod("out_string", []string{"x"}, []*Type{s}, st)
	_ = io.DefineMethod("out_int", []string{"x"}, []*Type{i}, st)
	_ = io.DefineMethod("in_string", nil, nil, s)
	_ = io.DefineMethod("in_int", nil, nil, i)

	_ = s.DefineMethod("length", nil, nil, i)
	_ = s.DefineMethod("concat", []string{"s"}, []*Type{s}, s)
	_ = s.DefineMethod("substr", []string{"i", "l"}, []*Type{i, i}, s)

	return ctx
}

func (c *Context) mustCreate(name string) *Type {
	t, err := c.CreateType(name)
	if err != nil {
		panic(err)
	}
	return t
}

// CreateType registers a new, empty Type named name. It fails if a type by
// that name already exists; TypeCollector is responsible for the
// rename-on-duplicate behavior TypeCollector relies on for duplicate names.
func (c *Context) CreateType(name string) (*Type, error) {
	if _, ok := c.types[name]; ok {
		return nil, fmt.Errorf("type %q is already defined", name)
	}
	t := newType(name)
	c.types[name] = t
	return t, nil
}

// GetType looks up name, returning an error if it is undefined.
func (c *Context) GetType(name string) (*Type, error) {
	t, ok := c.types[name]
	if !ok {
		return nil, fmt.Errorf("type %q is not defined", name)
	}
	return t, nil
}

// HasType reports whether name is registered.
func (c *Context) HasType(name string) bool {
	_, ok := c.types[name]
	return ok
}

// Types returns every registered type, built-in and user-declared alike.
// The caller must not mutate the returned map.
func (c *Context) Types() map[string]*Type {
	return c.types
}
