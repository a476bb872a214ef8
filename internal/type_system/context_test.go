package type_system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContextInstallsBuiltins(t *testing.T) {
	ctx := NewContext()

	for _, name := range BuiltinNames {
		assert.True(t, ctx.HasType(name), "expected builtin %q to be registered", name)
	}

	assert.Equal(t, ctx.ObjectType, ctx.IntType.Parent)
	assert.Equal(t, ctx.ObjectType, ctx.StringType.Parent)
	assert.Equal(t, ctx.ObjectType, ctx.BoolType.Parent)
	assert.Equal(t, ctx.ObjectType, ctx.IOType.Parent)
	assert.Nil(t, ctx.ObjectType.Parent)

	for _, name := range []string{IntName, StringName, BoolName, SelfTypeName, AutoTypeName} {
		typ, err := ctx.GetType(name)
		assert.NoError(t, err)
		assert.True(t, typ.Sealed, "%q should be sealed", name)
	}
	assert.False(t, ctx.ObjectType.Sealed)
	assert.False(t, ctx.IOType.Sealed)
}

func TestNewContextAssignsDistinctRunID(t *testing.T) {
	a := NewContext()
	b := NewContext()
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestCreateTypeRejectsDuplicates(t *testing.T) {
	ctx := NewContext()

	_, err := ctx.CreateType("A")
	assert.NoError(t, err)

	_, err = ctx.CreateType("A")
	assert.Error(t, err)
}

func TestGetTypeUnknown(t *testing.T) {
	ctx := NewContext()
	_, err := ctx.GetType("Nope")
	assert.Error(t, err)
}

func TestDefineMethodRejectsConflictingOverride(t *testing.T) {
	ctx := NewContext()
	a, _ := ctx.CreateType("A")
	a.SetParent(ctx.ObjectType)
	assert.NoError(t, a.DefineMethod("f", []string{"x"}, []*Type{ctx.IntType}, ctx.IntType))

	b, _ := ctx.CreateType("B")
	b.SetParent(a)
	err := b.DefineMethod("f", []string{"x"}, []*Type{ctx.StringType}, ctx.IntType)
	assert.Error(t, err)
}

func TestDefineMethodAllowsIdenticalOverride(t *testing.T) {
	ctx := NewContext()
	a, _ := ctx.CreateType("A")
	a.SetParent(ctx.ObjectType)
	assert.NoError(t, a.DefineMethod("f", []string{"x"}, []*Type{ctx.IntType}, ctx.IntType))

	b, _ := ctx.CreateType("B")
	b.SetParent(a)
	err := b.DefineMethod("f", []string{"x"}, []*Type{ctx.IntType}, ctx.IntType)
	assert.NoError(t, err)

	m, owner := b.GetMethod("f")
	assert.Equal(t, "B", owner.Name)
	assert.Equal(t, "f", m.Name)
}

func TestAllAttributesParentFirst(t *testing.T) {
	ctx := NewContext()
	a, _ := ctx.CreateType("A")
	a.SetParent(ctx.ObjectType)
	assert.NoError(t, a.DefineAttribute("x", ctx.IntType))

	b, _ := ctx.CreateType("B")
	b.SetParent(a)
	assert.NoError(t, b.DefineAttribute("y", ctx.StringType))

	attrs := b.AllAttributes()
	assert.Len(t, attrs, 2)
	assert.Equal(t, "x", attrs[0].Name)
	assert.Equal(t, "y", attrs[1].Name)
}

func TestSizeAndAttrOffset(t *testing.T) {
	ctx := NewContext()
	a, _ := ctx.CreateType("A")
	a.SetParent(ctx.ObjectType)
	assert.NoError(t, a.DefineAttribute("x", ctx.IntType))
	assert.NoError(t, a.DefineAttribute("y", ctx.IntType))

	assert.Equal(t, 8, a.Size())
	assert.Equal(t, 0, a.AttrOffset("x"))
	assert.Equal(t, 4, a.AttrOffset("y"))
	assert.Equal(t, -1, a.AttrOffset("z"))
}
