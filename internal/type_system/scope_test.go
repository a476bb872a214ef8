package type_system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeLookupThroughAncestors(t *testing.T) {
	ctx := NewContext()
	root := NewScope()
	root.Define("self", ctx.ObjectType)

	child := root.Child()
	child.Define("x", ctx.IntType)

	typ, ok := child.Find("self")
	assert.True(t, ok)
	assert.Equal(t, ctx.ObjectType, typ)

	_, ok = root.Find("x")
	assert.False(t, ok)
}

func TestScopeIsLocalOnlyCurrentFrame(t *testing.T) {
	ctx := NewContext()
	root := NewScope()
	root.Define("x", ctx.IntType)
	child := root.Child()

	assert.True(t, root.IsLocal("x"))
	assert.False(t, child.IsLocal("x"))
	assert.True(t, child.IsDefined("x"))
}

func TestScopeSetTypeNarrowsInPlace(t *testing.T) {
	ctx := NewContext()
	root := NewScope()
	root.Define("x", ctx.AutoType)
	child := root.Child()

	ok := child.SetType("x", ctx.IntType)
	assert.True(t, ok)

	typ, _ := root.Find("x")
	assert.Equal(t, ctx.IntType, typ)
}
