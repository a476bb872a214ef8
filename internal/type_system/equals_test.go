package type_system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualsComparesStructureNotIdentity(t *testing.T) {
	ctxA := NewContext()
	a1, _ := ctxA.CreateType("Foo")
	a1.SetParent(ctxA.ObjectType)
	assert.NoError(t, a1.DefineAttribute("x", ctxA.IntType))

	ctxB := NewContext()
	b1, _ := ctxB.CreateType("Foo")
	b1.SetParent(ctxB.ObjectType)
	assert.NoError(t, b1.DefineAttribute("x", ctxB.IntType))

	assert.NotSame(t, a1, b1)
	assert.True(t, Equals(a1, b1))
}

func TestEqualsDetectsAttributeDifference(t *testing.T) {
	ctx := NewContext()
	a, _ := ctx.CreateType("A")
	a.SetParent(ctx.ObjectType)
	assert.NoError(t, a.DefineAttribute("x", ctx.IntType))

	other := NewContext()
	b, _ := other.CreateType("A")
	b.SetParent(other.ObjectType)
	assert.NoError(t, b.DefineAttribute("x", other.StringType))

	assert.False(t, Equals(a, b))
}
