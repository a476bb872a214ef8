package type_system

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Equals performs a deep structural comparison of two types, following
// Parent and Attributes, for use in tests that assert a class's shape
// rather than its identity (two Types with the same name in different
// Contexts are never ==, but can still be structurally Equals). It
// ignores the unexported method table, since Method values carry a
// *Type back-reference to their DefiningType that would otherwise make
// cmp recurse into every other member of the same class.
func Equals(a, b *Type) bool {
	return cmp.Equal(a, b, cmpopts.IgnoreUnexported(Type{}))
}
