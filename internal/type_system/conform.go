package type_system

// Conforms implements the type conformance (≤) relation. Callers are expected
// to have already resolved SELF_TYPE on both sides with FixedType where the
// comparison calls for it. Every type except SELF_TYPE and ErrorType
// conforms to Object, including the parentless VoidType sentinel; beyond
// that, Conforms walks the parent chain.
func Conforms(sub, sup *Type) bool {
	if sub == nil || sup == nil {
		return false
	}
	if sub.IsError() || sup.IsError() {
		return false
	}
	if sup.Name == ObjectName && !sub.IsSelfType() {
		return true
	}
	for t := sub; t != nil; t = t.Parent {
		if t.Name == sup.Name {
			return true
		}
	}
	return false
}

// FixedType resolves SELF_TYPE relative to the enclosing class: it returns
// current when t is SELF_TYPE, and t unchanged otherwise.
// Forgetting to call this before a conformance or equality check is the
// single most common bug in an implementation of this lattice.
func FixedType(t, current *Type) *Type {
	if t != nil && t.IsSelfType() {
		return current
	}
	return t
}

// LCA computes the least common ancestor of a non-empty list of types by
// counting occurrences of every ancestor along each input's parent chain
// and returning the first name seen len(types) times, walking leaf-to-root
// so ties favor the node closest to the leaves.
func LCA(types []*Type, ctx *Context) *Type {
	counter := make(map[string]int)
	known := make(map[string]*Type)

	for _, start := range types {
		for node := start; node != nil; node = node.Parent {
			counter[node.Name]++
			known[node.Name] = node
			if counter[node.Name] == len(types) {
				return node
			}
		}
	}
	// Unreachable for well-formed input: every type chain terminates at
	// Object, so Object is always counted len(types) times eventually.
	return ctx.ObjectType
}
