package type_system

// binding is one (name, type) entry in a Scope frame. Type is a pointer so
// the checker's Inferencer can narrow it in place (via SetType) and
// every other Scope entry that aliases the same binding sees the change.
type binding struct {
	name string
	typ  *Type
}

// Scope is one frame of the lexical environment tree: class
// bodies, method bodies, let-bindings and case branches each push a child
// frame. Lookups walk up through Parent; IsLocal only ever inspects the
// current frame, which is what makes "already defined in this let/method"
// diagnostics possible.
type Scope struct {
	Parent   *Scope
	bindings []*binding
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{}
}

// Child creates a new, empty frame whose lookups fall back to s.
func (s *Scope) Child() *Scope {
	return &Scope{Parent: s}
}

// Define introduces name in the current frame. Re-defining an existing
// local overwrites its binding in place (used by let-bindings that are
// visited more than once, and is otherwise harmless since IsLocal is what
// callers check before calling Define when duplicates must be rejected).
func (s *Scope) Define(name string, typ *Type) {
	for _, b := range s.bindings {
		if b.name == name {
			b.typ = typ
			return
		}
	}
	s.bindings = append(s.bindings, &binding{name: name, typ: typ})
}

// IsLocal reports whether name is bound in this exact frame, ignoring
// ancestors.
func (s *Scope) IsLocal(name string) bool {
	for _, b := range s.bindings {
		if b.name == name {
			return true
		}
	}
	return false
}

// IsDefined reports whether name is visible from s, including ancestors.
func (s *Scope) IsDefined(name string) bool {
	_, ok := s.Find(name)
	return ok
}

// Find returns the type currently bound to name, searching s and its
// ancestors. The returned *Type is the live binding: mutating what it
// points to (Scope cannot do that; callers use SetType) is not how
// narrowing works — use SetType instead.
func (s *Scope) Find(name string) (*Type, bool) {
	b := s.findBinding(name)
	if b == nil {
		return nil, false
	}
	return b.typ, true
}

func (s *Scope) findBinding(name string) *binding {
	for f := s; f != nil; f = f.Parent {
		for _, b := range f.bindings {
			if b.name == name {
				return b
			}
		}
	}
	return nil
}

// SetType narrows the type stored for an already-bound name, wherever in
// the chain it lives. The checker's Inferencer uses this to specialize
// AUTO_TYPE slots. Reports false if name isn't bound.
func (s *Scope) SetType(name string, typ *Type) bool {
	b := s.findBinding(name)
	if b == nil {
		return false
	}
	b.typ = typ
	return true
}
