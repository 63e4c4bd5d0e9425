package capability

// Engine answers satisfaction and specificity queries against declared type
// hierarchies. It is stateless and safe for concurrent use.
type Engine struct{}

// NewEngine creates a query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Satisfies reports whether t, or any ancestor in its chain, declares c or a
// capability that specializes c.
func (e *Engine) Satisfies(t *Type, c *Capability) bool {
	if t == nil || c == nil {
		return false
	}
	if typeDeclares(t, c) {
		return true
	}
	for _, a := range t.ancestors {
		if typeDeclares(a, c) {
			return true
		}
	}
	return false
}

// SpecificityDistance returns how far up t's ancestor chain the capability c
// remains satisfied. A distance of 0 means t itself is the most specific
// provider. The second return value is false when t does not satisfy c at
// all; that is not an error, just "not applicable".
//
// The count walks the chain most-derived first, excluding t, and stops at
// the first ancestor that no longer satisfies c: that boundary is where the
// capability was originally introduced.
func (e *Engine) SpecificityDistance(t *Type, c *Capability) (int, bool) {
	if !e.Satisfies(t, c) {
		return 0, false
	}
	distance := 0
	for _, a := range t.ancestors {
		if !e.Satisfies(a, c) {
			break
		}
		distance++
	}
	return distance, true
}

// Specializes reports whether a is a strict specialization of b. A
// capability never specializes itself.
func (e *Engine) Specializes(a, b *Capability) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	return refines(a, b)
}

// typeDeclares reports whether t directly declares c or a capability
// refining c.
func typeDeclares(t *Type, c *Capability) bool {
	for _, d := range t.declared {
		if d == c || refines(d, c) {
			return true
		}
	}
	return false
}

// refines reports whether a specializes b through any chain of parents.
func refines(a, b *Capability) bool {
	for _, p := range a.specializes {
		if p == b || refines(p, b) {
			return true
		}
	}
	return false
}
