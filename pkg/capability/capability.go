// Package capability models named capability contracts and the type
// hierarchies that declare them. It answers, without reflection, whether a
// type satisfies a capability and how specifically it does so.
//
// Capabilities and types are built once by the hosting system and are
// immutable afterwards; identity is pointer identity, names are for display
// and catalog lookup.
package capability

// Capability is a named contract that a type may satisfy. A capability can
// specialize other capabilities, in which case any type satisfying it also
// satisfies every capability it specializes.
type Capability struct {
	name        string
	specializes []*Capability
}

// New creates a capability. The optional specializes list names the more
// general capabilities this one refines.
func New(name string, specializes ...*Capability) *Capability {
	return &Capability{
		name:        name,
		specializes: append([]*Capability(nil), specializes...),
	}
}

// Name returns the capability's display name.
func (c *Capability) Name() string {
	return c.name
}

// Parents returns the capabilities this one directly specializes.
func (c *Capability) Parents() []*Capability {
	return append([]*Capability(nil), c.specializes...)
}

func (c *Capability) String() string {
	return c.name
}

// Type is a classification of objects. Each type carries its full ordered
// ancestor chain (most-derived first) and the set of capabilities it
// declares directly. The hierarchy is fixed once built.
type Type struct {
	name      string
	ancestors []*Type
	declared  []*Capability
}

// NewType creates a type with the given ancestor chain, most-derived first.
// The chain must be complete: a type built on top of another should pass
// that type followed by that type's own ancestors.
func NewType(name string, ancestors ...*Type) *Type {
	return &Type{
		name:      name,
		ancestors: append([]*Type(nil), ancestors...),
	}
}

// Declare records capabilities the type provides directly. It returns the
// type so declarations can chain off the constructor.
func (t *Type) Declare(caps ...*Capability) *Type {
	t.declared = append(t.declared, caps...)
	return t
}

// Name returns the type's display name.
func (t *Type) Name() string {
	return t.name
}

// Ancestors returns the type's ancestor chain, most-derived first.
func (t *Type) Ancestors() []*Type {
	return append([]*Type(nil), t.ancestors...)
}

// Declared returns the capabilities the type provides directly.
func (t *Type) Declared() []*Capability {
	return append([]*Capability(nil), t.declared...)
}

func (t *Type) String() string {
	return t.name
}

// Typed is implemented by objects that expose their capability type.
// Adaptation works purely on this declared type, never on object state.
type Typed interface {
	CapabilityType() *Type
}
