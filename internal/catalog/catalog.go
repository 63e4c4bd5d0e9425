// Package catalog loads declarative capability worlds from YAML: the
// capabilities, the type hierarchy, and the adaptation offers wired between
// them. It lets the CLI exercise real resolutions without compiling Go code.
//
// Catalog files look like:
//
//	capabilities:
//	  - name: readable
//	  - name: buffered-readable
//	    specializes: [readable]
//	types:
//	  - name: resource
//	  - name: raw-file
//	    ancestors: [resource]
//	    declares: [readable]
//	offers:
//	  - from: readable
//	    to: writable
//	    produces: buffered-writer
//
// An offer either names a Go factory registered through WithFactory, or
// declares `produces`, in which case the catalog synthesizes a factory that
// yields an object of that type.
package catalog

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/normanking/synapse/pkg/adapt"
	"github.com/normanking/synapse/pkg/capability"
)

// File is the YAML document structure of a catalog.
type File struct {
	Capabilities []CapabilityDef `yaml:"capabilities"`
	Types        []TypeDef       `yaml:"types"`
	Offers       []OfferDef      `yaml:"offers"`
}

// CapabilityDef declares one capability. Specialized capabilities must be
// declared before the capabilities that refine them.
type CapabilityDef struct {
	Name        string   `yaml:"name"`
	Specializes []string `yaml:"specializes,omitempty"`
}

// TypeDef declares one type. Ancestors are listed most-derived first and
// must be declared earlier in the file.
type TypeDef struct {
	Name      string   `yaml:"name"`
	Ancestors []string `yaml:"ancestors,omitempty"`
	Declares  []string `yaml:"declares,omitempty"`
}

// OfferDef wires one adaptation offer. Exactly one of Factory (a name
// registered through WithFactory) or Produces (a type the synthesized
// factory yields) must be set.
type OfferDef struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Produces string `yaml:"produces,omitempty"`
	Factory  string `yaml:"factory,omitempty"`
}

// Object is a generic catalog-backed object carrying only its type. It is
// what synthesized factories produce and what the CLI resolves.
type Object struct {
	typ *capability.Type
}

// CapabilityType implements capability.Typed.
func (o *Object) CapabilityType() *capability.Type { return o.typ }

func (o *Object) String() string { return o.typ.Name() }

// Catalog is a loaded capability world together with a resolver whose
// registry holds the file's offers.
type Catalog struct {
	engine   *capability.Engine
	resolver *adapt.Resolver
	caps     map[string]*capability.Capability
	capOrder []string
	types    map[string]*capability.Type
	typOrder []string
}

// Option configures catalog loading.
type Option func(*loadState)

type loadState struct {
	factories map[string]adapt.Factory
	log       zerolog.Logger
}

// WithFactory registers a named Go factory that offer definitions can
// reference instead of `produces`.
func WithFactory(name string, factory adapt.Factory) Option {
	return func(s *loadState) {
		s.factories[name] = factory
	}
}

// WithLogger attaches a logger to the catalog's resolver.
func WithLogger(log zerolog.Logger) Option {
	return func(s *loadState) {
		s.log = log
	}
}

// Load reads and validates a catalog file. Unknown capability, type, or
// factory references fail fast; nothing is registered from a partially
// invalid file.
func Load(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, opts...)
}

// Parse builds a catalog from raw YAML.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	state := &loadState{
		factories: make(map[string]adapt.Factory),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(state)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		engine: capability.NewEngine(),
		caps:   make(map[string]*capability.Capability),
		types:  make(map[string]*capability.Type),
	}

	for _, def := range file.Capabilities {
		if def.Name == "" {
			return nil, fmt.Errorf("capability with empty name")
		}
		if _, exists := c.caps[def.Name]; exists {
			return nil, fmt.Errorf("duplicate capability %q", def.Name)
		}
		parents := make([]*capability.Capability, 0, len(def.Specializes))
		for _, parent := range def.Specializes {
			p, ok := c.caps[parent]
			if !ok {
				return nil, fmt.Errorf("capability %q specializes unknown capability %q", def.Name, parent)
			}
			parents = append(parents, p)
		}
		c.caps[def.Name] = capability.New(def.Name, parents...)
		c.capOrder = append(c.capOrder, def.Name)
	}

	for _, def := range file.Types {
		if def.Name == "" {
			return nil, fmt.Errorf("type with empty name")
		}
		if _, exists := c.types[def.Name]; exists {
			return nil, fmt.Errorf("duplicate type %q", def.Name)
		}
		ancestors := make([]*capability.Type, 0, len(def.Ancestors))
		for _, ancestor := range def.Ancestors {
			a, ok := c.types[ancestor]
			if !ok {
				return nil, fmt.Errorf("type %q has unknown ancestor %q", def.Name, ancestor)
			}
			ancestors = append(ancestors, a)
		}
		typ := capability.NewType(def.Name, ancestors...)
		for _, declared := range def.Declares {
			capDef, ok := c.caps[declared]
			if !ok {
				return nil, fmt.Errorf("type %q declares unknown capability %q", def.Name, declared)
			}
			typ.Declare(capDef)
		}
		c.types[def.Name] = typ
		c.typOrder = append(c.typOrder, def.Name)
	}

	c.resolver = adapt.New(c.engine, adapt.WithLogger(state.log))

	for i, def := range file.Offers {
		from, ok := c.caps[def.From]
		if !ok {
			return nil, fmt.Errorf("offer %d: unknown source capability %q", i, def.From)
		}
		to, ok := c.caps[def.To]
		if !ok {
			return nil, fmt.Errorf("offer %d: unknown target capability %q", i, def.To)
		}

		factory, err := c.offerFactory(i, def, state)
		if err != nil {
			return nil, err
		}
		if err := c.resolver.RegisterAdapterFactory(factory, from, to); err != nil {
			return nil, fmt.Errorf("offer %d: %w", i, err)
		}
	}

	return c, nil
}

// offerFactory resolves an offer definition to a concrete factory.
func (c *Catalog) offerFactory(index int, def OfferDef, state *loadState) (adapt.Factory, error) {
	switch {
	case def.Factory != "" && def.Produces != "":
		return nil, fmt.Errorf("offer %d: factory and produces are mutually exclusive", index)
	case def.Factory != "":
		factory, ok := state.factories[def.Factory]
		if !ok {
			return nil, fmt.Errorf("offer %d: unknown factory %q", index, def.Factory)
		}
		return factory, nil
	case def.Produces != "":
		produced, ok := c.types[def.Produces]
		if !ok {
			return nil, fmt.Errorf("offer %d: produces unknown type %q", index, def.Produces)
		}
		return func(obj capability.Typed) capability.Typed {
			return &Object{typ: produced}
		}, nil
	default:
		return nil, fmt.Errorf("offer %d: needs either factory or produces", index)
	}
}

// Resolver returns the resolver backed by the catalog's offers.
func (c *Catalog) Resolver() *adapt.Resolver {
	return c.resolver
}

// Capability looks up a capability by name.
func (c *Catalog) Capability(name string) (*capability.Capability, bool) {
	capDef, ok := c.caps[name]
	return capDef, ok
}

// Type looks up a type by name.
func (c *Catalog) Type(name string) (*capability.Type, bool) {
	typ, ok := c.types[name]
	return typ, ok
}

// NewObject creates a catalog object of the named type.
func (c *Catalog) NewObject(typeName string) (*Object, error) {
	typ, ok := c.types[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
	return &Object{typ: typ}, nil
}

// CapabilityNames returns declared capability names in file order.
func (c *Catalog) CapabilityNames() []string {
	return append([]string(nil), c.capOrder...)
}

// TypeNames returns declared type names in file order.
func (c *Catalog) TypeNames() []string {
	return append([]string(nil), c.typOrder...)
}
