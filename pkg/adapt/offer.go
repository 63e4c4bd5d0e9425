package adapt

import (
	"fmt"

	"github.com/normanking/synapse/pkg/capability"
)

// Factory converts an object whose type satisfies the offer's source
// capability into an object satisfying its target capability. Returning nil
// declines the conversion for that particular object; the resolver treats a
// declined conversion as a pruned edge, never as an error. Factories must be
// pure: the same input always produces the same result, so a declined
// conversion is not retried.
type Factory func(obj capability.Typed) capability.Typed

// Offer is a registered conversion rule from a source capability to a
// target capability. Offers are immutable once created; the registered
// instance is its own identity for visited-set bookkeeping during a search.
type Offer struct {
	factory Factory
	from    *capability.Capability
	to      *capability.Capability
}

// NewOffer creates an offer, validating structural well-formedness. The
// factory and both capabilities must be non-nil.
func NewOffer(factory Factory, from, to *capability.Capability) (*Offer, error) {
	if factory == nil {
		return nil, &InvalidOfferError{Reason: "nil factory"}
	}
	if from == nil {
		return nil, &InvalidOfferError{Reason: "source capability not defined"}
	}
	if to == nil {
		return nil, &InvalidOfferError{Reason: "target capability not defined"}
	}
	return &Offer{factory: factory, from: from, to: to}, nil
}

// From returns the capability the offer converts from.
func (o *Offer) From() *capability.Capability {
	return o.from
}

// To returns the capability the offer converts to.
func (o *Offer) To() *capability.Capability {
	return o.to
}

func (o *Offer) String() string {
	return fmt.Sprintf("%s -> %s", o.from.Name(), o.to.Name())
}
