// Package adapt resolves whether an object can be treated as satisfying a
// required capability, either directly or by chaining registered conversion
// offers. The resolver runs a priority-first search over the implicit graph
// whose nodes are objects reachable via adaptation and whose edges are
// applications of registered offers, and returns the result of the cheapest
// chain: fewest adapter hops first, then smallest cumulative specificity
// distance.
package adapt

import (
	"container/heap"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/synapse/pkg/capability"
)

// Queries is the capability query surface the resolver depends on.
// *capability.Engine satisfies it; hosting systems with their own type
// representation can supply an alternative implementation.
type Queries interface {
	Satisfies(t *capability.Type, c *capability.Capability) bool
	SpecificityDistance(t *capability.Type, c *capability.Capability) (int, bool)
	Specializes(a, b *capability.Capability) bool
}

// Resolver keeps a registry of adaptation offers and resolves adaptation
// chains against it.
//
// The registry is append-only and is never mutated during a search. The
// resolver itself does no locking: concurrent registration and searches
// must be synchronized by the caller, for example with a RWMutex where
// registration takes the write lock and searches take the read lock.
type Resolver struct {
	queries Queries
	offers  []*Offer
	log     zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger attaches a logger; the resolver emits debug events for each
// search step. The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// New creates a resolver with an empty offer registry.
func New(queries Queries, opts ...Option) *Resolver {
	r := &Resolver{
		queries: queries,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterOffer appends an offer to the registry. Registration order is the
// final tie-break during edge ordering, so it is part of the resolver's
// deterministic behavior.
func (r *Resolver) RegisterOffer(offer *Offer) error {
	if offer == nil {
		return &InvalidOfferError{Reason: "nil offer"}
	}
	if offer.factory == nil || offer.from == nil || offer.to == nil {
		return &InvalidOfferError{Reason: "offer missing factory or capability"}
	}
	r.offers = append(r.offers, offer)
	r.log.Debug().
		Str("from", offer.from.Name()).
		Str("to", offer.to.Name()).
		Int("registered", len(r.offers)).
		Msg("offer registered")
	return nil
}

// RegisterAdapterFactory constructs an offer from the given factory and
// capabilities and registers it.
func (r *Resolver) RegisterAdapterFactory(factory Factory, from, to *capability.Capability) error {
	offer, err := NewOffer(factory, from, to)
	if err != nil {
		return err
	}
	return r.RegisterOffer(offer)
}

// Offers returns a snapshot of the registry in registration order.
func (r *Resolver) Offers() []*Offer {
	return append([]*Offer(nil), r.offers...)
}

// Adapt returns an object satisfying target, adapting obj through a chain
// of registered offers if necessary. An object whose type already satisfies
// target is returned unchanged, with no offers invoked. When no chain
// exists, Adapt returns a NoPathError.
func (r *Resolver) Adapt(obj capability.Typed, target *capability.Capability) (capability.Typed, error) {
	result, _, err := r.AdaptTraced(obj, target)
	return result, err
}

// AdaptOr behaves like Adapt but returns fallback (which may be nil)
// instead of an error when no adaptation path exists.
func (r *Resolver) AdaptOr(obj capability.Typed, target *capability.Capability, fallback capability.Typed) capability.Typed {
	result, err := r.Adapt(obj, target)
	if err != nil {
		return fallback
	}
	return result
}

// Supports reports whether obj either provides target directly or can be
// adapted to it.
func (r *Resolver) Supports(obj capability.Typed, target *capability.Capability) bool {
	_, err := r.Adapt(obj, target)
	return err == nil
}

// AdaptTraced is Adapt with a ResolutionTrace describing the search
// outcome. The trace is returned for failures too, with OutcomeNoPath.
func (r *Resolver) AdaptTraced(obj capability.Typed, target *capability.Capability) (capability.Typed, *ResolutionTrace, error) {
	start := time.Now()
	objType := obj.CapabilityType()

	trace := &ResolutionTrace{
		ID:         newTraceID(),
		ObjectType: objType.Name(),
		Target:     target.Name(),
		StartedAt:  start,
	}

	// Zero-cost identity case: an object already meeting the contract is
	// never wrapped.
	if r.queries.Satisfies(objType, target) {
		trace.Outcome = OutcomeProvided
		trace.Duration = time.Since(start)
		r.log.Debug().
			Str("object", objType.Name()).
			Str("target", target.Name()).
			Msg("object provides target directly")
		return obj, trace, nil
	}

	entry, applied := r.search(obj, target)
	trace.OffersApplied = applied
	trace.Duration = time.Since(start)

	if entry == nil {
		trace.Outcome = OutcomeNoPath
		r.log.Debug().
			Str("object", objType.Name()).
			Str("target", target.Name()).
			Int("offers_applied", applied).
			Msg("no adaptation path")
		return nil, trace, &NoPathError{ObjectType: objType.Name(), Target: target.Name()}
	}

	trace.Outcome = OutcomeAdapted
	trace.Hops = entry.hops
	trace.Distance = entry.distance
	trace.Steps = chainSteps(entry)
	r.log.Debug().
		Str("object", objType.Name()).
		Str("target", target.Name()).
		Int("hops", entry.hops).
		Int("distance", entry.distance).
		Msg("adaptation chain found")
	return entry.obj, trace, nil
}

// candidateEdge pairs an applicable offer with the specificity distance
// between the current object's type and the offer's source capability.
type candidateEdge struct {
	distance int
	offer    *Offer
	regIndex int
}

// search runs the weighted priority-first search. It returns the frontier
// entry holding the first object found to satisfy target, or nil when the
// frontier empties, plus the number of offers successfully applied.
//
// Weights are pairs (hops, cumulative specificity distance) compared
// lexicographically, so the cheapest path by hop count is always expanded
// first and the specificity term only breaks ties between equal-hop paths.
func (r *Resolver) search(obj capability.Typed, target *capability.Capability) (*frontierEntry, int) {
	seq := 0
	queue := frontier{{obj: obj, seq: seq}}
	heap.Init(&queue)

	// Offers successfully applied during this search. Once an offer has
	// produced an object anywhere in the search it is never tried again,
	// even from a different frontier object. This is deliberately
	// conservative: relaxing it risks non-termination on cyclic offer
	// graphs.
	visited := make(map[*Offer]struct{})
	applied := 0

	for queue.Len() > 0 {
		current := heap.Pop(&queue).(*frontierEntry)

		edges := r.outgoingEdges(current.obj, visited)
		r.orderEdges(edges)

		for _, edge := range edges {
			adapted := edge.offer.factory(current.obj)
			if adapted == nil {
				// The factory declined this object. The offer stays
				// eligible: it may still apply from another frontier object.
				r.log.Debug().
					Str("offer", edge.offer.String()).
					Str("object", current.obj.CapabilityType().Name()).
					Msg("factory declined")
				continue
			}

			visited[edge.offer] = struct{}{}
			applied++

			seq++
			next := &frontierEntry{
				hops:     current.hops + 1,
				distance: current.distance + edge.distance,
				seq:      seq,
				obj:      adapted,
				parent:   current,
				via:      edge.offer,
				viaDist:  edge.distance,
			}

			if r.queries.Satisfies(adapted.CapabilityType(), target) {
				// First full match wins. The frontier pop order already
				// guarantees the cheapest path was expanded first.
				return next, applied
			}

			heap.Push(&queue, next)
		}
	}

	return nil, applied
}

// outgoingEdges collects every non-visited offer whose source capability
// the object's type satisfies, paired with the specificity distance.
func (r *Resolver) outgoingEdges(obj capability.Typed, visited map[*Offer]struct{}) []candidateEdge {
	objType := obj.CapabilityType()
	var edges []candidateEdge
	for i, offer := range r.offers {
		if _, seen := visited[offer]; seen {
			continue
		}
		distance, ok := r.queries.SpecificityDistance(objType, offer.from)
		if !ok {
			continue
		}
		edges = append(edges, candidateEdge{distance: distance, offer: offer, regIndex: i})
	}
	return edges
}

// orderEdges sorts candidate edges ascending by specificity distance. Among
// equal distances, an edge whose source capability strictly specializes the
// other's comes first, so more specific contracts are tried before generic
// ones. Remaining ties fall back to registration order for determinism.
func (r *Resolver) orderEdges(edges []candidateEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].distance != edges[j].distance {
			return edges[i].distance < edges[j].distance
		}
		iRefinesJ := r.queries.Specializes(edges[i].offer.from, edges[j].offer.from)
		jRefinesI := r.queries.Specializes(edges[j].offer.from, edges[i].offer.from)
		if iRefinesJ != jRefinesI {
			return iRefinesJ
		}
		return edges[i].regIndex < edges[j].regIndex
	})
}
