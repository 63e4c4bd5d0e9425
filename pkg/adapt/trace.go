package adapt

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a resolution ended.
type Outcome string

const (
	// OutcomeProvided means the object already satisfied the target and was
	// returned unchanged.
	OutcomeProvided Outcome = "provided"

	// OutcomeAdapted means a chain of offers produced a satisfying object.
	OutcomeAdapted Outcome = "adapted"

	// OutcomeNoPath means the search exhausted the frontier without success.
	OutcomeNoPath Outcome = "no_path"
)

// TraceStep records one applied offer on the winning adaptation chain.
type TraceStep struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance int    `json:"distance"`
	Produced string `json:"produced"`
}

// ResolutionTrace captures the outcome of a single Adapt call for
// diagnostics and audit logging. Traces are built by AdaptTraced and are
// plain data; they never reference live objects from the search.
type ResolutionTrace struct {
	ID            string        `json:"id"`
	ObjectType    string        `json:"object_type"`
	Target        string        `json:"target"`
	Outcome       Outcome       `json:"outcome"`
	Steps         []TraceStep   `json:"steps,omitempty"`
	Hops          int           `json:"hops"`
	Distance      int           `json:"distance"`
	OffersApplied int           `json:"offers_applied"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
}

func newTraceID() string {
	return "res_" + uuid.New().String()
}

// chainSteps walks the parent links of a successful frontier entry and
// returns the applied offers in application order.
func chainSteps(entry *frontierEntry) []TraceStep {
	var steps []TraceStep
	for e := entry; e != nil && e.via != nil; e = e.parent {
		steps = append(steps, TraceStep{
			From:     e.via.From().Name(),
			To:       e.via.To().Name(),
			Distance: e.viaDist,
			Produced: e.obj.CapabilityType().Name(),
		})
	}
	// Reverse into application order.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
