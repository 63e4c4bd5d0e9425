package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWorld builds a small hierarchy used across the engine tests:
//
//	capabilities: readable, writable, buffered-readable (specializes readable)
//	types:        resource -> file -> raw-file (file declares readable)
func testWorld() (caps map[string]*Capability, types map[string]*Type) {
	readable := New("readable")
	writable := New("writable")
	buffered := New("buffered-readable", readable)

	resource := NewType("resource")
	file := NewType("file", resource).Declare(readable)
	rawFile := NewType("raw-file", file, resource)
	device := NewType("device", resource).Declare(buffered)

	caps = map[string]*Capability{
		"readable": readable,
		"writable": writable,
		"buffered": buffered,
	}
	types = map[string]*Type{
		"resource": resource,
		"file":     file,
		"raw-file": rawFile,
		"device":   device,
	}
	return caps, types
}

func TestEngine_Satisfies(t *testing.T) {
	caps, types := testWorld()
	engine := NewEngine()

	tests := []struct {
		name string
		typ  *Type
		cap  *Capability
		want bool
	}{
		{"direct declaration", types["file"], caps["readable"], true},
		{"inherited from ancestor", types["raw-file"], caps["readable"], true},
		{"via capability specialization", types["device"], caps["readable"], true},
		{"undeclared capability", types["file"], caps["writable"], false},
		{"bare ancestor", types["resource"], caps["readable"], false},
		{"specialized not implied by general", types["file"], caps["buffered"], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Satisfies(tt.typ, tt.cap))
		})
	}
}

func TestEngine_Satisfies_NilArguments(t *testing.T) {
	caps, types := testWorld()
	engine := NewEngine()

	assert.False(t, engine.Satisfies(nil, caps["readable"]))
	assert.False(t, engine.Satisfies(types["file"], nil))
}

func TestEngine_SpecificityDistance(t *testing.T) {
	caps, types := testWorld()
	engine := NewEngine()

	tests := []struct {
		name         string
		typ          *Type
		cap          *Capability
		wantDistance int
		wantOK       bool
	}{
		// file declares readable itself; its only ancestor (resource) does
		// not satisfy it, so file is the most specific provider.
		{"declared on the type itself", types["file"], caps["readable"], 0, true},
		// raw-file inherits readable from file, one step up the chain.
		{"inherited one step up", types["raw-file"], caps["readable"], 1, true},
		{"not applicable", types["file"], caps["writable"], 0, false},
		{"specialized capability on type", types["device"], caps["buffered"], 0, true},
		{"general capability via specialization", types["device"], caps["readable"], 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, ok := engine.SpecificityDistance(tt.typ, tt.cap)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantDistance, distance)
			}
		})
	}
}

func TestEngine_SpecificityDistance_StopsAtFirstGap(t *testing.T) {
	// Chain: base declares cap, mid does not, top declares cap again.
	// Walking up from leaf must stop at mid even though base satisfies.
	cap_ := New("cap")
	base := NewType("base").Declare(cap_)
	mid := NewType("mid", base)
	top := NewType("top", mid, base).Declare(cap_)
	leaf := NewType("leaf", top, mid, base)

	engine := NewEngine()

	distance, ok := engine.SpecificityDistance(leaf, cap_)
	require.True(t, ok)
	// top satisfies (distance 1); mid does not... except mid inherits from
	// base, which declares cap, so the whole chain satisfies.
	assert.Equal(t, 3, distance)

	// A genuinely gapped chain: mid2 has no ancestors declaring cap.
	mid2 := NewType("mid2")
	top2 := NewType("top2", mid2).Declare(cap_)
	leaf2 := NewType("leaf2", top2, mid2)

	distance, ok = engine.SpecificityDistance(leaf2, cap_)
	require.True(t, ok)
	assert.Equal(t, 1, distance)
}

func TestEngine_Specializes(t *testing.T) {
	readable := New("readable")
	buffered := New("buffered-readable", readable)
	mmapped := New("mmapped-readable", buffered)
	writable := New("writable")

	engine := NewEngine()

	assert.True(t, engine.Specializes(buffered, readable))
	assert.True(t, engine.Specializes(mmapped, readable), "specialization is transitive")
	assert.False(t, engine.Specializes(readable, buffered), "never the reverse direction")
	assert.False(t, engine.Specializes(readable, readable), "never reflexive")
	assert.False(t, engine.Specializes(buffered, writable))
	assert.False(t, engine.Specializes(nil, readable))
	assert.False(t, engine.Specializes(readable, nil))
}

func TestType_DeclareChains(t *testing.T) {
	readable := New("readable")
	writable := New("writable")

	typ := NewType("stream").Declare(readable).Declare(writable)

	require.Len(t, typ.Declared(), 2)
	assert.Equal(t, "stream", typ.Name())
}

func TestCapability_Parents(t *testing.T) {
	readable := New("readable")
	buffered := New("buffered-readable", readable)

	parents := buffered.Parents()
	require.Len(t, parents, 1)
	assert.Same(t, readable, parents[0])
	assert.Empty(t, readable.Parents())
}
