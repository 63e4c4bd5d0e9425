package adapt_test

import (
	"fmt"

	"github.com/normanking/synapse/pkg/adapt"
	"github.com/normanking/synapse/pkg/capability"
)

type document struct {
	typ *capability.Type
}

func (d *document) CapabilityType() *capability.Type { return d.typ }

// Example chains two offers to adapt a readable file to something
// serializable.
func Example() {
	readable := capability.New("readable")
	writable := capability.New("writable")
	serializable := capability.New("serializable")

	rawFile := capability.NewType("raw-file").Declare(readable)
	bufferedWriter := capability.NewType("buffered-writer").Declare(writable)
	jsonDocument := capability.NewType("json-document").Declare(serializable)

	resolver := adapt.New(capability.NewEngine())
	resolver.RegisterAdapterFactory(func(obj capability.Typed) capability.Typed {
		return &document{typ: bufferedWriter}
	}, readable, writable)
	resolver.RegisterAdapterFactory(func(obj capability.Typed) capability.Typed {
		return &document{typ: jsonDocument}
	}, writable, serializable)

	result, trace, err := resolver.AdaptTraced(&document{typ: rawFile}, serializable)
	if err != nil {
		fmt.Println("no path:", err)
		return
	}

	fmt.Println(result.CapabilityType())
	fmt.Println(trace.Hops)
	for _, step := range trace.Steps {
		fmt.Printf("%s -> %s\n", step.From, step.To)
	}

	// Output:
	// json-document
	// 2
	// readable -> writable
	// writable -> serializable
}
