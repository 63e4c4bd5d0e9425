package capability_test

import (
	"fmt"

	"github.com/normanking/synapse/pkg/capability"
)

// Example demonstrates building a small type hierarchy and querying it.
func Example() {
	readable := capability.New("readable")
	buffered := capability.New("buffered-readable", readable)

	resource := capability.NewType("resource")
	file := capability.NewType("file", resource).Declare(readable)
	rawFile := capability.NewType("raw-file", file, resource)
	socket := capability.NewType("socket", resource).Declare(buffered)

	engine := capability.NewEngine()

	fmt.Println(engine.Satisfies(rawFile, readable))
	fmt.Println(engine.Satisfies(socket, readable))

	distance, _ := engine.SpecificityDistance(rawFile, readable)
	fmt.Println(distance)
	distance, _ = engine.SpecificityDistance(file, readable)
	fmt.Println(distance)

	// Output:
	// true
	// true
	// 1
	// 0
}
