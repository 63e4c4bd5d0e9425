package adapt

import (
	"errors"
	"fmt"
)

// NoPathError reports that exhaustive search found no offer chain from an
// object to the target capability. It is the only failure Adapt can return;
// a declining factory is a normal outcome, not an error.
type NoPathError struct {
	ObjectType string
	Target     string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no adaptation path from %s to %s", e.ObjectType, e.Target)
}

// IsNoPath checks if an error is a NoPathError.
func IsNoPath(err error) bool {
	var e *NoPathError
	return errors.As(err, &e)
}

// InvalidOfferError reports a structurally malformed offer at registration
// time. Malformed offers are never accepted into the registry.
type InvalidOfferError struct {
	Reason string
}

func (e *InvalidOfferError) Error() string {
	return fmt.Sprintf("invalid adaptation offer: %s", e.Reason)
}

// IsInvalidOffer checks if an error is an InvalidOfferError.
func IsInvalidOffer(err error) bool {
	var e *InvalidOfferError
	return errors.As(err, &e)
}
