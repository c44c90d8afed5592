package pkg

import (
	"fmt"
	"strings"

	"github.com/openfaas/startorder/pkg/image"
)

// InvalidDescriptorError is returned for a descriptor that can not take
// part in resolution at all, such as one without a name.
type InvalidDescriptorError struct {
	// Index is the position of the descriptor in the input
	Index  int
	Reason string
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("invalid descriptor at position %d: %s", e.Index, e.Reason)
}

// DuplicateIdentifierError is returned when a name or alias is claimed by
// two descriptors.
type DuplicateIdentifierError struct {
	Identifier string
	First      image.Identity
	Second     image.Identity
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q used by both %s and %s", e.Identifier, e.First, e.Second)
}

// UnresolvedReferenceError is returned when a dependency identifier matches
// no name or alias in the set.
type UnresolvedReferenceError struct {
	Descriptor image.Identity
	Identifier string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s depends on %q which is not a known name or alias", e.Descriptor, e.Identifier)
}

// CyclicDependencyError is returned when the dependencies form a cycle.
// Each entry of Cycle depends on the next one and the last depends on
// the first. A self dependency gives a cycle of one.
type CyclicDependencyError struct {
	Cycle []image.Identity
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 1 {
		return fmt.Sprintf("circular dependency: %s depends on itself", e.Cycle[0])
	}

	parts := make([]string, 0, len(e.Cycle)+1)
	for _, id := range e.Cycle {
		parts = append(parts, id.String())
	}
	if len(e.Cycle) > 0 {
		parts = append(parts, e.Cycle[0].String())
	}

	return fmt.Sprintf("circular dependency: %s", strings.Join(parts, " -> "))
}
