package registry

import (
	"fmt"

	"github.com/google/uuid"
)

// Registrator is an opaque principal identity owning entries in an Owned
// store. Registrators are immutable values compared by equality; two
// registrators created with the same name are the same principal, while
// every Anonymous registrator is distinct.
type Registrator struct {
	name string
	id   string
}

// SystemRegistrator owns entries registered through an Owned store's plain
// Register method.
var SystemRegistrator = Registrator{name: "system"}

// NewRegistrator returns the principal identified by name.
func NewRegistrator(name string) Registrator {
	return Registrator{name: name}
}

// Anonymous mints a fresh principal that compares equal only to itself.
func Anonymous() Registrator {
	return Registrator{name: "anonymous", id: uuid.NewString()}
}

// Name returns the registrator's name.
func (r Registrator) Name() string {
	return r.name
}

// String returns a printable identity.
func (r Registrator) String() string {
	if r.id == "" {
		return r.name
	}
	return fmt.Sprintf("%s (%s)", r.name, r.id)
}
