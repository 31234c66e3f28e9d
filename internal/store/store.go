package store

import (
	"errors"

	"github.com/gwodu/VoiceDub/internal/types"
)

// ErrNotFound is returned when no translation exists for the given id.
var ErrNotFound = errors.New("translation not found")

// Store tracks translation records. One in-memory implementation exists
// today; a persistent variant could be added without touching the handlers.
type Store interface {
	// Create allocates the next id and stores a new pending record.
	Create(insert types.InsertTranslation) *types.Translation

	// Get returns a copy of the record, or ErrNotFound.
	Get(id int) (*types.Translation, error)

	// Update merges the patch into an existing record and returns the
	// result. Fails with ErrNotFound for unknown ids; never creates a
	// record.
	Update(id int, patch types.TranslationPatch) (*types.Translation, error)
}
