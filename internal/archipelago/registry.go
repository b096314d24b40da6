package archipelago

import (
	"sync"

	"github.com/google/uuid"

	dErrors "archipelago/pkg/domain-errors"
)

// IndexRegistry maps island handles to their ordinal. It has its own lock so
// island self-lookups never wait on migration traffic.
type IndexRegistry struct {
	mu       sync.Mutex
	ordinals map[uuid.UUID]int
}

func newIndexRegistry() *IndexRegistry {
	return &IndexRegistry{ordinals: make(map[uuid.UUID]int)}
}

func (r *IndexRegistry) register(id uuid.UUID, ordinal int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordinals[id] = ordinal
}

// Lookup returns the ordinal of the island with handle id.
func (r *IndexRegistry) Lookup(id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.ordinals[id]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeNotFound, "island %s does not belong to this archipelago", id)
	}
	return idx, nil
}

// Len is the number of registered islands.
func (r *IndexRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ordinals)
}
