package factor

import (
	"context"
	"sync"
	"time"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
)

// InMemoryStore keeps factor rows per contractor. Append-only: rows are
// copied in and out, never handed back by reference, so callers cannot
// mutate history.
type InMemoryStore struct {
	mu      sync.RWMutex
	factors map[id.ContractorID][]models.Factor
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{factors: make(map[id.ContractorID][]models.Factor)}
}

// Append inserts a new immutable factor row.
func (s *InMemoryStore) Append(_ context.Context, f *models.Factor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factors[f.ContractorID] = append(s.factors[f.ContractorID], *f)
	return nil
}

// ListInWindow returns all factors whose validity period overlaps [from, to].
func (s *InMemoryStore) ListInWindow(_ context.Context, contractorID id.ContractorID, from, to time.Time) ([]models.Factor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Factor
	for _, f := range s.factors[contractorID] {
		if f.Period.Overlaps(from, to) {
			out = append(out, f)
		}
	}
	return out, nil
}
