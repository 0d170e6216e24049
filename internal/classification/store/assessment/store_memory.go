package assessment

import (
	"context"
	"sort"
	"sync"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
	"crewly/pkg/platform/sentinel"
)

// InMemoryStore keeps assessment history per contractor. Append-only.
type InMemoryStore struct {
	mu          sync.RWMutex
	assessments map[id.ContractorID][]models.Assessment
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{assessments: make(map[id.ContractorID][]models.Assessment)}
}

// Append inserts a new immutable assessment row.
func (s *InMemoryStore) Append(_ context.Context, a *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[a.ContractorID] = append(s.assessments[a.ContractorID], *a)
	return nil
}

// History returns up to limit assessments, newest first by AssessedAt.
func (s *InMemoryStore) History(_ context.Context, contractorID id.ContractorID, limit int) ([]models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := append([]models.Assessment{}, s.assessments[contractorID]...)
	sort.Slice(history, func(i, j int) bool {
		return history[i].AssessedAt.After(history[j].AssessedAt)
	})
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// Latest returns the most recent assessment for a contractor.
// Returns sentinel.ErrNotFound when the contractor has never been assessed.
func (s *InMemoryStore) Latest(ctx context.Context, contractorID id.ContractorID) (*models.Assessment, error) {
	history, err := s.History(ctx, contractorID, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &history[0], nil
}

// LatestByContractors returns the most recent assessment per contractor for
// the given set. Contractors with no assessments are simply absent from the
// result; the aggregate builder treats them as unassessed.
func (s *InMemoryStore) LatestByContractors(ctx context.Context, contractorIDs []id.ContractorID) (map[id.ContractorID]models.Assessment, error) {
	out := make(map[id.ContractorID]models.Assessment, len(contractorIDs))
	for _, cid := range contractorIDs {
		latest, err := s.Latest(ctx, cid)
		if err != nil {
			if err == sentinel.ErrNotFound {
				continue
			}
			return nil, err
		}
		out[cid] = *latest
	}
	return out, nil
}
