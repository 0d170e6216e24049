package adapters

import (
	"context"
	"sync"
	"time"

	"crewly/internal/classification/ports"
	id "crewly/pkg/domain"
	"crewly/pkg/platform/sentinel"
)

// Memory adapters back the ports with in-process fixtures, for wiring the
// server without a database and for tests that don't want mocks.

// MemoryTimeTracking serves time entries from a fixture slice.
type MemoryTimeTracking struct {
	mu      sync.RWMutex
	entries map[id.ContractorID][]ports.TimeEntry
}

func NewMemoryTimeTracking() *MemoryTimeTracking {
	return &MemoryTimeTracking{entries: make(map[id.ContractorID][]ports.TimeEntry)}
}

// AddEntry registers a fixture entry.
func (a *MemoryTimeTracking) AddEntry(e ports.TimeEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[e.ContractorID] = append(a.entries[e.ContractorID], e)
}

func (a *MemoryTimeTracking) EntriesInRange(_ context.Context, contractorID id.ContractorID, from, to time.Time) ([]ports.TimeEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []ports.TimeEntry
	for _, e := range a.entries[contractorID] {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

// MemoryEngagements serves engagement counts from a fixture map.
type MemoryEngagements struct {
	mu     sync.RWMutex
	counts map[id.ContractorID]int
}

func NewMemoryEngagements() *MemoryEngagements {
	return &MemoryEngagements{counts: make(map[id.ContractorID]int)}
}

// SetCount registers a fixture count.
func (a *MemoryEngagements) SetCount(contractorID id.ContractorID, count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[contractorID] = count
}

func (a *MemoryEngagements) ActiveEngagementCount(_ context.Context, contractorID id.ContractorID) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counts[contractorID], nil
}

// MemoryContractors serves contractor records from a fixture map.
type MemoryContractors struct {
	mu      sync.RWMutex
	records map[id.ContractorID]ports.ContractorRecord
}

func NewMemoryContractors() *MemoryContractors {
	return &MemoryContractors{records: make(map[id.ContractorID]ports.ContractorRecord)}
}

// Add registers a fixture contractor.
func (a *MemoryContractors) Add(record ports.ContractorRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[record.ID] = record
}

func (a *MemoryContractors) Contractor(_ context.Context, contractorID id.ContractorID) (*ports.ContractorRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	record, ok := a.records[contractorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}

func (a *MemoryContractors) ActiveContractors(_ context.Context) ([]ports.ContractorRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []ports.ContractorRecord
	for _, record := range a.records {
		if record.Active {
			out = append(out, record)
		}
	}
	return out, nil
}
