// Package ports defines the read-only interfaces the classification subsystem
// consumes from the rest of the platform. The engine and services depend on
// these interfaces, never on HTTP clients or other services directly, so the
// subsystem stays testable and relocatable.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	id "crewly/pkg/domain"
)

// TimeEntry is a single tracked work record (port model, not a database row).
type TimeEntry struct {
	ContractorID id.ContractorID
	EngagementID id.EngagementID
	Date         time.Time
	Hours        float64
}

// ContractorRecord carries the registry facts classification needs: activity
// scoping and the owning organization.
type ContractorRecord struct {
	ID             id.ContractorID
	OrganizationID id.OrganizationID
	Name           string
	Active         bool
}

// TimeTrackingSource exposes tracked time, queryable by contractor and date
// range. Implementations must not mutate anything on behalf of this subsystem.
type TimeTrackingSource interface {
	// EntriesInRange returns all entries for the contractor with
	// from <= Date <= to, in no particular order.
	EntriesInRange(ctx context.Context, contractorID id.ContractorID, from, to time.Time) ([]TimeEntry, error)
}

// EngagementRegistry exposes active engagement counts per contractor.
type EngagementRegistry interface {
	ActiveEngagementCount(ctx context.Context, contractorID id.ContractorID) (int, error)
}

// ContractorRegistry exposes contractor status, used to scope assessment
// eligibility and aggregate-view inclusion.
type ContractorRegistry interface {
	// Contractor returns the record for one contractor.
	// Returns sentinel.ErrNotFound (wrapped) for unknown contractors.
	Contractor(ctx context.Context, contractorID id.ContractorID) (*ContractorRecord, error)

	// ActiveContractors returns all currently-active contractors.
	ActiveContractors(ctx context.Context) ([]ContractorRecord, error)
}
