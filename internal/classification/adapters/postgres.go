// Package adapters provides implementations of the classification ports.
//
// The postgres adapters read the platform's collaborator tables directly and
// never write them: time tracking, engagements, and the contractor registry
// are owned elsewhere. When those collaborators move out of process these
// adapters can be replaced with RPC clients without touching the domain layer.
package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crewly/internal/classification/ports"
	id "crewly/pkg/domain"
	"crewly/pkg/platform/sentinel"
)

// PostgresTimeTracking reads tracked time from the shared time_entries table.
type PostgresTimeTracking struct {
	db *sql.DB
}

func NewPostgresTimeTracking(db *sql.DB) *PostgresTimeTracking {
	return &PostgresTimeTracking{db: db}
}

func (a *PostgresTimeTracking) EntriesInRange(ctx context.Context, contractorID id.ContractorID, from, to time.Time) ([]ports.TimeEntry, error) {
	const query = `
		SELECT contractor_id, engagement_id, entry_date, hours
		FROM time_entries
		WHERE contractor_id = $1 AND entry_date BETWEEN $2 AND $3`
	rows, err := a.db.QueryContext(ctx, query, uuid.UUID(contractorID), from, to)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var entries []ports.TimeEntry
	for rows.Next() {
		var (
			e            ports.TimeEntry
			ctrID, engID uuid.UUID
		)
		if err := rows.Scan(&ctrID, &engID, &e.Date, &e.Hours); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		e.ContractorID = id.ContractorID(ctrID)
		e.EngagementID = id.EngagementID(engID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w: %w", sentinel.ErrUnavailable, err)
	}
	return entries, nil
}

// PostgresEngagements reads active engagement counts from the shared
// engagements table.
type PostgresEngagements struct {
	db *sql.DB
}

func NewPostgresEngagements(db *sql.DB) *PostgresEngagements {
	return &PostgresEngagements{db: db}
}

func (a *PostgresEngagements) ActiveEngagementCount(ctx context.Context, contractorID id.ContractorID) (int, error) {
	const query = `
		SELECT COUNT(*) FROM engagements
		WHERE contractor_id = $1 AND status = 'active'`
	var count int
	if err := a.db.QueryRowContext(ctx, query, uuid.UUID(contractorID)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count engagements: %w: %w", sentinel.ErrUnavailable, err)
	}
	return count, nil
}

// PostgresContractors reads the shared contractors table.
type PostgresContractors struct {
	db *sql.DB
}

func NewPostgresContractors(db *sql.DB) *PostgresContractors {
	return &PostgresContractors{db: db}
}

func (a *PostgresContractors) Contractor(ctx context.Context, contractorID id.ContractorID) (*ports.ContractorRecord, error) {
	const query = `
		SELECT id, organization_id, name, status = 'active'
		FROM contractors
		WHERE id = $1`
	record, err := scanContractor(a.db.QueryRowContext(ctx, query, uuid.UUID(contractorID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query contractor: %w: %w", sentinel.ErrUnavailable, err)
	}
	return record, nil
}

func (a *PostgresContractors) ActiveContractors(ctx context.Context) ([]ports.ContractorRecord, error) {
	const query = `
		SELECT id, organization_id, name, status = 'active'
		FROM contractors
		WHERE status = 'active'
		ORDER BY id`
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query contractors: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var records []ports.ContractorRecord
	for rows.Next() {
		record, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contractors: %w: %w", sentinel.ErrUnavailable, err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContractor(row rowScanner) (*ports.ContractorRecord, error) {
	var (
		record       ports.ContractorRecord
		ctrID, orgID uuid.UUID
	)
	if err := row.Scan(&ctrID, &orgID, &record.Name, &record.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan contractor: %w", err)
	}
	record.ID = id.ContractorID(ctrID)
	record.OrganizationID = id.OrganizationID(orgID)
	return &record, nil
}
