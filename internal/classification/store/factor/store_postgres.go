package factor

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
)

// PostgresStore persists factor rows in PostgreSQL. The table carries no
// UPDATE or DELETE path; superseding observations are new rows.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed factor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, f *models.Factor) error {
	if f == nil {
		return fmt.Errorf("factor is required")
	}
	value, err := json.Marshal(f.Value)
	if err != nil {
		return fmt.Errorf("marshal factor value: %w", err)
	}

	const query = `
		INSERT INTO classification_factors
			(id, contractor_id, category, value, period_start, period_end, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(f.ID),
		uuid.UUID(f.ContractorID),
		string(f.Category),
		value,
		f.Period.Start,
		f.Period.End,
		string(f.Source),
		f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append factor: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListInWindow(ctx context.Context, contractorID id.ContractorID, from, to time.Time) ([]models.Factor, error) {
	const query = `
		SELECT id, contractor_id, category, value, period_start, period_end, source, created_at
		FROM classification_factors
		WHERE contractor_id = $1
		  AND period_end >= $2
		  AND period_start <= $3
		ORDER BY created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(contractorID), from, to)
	if err != nil {
		return nil, fmt.Errorf("list factors: %w", err)
	}
	defer rows.Close()

	var factors []models.Factor
	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, err
		}
		factors = append(factors, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate factors: %w", err)
	}
	return factors, nil
}

func scanFactor(rows *sql.Rows) (*models.Factor, error) {
	var (
		f        models.Factor
		factorID uuid.UUID
		ctrID    uuid.UUID
		category string
		value    []byte
		source   string
	)
	if err := rows.Scan(&factorID, &ctrID, &category, &value, &f.Period.Start, &f.Period.End, &source, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan factor: %w", err)
	}
	if err := json.Unmarshal(value, &f.Value); err != nil {
		return nil, fmt.Errorf("unmarshal factor value: %w", err)
	}
	f.ID = id.FactorID(factorID)
	f.ContractorID = id.ContractorID(ctrID)
	f.Category = models.FactorCategory(category)
	f.Source = models.FactorSource(source)
	return &f, nil
}
