package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
	"crewly/pkg/platform/sentinel"
)

// PostgresStore persists assessment snapshots in PostgreSQL. Sub-score
// breakdowns and the raw factor snapshot are stored as jsonb; the table has
// no UPDATE or DELETE path.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed assessment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, a *models.Assessment) error {
	if a == nil {
		return fmt.Errorf("assessment is required")
	}
	irs, dol, abc, factors, err := marshalParts(a)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO classification_assessments
			(id, contractor_id, overall_risk, overall_score,
			 irs_score, dol_score, abc_score, factors, assessed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(a.ID),
		uuid.UUID(a.ContractorID),
		string(a.OverallRisk),
		a.OverallScore,
		irs, dol, abc, factors,
		a.AssessedAt,
	)
	if err != nil {
		return fmt.Errorf("append assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, contractorID id.ContractorID, limit int) ([]models.Assessment, error) {
	const query = `
		SELECT id, contractor_id, overall_risk, overall_score,
		       irs_score, dol_score, abc_score, factors, assessed_at
		FROM classification_assessments
		WHERE contractor_id = $1
		ORDER BY assessed_at DESC
		LIMIT $2`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(contractorID), limit)
	if err != nil {
		return nil, fmt.Errorf("list assessment history: %w", err)
	}
	defer rows.Close()

	return collectAssessments(rows)
}

func (s *PostgresStore) Latest(ctx context.Context, contractorID id.ContractorID) (*models.Assessment, error) {
	history, err := s.History(ctx, contractorID, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &history[0], nil
}

// LatestByContractors returns the most recent assessment per contractor using
// a single query over the given id set.
func (s *PostgresStore) LatestByContractors(ctx context.Context, contractorIDs []id.ContractorID) (map[id.ContractorID]models.Assessment, error) {
	if len(contractorIDs) == 0 {
		return map[id.ContractorID]models.Assessment{}, nil
	}
	ids := make([]uuid.UUID, len(contractorIDs))
	for i, cid := range contractorIDs {
		ids[i] = uuid.UUID(cid)
	}

	const query = `
		SELECT DISTINCT ON (contractor_id)
		       id, contractor_id, overall_risk, overall_score,
		       irs_score, dol_score, abc_score, factors, assessed_at
		FROM classification_assessments
		WHERE contractor_id = ANY($1)
		ORDER BY contractor_id, assessed_at DESC`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list latest assessments: %w", err)
	}
	defer rows.Close()

	assessments, err := collectAssessments(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[id.ContractorID]models.Assessment, len(assessments))
	for _, a := range assessments {
		out[a.ContractorID] = a
	}
	return out, nil
}

func marshalParts(a *models.Assessment) (irs, dol, abc, factors []byte, err error) {
	if irs, err = json.Marshal(a.IRS); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal irs score: %w", err)
	}
	if dol, err = json.Marshal(a.DOL); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal dol score: %w", err)
	}
	if abc, err = json.Marshal(a.ABC); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal abc score: %w", err)
	}
	if factors, err = json.Marshal(a.Factors); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal factor snapshot: %w", err)
	}
	return irs, dol, abc, factors, nil
}

func collectAssessments(rows *sql.Rows) ([]models.Assessment, error) {
	var assessments []models.Assessment
	for rows.Next() {
		var (
			a                       models.Assessment
			assessmentID, ctrID     uuid.UUID
			risk                    string
			irs, dol, abc, snapshot []byte
		)
		if err := rows.Scan(&assessmentID, &ctrID, &risk, &a.OverallScore,
			&irs, &dol, &abc, &snapshot, &a.AssessedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, sentinel.ErrNotFound
			}
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal(irs, &a.IRS); err != nil {
			return nil, fmt.Errorf("unmarshal irs score: %w", err)
		}
		if err := json.Unmarshal(dol, &a.DOL); err != nil {
			return nil, fmt.Errorf("unmarshal dol score: %w", err)
		}
		if err := json.Unmarshal(abc, &a.ABC); err != nil {
			return nil, fmt.Errorf("unmarshal abc score: %w", err)
		}
		if err := json.Unmarshal(snapshot, &a.Factors); err != nil {
			return nil, fmt.Errorf("unmarshal factor snapshot: %w", err)
		}
		a.ID = id.AssessmentID(assessmentID)
		a.ContractorID = id.ContractorID(ctrID)
		a.OverallRisk = models.RiskLevel(risk)
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return assessments, nil
}
