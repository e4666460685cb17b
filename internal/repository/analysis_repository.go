package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"apexfit/api/internal/models"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisRepository stores analysis records. Records are insert-only;
// there is deliberately no update path.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

const analysisColumns = `
	id, user_id, photo_url, photo_key,
	body_type, body_fat_range, strengths, focus_areas, posture_notes,
	fitness_level_estimate, summary, recommended_split,
	calorie_target, protein_target, carb_target, fat_target,
	raw_json, created_at
`

func (r *AnalysisRepository) Create(ctx context.Context, record models.AnalysisRecord) error {
	const query = `
		INSERT INTO analyses (
			id, user_id, photo_url, photo_key,
			body_type, body_fat_range, strengths, focus_areas, posture_notes,
			fitness_level_estimate, summary, recommended_split,
			calorie_target, protein_target, carb_target, fat_target,
			raw_json, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16,
			$17, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.PhotoURL,
		record.PhotoKey,
		record.BodyType,
		record.BodyFatRange,
		record.Strengths,
		record.FocusAreas,
		record.PostureNotes,
		record.FitnessLevelEstimate,
		record.Summary,
		record.RecommendedSplit,
		record.CalorieTarget,
		record.ProteinTarget,
		record.CarbTarget,
		record.FatTarget,
		record.RawJSON,
	)
	return err
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (models.AnalysisRecord, error) {
	const query = `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindByIDs loads several analyses at once for the timeline join.
func (r *AnalysisRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.AnalysisRecord, error) {
	if len(ids) == 0 {
		return map[string]models.AnalysisRecord{}, nil
	}

	const query = `SELECT ` + analysisColumns + ` FROM analyses WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]models.AnalysisRecord, len(ids))
	for rows.Next() {
		record, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		records[record.ID] = record
	}
	return records, rows.Err()
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.AnalysisRecord, error) {
	const query = `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

// List returns recent analyses across users, newest first (admin view).
func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]models.AnalysisRecord, error) {
	const query = `
		SELECT ` + analysisColumns + `
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *AnalysisRepository) list(ctx context.Context, query string, args ...any) ([]models.AnalysisRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		record, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *AnalysisRepository) scanOne(row pgx.Row) (models.AnalysisRecord, error) {
	record, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AnalysisRecord{}, ErrAnalysisNotFound
		}
		return models.AnalysisRecord{}, err
	}
	return record, nil
}

func (r *AnalysisRepository) scanRow(row pgx.Row) (models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.PhotoURL,
		&record.PhotoKey,
		&record.BodyType,
		&record.BodyFatRange,
		&record.Strengths,
		&record.FocusAreas,
		&record.PostureNotes,
		&record.FitnessLevelEstimate,
		&record.Summary,
		&record.RecommendedSplit,
		&record.CalorieTarget,
		&record.ProteinTarget,
		&record.CarbTarget,
		&record.FatTarget,
		&record.RawJSON,
		&record.CreatedAt,
	)
	return record, err
}
