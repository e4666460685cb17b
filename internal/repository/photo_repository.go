package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"apexfit/api/internal/models"
)

var ErrPhotoNotFound = errors.New("progress photo not found")

// PhotoRepository stores timeline entries. Insert-only, read-many.
type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

const photoColumns = `
	id, user_id, photo_url, photo_key, thumbnail_url, thumbnail_key,
	analysis_id, weight_kg, notes, taken_at, created_at
`

func (r *PhotoRepository) Create(ctx context.Context, photo models.ProgressPhoto) error {
	const query = `
		INSERT INTO progress_photos (
			id, user_id, photo_url, photo_key, thumbnail_url, thumbnail_key,
			analysis_id, weight_kg, notes, taken_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		photo.ID,
		photo.UserID,
		photo.PhotoURL,
		photo.PhotoKey,
		photo.ThumbnailURL,
		photo.ThumbnailKey,
		photo.AnalysisID,
		photo.WeightKg,
		photo.Notes,
		photo.TakenAt,
	)
	return err
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (models.ProgressPhoto, error) {
	const query = `SELECT ` + photoColumns + ` FROM progress_photos WHERE id = $1`

	photo, err := r.scanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ProgressPhoto{}, ErrPhotoNotFound
		}
		return models.ProgressPhoto{}, err
	}
	return photo, nil
}

// ListByUser returns the owner's timeline, most recent takenAt first.
func (r *PhotoRepository) ListByUser(ctx context.Context, userID string) ([]models.ProgressPhoto, error) {
	const query = `
		SELECT ` + photoColumns + `
		FROM progress_photos
		WHERE user_id = $1
		ORDER BY taken_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.ProgressPhoto
	for rows.Next() {
		photo, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) scanRow(row pgx.Row) (models.ProgressPhoto, error) {
	var photo models.ProgressPhoto
	err := row.Scan(
		&photo.ID,
		&photo.UserID,
		&photo.PhotoURL,
		&photo.PhotoKey,
		&photo.ThumbnailURL,
		&photo.ThumbnailKey,
		&photo.AnalysisID,
		&photo.WeightKg,
		&photo.Notes,
		&photo.TakenAt,
		&photo.CreatedAt,
	)
	return photo, err
}
