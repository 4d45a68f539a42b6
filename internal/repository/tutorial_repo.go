package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refstash/refstash-go/internal/model"
)

type TutorialRepo struct {
	pool *pgxpool.Pool
}

func NewTutorialRepo(pool *pgxpool.Pool) *TutorialRepo {
	return &TutorialRepo{pool: pool}
}

// ListForVideo returns all tutorials attached to one video reference.
func (r *TutorialRepo) ListForVideo(ctx context.Context, videoID int64) ([]model.Tutorial, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, video_reference_id, tutorial_url, label, start_sec, end_sec,
		       created_at, updated_at
		FROM tutorials
		WHERE video_reference_id = $1
		ORDER BY id`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutorials []model.Tutorial
	for rows.Next() {
		var t model.Tutorial
		if err := rows.Scan(&t.ID, &t.VideoReferenceID, &t.TutorialURL, &t.Label,
			&t.StartSec, &t.EndSec, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tutorials = append(tutorials, t)
	}
	return tutorials, rows.Err()
}

// Create inserts one tutorial row. The URL-or-segment invariant is enforced
// by the service before this is called.
func (r *TutorialRepo) Create(ctx context.Context, t *model.Tutorial) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO tutorials (video_reference_id, tutorial_url, label, start_sec, end_sec)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		t.VideoReferenceID, t.TutorialURL, t.Label, t.StartSec, t.EndSec,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// ReplaceForVideo swaps a video's tutorial set in one transaction.
func (r *TutorialRepo) ReplaceForVideo(ctx context.Context, videoID int64, tutorials []model.Tutorial) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tutorials WHERE video_reference_id = $1`, videoID); err != nil {
		return err
	}
	for i := range tutorials {
		t := &tutorials[i]
		t.VideoReferenceID = videoID
		err := tx.QueryRow(ctx, `
			INSERT INTO tutorials (video_reference_id, tutorial_url, label, start_sec, end_sec)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`,
			t.VideoReferenceID, t.TutorialURL, t.Label, t.StartSec, t.EndSec,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes one tutorial, scoped to its video so a mismatched pair
// of route ids cannot delete another reference's row.
func (r *TutorialRepo) Delete(ctx context.Context, videoID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tutorials WHERE id = $1 AND video_reference_id = $2`, id, videoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
