package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refstash/refstash-go/internal/model"
)

type CollectionRepo struct {
	pool *pgxpool.Pool
}

func NewCollectionRepo(pool *pgxpool.Pool) *CollectionRepo {
	return &CollectionRepo{pool: pool}
}

// ListForUser returns a user's collections, default first.
func (r *CollectionRepo) ListForUser(ctx context.Context, userID string) ([]model.VideoCollection, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, is_default, share_token, created_at, updated_at
		FROM video_collections
		WHERE user_id = $1
		ORDER BY is_default DESC, name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []model.VideoCollection
	for rows.Next() {
		var c model.VideoCollection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.IsDefault,
			&c.ShareToken, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// Create inserts a collection with a pre-generated share token.
func (r *CollectionRepo) Create(ctx context.Context, c *model.VideoCollection) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO video_collections (user_id, name, is_default, share_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		c.UserID, c.Name, c.IsDefault, c.ShareToken,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// FindByID returns one collection.
func (r *CollectionRepo) FindByID(ctx context.Context, id int64) (*model.VideoCollection, error) {
	var c model.VideoCollection
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, is_default, share_token, created_at, updated_at
		FROM video_collections
		WHERE id = $1`, id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.IsDefault, &c.ShareToken, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByShareToken resolves a public share link to its collection.
func (r *CollectionRepo) FindByShareToken(ctx context.Context, token string) (*model.VideoCollection, error) {
	var c model.VideoCollection
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, is_default, share_token, created_at, updated_at
		FROM video_collections
		WHERE share_token = $1`, token).
		Scan(&c.ID, &c.UserID, &c.Name, &c.IsDefault, &c.ShareToken, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// VideoIDs returns the member video ids of a collection, newest first.
func (r *CollectionRepo) VideoIDs(ctx context.Context, collectionID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT video_reference_id FROM video_collection_items
		WHERE collection_id = $1
		ORDER BY created_at DESC`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddItem puts a video into a collection; duplicates are ignored.
func (r *CollectionRepo) AddItem(ctx context.Context, collectionID, videoID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO video_collection_items (collection_id, video_reference_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`, collectionID, videoID)
	return err
}

// RemoveItem takes a video out of a collection.
func (r *CollectionRepo) RemoveItem(ctx context.Context, collectionID, videoID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM video_collection_items
		WHERE collection_id = $1 AND video_reference_id = $2`, collectionID, videoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
