package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refstash/refstash-go/internal/model"
)

// TaxonomyRepo covers the flat lookup entities: tags, hooks and transition
// types. They share a shape (id, unique name, timestamps).
type TaxonomyRepo struct {
	pool *pgxpool.Pool
}

func NewTaxonomyRepo(pool *pgxpool.Pool) *TaxonomyRepo {
	return &TaxonomyRepo{pool: pool}
}

// ListTags returns all tags ordered by name.
func (r *TaxonomyRepo) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// FindTag returns one tag by id.
func (r *TaxonomyRepo) FindTag(ctx context.Context, id int64) (*model.Tag, error) {
	var t model.Tag
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetOrCreateTag finds a tag by case-insensitive name, creating it if absent.
func (r *TaxonomyRepo) GetOrCreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)

	var t model.Tag
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM tags WHERE LOWER(name) = LOWER($1)`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == nil {
		return &t, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	// The conflict target matches the case-insensitive unique index, so two
	// concurrent writers racing on "Retro" vs "retro" converge on one row.
	err = r.pool.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (LOWER(name)) DO UPDATE SET updated_at = tags.updated_at
		RETURNING id, name, created_at, updated_at`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new uniquely-named tag.
func (r *TaxonomyRepo) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	var t model.Tag
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RenameTag updates a tag's name and refreshes search_tags on every video
// carrying it, since the denormalized text embeds the old name.
func (r *TaxonomyRepo) RenameTag(ctx context.Context, id int64, name string) (*model.Tag, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var t model.Tag
	err = tx.QueryRow(ctx, `
		UPDATE tags SET name = $1, updated_at = NOW() WHERE id = $2
		RETURNING id, name, created_at, updated_at`, name, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := refreshSearchTagsForTag(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTag removes a tag. Join rows cascade; affected videos get their
// search_tags rebuilt in the same transaction.
func (r *TaxonomyRepo) DeleteTag(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	videoIDs, err := videoIDsForTag(ctx, tx, id)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	for _, videoID := range videoIDs {
		if err := refreshSearchTags(ctx, tx, videoID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// TransferTagVideos moves every video from one tag to another, rebuilding
// search_tags on each affected video.
func (r *TaxonomyRepo) TransferTagVideos(ctx context.Context, fromID, toID int64) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	videoIDs, err := videoIDsForTag(ctx, tx, fromID)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO video_reference_tag (video_reference_id, tag_id)
		SELECT video_reference_id, $1 FROM video_reference_tag WHERE tag_id = $2
		ON CONFLICT DO NOTHING`, toID, fromID)
	if err != nil {
		return 0, err
	}
	_, err = tx.Exec(ctx, `DELETE FROM video_reference_tag WHERE tag_id = $1`, fromID)
	if err != nil {
		return 0, err
	}

	for _, videoID := range videoIDs {
		if err := refreshSearchTags(ctx, tx, videoID); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(videoIDs), nil
}

// ListHooks returns all hooks ordered by name.
func (r *TaxonomyRepo) ListHooks(ctx context.Context) ([]model.Hook, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM hooks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hooks []model.Hook
	for rows.Next() {
		var h model.Hook
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hooks = append(hooks, h)
	}
	return hooks, rows.Err()
}

// ListTransitionTypes returns all transition types ordered by name.
func (r *TaxonomyRepo) ListTransitionTypes(ctx context.Context) ([]model.TransitionType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM transition_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []model.TransitionType
	for rows.Next() {
		var tt model.TransitionType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.CreatedAt, &tt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

// CreateTransitionType inserts a new transition type.
func (r *TaxonomyRepo) CreateTransitionType(ctx context.Context, name string) (*model.TransitionType, error) {
	var tt model.TransitionType
	err := r.pool.QueryRow(ctx, `
		INSERT INTO transition_types (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at`, name).
		Scan(&tt.ID, &tt.Name, &tt.CreatedAt, &tt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// RenameTransitionType updates a transition type's name.
func (r *TaxonomyRepo) RenameTransitionType(ctx context.Context, id int64, name string) (*model.TransitionType, error) {
	var tt model.TransitionType
	err := r.pool.QueryRow(ctx, `
		UPDATE transition_types SET name = $1, updated_at = NOW() WHERE id = $2
		RETURNING id, name, created_at, updated_at`, name, id).
		Scan(&tt.ID, &tt.Name, &tt.CreatedAt, &tt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// DeleteTransitionType removes a transition type; join rows cascade.
func (r *TaxonomyRepo) DeleteTransitionType(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transition_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func videoIDsForTag(ctx context.Context, tx pgx.Tx, tagID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, `
		SELECT video_reference_id FROM video_reference_tag WHERE tag_id = $1`, tagID)
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

// refreshSearchTagsForTag rebuilds search_tags for every video carrying the
// given tag (used after renames).
func refreshSearchTagsForTag(ctx context.Context, tx pgx.Tx, tagID int64) error {
	ids, err := videoIDsForTag(ctx, tx, tagID)
	if err != nil {
		return err
	}
	for _, videoID := range ids {
		if err := refreshSearchTags(ctx, tx, videoID); err != nil {
			return err
		}
	}
	return nil
}
