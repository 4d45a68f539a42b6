package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/search"
)

// videoColumns is the canonical select list for video_references rows,
// aliased vr. Scan order must match ScanVideo.
const videoColumns = `
	vr.id, vr.title, vr.source_url, vr.preview_embed, vr.public_summary,
	vr.details_public, vr.duration_sec, vr.platform, vr.pacing, vr.hook_id,
	vr.production_level, vr.has_visual_effects, vr.has_3d, vr.has_animations,
	vr.has_typography, vr.has_sound_design, vr.search_profile, vr.search_metadata,
	vr.search_tags, vr.search_categories, vr.quality_score, vr.completeness_flags,
	vr.rating, vr.created_at, vr.updated_at`

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// Columns exposes the canonical select list for query composition in the
// search orchestrator.
func (r *VideoRepo) Columns() string { return videoColumns }

// ScanVideo reads one row in videoColumns order. extra receives trailing
// projections (the relevance score on the ranked search path).
func ScanVideo(row pgx.Row, v *model.VideoReference, extra ...any) error {
	dest := []any{
		&v.ID, &v.Title, &v.SourceURL, &v.PreviewEmbed, &v.PublicSummary,
		&v.DetailsPublic, &v.DurationSec, &v.Platform, &v.Pacing, &v.HookID,
		&v.ProductionLevel, &v.HasVisualEffects, &v.Has3D, &v.HasAnimations,
		&v.HasTypography, &v.HasSoundDesign, &v.SearchProfile, &v.SearchMetadata,
		&v.SearchTags, &v.SearchCategories, &v.QualityScore, &v.CompletenessFlags,
		&v.Rating, &v.CreatedAt, &v.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// FindByID returns one video reference without associations.
func (r *VideoRepo) FindByID(ctx context.Context, id int64) (*model.VideoReference, error) {
	query := `SELECT ` + videoColumns + ` FROM video_references vr WHERE vr.id = $1`

	var v model.VideoReference
	if err := ScanVideo(r.pool.QueryRow(ctx, query, id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new video reference and fills in the generated fields.
func (r *VideoRepo) Create(ctx context.Context, v *model.VideoReference) error {
	query := `
		INSERT INTO video_references (
			title, source_url, preview_embed, public_summary, details_public,
			duration_sec, platform, pacing, hook_id, production_level,
			has_visual_effects, has_3d, has_animations, has_typography,
			has_sound_design, search_profile, search_metadata, rating
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, quality_score, rating, created_at, updated_at`

	rating := v.Rating
	if rating == 0 {
		rating = 1
	}

	return r.pool.QueryRow(ctx, query,
		v.Title, v.SourceURL, v.PreviewEmbed, v.PublicSummary, v.DetailsPublic,
		v.DurationSec, v.Platform, v.Pacing, v.HookID, v.ProductionLevel,
		v.HasVisualEffects, v.Has3D, v.HasAnimations, v.HasTypography,
		v.HasSoundDesign, v.SearchProfile, v.SearchMetadata, rating,
	).Scan(&v.ID, &v.QualityScore, &v.Rating, &v.CreatedAt, &v.UpdatedAt)
}

// Update rewrites the caller-mutable columns of an existing reference.
func (r *VideoRepo) Update(ctx context.Context, v *model.VideoReference) error {
	query := `
		UPDATE video_references SET
			title = $1, source_url = $2, preview_embed = $3, public_summary = $4,
			details_public = $5, duration_sec = $6, platform = $7, pacing = $8,
			hook_id = $9, production_level = $10, has_visual_effects = $11,
			has_3d = $12, has_animations = $13, has_typography = $14,
			has_sound_design = $15, search_profile = $16, search_metadata = $17,
			rating = $18, updated_at = NOW()
		WHERE id = $19
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		v.Title, v.SourceURL, v.PreviewEmbed, v.PublicSummary, v.DetailsPublic,
		v.DurationSec, v.Platform, v.Pacing, v.HookID, v.ProductionLevel,
		v.HasVisualEffects, v.Has3D, v.HasAnimations, v.HasTypography,
		v.HasSoundDesign, v.SearchProfile, v.SearchMetadata, v.Rating, v.ID,
	).Scan(&v.UpdatedAt)
}

// Delete removes a reference; tutorials and join rows cascade.
func (r *VideoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM video_references WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AttachTag adds one tag association and synchronously rebuilds search_tags
// inside the same transaction. Attaching an already-attached tag is a no-op.
func (r *VideoRepo) AttachTag(ctx context.Context, videoID, tagID int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO video_reference_tag (video_reference_id, tag_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, videoID, tagID)
		if err != nil {
			return err
		}
		return refreshSearchTags(ctx, tx, videoID)
	})
}

// DetachTag removes one tag association and rebuilds search_tags in the same
// transaction.
func (r *VideoRepo) DetachTag(ctx context.Context, videoID, tagID int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM video_reference_tag
			WHERE video_reference_id = $1 AND tag_id = $2`, videoID, tagID)
		if err != nil {
			return err
		}
		return refreshSearchTags(ctx, tx, videoID)
	})
}

// SyncTags replaces the full tag set of a video, then rebuilds search_tags.
func (r *VideoRepo) SyncTags(ctx context.Context, videoID int64, tagIDs []int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM video_reference_tag
			WHERE video_reference_id = $1 AND NOT (tag_id = ANY($2))`, videoID, tagIDs)
		if err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO video_reference_tag (video_reference_id, tag_id)
				VALUES ($1, $2) ON CONFLICT DO NOTHING`, videoID, tagID); err != nil {
				return err
			}
		}
		return refreshSearchTags(ctx, tx, videoID)
	})
}

// AttachCategory adds one category association and rebuilds search_categories
// in the same transaction.
func (r *VideoRepo) AttachCategory(ctx context.Context, videoID, categoryID int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO video_reference_category (video_reference_id, category_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, videoID, categoryID)
		if err != nil {
			return err
		}
		return refreshSearchCategories(ctx, tx, videoID)
	})
}

// DetachCategory removes one category association and rebuilds
// search_categories in the same transaction.
func (r *VideoRepo) DetachCategory(ctx context.Context, videoID, categoryID int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM video_reference_category
			WHERE video_reference_id = $1 AND category_id = $2`, videoID, categoryID)
		if err != nil {
			return err
		}
		return refreshSearchCategories(ctx, tx, videoID)
	})
}

// SyncCategories replaces the full category set of a video, then rebuilds
// search_categories. One transaction covers the join-row changes and the
// denormalized text.
func (r *VideoRepo) SyncCategories(ctx context.Context, videoID int64, categoryIDs []int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM video_reference_category
			WHERE video_reference_id = $1 AND NOT (category_id = ANY($2))`, videoID, categoryIDs)
		if err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO video_reference_category (video_reference_id, category_id)
				VALUES ($1, $2) ON CONFLICT DO NOTHING`, videoID, categoryID); err != nil {
				return err
			}
		}
		return refreshSearchCategories(ctx, tx, videoID)
	})
}

// SyncTransitionTypes replaces the transition type set of a video.
func (r *VideoRepo) SyncTransitionTypes(ctx context.Context, videoID int64, typeIDs []int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM video_reference_transition_type
			WHERE video_reference_id = $1 AND NOT (transition_type_id = ANY($2))`, videoID, typeIDs)
		if err != nil {
			return err
		}
		for _, typeID := range typeIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO video_reference_transition_type (video_reference_id, transition_type_id)
				VALUES ($1, $2) ON CONFLICT DO NOTHING`, videoID, typeID); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadAssociations eager-loads categories, tags, tutorials and hooks for a
// result page in four batch queries.
func (r *VideoRepo) LoadAssociations(ctx context.Context, videos []model.VideoReference) ([]model.VideoReference, error) {
	if len(videos) == 0 {
		return videos, nil
	}

	ids := make([]int64, len(videos))
	index := make(map[int64]int, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
		index[v.ID] = i
		videos[i].Categories = []model.Category{}
		videos[i].Tags = []model.Tag{}
		videos[i].Tutorials = []model.Tutorial{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT vrc.video_reference_id, c.id, c.parent_id, c.name, c.slug,
		       c.display_order, c.created_at, c.updated_at
		FROM video_reference_category vrc
		JOIN categories c ON c.id = vrc.category_id
		WHERE vrc.video_reference_id = ANY($1)
		ORDER BY c.display_order, c.name`, ids)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	for rows.Next() {
		var videoID int64
		var c model.Category
		if err := rows.Scan(&videoID, &c.ID, &c.ParentID, &c.Name, &c.Slug,
			&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		i := index[videoID]
		videos[i].Categories = append(videos[i].Categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT vrt.video_reference_id, t.id, t.name, t.created_at, t.updated_at
		FROM video_reference_tag vrt
		JOIN tags t ON t.id = vrt.tag_id
		WHERE vrt.video_reference_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	for rows.Next() {
		var videoID int64
		var t model.Tag
		if err := rows.Scan(&videoID, &t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		i := index[videoID]
		videos[i].Tags = append(videos[i].Tags, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, video_reference_id, tutorial_url, label, start_sec, end_sec,
		       created_at, updated_at
		FROM tutorials
		WHERE video_reference_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("load tutorials: %w", err)
	}
	for rows.Next() {
		var t model.Tutorial
		if err := rows.Scan(&t.ID, &t.VideoReferenceID, &t.TutorialURL, &t.Label,
			&t.StartSec, &t.EndSec, &t.CreatedAt, &t.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		i := index[t.VideoReferenceID]
		videos[i].Tutorials = append(videos[i].Tutorials, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hookIDs := make([]int64, 0, len(videos))
	for _, v := range videos {
		if v.HookID != nil {
			hookIDs = append(hookIDs, *v.HookID)
		}
	}
	if len(hookIDs) > 0 {
		rows, err = r.pool.Query(ctx, `
			SELECT id, name, created_at, updated_at FROM hooks WHERE id = ANY($1)`, hookIDs)
		if err != nil {
			return nil, fmt.Errorf("load hooks: %w", err)
		}
		hooks := make(map[int64]model.Hook)
		for rows.Next() {
			var h model.Hook
			if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt, &h.UpdatedAt); err != nil {
				rows.Close()
				return nil, err
			}
			hooks[h.ID] = h
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		for i, v := range videos {
			if v.HookID != nil {
				if h, ok := hooks[*v.HookID]; ok {
					hc := h
					videos[i].Hook = &hc
				}
			}
		}
	}

	return videos, nil
}

func (r *VideoRepo) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// refreshSearchTags recomputes the denormalized tag text for one video from
// its current associations. Runs on the caller's transaction so the join-row
// change and the text change commit together.
func refreshSearchTags(ctx context.Context, tx pgx.Tx, videoID int64) error {
	rows, err := tx.Query(ctx, `
		SELECT t.name
		FROM video_reference_tag vrt
		JOIN tags t ON t.id = vrt.tag_id
		WHERE vrt.video_reference_id = $1
		ORDER BY t.name`, videoID)
	if err != nil {
		return err
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE video_references SET search_tags = $1, updated_at = NOW()
		WHERE id = $2`, search.TagSearchText(names), videoID)
	return err
}

// refreshSearchCategories recomputes the denormalized category text (names
// and slugs) for one video on the caller's transaction.
func refreshSearchCategories(ctx context.Context, tx pgx.Tx, videoID int64) error {
	rows, err := tx.Query(ctx, `
		SELECT c.id, c.parent_id, c.name, c.slug, c.display_order, c.created_at, c.updated_at
		FROM video_reference_category vrc
		JOIN categories c ON c.id = vrc.category_id
		WHERE vrc.video_reference_id = $1
		ORDER BY c.name`, videoID)
	if err != nil {
		return err
	}
	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug,
			&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			rows.Close()
			return err
		}
		cats = append(cats, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE video_references SET search_categories = $1, updated_at = NOW()
		WHERE id = $2`, search.CategorySearchText(cats), videoID)
	return err
}
