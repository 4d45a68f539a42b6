package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/repository"
	"github.com/refstash/refstash-go/pkg/platform"
)

// ErrValidation marks caller errors that should surface as 422s.
var ErrValidation = errors.New("validation failed")

// VideoInput is the write payload for creating or updating a reference.
// Tags are free-form names resolved (or created) case-insensitively.
type VideoInput struct {
	Title             string           `json:"title"`
	SourceURL         string           `json:"source_url"`
	PreviewEmbed      *string          `json:"preview_embed"`
	PublicSummary     *string          `json:"public_summary"`
	DetailsPublic     json.RawMessage  `json:"details_public"`
	DurationSec       *int             `json:"duration_sec"`
	Platform          *string          `json:"platform"`
	Pacing            *string          `json:"pacing"`
	HookID            *int64           `json:"hook_id"`
	ProductionLevel   *string          `json:"production_level"`
	HasVisualEffects  bool             `json:"has_visual_effects"`
	Has3D             bool             `json:"has_3d"`
	HasAnimations     bool             `json:"has_animations"`
	HasTypography     bool             `json:"has_typography"`
	HasSoundDesign    bool             `json:"has_sound_design"`
	SearchProfile     string           `json:"search_profile"`
	SearchMetadata    *string          `json:"search_metadata"`
	Rating            *int             `json:"rating"`
	Tags              []string         `json:"tags"`
	CategoryIDs       []int64          `json:"category_ids"`
	TransitionTypeIDs []int64          `json:"transition_type_ids"`
	Tutorials         []model.Tutorial `json:"tutorials"`
}

// videoStore is the slice of the video repository the write path touches.
// *repository.VideoRepo satisfies it.
type videoStore interface {
	FindByID(ctx context.Context, id int64) (*model.VideoReference, error)
	Create(ctx context.Context, v *model.VideoReference) error
	Update(ctx context.Context, v *model.VideoReference) error
	Delete(ctx context.Context, id int64) error
	AttachTag(ctx context.Context, videoID, tagID int64) error
	DetachTag(ctx context.Context, videoID, tagID int64) error
	SyncTags(ctx context.Context, videoID int64, tagIDs []int64) error
	AttachCategory(ctx context.Context, videoID, categoryID int64) error
	DetachCategory(ctx context.Context, videoID, categoryID int64) error
	SyncCategories(ctx context.Context, videoID int64, categoryIDs []int64) error
	SyncTransitionTypes(ctx context.Context, videoID int64, typeIDs []int64) error
	LoadAssociations(ctx context.Context, videos []model.VideoReference) ([]model.VideoReference, error)
}

// tagStore resolves tag names on the write path. *repository.TaxonomyRepo
// satisfies it.
type tagStore interface {
	FindTag(ctx context.Context, id int64) (*model.Tag, error)
	GetOrCreateTag(ctx context.Context, name string) (*model.Tag, error)
}

// VideoService owns the write path of the catalog: CRUD plus the association
// changes that drive the denormalization maintainer.
type VideoService struct {
	videos    videoStore
	taxonomy  tagStore
	tutorials *repository.TutorialRepo
	quality   *QualityService
	cache     *CacheService
}

func NewVideoService(videos videoStore, taxonomy tagStore,
	tutorials *repository.TutorialRepo, quality *QualityService, cache *CacheService) *VideoService {
	return &VideoService{
		videos:    videos,
		taxonomy:  taxonomy,
		tutorials: tutorials,
		quality:   quality,
		cache:     cache,
	}
}

// Lookup returns one reference with associations, through the cache.
func (s *VideoService) Lookup(ctx context.Context, id int64) (*model.VideoReference, error) {
	if data, err := s.cache.GetVideo(ctx, id); err == nil && data != nil {
		var v model.VideoReference
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
	}

	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loaded, err := s.videos.LoadAssociations(ctx, []model.VideoReference{*v})
	if err != nil {
		return nil, err
	}
	v = &loaded[0]

	_ = s.cache.SetVideo(ctx, id, v)
	return v, nil
}

// Create stores a new reference with its associations and tutorials, then
// computes its initial quality score.
func (s *VideoService) Create(ctx context.Context, in VideoInput) (*model.VideoReference, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	v := in.toModel()
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}

	if err := s.applyAssociations(ctx, v.ID, in); err != nil {
		return nil, err
	}
	if len(in.Tutorials) > 0 {
		if err := s.tutorials.ReplaceForVideo(ctx, v.ID, in.Tutorials); err != nil {
			return nil, err
		}
	}

	if err := s.quality.Recalculate(ctx, v.ID); err != nil {
		return nil, fmt.Errorf("initial quality score: %w", err)
	}

	return s.reload(ctx, v.ID)
}

// Update rewrites an existing reference. Tag, category, transition and
// tutorial sets are replaced when present in the input.
func (s *VideoService) Update(ctx context.Context, id int64, in VideoInput) (*model.VideoReference, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	v := in.toModel()
	v.ID = id
	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}

	if err := s.applyAssociations(ctx, id, in); err != nil {
		return nil, err
	}
	if in.Tutorials != nil {
		if err := s.tutorials.ReplaceForVideo(ctx, id, in.Tutorials); err != nil {
			return nil, err
		}
	}

	return s.reload(ctx, id)
}

// Delete removes a reference and drops it from cache.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.InvalidateVideo(ctx, id)
}

// AttachTag associates one tag and invalidates the cached response.
func (s *VideoService) AttachTag(ctx context.Context, videoID, tagID int64) error {
	if _, err := s.taxonomy.FindTag(ctx, tagID); err != nil {
		return err
	}
	if err := s.videos.AttachTag(ctx, videoID, tagID); err != nil {
		return err
	}
	return s.cache.InvalidateVideo(ctx, videoID)
}

// DetachTag removes one tag association.
func (s *VideoService) DetachTag(ctx context.Context, videoID, tagID int64) error {
	if err := s.videos.DetachTag(ctx, videoID, tagID); err != nil {
		return err
	}
	return s.cache.InvalidateVideo(ctx, videoID)
}

// AttachCategory associates one category.
func (s *VideoService) AttachCategory(ctx context.Context, videoID, categoryID int64) error {
	if err := s.videos.AttachCategory(ctx, videoID, categoryID); err != nil {
		return err
	}
	return s.cache.InvalidateVideo(ctx, videoID)
}

// DetachCategory removes one category association.
func (s *VideoService) DetachCategory(ctx context.Context, videoID, categoryID int64) error {
	if err := s.videos.DetachCategory(ctx, videoID, categoryID); err != nil {
		return err
	}
	return s.cache.InvalidateVideo(ctx, videoID)
}

func (s *VideoService) validate(in *VideoInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.SourceURL = strings.TrimSpace(in.SourceURL)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.SourceURL == "" {
		return fmt.Errorf("%w: source_url is required", ErrValidation)
	}
	if in.DurationSec != nil && *in.DurationSec < 1 {
		return fmt.Errorf("%w: duration_sec must be >= 1", ErrValidation)
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 10) {
		return fmt.Errorf("%w: rating must be between 0 and 10", ErrValidation)
	}
	if in.Platform != nil && !model.ValidEnum(*in.Platform, model.Platforms) {
		return fmt.Errorf("%w: unknown platform %q", ErrValidation, *in.Platform)
	}
	if in.Pacing != nil && !model.ValidEnum(*in.Pacing, model.Pacings) {
		return fmt.Errorf("%w: unknown pacing %q", ErrValidation, *in.Pacing)
	}
	if in.ProductionLevel != nil && !model.ValidEnum(*in.ProductionLevel, model.ProductionLevels) {
		return fmt.Errorf("%w: unknown production_level %q", ErrValidation, *in.ProductionLevel)
	}
	for _, t := range in.Tutorials {
		if !t.Valid() {
			return fmt.Errorf("%w: tutorial needs a tutorial_url or a complete label/start_sec/end_sec segment", ErrValidation)
		}
	}

	// Default the platform from the source URL when not set explicitly.
	if in.Platform == nil {
		if norm := platform.Normalize(in.SourceURL); norm.Platform != "" {
			p := norm.Platform
			in.Platform = &p
		}
	}
	return nil
}

func (s *VideoService) applyAssociations(ctx context.Context, videoID int64, in VideoInput) error {
	if in.Tags != nil {
		tagIDs := make([]int64, 0, len(in.Tags))
		for _, name := range in.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			tag, err := s.taxonomy.GetOrCreateTag(ctx, name)
			if err != nil {
				return err
			}
			tagIDs = append(tagIDs, tag.ID)
		}
		if err := s.videos.SyncTags(ctx, videoID, tagIDs); err != nil {
			return err
		}
	}
	if in.CategoryIDs != nil {
		if err := s.videos.SyncCategories(ctx, videoID, in.CategoryIDs); err != nil {
			return err
		}
	}
	if in.TransitionTypeIDs != nil {
		if err := s.videos.SyncTransitionTypes(ctx, videoID, in.TransitionTypeIDs); err != nil {
			return err
		}
	}
	return nil
}

func (s *VideoService) reload(ctx context.Context, id int64) (*model.VideoReference, error) {
	if err := s.cache.InvalidateVideo(ctx, id); err != nil {
		return nil, err
	}
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loaded, err := s.videos.LoadAssociations(ctx, []model.VideoReference{*v})
	if err != nil {
		return nil, err
	}
	return &loaded[0], nil
}

func (in VideoInput) toModel() *model.VideoReference {
	rating := 1
	if in.Rating != nil {
		rating = *in.Rating
	}
	return &model.VideoReference{
		Title:            in.Title,
		SourceURL:        in.SourceURL,
		PreviewEmbed:     in.PreviewEmbed,
		PublicSummary:    in.PublicSummary,
		DetailsPublic:    in.DetailsPublic,
		DurationSec:      in.DurationSec,
		Platform:         in.Platform,
		Pacing:           in.Pacing,
		HookID:           in.HookID,
		ProductionLevel:  in.ProductionLevel,
		HasVisualEffects: in.HasVisualEffects,
		Has3D:            in.Has3D,
		HasAnimations:    in.HasAnimations,
		HasTypography:    in.HasTypography,
		HasSoundDesign:   in.HasSoundDesign,
		SearchProfile:    in.SearchProfile,
		SearchMetadata:   in.SearchMetadata,
		Rating:           rating,
	}
}
