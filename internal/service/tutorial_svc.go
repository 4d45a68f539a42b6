package service

import (
	"context"
	"fmt"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/repository"
)

// TutorialService manages the tutorial links attached to a reference.
type TutorialService struct {
	tutorials *repository.TutorialRepo
	videos    *repository.VideoRepo
	cache     *CacheService
}

func NewTutorialService(tutorials *repository.TutorialRepo, videos *repository.VideoRepo,
	cache *CacheService) *TutorialService {
	return &TutorialService{tutorials: tutorials, videos: videos, cache: cache}
}

// ListForVideo returns a reference's tutorials in insertion order.
func (s *TutorialService) ListForVideo(ctx context.Context, videoID int64) ([]model.Tutorial, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.tutorials.ListForVideo(ctx, videoID)
}

// Create attaches one tutorial. A tutorial must carry either an external
// URL or a complete label/start/end segment.
func (s *TutorialService) Create(ctx context.Context, videoID int64, t *model.Tutorial) (*model.Tutorial, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tutorial needs a tutorial_url or a complete label/start_sec/end_sec segment", ErrValidation)
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}
	t.VideoReferenceID = videoID
	if err := s.tutorials.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes one tutorial from a reference.
func (s *TutorialService) Delete(ctx context.Context, videoID, tutorialID int64) error {
	if err := s.tutorials.Delete(ctx, videoID, tutorialID); err != nil {
		return err
	}
	return s.cache.InvalidateVideo(ctx, videoID)
}
