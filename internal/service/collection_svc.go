package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/repository"
)

// CollectionService manages user collections and their public share links.
type CollectionService struct {
	collections *repository.CollectionRepo
	videos      *repository.VideoRepo
	cache       *CacheService
}

func NewCollectionService(collections *repository.CollectionRepo, videos *repository.VideoRepo,
	cache *CacheService) *CollectionService {
	return &CollectionService{collections: collections, videos: videos, cache: cache}
}

// ListForUser returns a user's collections without members.
func (s *CollectionService) ListForUser(ctx context.Context, userID string) ([]model.VideoCollection, error) {
	return s.collections.ListForUser(ctx, userID)
}

// Create stores a new collection; the share token is generated here.
func (s *CollectionService) Create(ctx context.Context, userID, name string, isDefault bool) (*model.VideoCollection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	c := &model.VideoCollection{
		UserID:     userID,
		Name:       name,
		IsDefault:  isDefault,
		ShareToken: uuid.NewString(),
	}
	if err := s.collections.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SharedView resolves a share token to the collection with its member
// videos, through the cache.
func (s *CollectionService) SharedView(ctx context.Context, token string) (*model.VideoCollection, error) {
	if data, err := s.cache.GetSharedCollection(ctx, token); err == nil && data != nil {
		var c model.VideoCollection
		if err := json.Unmarshal(data, &c); err == nil {
			return &c, nil
		}
	}

	c, err := s.collections.FindByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	ids, err := s.collections.VideoIDs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	videos := make([]model.VideoReference, 0, len(ids))
	for _, id := range ids {
		v, err := s.videos.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	videos, err = s.videos.LoadAssociations(ctx, videos)
	if err != nil {
		return nil, err
	}
	c.VideoReferences = videos

	_ = s.cache.SetSharedCollection(ctx, token, c)
	return c, nil
}

// AddItem puts a video into a collection and refreshes the shared view.
func (s *CollectionService) AddItem(ctx context.Context, collectionID, videoID int64) error {
	c, err := s.collections.FindByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if err := s.collections.AddItem(ctx, collectionID, videoID); err != nil {
		return err
	}
	return s.cache.InvalidateSharedCollection(ctx, c.ShareToken)
}

// RemoveItem takes a video out of a collection and refreshes the shared view.
func (s *CollectionService) RemoveItem(ctx context.Context, collectionID, videoID int64) error {
	c, err := s.collections.FindByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if err := s.collections.RemoveItem(ctx, collectionID, videoID); err != nil {
		return err
	}
	return s.cache.InvalidateSharedCollection(ctx, c.ShareToken)
}
