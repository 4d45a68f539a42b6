package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/repository"
)

// TaxonomyService manages tags, hooks and transition types. Tag mutations
// ripple into the denormalized search text of every attached reference, so
// they go through the repository's transactional helpers.
type TaxonomyService struct {
	taxonomy *repository.TaxonomyRepo
}

func NewTaxonomyService(taxonomy *repository.TaxonomyRepo) *TaxonomyService {
	return &TaxonomyService{taxonomy: taxonomy}
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.taxonomy.ListTags(ctx)
}

func (s *TaxonomyService) GetTag(ctx context.Context, id int64) (*model.Tag, error) {
	return s.taxonomy.FindTag(ctx, id)
}

// CreateTag adds a tag, reusing an existing one on a case-insensitive
// name match.
func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.taxonomy.GetOrCreateTag(ctx, name)
}

// RenameTag changes a tag's name and refreshes every attached reference.
func (s *TaxonomyService) RenameTag(ctx context.Context, id int64, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.taxonomy.RenameTag(ctx, id, name)
}

// DeleteTag removes a tag and refreshes every reference that carried it.
func (s *TaxonomyService) DeleteTag(ctx context.Context, id int64) error {
	return s.taxonomy.DeleteTag(ctx, id)
}

// MergeTags moves every video from one tag onto another, deletes the source
// tag and reports how many references moved.
func (s *TaxonomyService) MergeTags(ctx context.Context, fromID, toID int64) (int, error) {
	if fromID == toID {
		return 0, fmt.Errorf("%w: cannot merge a tag into itself", ErrValidation)
	}
	if _, err := s.taxonomy.FindTag(ctx, toID); err != nil {
		return 0, err
	}
	return s.taxonomy.TransferTagVideos(ctx, fromID, toID)
}

func (s *TaxonomyService) ListHooks(ctx context.Context) ([]model.Hook, error) {
	return s.taxonomy.ListHooks(ctx)
}

func (s *TaxonomyService) ListTransitionTypes(ctx context.Context) ([]model.TransitionType, error) {
	return s.taxonomy.ListTransitionTypes(ctx)
}

func (s *TaxonomyService) CreateTransitionType(ctx context.Context, name string) (*model.TransitionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.taxonomy.CreateTransitionType(ctx, name)
}

func (s *TaxonomyService) RenameTransitionType(ctx context.Context, id int64, name string) (*model.TransitionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.taxonomy.RenameTransitionType(ctx, id, name)
}

func (s *TaxonomyService) DeleteTransitionType(ctx context.Context, id int64) error {
	return s.taxonomy.DeleteTransitionType(ctx, id)
}
