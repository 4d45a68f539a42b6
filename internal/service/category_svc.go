package service

import (
	"context"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/repository"
)

// CategoryService exposes the category tree for browsing UIs.
type CategoryService struct {
	categories *repository.CategoryRepo
}

func NewCategoryService(categories *repository.CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

// Tree returns all categories nested under their roots, preserving the
// display order the repository emits.
func (s *CategoryService) Tree(ctx context.Context) ([]model.Category, error) {
	flat, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(flat), nil
}

// BuildCategoryTree nests a flat, pre-ordered category list. Nodes whose
// parent is missing from the list are treated as roots rather than dropped,
// and a seen set keeps malformed parent links from recursing forever.
func BuildCategoryTree(flat []model.Category) []model.Category {
	byID := make(map[int64]model.Category, len(flat))
	children := make(map[int64][]int64)
	var rootIDs []int64

	for _, c := range flat {
		byID[c.ID] = c
	}
	for _, c := range flat {
		if c.ParentID != nil && *c.ParentID != c.ID {
			if _, ok := byID[*c.ParentID]; ok {
				children[*c.ParentID] = append(children[*c.ParentID], c.ID)
				continue
			}
		}
		rootIDs = append(rootIDs, c.ID)
	}

	seen := make(map[int64]bool, len(flat))
	var build func(id int64) model.Category
	build = func(id int64) model.Category {
		node := byID[id]
		node.Children = nil
		for _, childID := range children[id] {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	out := make([]model.Category, 0, len(rootIDs))
	for _, id := range rootIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, build(id))
	}
	return out
}
