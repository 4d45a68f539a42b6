package service

import (
	"testing"

	"github.com/refstash/refstash-go/internal/model"
)

func cat(id int64, parent *int64, name string) model.Category {
	return model.Category{ID: id, ParentID: parent, Name: name}
}

func ptr(v int64) *int64 { return &v }

func TestBuildCategoryTree(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		if got := BuildCategoryTree(nil); len(got) != 0 {
			t.Fatalf("expected empty tree, got %d roots", len(got))
		}
	})

	t.Run("nests two levels", func(t *testing.T) {
		flat := []model.Category{
			cat(1, nil, "Transitions"),
			cat(2, ptr(1), "Whip Pan"),
			cat(3, ptr(1), "Match Cut"),
			cat(4, nil, "Hooks"),
		}

		tree := BuildCategoryTree(flat)
		if len(tree) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(tree))
		}
		if tree[0].ID != 1 || len(tree[0].Children) != 2 {
			t.Errorf("root 1: got %d children, want 2", len(tree[0].Children))
		}
		if tree[1].ID != 4 || len(tree[1].Children) != 0 {
			t.Errorf("root 4 should have no children")
		}
	})

	t.Run("nests three levels", func(t *testing.T) {
		flat := []model.Category{
			cat(1, nil, "Editing"),
			cat(2, ptr(1), "Transitions"),
			cat(3, ptr(2), "Whip Pan"),
		}

		tree := BuildCategoryTree(flat)
		if len(tree) != 1 {
			t.Fatalf("expected 1 root, got %d", len(tree))
		}
		mid := tree[0].Children
		if len(mid) != 1 || mid[0].ID != 2 {
			t.Fatalf("expected child 2 under root")
		}
		if len(mid[0].Children) != 1 || mid[0].Children[0].ID != 3 {
			t.Errorf("expected grandchild 3 under node 2")
		}
	})

	t.Run("orphan parent treated as root", func(t *testing.T) {
		flat := []model.Category{
			cat(5, ptr(99), "Orphan"),
		}

		tree := BuildCategoryTree(flat)
		if len(tree) != 1 || tree[0].ID != 5 {
			t.Fatalf("orphan should surface as root, got %v", tree)
		}
	})

	t.Run("self-parent does not recurse", func(t *testing.T) {
		flat := []model.Category{
			cat(7, ptr(7), "Loop"),
		}

		tree := BuildCategoryTree(flat)
		if len(tree) != 1 || tree[0].ID != 7 {
			t.Fatalf("self-parented node should surface as root")
		}
		if len(tree[0].Children) != 0 {
			t.Errorf("self-parented node must not contain itself")
		}
	})

	t.Run("preserves input order among siblings", func(t *testing.T) {
		flat := []model.Category{
			cat(1, nil, "A"),
			cat(3, ptr(1), "First"),
			cat(2, ptr(1), "Second"),
		}

		tree := BuildCategoryTree(flat)
		kids := tree[0].Children
		if len(kids) != 2 || kids[0].ID != 3 || kids[1].ID != 2 {
			t.Errorf("sibling order not preserved: %v", kids)
		}
	})
}
