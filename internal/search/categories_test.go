package search

import (
	"context"
	"testing"
)

// fakeTree is an in-memory CategoryTree: parents maps id -> parent (0 = root).
type fakeTree struct {
	parents map[int64]int64
}

func (f fakeTree) RootIDs(_ context.Context, ids []int64) ([]int64, error) {
	var roots []int64
	for _, id := range ids {
		if p, ok := f.parents[id]; ok && p == 0 {
			roots = append(roots, id)
		}
	}
	return roots, nil
}

func (f fakeTree) ChildIDs(_ context.Context, parentID int64) ([]int64, error) {
	var children []int64
	for id, p := range f.parents {
		if p == parentID {
			children = append(children, id)
		}
	}
	return children, nil
}

func contains(ids []int64, want int64) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestExpandCategoryIDs_Empty(t *testing.T) {
	out, err := ExpandCategoryIDs(context.Background(), fakeTree{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty expansion, got %v", out)
	}
}

func TestExpandCategoryIDs_RootExpandsToDescendants(t *testing.T) {
	// 1 (root) -> 2, 3; 3 -> 4; 10 (root) -> 11
	tree := fakeTree{parents: map[int64]int64{1: 0, 2: 1, 3: 1, 4: 3, 10: 0, 11: 10}}

	out, err := ExpandCategoryIDs(context.Background(), tree, []int64{1})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []int64{1, 2, 3, 4} {
		if !contains(out, want) {
			t.Errorf("expansion of root 1 missing %d: %v", want, out)
		}
	}
	if contains(out, 10) || contains(out, 11) {
		t.Errorf("expansion leaked an unrelated subtree: %v", out)
	}
}

func TestExpandCategoryIDs_LeafPassesThrough(t *testing.T) {
	tree := fakeTree{parents: map[int64]int64{1: 0, 2: 1, 3: 2}}

	// 2 is not a root: it contributes only itself even though 3 is its child.
	out, err := ExpandCategoryIDs(context.Background(), tree, []int64{2})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 2 {
		t.Errorf("leaf expansion = %v, want [2]", out)
	}
}

func TestExpandCategoryIDs_Dedupes(t *testing.T) {
	tree := fakeTree{parents: map[int64]int64{1: 0, 2: 1}}

	out, err := ExpandCategoryIDs(context.Background(), tree, []int64{1, 2, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("expected deduplicated set of 2, got %v", out)
	}
}

func TestExpandCategoryIDs_CycleTerminates(t *testing.T) {
	// Corrupt data: cyclicTree adds a 3 -> 2 edge, forming 2 -> 3 -> 2.
	cyc := cyclicTree{fakeTree{parents: map[int64]int64{1: 0, 2: 1, 3: 2}}}

	out, err := ExpandCategoryIDs(context.Background(), cyc, []int64{1})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []int64{1, 2, 3} {
		if !contains(out, want) {
			t.Errorf("cycle expansion missing %d: %v", want, out)
		}
	}
}

// cyclicTree reports 2 as a child of 3 on top of the base tree, forming 2->3->2.
type cyclicTree struct {
	fakeTree
}

func (c cyclicTree) ChildIDs(ctx context.Context, parentID int64) ([]int64, error) {
	children, err := c.fakeTree.ChildIDs(ctx, parentID)
	if parentID == 3 {
		children = append(children, 2)
	}
	return children, err
}
