package search

import "context"

// CategoryTree answers the two lookups hierarchy expansion needs. Implemented
// by repository.CategoryRepo; tests use an in-memory map.
type CategoryTree interface {
	// RootIDs returns the subset of ids whose category has no parent.
	RootIDs(ctx context.Context, ids []int64) ([]int64, error)
	// ChildIDs returns the direct children of the given category.
	ChildIDs(ctx context.Context, parentID int64) ([]int64, error)
}

// ExpandCategoryIDs widens the requested set so that selecting a root
// category also selects every descendant. Non-root ids pass through
// unexpanded. Traversal is an explicit BFS with a visited set, so a corrupt
// parent link cycle terminates instead of recursing forever.
func ExpandCategoryIDs(ctx context.Context, tree CategoryTree, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(ids))
	var out []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	roots, err := tree.RootIDs(ctx, out)
	if err != nil {
		return nil, err
	}

	queue := append([]int64(nil), roots...)
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, err := tree.ChildIDs(ctx, parent)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
			queue = append(queue, child)
		}
	}

	return out, nil
}
