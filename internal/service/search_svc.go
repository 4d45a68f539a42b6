package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/repository"
	"github.com/refstash/refstash-go/internal/search"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// SearchParams carries one search request. CategoryIDs inside Filters are the
// caller's raw selection; the service expands them through the hierarchy.
type SearchParams struct {
	Query   string
	Filters search.Filters
	SortBy  string
	Page    int
	PerPage int
}

// SearchService composes the text-query, filter and sort compilers into one
// paginated query over video_references.
type SearchService struct {
	pool   *pgxpool.Pool
	videos *repository.VideoRepo
	tree   search.CategoryTree
}

func NewSearchService(pool *pgxpool.Pool, videos *repository.VideoRepo, tree search.CategoryTree) *SearchService {
	return &SearchService{pool: pool, videos: videos, tree: tree}
}

// Search runs one paginated search. Filters and text query compose
// orthogonally; the result is their intersection, ordered per SortBy (or
// relevance when a ranked text query is present and no key was given).
func (s *SearchService) Search(ctx context.Context, p SearchParams) (*model.VideoPage, error) {
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Page <= 0 {
		p.Page = 1
	}

	expanded, err := search.ExpandCategoryIDs(ctx, s.tree, p.Filters.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("expand categories: %w", err)
	}
	p.Filters.CategoryIDs = expanded

	tq := search.CompileText(p.Query)

	var (
		clauses []string
		args    []any
	)
	paramIdx := 1
	if clause, textArgs := tq.Clause(paramIdx); clause != "" {
		clauses = append(clauses, clause)
		args = append(args, textArgs...)
		paramIdx += len(textArgs)
	}
	filterClauses, filterArgs := p.Filters.Compile(paramIdx)
	clauses = append(clauses, filterClauses...)
	args = append(args, filterArgs...)
	paramIdx += len(filterArgs)

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM video_references vr` + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count results: %w", err)
	}

	selectCols := s.videos.Columns()
	if sel := tq.RelevanceSelect(1); sel != "" {
		selectCols += ", " + sel
	}

	query := `SELECT ` + selectCols + ` FROM video_references vr` + where +
		` ORDER BY ` + search.OrderBy(p.SortBy, tq.Ranked()) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, paramIdx, paramIdx+1)
	args = append(args, p.PerPage, (p.Page-1)*p.PerPage)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}
	defer rows.Close()

	videos := []model.VideoReference{}
	for rows.Next() {
		var v model.VideoReference
		if tq.Ranked() {
			err = repository.ScanVideo(rows, &v, &v.RelevanceScore)
		} else {
			err = repository.ScanVideo(rows, &v)
		}
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	videos, err = s.videos.LoadAssociations(ctx, videos)
	if err != nil {
		return nil, fmt.Errorf("load associations: %w", err)
	}

	lastPage := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &model.VideoPage{
		Data: videos,
		Meta: model.PageMeta{
			CurrentPage: p.Page,
			LastPage:    lastPage,
			PerPage:     p.PerPage,
			Total:       total,
		},
	}, nil
}
