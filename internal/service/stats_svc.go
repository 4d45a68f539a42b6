package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStats is the public snapshot served at /api/stats.
type CatalogStats struct {
	TotalReferences  int64            `json:"total_references"`
	TotalTags        int64            `json:"total_tags"`
	TotalCategories  int64            `json:"total_categories"`
	TotalTutorials   int64            `json:"total_tutorials"`
	TotalCollections int64            `json:"total_collections"`
	AvgQualityScore  float64          `json:"avg_quality_score"`
	ByPlatform       map[string]int64 `json:"by_platform"`
}

type StatsService struct {
	pool *pgxpool.Pool
}

func NewStatsService(pool *pgxpool.Pool) *StatsService {
	return &StatsService{pool: pool}
}

// GetStats aggregates catalog-wide counters.
func (s *StatsService) GetStats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{ByPlatform: map[string]int64{}}

	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM video_references),
			(SELECT COUNT(*) FROM tags),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM tutorials),
			(SELECT COUNT(*) FROM video_collections),
			(SELECT COALESCE(AVG(quality_score), 0) FROM video_references)`).
		Scan(&stats.TotalReferences, &stats.TotalTags, &stats.TotalCategories,
			&stats.TotalTutorials, &stats.TotalCollections, &stats.AvgQualityScore)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT platform, COUNT(*)
		FROM video_references
		WHERE platform IS NOT NULL
		GROUP BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var count int64
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, err
		}
		stats.ByPlatform[platform] = count
	}
	return stats, rows.Err()
}
