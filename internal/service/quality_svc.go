package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Completeness records which metadata aspects of a reference are filled in.
// The quality score is the filled share scaled to 0-100; it drives the
// quality_score sort ordering.
type Completeness struct {
	Preview         bool `json:"preview"`
	Summary         bool `json:"summary"`
	Duration        bool `json:"duration"`
	Platform        bool `json:"platform"`
	Pacing          bool `json:"pacing"`
	Hook            bool `json:"hook"`
	ProductionLevel bool `json:"production_level"`
	SearchProfile   bool `json:"search_profile"`
	Tags            bool `json:"tags"`
	Categories      bool `json:"categories"`
	Tutorials       bool `json:"tutorials"`
}

// Score returns the completeness-derived quality score.
func (c Completeness) Score() int {
	aspects := []bool{
		c.Preview, c.Summary, c.Duration, c.Platform, c.Pacing, c.Hook,
		c.ProductionLevel, c.SearchProfile, c.Tags, c.Categories, c.Tutorials,
	}
	filled := 0
	for _, ok := range aspects {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(aspects)
}

// QualityService maintains quality_score and completeness_flags. It is
// invoked by the batch worker after video changes and directly after create.
//
// ObserveRecalc, when set, receives the duration of every recalculation.
type QualityService struct {
	pool *pgxpool.Pool

	ObserveRecalc func(time.Duration)
}

func NewQualityService(pool *pgxpool.Pool) *QualityService {
	return &QualityService{pool: pool}
}

// Recalculate recomputes and persists one video's quality score.
func (s *QualityService) Recalculate(ctx context.Context, videoID int64) error {
	if s.ObserveRecalc != nil {
		start := time.Now()
		defer func() { s.ObserveRecalc(time.Since(start)) }()
	}
	var c Completeness
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(vr.preview_embed, '') <> '',
			COALESCE(vr.public_summary, '') <> '',
			vr.duration_sec IS NOT NULL,
			vr.platform IS NOT NULL,
			vr.pacing IS NOT NULL,
			vr.hook_id IS NOT NULL,
			vr.production_level IS NOT NULL,
			vr.search_profile <> '',
			EXISTS (SELECT 1 FROM video_reference_tag vrt WHERE vrt.video_reference_id = vr.id),
			EXISTS (SELECT 1 FROM video_reference_category vrc WHERE vrc.video_reference_id = vr.id),
			EXISTS (SELECT 1 FROM tutorials t WHERE t.video_reference_id = vr.id)
		FROM video_references vr
		WHERE vr.id = $1`, videoID).Scan(
		&c.Preview, &c.Summary, &c.Duration, &c.Platform, &c.Pacing, &c.Hook,
		&c.ProductionLevel, &c.SearchProfile, &c.Tags, &c.Categories, &c.Tutorials,
	)
	if err != nil {
		return err
	}

	flags, err := json.Marshal(c)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE video_references SET quality_score = $1, completeness_flags = $2
		WHERE id = $3`, c.Score(), flags, videoID)
	return err
}
