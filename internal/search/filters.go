package search

import (
	"fmt"
	"strings"
)

// Filters holds the structural constraints of a search. Nil and empty fields
// impose no constraint. CategoryIDs must already be expanded through the
// category hierarchy (see ExpandCategoryIDs).
type Filters struct {
	ID        *int64
	SourceURL *string

	CategoryIDs []int64
	TagIDs      []int64
	HookIDs     []int64

	Platforms        []string
	Pacings          []string
	ProductionLevels []string

	HasVisualEffects *bool
	Has3D            *bool
	HasAnimations    *bool
	HasTypography    *bool
	HasSoundDesign   *bool

	HasTutorial *bool
}

// Compile renders every active filter as a WHERE predicate. Predicates
// combine with AND; multi-value filters are membership tests (OR within the
// list). paramIdx is the first free $N placeholder.
func (f Filters) Compile(paramIdx int) ([]string, []any) {
	b := clauseBuilder{idx: paramIdx}

	if f.ID != nil {
		b.add("vr.id = %s", *f.ID)
	}
	if f.SourceURL != nil && *f.SourceURL != "" {
		b.add("vr.source_url = %s", *f.SourceURL)
	}

	if len(f.CategoryIDs) > 0 {
		b.add(`EXISTS (
			SELECT 1 FROM video_reference_category vrc
			WHERE vrc.video_reference_id = vr.id AND vrc.category_id = ANY(%s))`, f.CategoryIDs)
	}
	if len(f.TagIDs) > 0 {
		b.add(`EXISTS (
			SELECT 1 FROM video_reference_tag vrt
			WHERE vrt.video_reference_id = vr.id AND vrt.tag_id = ANY(%s))`, f.TagIDs)
	}
	if len(f.HookIDs) > 0 {
		b.add("vr.hook_id = ANY(%s)", f.HookIDs)
	}

	if len(f.Platforms) > 0 {
		b.add("vr.platform = ANY(%s)", f.Platforms)
	}
	if len(f.Pacings) > 0 {
		b.add("vr.pacing = ANY(%s)", f.Pacings)
	}
	if len(f.ProductionLevels) > 0 {
		b.add("vr.production_level = ANY(%s)", f.ProductionLevels)
	}

	b.addBool("vr.has_visual_effects", f.HasVisualEffects)
	b.addBool("vr.has_3d", f.Has3D)
	b.addBool("vr.has_animations", f.HasAnimations)
	b.addBool("vr.has_typography", f.HasTypography)
	b.addBool("vr.has_sound_design", f.HasSoundDesign)

	if f.HasTutorial != nil {
		sub := "EXISTS (SELECT 1 FROM tutorials t WHERE t.video_reference_id = vr.id)"
		if !*f.HasTutorial {
			sub = "NOT " + sub
		}
		b.clauses = append(b.clauses, sub)
	}

	return b.clauses, b.args
}

type clauseBuilder struct {
	idx     int
	clauses []string
	args    []any
}

// add binds one arg and substitutes its $N placeholder for the single %s in
// the template.
func (b *clauseBuilder) add(template string, arg any) {
	clause := strings.Replace(template, "%s", fmt.Sprintf("$%d", b.idx), 1)
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, arg)
	b.idx++
}

func (b *clauseBuilder) addBool(column string, v *bool) {
	if v != nil {
		b.add(column+" = %s", *v)
	}
}
