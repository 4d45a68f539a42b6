package search

import (
	"strings"
	"testing"
)

func int64p(v int64) *int64 { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

func TestFiltersCompile_Empty(t *testing.T) {
	clauses, args := Filters{}.Compile(1)
	if len(clauses) != 0 || len(args) != 0 {
		t.Errorf("empty filters produced %d clauses, %d args", len(clauses), len(args))
	}
}

func TestFiltersCompile_Exact(t *testing.T) {
	f := Filters{ID: int64p(42), SourceURL: strp("https://youtu.be/x")}
	clauses, args := f.Compile(1)

	if len(clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(clauses))
	}
	if clauses[0] != "vr.id = $1" {
		t.Errorf("id clause = %q", clauses[0])
	}
	if clauses[1] != "vr.source_url = $2" {
		t.Errorf("source_url clause = %q", clauses[1])
	}
	if args[0] != int64(42) || args[1] != "https://youtu.be/x" {
		t.Errorf("args = %v", args)
	}
}

func TestFiltersCompile_Membership(t *testing.T) {
	f := Filters{
		CategoryIDs: []int64{1, 2, 3},
		TagIDs:      []int64{7},
		HookIDs:     []int64{5, 6},
		Platforms:   []string{"youtube", "tiktok"},
	}
	clauses, args := f.Compile(1)

	if len(clauses) != 4 {
		t.Fatalf("got %d clauses, want 4", len(clauses))
	}
	if !strings.Contains(clauses[0], "video_reference_category") || !strings.Contains(clauses[0], "ANY($1)") {
		t.Errorf("category clause = %q", clauses[0])
	}
	if !strings.Contains(clauses[1], "video_reference_tag") || !strings.Contains(clauses[1], "ANY($2)") {
		t.Errorf("tag clause = %q", clauses[1])
	}
	if clauses[2] != "vr.hook_id = ANY($3)" {
		t.Errorf("hook clause = %q", clauses[2])
	}
	if clauses[3] != "vr.platform = ANY($4)" {
		t.Errorf("platform clause = %q", clauses[3])
	}
	if len(args) != 4 {
		t.Fatalf("got %d args, want 4", len(args))
	}
}

func TestFiltersCompile_BoolFlags(t *testing.T) {
	f := Filters{
		HasVisualEffects: boolp(true),
		Has3D:            boolp(false),
	}
	clauses, args := f.Compile(1)

	if len(clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(clauses))
	}
	if clauses[0] != "vr.has_visual_effects = $1" || args[0] != true {
		t.Errorf("clause %q args %v", clauses[0], args)
	}
	// Explicit false is a constraint, not an absent filter.
	if clauses[1] != "vr.has_3d = $2" || args[1] != false {
		t.Errorf("clause %q args %v", clauses[1], args)
	}
}

func TestFiltersCompile_HasTutorial(t *testing.T) {
	clauses, args := Filters{HasTutorial: boolp(true)}.Compile(1)
	if len(clauses) != 1 || len(args) != 0 {
		t.Fatalf("clauses %v args %v", clauses, args)
	}
	if !strings.HasPrefix(clauses[0], "EXISTS") || !strings.Contains(clauses[0], "tutorials") {
		t.Errorf("has_tutorial clause = %q", clauses[0])
	}

	clauses, _ = Filters{HasTutorial: boolp(false)}.Compile(1)
	if !strings.HasPrefix(clauses[0], "NOT EXISTS") {
		t.Errorf("has_tutorial=false clause = %q", clauses[0])
	}
}

func TestFiltersCompile_ParamOffset(t *testing.T) {
	// When a text predicate already took $1, filters must number from $2.
	f := Filters{Pacings: []string{"fast"}, HasSoundDesign: boolp(true)}
	clauses, args := f.Compile(2)

	if clauses[0] != "vr.pacing = ANY($2)" {
		t.Errorf("pacing clause = %q", clauses[0])
	}
	if clauses[1] != "vr.has_sound_design = $3" {
		t.Errorf("sound design clause = %q", clauses[1])
	}
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
}
