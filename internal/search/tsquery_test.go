package search

import "testing"

func TestCompileText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    TextMode
		tsquery string
		term    string
	}{
		{"empty", "", TextNone, "", ""},
		{"whitespace only", "   ", TextNone, "", ""},
		{"special chars only", "&|!():", TextNone, "", ""},
		{"single word", "cinematic", TextRanked, "cinematic", ""},
		{"two words", "cinematic ad", TextRanked, "cinematic & ad", ""},
		{"three words", "fast product demo", TextRanked, "fast & product & (demo)", ""},
		{"four words", "a1b b2c c3d d4e", TextRanked, "a1b & b2c & (c3d | d4e)", ""},
		{"five words", "one two three four five", TextRanked, "one & two & (three | four | five)", ""},
		{"strips operators", "cats&dogs fi|sh", TextRanked, "catsdogs & fish", ""},
		{"extra whitespace", "  slow   motion  ", TextRanked, "slow & motion", ""},
		{"short single char", "a", TextSubstring, "", "a"},
		{"short two chars", "ab", TextSubstring, "", "ab"},
		{"short after stripping", "a&b", TextSubstring, "", "a&b"},
		{"three chars uses index", "abc", TextRanked, "abc", ""},
		{"two single-char words use index", "a b", TextRanked, "a & b", ""},
		{"phrase", `"slow motion intro"`, TextRanked, "slow <-> motion <-> intro", ""},
		{"phrase strips operators", `"cut & paste"`, TextRanked, "cut <-> paste", ""},
		{"phrase single word", `"cinematic"`, TextRanked, "cinematic", ""},
		{"empty phrase", `""`, TextNone, "", ""},
		{"whitespace phrase", `"   "`, TextNone, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompileText(tt.input)
			if got.Mode != tt.mode {
				t.Fatalf("mode = %d, want %d", got.Mode, tt.mode)
			}
			if got.TSQuery != tt.tsquery {
				t.Errorf("tsquery = %q, want %q", got.TSQuery, tt.tsquery)
			}
			if got.Term != tt.term {
				t.Errorf("term = %q, want %q", got.Term, tt.term)
			}
		})
	}
}

func TestTextQueryClause_Ranked(t *testing.T) {
	q := CompileText("cinematic ad")

	clause, args := q.Clause(1)
	want := "vr.search_vector @@ to_tsquery('english', $1)"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(args) != 1 || args[0] != "cinematic & ad" {
		t.Errorf("args = %v, want [cinematic & ad]", args)
	}

	sel := q.RelevanceSelect(1)
	wantSel := "ts_rank_cd(vr.search_vector, to_tsquery('english', $1)) AS relevance_score"
	if sel != wantSel {
		t.Errorf("relevance select = %q, want %q", sel, wantSel)
	}
}

func TestTextQueryClause_Substring(t *testing.T) {
	q := CompileText("ab")
	if q.Ranked() {
		t.Fatal("short query must not take the ranked path")
	}

	clause, args := q.Clause(3)
	want := "(vr.title ILIKE $3 OR vr.search_profile ILIKE $3 OR vr.search_metadata ILIKE $3 OR vr.public_summary ILIKE $3)"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(args) != 1 || args[0] != "%ab%" {
		t.Errorf("args = %v, want [%%ab%%]", args)
	}
	if sel := q.RelevanceSelect(3); sel != "" {
		t.Errorf("substring query should have no relevance projection, got %q", sel)
	}
}

func TestTextQueryClause_None(t *testing.T) {
	q := CompileText("")
	clause, args := q.Clause(1)
	if clause != "" || args != nil {
		t.Errorf("empty query produced clause %q args %v", clause, args)
	}
	if q.Active() {
		t.Error("empty query reported active")
	}
}
