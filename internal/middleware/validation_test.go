package middleware

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"trims whitespace", "  7  ", 7, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"non-numeric", "abc", 0, true},
		{"sql injection", "1; DROP--", 0, true},
		{"float", "1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ParseID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "5", []int64{5}},
		{"multiple", "1,2,3", []int64{1, 2, 3}},
		{"spaces around entries", " 1 , 2 ", []int64{1, 2}},
		{"non-numeric discarded", "1,abc,3", []int64{1, 3}},
		{"all invalid", "a,b,c", nil},
		{"duplicates collapsed", "2,2,3,2", []int64{2, 3}},
		{"zero and negative discarded", "0,-1,4", []int64{4}},
		{"trailing comma", "1,2,", []int64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIDList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "youtube", []string{"youtube"}},
		{"multiple", "youtube,tiktok", []string{"youtube", "tiktok"}},
		{"blanks dropped", "youtube,,tiktok, ", []string{"youtube", "tiktok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStringList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBoolParam(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", "yes", " true "}
	for _, in := range truthy {
		if got := ParseBoolParam(in); got == nil || !*got {
			t.Errorf("ParseBoolParam(%q) = %v, want true", in, got)
		}
	}
	falsy := []string{"0", "false", "no"}
	for _, in := range falsy {
		if got := ParseBoolParam(in); got == nil || *got {
			t.Errorf("ParseBoolParam(%q) = %v, want false", in, got)
		}
	}
	absent := []string{"", "maybe", "2"}
	for _, in := range absent {
		if got := ParseBoolParam(in); got != nil {
			t.Errorf("ParseBoolParam(%q) = %v, want nil", in, *got)
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		input string
		def   int
		want  int
	}{
		{"3", 1, 3},
		{"", 1, 1},
		{"0", 1, 1},
		{"-2", 20, 20},
		{"abc", 20, 20},
	}
	for _, tt := range tests {
		if got := ParsePage(tt.input, tt.def); got != tt.want {
			t.Errorf("ParsePage(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestValidateSearchQuery(t *testing.T) {
	if got := ValidateSearchQuery("  cyberpunk  "); got != "cyberpunk" {
		t.Errorf("trim failed: got %q", got)
	}
	long := strings.Repeat("x", MaxSearchLen+100)
	if got := ValidateSearchQuery(long); len(got) != MaxSearchLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxSearchLen)
	}
}

func TestValidateShareToken(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "3f2b8c9e-1a4d-4e6f-9b2a-7c5d8e1f0a3b", false},
		{"trims whitespace", " 3f2b8c9e-1a4d-4e6f-9b2a-7c5d8e1f0a3b ", false},
		{"empty", "", true},
		{"malformed", "not-a-uuid", true},
		{"sql injection", "'; DROP--", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateShareToken(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	if _, errMsg := ValidateUserID("user-123"); errMsg != "" {
		t.Errorf("unexpected error: %s", errMsg)
	}
	if _, errMsg := ValidateUserID(""); errMsg == "" {
		t.Errorf("expected error for empty id")
	}
	if _, errMsg := ValidateUserID(strings.Repeat("a", 65)); errMsg == "" {
		t.Errorf("expected error for oversized id")
	}
}
