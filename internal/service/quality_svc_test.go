package service

import "testing"

func TestCompletenessScore(t *testing.T) {
	tests := []struct {
		name string
		c    Completeness
		want int
	}{
		{
			name: "empty reference scores zero",
			c:    Completeness{},
			want: 0,
		},
		{
			name: "fully described reference scores 100",
			c: Completeness{
				Preview: true, Summary: true, Duration: true, Platform: true,
				Pacing: true, Hook: true, ProductionLevel: true, SearchProfile: true,
				Tags: true, Categories: true, Tutorials: true,
			},
			want: 100,
		},
		{
			name: "single aspect",
			c:    Completeness{SearchProfile: true},
			want: 9,
		},
		{
			name: "typical half-filled reference",
			c: Completeness{
				Summary: true, Duration: true, Platform: true,
				SearchProfile: true, Tags: true, Categories: true,
			},
			want: 54,
		},
		{
			name: "missing only tutorials",
			c: Completeness{
				Preview: true, Summary: true, Duration: true, Platform: true,
				Pacing: true, Hook: true, ProductionLevel: true, SearchProfile: true,
				Tags: true, Categories: true,
			},
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}
