package platform

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPlatform string
		wantVideoID  string
		wantOK       bool
	}{
		{
			name:         "youtube watch",
			url:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantPlatform: YouTube,
			wantVideoID:  "dQw4w9WgXcQ",
			wantOK:       true,
		},
		{
			name:         "youtube short link",
			url:          "https://youtu.be/dQw4w9WgXcQ",
			wantPlatform: YouTube,
			wantVideoID:  "dQw4w9WgXcQ",
			wantOK:       true,
		},
		{
			name:         "youtube shorts",
			url:          "https://www.youtube.com/shorts/aB3_x9Kl0Qw",
			wantPlatform: YouTube,
			wantVideoID:  "aB3_x9Kl0Qw",
			wantOK:       true,
		},
		{
			name:         "youtube embed",
			url:          "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantPlatform: YouTube,
			wantVideoID:  "dQw4w9WgXcQ",
			wantOK:       true,
		},
		{
			name:         "mobile youtube",
			url:          "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			wantPlatform: YouTube,
			wantVideoID:  "dQw4w9WgXcQ",
			wantOK:       true,
		},
		{
			name:         "video id case survives",
			url:          "https://youtu.be/AbCdEfGhIjK",
			wantPlatform: YouTube,
			wantVideoID:  "AbCdEfGhIjK",
			wantOK:       true,
		},
		{
			name:         "tiktok standard",
			url:          "https://www.tiktok.com/@creator/video/7294858291053448481",
			wantPlatform: TikTok,
			wantVideoID:  "7294858291053448481",
			wantOK:       true,
		},
		{
			name:         "tiktok mobile",
			url:          "https://m.tiktok.com/v/7294858291053448481",
			wantPlatform: TikTok,
			wantVideoID:  "7294858291053448481",
			wantOK:       true,
		},
		{
			name:         "tiktok short link needs resolution",
			url:          "https://vm.tiktok.com/ZMhxyz/",
			wantPlatform: TikTok,
			wantVideoID:  "",
			wantOK:       false,
		},
		{
			name:         "instagram reel",
			url:          "https://www.instagram.com/reel/Cx1YzAbcDef/",
			wantPlatform: Instagram,
			wantVideoID:  "Cx1YzAbcDef",
			wantOK:       true,
		},
		{
			name:         "instagram post",
			url:          "https://www.instagram.com/p/Cx1YzAbcDef/",
			wantPlatform: Instagram,
			wantVideoID:  "Cx1YzAbcDef",
			wantOK:       true,
		},
		{
			name:         "instagram tv",
			url:          "https://www.instagram.com/tv/Cx1YzAbcDef/",
			wantPlatform: Instagram,
			wantVideoID:  "Cx1YzAbcDef",
			wantOK:       true,
		},
		{
			name:         "unknown host",
			url:          "https://vimeo.com/123456",
			wantPlatform: "",
			wantVideoID:  "",
			wantOK:       false,
		},
		{
			name:         "surrounding whitespace",
			url:          "  https://youtu.be/dQw4w9WgXcQ  ",
			wantPlatform: YouTube,
			wantVideoID:  "dQw4w9WgXcQ",
			wantOK:       true,
		},
		{
			name:         "youtube page without video",
			url:          "https://www.youtube.com/feed/subscriptions",
			wantPlatform: YouTube,
			wantVideoID:  "",
			wantOK:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.url)
			if got.Platform != tt.wantPlatform {
				t.Errorf("Platform = %q, want %q", got.Platform, tt.wantPlatform)
			}
			if got.VideoID != tt.wantVideoID {
				t.Errorf("VideoID = %q, want %q", got.VideoID, tt.wantVideoID)
			}
			if got.Normalized != tt.wantOK {
				t.Errorf("Normalized = %v, want %v", got.Normalized, tt.wantOK)
			}
		})
	}
}
