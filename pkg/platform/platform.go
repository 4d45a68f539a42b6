// Package platform normalizes short-form video URLs into a platform name
// and the platform's native video id.
package platform

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Platform names as stored in video_references.platform.
const (
	YouTube   = "youtube"
	TikTok    = "tiktok"
	Instagram = "instagram"
)

// Result is the outcome of normalizing a source URL. Platform and VideoID
// are empty when the URL does not match a known platform; Normalized is
// true only when a native video id was extracted.
type Result struct {
	Platform   string
	VideoID    string
	Normalized bool
}

var (
	youtubeHost   = regexp.MustCompile(`youtube\.com|youtu\.be`)
	tiktokHost    = regexp.MustCompile(`tiktok\.com`)
	instagramHost = regexp.MustCompile(`instagram\.com`)

	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	}
	tiktokVideo  = regexp.MustCompile(`tiktok\.com/@[^/]+/video/(\d+)`)
	tiktokMobile = regexp.MustCompile(`m\.tiktok\.com/v/(\d+)`)
	tiktokShort  = regexp.MustCompile(`vm\.tiktok\.com|t\.tiktok\.com`)

	instagramPatterns = []*regexp.Regexp{
		regexp.MustCompile(`instagram\.com/p/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`instagram\.com/reel/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`instagram\.com/tv/([a-zA-Z0-9_-]+)`),
	}
)

// Normalize inspects a URL without touching the network. TikTok short links
// come back with the platform detected but no video id; use a Resolver when
// those need to be expanded.
func Normalize(rawURL string) Result {
	trimmed := strings.TrimSpace(rawURL)
	// Host matching is case-insensitive but video ids are not.
	lowered := strings.ToLower(trimmed)

	switch {
	case youtubeHost.MatchString(lowered):
		return result(YouTube, firstMatch(youtubePatterns, trimmed))
	case tiktokHost.MatchString(lowered):
		return result(TikTok, tiktokID(trimmed))
	case instagramHost.MatchString(lowered):
		return result(Instagram, firstMatch(instagramPatterns, trimmed))
	}
	return Result{}
}

// Resolver expands platform short links before normalizing. The zero value
// is unusable; use NewResolver.
type Resolver struct {
	client *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{
			Timeout: 5 * time.Second,
			// The redirect target itself is the answer.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Normalize behaves like the package-level Normalize but follows TikTok
// short links (vm.tiktok.com, t.tiktok.com) one hop to recover the id.
// Resolution failures degrade to the network-free result.
func (r *Resolver) Normalize(ctx context.Context, rawURL string) Result {
	res := Normalize(rawURL)
	if res.Platform != TikTok || res.Normalized {
		return res
	}
	if !tiktokShort.MatchString(strings.ToLower(strings.TrimSpace(rawURL))) {
		return res
	}
	if target := r.resolveShortURL(ctx, rawURL); target != "" {
		return Normalize(target)
	}
	return res
}

func (r *Resolver) resolveShortURL(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	return resp.Header.Get("Location")
}

func tiktokID(url string) string {
	if m := tiktokVideo.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := tiktokMobile.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

func firstMatch(patterns []*regexp.Regexp, url string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

func result(platform, videoID string) Result {
	return Result{Platform: platform, VideoID: videoID, Normalized: videoID != ""}
}
