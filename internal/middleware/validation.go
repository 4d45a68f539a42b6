package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field limits matching database schema constraints.
const (
	MaxTitleLen  = 500 // video_references.title VARCHAR(500)
	MaxNameLen   = 255 // tags.name / categories.name VARCHAR(255)
	MaxSearchLen = 500
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ParseID parses a positive numeric route parameter.
func ParseID(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "id is required"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, "id must be a positive integer"
	}
	return id, ""
}

// ParseIDList parses a comma-separated id list query parameter. Blank and
// non-numeric entries are discarded rather than rejected, and duplicates are
// collapsed. An empty result means the filter is absent.
func ParseIDList(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id < 1 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// ParseStringList splits a comma-separated query parameter, dropping blanks.
func ParseStringList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseBoolParam parses an optional boolean query parameter. An absent or
// unrecognized value means no constraint.
func ParseBoolParam(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		v := true
		return &v
	case "0", "false", "no":
		v := false
		return &v
	}
	return nil
}

// ParsePage parses a pagination parameter, defaulting out-of-range values.
func ParsePage(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ValidateSearchQuery trims and bounds the free-text search parameter.
func ValidateSearchQuery(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > MaxSearchLen {
		q = q[:MaxSearchLen]
	}
	return q
}

// ValidateShareToken checks that a share token is a well-formed UUID.
func ValidateShareToken(token string) (string, string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "share token is required"
	}
	if _, err := uuid.Parse(token); err != nil {
		return "", "share token is malformed"
	}
	return token, ""
}

// ValidateUserID bounds the X-User-ID header used for collection ownership.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "X-User-ID header is required"
	}
	if len(id) > 64 {
		return "", "X-User-ID must be at most 64 characters"
	}
	return id, ""
}
