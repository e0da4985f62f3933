package internal

import (
	"regexp"
	"strings"
	"time"
)

const (
	// SourceIDLayout formats capture timestamps to second precision.
	// Two captures inside the same second therefore collide; the vault
	// disambiguates at allocation time.
	SourceIDLayout = "2006-01-02_150405"

	// DateLayout is the day-granular format used for last_touched and
	// due dates.
	DateLayout = "2006-01-02"

	maxNameLength = 100
)

var (
	nameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9 \-_]+`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// NewSourceID derives a capture identifier from the given time.
func NewSourceID(now time.Time) string {
	return now.Format(SourceIDLayout)
}

// SanitizeName turns a display name into a filesystem-safe file stem.
// Only alphanumerics, spaces, hyphens and underscores survive; whitespace
// runs collapse to a single space. When nothing survives, the source id is
// returned so the result is never empty. Idempotent for a fixed source id.
func SanitizeName(raw, sourceID string) string {
	s := nameUnsafe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
	if len(s) > maxNameLength {
		s = strings.TrimSpace(s[:maxNameLength])
	}
	if s == "" {
		return sourceID
	}
	return s
}
