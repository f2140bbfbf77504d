package pathname

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// symbolSubstitutions maps symbol sequences to words before the generic
// stripping pass. Order matters: longer patterns run first so "!!!"
// wins over whatever a single "!" would become.
var symbolSubstitutions = []struct {
	pattern     string
	replacement string
}{
	{"!!!", "_three_exclamation_marks_"},
	{"&", "_and_"},
	{"+", "_plus_"},
	{"@", "_at_"},
	{"$", "s"},
}

var (
	nonSegmentChars = regexp.MustCompile(`[^a-z0-9]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// Sanitize converts free text into a filesystem-safe path segment.
//
// The pipeline: transliterate to ASCII, lowercase, apply the symbol
// substitution table, replace everything outside [a-z0-9] with "_",
// collapse underscore runs, trim leading/trailing underscores.
//
// Sanitize is total over any input and idempotent. Input with no usable
// characters sanitizes to the empty string; callers composing paths
// must guard against degenerate empty segments.
func Sanitize(text string) string {
	s := unidecode.Unidecode(text)
	s = strings.ToLower(s)

	for _, sub := range symbolSubstitutions {
		s = strings.ReplaceAll(s, sub.pattern, sub.replacement)
	}

	s = nonSegmentChars.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// PadTrack zero-pads a sanitized track number segment to width 2.
// Segments already two or more characters wide pass through unchanged.
func PadTrack(segment string) string {
	if len(segment) >= 2 {
		return segment
	}
	return strings.Repeat("0", 2-len(segment)) + segment
}
