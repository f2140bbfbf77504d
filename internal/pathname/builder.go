package pathname

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Builder composes sanitized metadata segments into canonical track
// paths under a fixed root, and validates paths against the canonical
// pattern. Root and extension are fixed at construction.
type Builder struct {
	root  string
	ext   string
	valid *regexp.Regexp
}

// NewBuilder returns a Builder for the given root directory and file
// extension (without the leading dot).
func NewBuilder(root, ext string) *Builder {
	root = strings.TrimRight(root, "/")
	pattern := fmt.Sprintf(`^%s/[A-Za-z0-9_]+/[A-Za-z0-9_]+/[0-9]{2}_[A-Za-z0-9_]+\.[A-Za-z0-9]{3,4}$`,
		regexp.QuoteMeta(root))
	return &Builder{
		root:  root,
		ext:   ext,
		valid: regexp.MustCompile(pattern),
	}
}

// Root returns the configured root directory.
func (b *Builder) Root() string { return b.root }

// BuildPath computes the canonical path for a track:
//
//	<root>/<sanitize(artist)>/<sanitize(album)>/<NN>_<sanitize(title)>.<ext>
//
// The track number is sanitized and zero-padded to two digits. Empty
// sanitizer output for any segment yields a degenerate path that
// IsValid will reject; the caller decides how to handle it.
func (b *Builder) BuildPath(artist, album, trackNo, title string) string {
	file := fmt.Sprintf("%s_%s.%s", PadTrack(Sanitize(trackNo)), Sanitize(title), b.ext)
	return path.Join(b.root, Sanitize(artist), Sanitize(album), file)
}

// IsValid reports whether p exactly matches the canonical pattern under
// the configured root. Matching is full-string: prefixes, suffixes and
// substring hits are rejected. A track segment wider than two digits
// fails, which signals upstream data corruption rather than a sanitizer
// problem.
func (b *Builder) IsValid(p string) bool {
	return b.valid.MatchString(p)
}
