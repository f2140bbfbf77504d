package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied to fields missing from a container.
const (
	DefaultTitle = "Unknown"
	DefaultYear  = "Unknown"
)

// TrackMetadata is the tag schema of a single track.
//
// A zero value is not useful on its own; use NewTrackMetadata to get a
// value with defaults applied. Once constructed the value is treated as
// immutable by the core: edits produce a new value.
type TrackMetadata struct {
	Title          string
	TrackArtists   []string
	AlbumArtist    string
	OriginalArtist string
	Album          string
	Compilation    bool
	TrackNo        int
	TotalTracks    int
	DiskNo         int
	TotalDisks     int
	Year           string
	Genre          string

	// Cover holds raw embedded front-cover image bytes, nil when the
	// track has no cover.
	Cover []byte
}

// NewTrackMetadata returns a TrackMetadata with all defaults applied:
// "Unknown" title and year, (1,1) track and disk pairs, no compilation
// flag, no cover.
func NewTrackMetadata() TrackMetadata {
	return TrackMetadata{
		Title:       DefaultTitle,
		Year:        DefaultYear,
		TrackNo:     1,
		TotalTracks: 1,
		DiskNo:      1,
		TotalDisks:  1,
	}
}

// Artist returns the track artists joined with ", ". An empty artist
// list yields "".
func (m TrackMetadata) Artist() string {
	return strings.Join(m.TrackArtists, ", ")
}

// HasCover reports whether the track carries embedded cover image data.
func (m TrackMetadata) HasCover() bool {
	return len(m.Cover) > 0
}

// ParsePair parses a numeric pair field from its raw frame text.
//
// "3/12" parses to (3, 12). A bare number "3" normalizes to (3, 1).
// Anything unparseable falls back to (1, 1) with ok=false, so callers
// that want to treat garbage as a validation problem can, while decode
// keeps working on dirty real-world tags.
func ParsePair(raw string) (n, total int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, 1, false
	}

	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		left, errL := strconv.Atoi(strings.TrimSpace(raw[:idx]))
		right, errR := strconv.Atoi(strings.TrimSpace(raw[idx+1:]))
		if errL != nil || errR != nil || left < 0 || right < 0 {
			return 1, 1, false
		}
		return left, right, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 1, 1, false
	}
	return v, 1, true
}

// FormatPair renders a numeric pair back to its "n/total" frame text.
func FormatPair(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}

// Catalog boundary keys. The catalog layer exchanges metadata with the
// core as a flat map under these names; record identifiers never cross
// the boundary.
const (
	KeyTitle          = "title"
	KeyArtists        = "track_artists"
	KeyAlbumArtist    = "album_artist"
	KeyOriginalArtist = "original_artist"
	KeyAlbum          = "album"
	KeyCompilation    = "compilation"
	KeyTrackNo        = "track_no"
	KeyTotalTracks    = "total_tracks"
	KeyDiskNo         = "disk_no"
	KeyTotalDisks     = "total_disks"
	KeyYear           = "year"
	KeyGenre          = "genre"
	KeyCover          = "cover_image"
)

// Map flattens the metadata into the catalog boundary representation.
// Artists are comma-joined; the cover entry is present only when the
// track has one.
func (m TrackMetadata) Map() map[string]any {
	out := map[string]any{
		KeyTitle:          m.Title,
		KeyArtists:        m.Artist(),
		KeyAlbumArtist:    m.AlbumArtist,
		KeyOriginalArtist: m.OriginalArtist,
		KeyAlbum:          m.Album,
		KeyCompilation:    m.Compilation,
		KeyTrackNo:        m.TrackNo,
		KeyTotalTracks:    m.TotalTracks,
		KeyDiskNo:         m.DiskNo,
		KeyTotalDisks:     m.TotalDisks,
		KeyYear:           m.Year,
		KeyGenre:          m.Genre,
	}
	if m.HasCover() {
		out[KeyCover] = m.Cover
	}
	return out
}

// FromMap rebuilds a TrackMetadata from the catalog boundary map.
// Missing keys keep their defaults. Artists accept either a single
// comma-joined string or a list of strings.
func FromMap(fields map[string]any) TrackMetadata {
	m := NewTrackMetadata()

	if v, ok := fields[KeyTitle].(string); ok && v != "" {
		m.Title = v
	}
	switch v := fields[KeyArtists].(type) {
	case string:
		if v != "" {
			m.TrackArtists = splitArtists(v)
		}
	case []string:
		m.TrackArtists = v
	}
	if v, ok := fields[KeyAlbumArtist].(string); ok {
		m.AlbumArtist = v
	}
	if v, ok := fields[KeyOriginalArtist].(string); ok {
		m.OriginalArtist = v
	}
	if v, ok := fields[KeyAlbum].(string); ok {
		m.Album = v
	}
	if v, ok := fields[KeyCompilation].(bool); ok {
		m.Compilation = v
	}
	if v, ok := fields[KeyTrackNo].(int); ok && v > 0 {
		m.TrackNo = v
	}
	if v, ok := fields[KeyTotalTracks].(int); ok && v > 0 {
		m.TotalTracks = v
	}
	if v, ok := fields[KeyDiskNo].(int); ok && v > 0 {
		m.DiskNo = v
	}
	if v, ok := fields[KeyTotalDisks].(int); ok && v > 0 {
		m.TotalDisks = v
	}
	if v, ok := fields[KeyYear].(string); ok && v != "" {
		m.Year = v
	}
	if v, ok := fields[KeyGenre].(string); ok {
		m.Genre = v
	}
	if v, ok := fields[KeyCover].([]byte); ok && len(v) > 0 {
		m.Cover = v
	}
	return m
}

func splitArtists(joined string) []string {
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
