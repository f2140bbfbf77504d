// Package pathname derives canonical, filesystem-safe library paths
// from free-text track metadata.
//
// This package contains:
//   - Sanitize: free text to an ASCII path segment
//   - Builder: composes segments into the canonical track path and
//     validates paths against the canonical pattern
//
// The canonical layout is fixed:
//
//	<root>/<artist>/<album>/<NN>_<title>.<ext>
//
// where NN is the track number zero-padded to two digits and every
// segment has passed through Sanitize.
package pathname
