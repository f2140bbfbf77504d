// Package model provides the value types exchanged between the
// ingestion core and its callers.
//
// This package defines:
//   - TrackMetadata: the editable tag schema of a track
//   - TrackInfo: read-only technical characteristics of a container
//   - Numeric pair helpers for track/disk "n/total" fields
//
// Both types are plain values. They hold no reference to the audio
// container they were read from, and TrackInfo is never written back.
package model
