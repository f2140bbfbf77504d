// Package audio reads and writes track metadata and technical info for
// MP3 containers.
//
// This package contains:
//   - Codec: the ID3 tag codec mapping the track schema to native
//     frames (decode and full-replace encode)
//   - Extractor: read-only technical characteristics derived from the
//     MPEG frame stream (duration, bitrate, sample rate, channel mode)
//   - ImageService: cover art resizing and PNG re-encoding before
//     embedding
//
// Every operation opens the container, acts, and releases it; nothing
// here keeps a reference to a file between calls.
package audio
