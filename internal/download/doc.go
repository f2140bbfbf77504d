// Package download normalizes remote audio acquisition behind one
// adapter contract.
//
// Adapter variants form a closed set selected once at configuration
// time by name; an unrecognized name fails at selection, before any
// network activity. Two variants exist:
//
//   - direct: plain HTTP(S) fetch of an audio file URL, with bounded
//     retries
//   - youtube: stream fetch staged through a temporary file, transcoded
//     to the target format and bitrate, then relocated to the
//     destination
//
// Whatever the backend, the caller owns the returned bytes or file; the
// adapter holds no reference after the call completes.
package download
