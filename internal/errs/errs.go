// Package errs defines the error taxonomy shared by every component.
//
// Each sentinel marks one failure class. Components wrap low-level
// errors with Wrap before returning them, so raw OS or library errors
// never cross a package boundary untagged. Callers classify with
// errors.Is.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat marks a malformed, corrupt or unsupported
	// container or MIME type.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrReadingFile marks a tag header that is missing or unreadable
	// when one is required.
	ErrReadingFile = errors.New("reading file error")

	// ErrPersistence marks an OS-level denial while writing metadata
	// or files.
	ErrPersistence = errors.New("persistence error")

	// ErrPathNotFound marks an operation targeting a path that does
	// not exist or is not a regular file.
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidPath marks a destination path a download cannot use.
	ErrInvalidPath = errors.New("invalid path")

	// ErrUnsupportedAdapter marks a configured download backend name
	// with no implementation.
	ErrUnsupportedAdapter = errors.New("unsupported adapter")

	// ErrUnsupportedCodec marks a configured audio format the codec
	// layer does not implement.
	ErrUnsupportedCodec = errors.New("unsupported codec")

	// ErrClientPlatform marks a remote source that cannot be used:
	// private, region-blocked, unavailable or malformed identifier.
	ErrClientPlatform = errors.New("client platform error")

	// ErrVideoProcessing marks a transcoding or subprocess failure.
	ErrVideoProcessing = errors.New("video processing error")

	// ErrInternal is the catch-all. It always wraps the underlying
	// cause.
	ErrInternal = errors.New("internal error")
)

// Wrap tags err with marker and a phase/operation detail string so the
// failure site stays diagnosable after the error crosses package
// boundaries. The marker should be one of the exported sentinels above;
// a nil marker falls back to ErrInternal.
func Wrap(marker error, phase, op, message string, err error) error {
	detail := buildDetail(phase, op, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(phase, op, message string) string {
	parts := make([]string, 0, 3)
	if phase = strings.TrimSpace(phase); phase != "" {
		parts = append(parts, phase)
	}
	if op = strings.TrimSpace(op); op != "" {
		parts = append(parts, op)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "component failure"
	}
	return strings.Join(parts, ": ")
}
