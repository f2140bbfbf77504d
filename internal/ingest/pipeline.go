package ingest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dhowden/tag"
	"github.com/google/uuid"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/library"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/model"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/pathname"
)

// TagCodec reads and writes the track metadata schema of a container
// file.
type TagCodec interface {
	DecodeFile(path string) (model.TrackMetadata, error)
	EncodeFile(path string, meta model.TrackMetadata, preserveUnknown bool) error
}

// InfoExtractor derives read-only technical info from a container
// stream.
type InfoExtractor interface {
	Extract(r io.Reader) (model.TrackInfo, error)
}

// CoverPreparer normalizes cover art before it is embedded.
type CoverPreparer interface {
	Prepare(data []byte) ([]byte, error)
}

// Fetcher is the slice of the download adapter contract the pipeline
// needs.
type Fetcher interface {
	Name() string
	FetchBuffer(ctx context.Context, source string) ([]byte, error)
}

// Source identifies one track to ingest: either uploaded bytes or a
// remote identifier for the configured adapter.
type Source struct {
	Name   string
	Upload []byte
	Remote string
}

// Result is the per-item outcome of a bulk sweep.
type Result struct {
	Source Source
	Path   string
	Info   model.TrackInfo
	Meta   model.TrackMetadata
	Err    error
}

// allowedMIME is the container allow-list for ingestion.
var allowedMIME = map[string]bool{
	"audio/mpeg": true,
}

// Pipeline wires the ingestion steps together. Construct with New.
type Pipeline struct {
	builder   *pathname.Builder
	files     *library.Manager
	codec     TagCodec
	extractor InfoExtractor
	covers    CoverPreparer
	fetcher   Fetcher
	log       *slog.Logger
}

// New returns a Pipeline over the given collaborators. A nil logger
// falls back to slog.Default.
func New(builder *pathname.Builder, files *library.Manager, codec TagCodec,
	extractor InfoExtractor, covers CoverPreparer, fetcher Fetcher, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		builder:   builder,
		files:     files,
		codec:     codec,
		extractor: extractor,
		covers:    covers,
		fetcher:   fetcher,
		log:       log,
	}
}

// Acquire obtains the raw bytes for a source: uploaded data passes
// through, remote identifiers go to the configured adapter.
func (p *Pipeline) Acquire(ctx context.Context, src Source) ([]byte, error) {
	if len(src.Upload) > 0 {
		return src.Upload, nil
	}
	if src.Remote == "" {
		return nil, errs.Wrap(errs.ErrClientPlatform, "download", "acquire",
			"source has neither upload bytes nor a remote identifier", nil)
	}
	return p.fetcher.FetchBuffer(ctx, src.Remote)
}

// Inspect validates the container against the MIME allow-list and
// derives its technical info and embedded metadata. The caller enriches
// the returned metadata before confirming with Store.
func (p *Pipeline) Inspect(data []byte) (model.TrackInfo, model.TrackMetadata, error) {
	if err := p.validateMIME(data); err != nil {
		return model.TrackInfo{}, model.TrackMetadata{}, err
	}

	info, err := p.extractor.Extract(bytes.NewReader(data))
	if err != nil {
		return model.TrackInfo{}, model.TrackMetadata{}, err
	}

	// The tag codec operates on files; stage a scratch copy.
	staging := filepath.Join(os.TempDir(), "inspect-"+uuid.NewString()+".mp3")
	if err := os.WriteFile(staging, data, 0644); err != nil {
		return model.TrackInfo{}, model.TrackMetadata{}, errs.Wrap(errs.ErrInternal, "open", "inspect", staging, err)
	}
	defer func() {
		if err := os.Remove(staging); err != nil {
			p.log.Warn("inspect staging cleanup failed", "path", staging, "error", err)
		}
	}()

	meta, err := p.codec.DecodeFile(staging)
	if err != nil {
		return model.TrackInfo{}, model.TrackMetadata{}, err
	}
	return info, meta, nil
}

// Store persists the track at its canonical path and encodes the final
// metadata into it. The cover, when present, is normalized first. The
// computed path is returned for the caller's bookkeeping.
func (p *Pipeline) Store(data []byte, meta model.TrackMetadata) (string, error) {
	if meta.HasCover() {
		cover, err := p.covers.Prepare(meta.Cover)
		if err != nil {
			return "", err
		}
		meta.Cover = cover
	}

	path, err := p.trackPath(meta)
	if err != nil {
		return "", err
	}

	if err := p.files.CreateParentDirs(path); err != nil {
		return "", err
	}
	if err := p.files.Save(path, data); err != nil {
		return "", err
	}
	if err := p.codec.EncodeFile(path, meta, false); err != nil {
		return "", err
	}

	p.log.Info("track stored", "path", path, "title", meta.Title)
	return path, nil
}

// Relocate recomputes the canonical path after a metadata edit. When it
// differs from oldPath the file is moved first; the tags are then
// re-encoded wherever the file ended up. Both steps are attempted and
// every failure is reported, so the caller can reconcile its catalog.
func (p *Pipeline) Relocate(oldPath string, meta model.TrackMetadata) (string, error) {
	newPath, err := p.trackPath(meta)
	if err != nil {
		return "", err
	}

	var moveErr error
	encodeAt := newPath
	if newPath != oldPath {
		if moveErr = p.files.Move(oldPath, newPath); moveErr != nil {
			encodeAt = oldPath
		}
	}

	encodeErr := p.codec.EncodeFile(encodeAt, meta, false)
	if moveErr != nil || encodeErr != nil {
		return encodeAt, errors.Join(moveErr, encodeErr)
	}

	p.log.Info("track relocated", "from", oldPath, "to", newPath)
	return newPath, nil
}

// trackPath computes and validates the canonical path for the metadata.
// Degenerate segments (everything sanitized away) or out-of-range track
// numbers produce a path the validator rejects.
func (p *Pipeline) trackPath(meta model.TrackMetadata) (string, error) {
	artist := meta.AlbumArtist
	if artist == "" {
		artist = meta.Artist()
	}

	path := p.builder.BuildPath(artist, meta.Album, strconv.Itoa(meta.TrackNo), meta.Title)
	if !p.builder.IsValid(path) {
		return "", errs.Wrap(errs.ErrInvalidPath, "normalize", "path",
			"metadata yields no canonical path: "+path, nil)
	}
	return path, nil
}

// validateMIME sniffs the container type and rejects anything outside
// the allow-list. Identification tries the tag reader first. Tag-less
// raw frame streams fail both the tag reader and Go's content sniffer,
// which only maps the "ID3" prefix to audio/mpeg, so those are
// recognized by their MPEG frame sync.
func (p *Pipeline) validateMIME(data []byte) error {
	if _, fileType, err := tag.Identify(bytes.NewReader(data)); err == nil {
		switch fileType {
		case tag.MP3:
			return nil
		case tag.UnknownFileType:
			// Untagged; decide by content below.
		default:
			return errs.Wrap(errs.ErrInvalidFormat, "normalize", "sniff",
				"unsupported container "+string(fileType), nil)
		}
	}

	if mime := http.DetectContentType(data); allowedMIME[mime] {
		return nil
	}
	if hasFrameSync(data) {
		return nil
	}
	return errs.Wrap(errs.ErrInvalidFormat, "normalize", "sniff",
		"content is not an allowed audio type", nil)
}

// hasFrameSync reports whether data opens with an MPEG audio frame
// sync: eleven set bits across the first two bytes.
func hasFrameSync(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}
