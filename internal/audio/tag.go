package audio

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/model"
)

// Frame identifiers of the fixed schema.
const (
	frameTitle          = "TIT2"
	frameArtist         = "TPE1"
	frameAlbumArtist    = "TPE2"
	frameOriginalArtist = "TOPE"
	frameAlbum          = "TALB"
	frameCompilation    = "TCMP"
	frameTrack          = "TRCK"
	frameDisk           = "TPOS"
	frameYear           = "TYER"
	frameRecordingTime  = "TDRC"
	frameGenre          = "TCON"
	framePicture        = "APIC"
)

// Codec maps the track metadata schema to and from ID3v2 frames in an
// MP3 container.
type Codec struct{}

// NewCodec returns a Codec for the given audio format. Only "mp3" is
// implemented; any other format fails with ErrUnsupportedCodec.
func NewCodec(format string) (*Codec, error) {
	if !strings.EqualFold(format, "mp3") {
		return nil, errs.Wrap(errs.ErrUnsupportedCodec, "open", "codec",
			"no tag codec for format "+format, nil)
	}
	return &Codec{}, nil
}

// DecodeFile reads the fixed frame schema from the file at path into a
// TrackMetadata. Frames absent from the container silently yield the
// field default; that is not an error.
func (c *Codec) DecodeFile(path string) (model.TrackMetadata, error) {
	meta := model.NewTrackMetadata()

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return meta, errs.Wrap(errs.ErrReadingFile, "open", "decode", path, err)
		}
		return meta, errs.Wrap(errs.ErrInvalidFormat, "open", "decode", path, err)
	}
	defer tag.Close()

	if v := textFrame(tag, frameTitle); v != "" {
		meta.Title = v
	}
	if v := textFrame(tag, frameArtist); v != "" {
		meta.TrackArtists = splitFrameValues(v)
	}
	meta.AlbumArtist = textFrame(tag, frameAlbumArtist)
	meta.OriginalArtist = textFrame(tag, frameOriginalArtist)
	meta.Album = textFrame(tag, frameAlbum)
	meta.Compilation = textFrame(tag, frameCompilation) == "1"
	meta.Genre = textFrame(tag, frameGenre)

	if raw := textFrame(tag, frameTrack); raw != "" {
		meta.TrackNo, meta.TotalTracks, _ = model.ParsePair(raw)
	}
	if raw := textFrame(tag, frameDisk); raw != "" {
		meta.DiskNo, meta.TotalDisks, _ = model.ParsePair(raw)
	}

	if v := textFrame(tag, frameYear); v != "" {
		meta.Year = v
	} else if v := textFrame(tag, frameRecordingTime); len(v) >= 4 {
		meta.Year = v[:4]
	}

	meta.Cover = frontCover(tag)
	return meta, nil
}

// EncodeFile writes the full metadata schema into the file at path.
//
// Unless preserveUnknown is set this is a full replace, not a merge:
// every existing frame is cleared and the cleared state is persisted
// before any new frame is written, so a failure between clear and write
// leaves the file tag-less rather than tagged with stale data.
func (c *Codec) EncodeFile(path string, meta model.TrackMetadata, preserveUnknown bool) error {
	if !preserveUnknown {
		if err := c.wipe(path); err != nil {
			return err
		}
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return writeOpenErr("encode", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(meta.Title)
	tag.SetArtist(meta.Artist())
	tag.AddTextFrame(frameAlbumArtist, id3v2.EncodingUTF8, meta.AlbumArtist)
	tag.AddTextFrame(frameOriginalArtist, id3v2.EncodingUTF8, meta.OriginalArtist)
	tag.SetAlbum(meta.Album)
	tag.SetGenre(meta.Genre)
	tag.AddTextFrame(frameYear, id3v2.EncodingUTF8, meta.Year)
	tag.AddTextFrame(frameTrack, id3v2.EncodingUTF8, model.FormatPair(meta.TrackNo, meta.TotalTracks))
	tag.AddTextFrame(frameDisk, id3v2.EncodingUTF8, model.FormatPair(meta.DiskNo, meta.TotalDisks))

	compilation := "0"
	if meta.Compilation {
		compilation = "1"
	}
	tag.AddTextFrame(frameCompilation, id3v2.EncodingUTF8, compilation)

	if meta.HasCover() {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/png",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     meta.Cover,
		})
	}

	if err := tag.Save(); err != nil {
		return errs.Wrap(errs.ErrPersistence, "save", "encode", path, err)
	}
	return nil
}

// wipe clears every tag frame from the file and persists the cleared
// state. EncodeFile relies on this completing before new frames are
// written.
func (c *Codec) wipe(path string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return writeOpenErr("wipe", path, err)
	}
	defer tag.Close()

	tag.DeleteAllFrames()
	if err := tag.Save(); err != nil {
		return errs.Wrap(errs.ErrPersistence, "normalize", "wipe", path, err)
	}
	return nil
}

// writeOpenErr classifies an open failure on a mutating operation. The
// file opens read-write there, so a permission denial is a persistence
// failure and a missing file is a dead path, not a malformed container.
func writeOpenErr(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return errs.Wrap(errs.ErrPersistence, "open", op, path, err)
	case errors.Is(err, fs.ErrNotExist):
		return errs.Wrap(errs.ErrPathNotFound, "open", op, path, err)
	}
	return errs.Wrap(errs.ErrInvalidFormat, "open", op, path, err)
}

// textFrame returns the first text value of a frame, "" when absent.
func textFrame(tag *id3v2.Tag, id string) string {
	return strings.TrimRight(tag.GetTextFrame(id).Text, "\x00")
}

// splitFrameValues splits a multi-valued text frame into its parts.
// ID3v2.4 separates values with NUL; comma-joined single values are
// split too so an encoded artist list round-trips.
func splitFrameValues(text string) []string {
	var raw []string
	for _, part := range strings.Split(text, "\x00") {
		raw = append(raw, strings.Split(part, ",")...)
	}
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// frontCover extracts the attached picture bytes when, and only when,
// its role marks it as the front cover.
func frontCover(tag *id3v2.Tag) []byte {
	for _, framer := range tag.GetFrames(framePicture) {
		pic, ok := framer.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic.Picture
		}
	}
	return nil
}
