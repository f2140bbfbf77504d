package audio

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/model"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec("mp3")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func tempTrackFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	// Arbitrary payload; the codec only touches the tag section.
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xAA}, 512), 0644); err != nil {
		t.Fatalf("writing temp track: %v", err)
	}
	return path
}

func fullMetadata() model.TrackMetadata {
	m := model.NewTrackMetadata()
	m.Title = "Underneath Your Clothes"
	m.TrackArtists = []string{"Shakira"}
	m.AlbumArtist = "Shakira"
	m.OriginalArtist = "Shakira"
	m.Album = "Laundry Service"
	m.Compilation = true
	m.TrackNo, m.TotalTracks = 2, 13
	m.DiskNo, m.TotalDisks = 1, 2
	m.Year = "2001"
	m.Genre = "Pop"
	m.Cover = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x01, 0x02}
	return m
}

func TestNewCodecUnsupportedFormat(t *testing.T) {
	if _, err := NewCodec("flac"); !errors.Is(err, errs.ErrUnsupportedCodec) {
		t.Errorf("NewCodec(flac) = %v, want ErrUnsupportedCodec", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	path := tempTrackFile(t)
	want := fullMetadata()

	if err := codec.EncodeFile(path, want, false); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	got, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecodeMissingFramesYieldDefaults(t *testing.T) {
	codec := newTestCodec(t)
	path := tempTrackFile(t)

	got, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !reflect.DeepEqual(got, model.NewTrackMetadata()) {
		t.Errorf("untagged file should decode to defaults, got %+v", got)
	}
}

func TestDecodeMultipleArtistsJoined(t *testing.T) {
	codec := newTestCodec(t)
	path := tempTrackFile(t)

	meta := model.NewTrackMetadata()
	meta.TrackArtists = []string{"Shakira", "Wyclef Jean"}
	if err := codec.EncodeFile(path, meta, false); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	got, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got.Artist() != "Shakira, Wyclef Jean" {
		t.Errorf("Artist() = %q, want %q", got.Artist(), "Shakira, Wyclef Jean")
	}
}

func TestEncodeClearsForeignFrames(t *testing.T) {
	codec := newTestCodec(t)
	path := tempTrackFile(t)

	// Tag the file with a frame outside the schema.
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open: %v", err)
	}
	tag.AddTextFrame("TPUB", id3v2.EncodingUTF8, "Some Label")
	if err := tag.Save(); err != nil {
		t.Fatalf("seeding foreign frame: %v", err)
	}
	tag.Close()

	if err := codec.EncodeFile(path, fullMetadata(), false); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer tag.Close()
	if got := tag.GetTextFrame("TPUB").Text; got != "" {
		t.Errorf("foreign frame survived full-replace encode: %q", got)
	}
}

func TestEncodePreserveUnknownKeepsForeignFrames(t *testing.T) {
	codec := newTestCodec(t)
	path := tempTrackFile(t)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open: %v", err)
	}
	tag.AddTextFrame("TPUB", id3v2.EncodingUTF8, "Some Label")
	if err := tag.Save(); err != nil {
		t.Fatalf("seeding foreign frame: %v", err)
	}
	tag.Close()

	if err := codec.EncodeFile(path, fullMetadata(), true); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer tag.Close()
	if got := tag.GetTextFrame("TPUB").Text; got != "Some Label" {
		t.Errorf("foreign frame lost with preserveUnknown: %q", got)
	}
}

func TestWipePersistsClearedState(t *testing.T) {
	codec := newTestCodec(t)
	path := tempTrackFile(t)

	if err := codec.EncodeFile(path, fullMetadata(), false); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	// The clear step EncodeFile runs first must itself leave a
	// persisted, tag-less file: a crash before the new frames are
	// written must not expose stale data.
	if err := codec.wipe(path); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	got, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile after wipe: %v", err)
	}
	if !reflect.DeepEqual(got, model.NewTrackMetadata()) {
		t.Errorf("wiped file should decode to defaults, got %+v", got)
	}
}

func TestWriteOpenErrClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"permission denied", fs.ErrPermission, errs.ErrPersistence},
		{"missing file", fs.ErrNotExist, errs.ErrPathNotFound},
		{"garbage header", errors.New("id3: invalid size"), errs.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := writeOpenErr("encode", "/music/track.mp3", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("writeOpenErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestEncodeMissingFile(t *testing.T) {
	codec := newTestCodec(t)

	err := codec.EncodeFile(filepath.Join(t.TempDir(), "ghost.mp3"), fullMetadata(), false)
	if !errors.Is(err, errs.ErrPathNotFound) {
		t.Errorf("EncodeFile(missing) = %v, want ErrPathNotFound", err)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.DecodeFile(filepath.Join(t.TempDir(), "ghost.mp3"))
	if !errors.Is(err, errs.ErrReadingFile) {
		t.Errorf("DecodeFile(missing) = %v, want ErrReadingFile", err)
	}
}
