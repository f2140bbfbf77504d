package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.RootDirectory != "/music" {
		t.Errorf("RootDirectory = %q, want /music", s.RootDirectory)
	}
	if s.FileExtension != "mp3" {
		t.Errorf("FileExtension = %q, want mp3", s.FileExtension)
	}
	if s.DownloadAdapter != AdapterDirect {
		t.Errorf("DownloadAdapter = %q, want %q", s.DownloadAdapter, AdapterDirect)
	}
	if s.TargetBitrate != 192 {
		t.Errorf("TargetBitrate = %d, want 192", s.TargetBitrate)
	}
	if s.CoverImageSize != 400 {
		t.Errorf("CoverImageSize = %d, want 400", s.CoverImageSize)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "no-such.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.RootDirectory != "/music" {
		t.Errorf("RootDirectory = %q, want default", s.RootDirectory)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := DefaultSettings()
	s.RootDirectory = "/srv/audio"
	s.TargetBitrate = 320
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.RootDirectory != "/srv/audio" || got.TargetBitrate != 320 {
		t.Errorf("Load = %+v, want saved values", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"root_directory": "/from/file"}`), 0644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	t.Setenv("LIBRARY_ROOT", "/from/env")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.RootDirectory != "/from/env" {
		t.Errorf("RootDirectory = %q, env override should win", s.RootDirectory)
	}
}

func TestValidateRejectsBadEnums(t *testing.T) {
	s := DefaultSettings()
	s.FileExtension = "ogg"
	if err := s.Validate(); !errors.Is(err, errs.ErrUnsupportedCodec) {
		t.Errorf("Validate(ogg) = %v, want ErrUnsupportedCodec", err)
	}

	s = DefaultSettings()
	s.TargetBitrate = 96
	if err := s.Validate(); !errors.Is(err, errs.ErrInvalidFormat) {
		t.Errorf("Validate(96kbps) = %v, want ErrInvalidFormat", err)
	}

	s = DefaultSettings()
	s.CoverImageFormat = "webp"
	if err := s.Validate(); !errors.Is(err, errs.ErrUnsupportedCodec) {
		t.Errorf("Validate(webp) = %v, want ErrUnsupportedCodec", err)
	}
}
