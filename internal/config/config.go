package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

// Adapter names recognized by the download layer.
const (
	AdapterDirect  = "direct"
	AdapterYoutube = "youtube"
)

// Settings holds all configuration options.
type Settings struct {
	// Library layout
	RootDirectory string `json:"root_directory" env:"LIBRARY_ROOT" env-default:"/music"`
	FileExtension string `json:"file_extension" env:"FILE_EXTENSION" env-default:"mp3"`

	// Acquisition
	DownloadAdapter string `json:"download_adapter" env:"DOWNLOAD_ADAPTER" env-default:"direct"`
	TargetBitrate   int    `json:"target_bitrate" env:"TARGET_BITRATE" env-default:"192"`

	// Cover art
	CoverImageSize   int    `json:"cover_image_size" env:"COVER_IMAGE_SIZE" env-default:"400"`
	CoverImageFormat string `json:"cover_image_format" env:"COVER_IMAGE_FORMAT" env-default:"png"`

	// Transport
	HTTPTimeoutSeconds int     `json:"http_timeout_seconds" env:"HTTP_TIMEOUT_SECONDS" env-default:"60"`
	DownloadMaxRetries int     `json:"download_max_retries" env:"DOWNLOAD_MAX_RETRIES" env-default:"3"`
	RetryCooldown      float64 `json:"retry_cooldown" env:"RETRY_COOLDOWN" env-default:"0.5"`
	RetryExponent      float64 `json:"retry_exponent" env:"RETRY_EXPONENT" env-default:"2.0"`

	// External tool paths, empty means use PATH.
	FfmpegPath string `json:"ffmpeg_path" env:"FFMPEG_PATH"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	s := &Settings{}
	// ReadEnv applies env-default tags and any environment overrides.
	_ = cleanenv.ReadEnv(s)
	return s
}

// Load reads settings from a JSON file, then applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errs.Wrap(errs.ErrPersistence, "open", "config", path, err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errs.Wrap(errs.ErrInvalidFormat, "normalize", "config", path, err)
	}
	if err := cleanenv.ReadEnv(s); err != nil {
		return nil, errs.Wrap(errs.ErrInternal, "normalize", "config", path, err)
	}
	return s, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errs.Wrap(errs.ErrPersistence, "write", "config", path, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrInternal, "write", "config", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.Wrap(errs.ErrPersistence, "write", "config", path, err)
	}
	return nil
}

var (
	knownExtensions = []string{"mp3", "flac"}
	knownBitrates   = []int{128, 192, 320}
	knownFormats    = []string{"png"}
)

// Validate rejects enum values outside the recognized sets. Adapter
// names are deliberately not checked here; the download registry owns
// that decision at selection time.
func (s *Settings) Validate() error {
	if !slices.Contains(knownExtensions, s.FileExtension) {
		return errs.Wrap(errs.ErrUnsupportedCodec, "", "config",
			"unsupported file extension "+s.FileExtension, nil)
	}
	if !slices.Contains(knownBitrates, s.TargetBitrate) {
		return errs.Wrap(errs.ErrInvalidFormat, "", "config",
			fmt.Sprintf("unsupported target bitrate %d", s.TargetBitrate), nil)
	}
	if !slices.Contains(knownFormats, s.CoverImageFormat) {
		return errs.Wrap(errs.ErrUnsupportedCodec, "", "config",
			"unsupported cover format "+s.CoverImageFormat, nil)
	}
	if s.CoverImageSize <= 0 {
		return errs.Wrap(errs.ErrInvalidFormat, "", "config",
			fmt.Sprintf("cover image size %d must be positive", s.CoverImageSize), nil)
	}
	return nil
}
