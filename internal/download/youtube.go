package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kkdai/youtube/v2"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/config"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

// fetchState tracks a single fetch-to-file operation through its
// stages. failed is terminal and reachable from any non-terminal state.
type fetchState int

const (
	stateStart fetchState = iota
	stateDownloading
	stateTranscoding
	stateRelocating
	stateDone
	stateFailed
)

func (s fetchState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateDownloading:
		return "downloading"
	case stateTranscoding:
		return "transcoding"
	case stateRelocating:
		return "relocating"
	case stateDone:
		return "done"
	default:
		return "failed"
	}
}

// ytb acquires audio from YouTube: stream fetch to a staging file,
// ffmpeg transcode to the target format and bitrate, then relocation to
// the destination.
type ytb struct {
	client     youtube.Client
	extension  string
	bitrate    int
	ffmpegPath string
	log        *slog.Logger
}

func newYoutube(settings *config.Settings, log *slog.Logger) *ytb {
	return &ytb{
		extension:  settings.FileExtension,
		bitrate:    settings.TargetBitrate,
		ffmpegPath: settings.FfmpegPath,
		log:        log,
	}
}

func (y *ytb) Name() string { return config.AdapterYoutube }

// FetchFile drives the full state machine. Staging artifacts are
// removed best-effort on any failure after the download stage; cleanup
// never masks the original error.
func (y *ytb) FetchFile(ctx context.Context, source, destPath string) error {
	staging := filepath.Join(os.TempDir(), "ingest-"+uuid.NewString()+".webm")
	transcoded := filepath.Join(os.TempDir(), "ingest-"+uuid.NewString()+"."+y.extension)

	// fail moves the operation to the terminal failed state. Once the
	// download stage has completed, staging artifacts are cleaned up on
	// every later failure.
	fail := func(at fetchState, err error) error {
		y.log.Debug("fetch failed", "adapter", y.Name(), "source", source,
			"state", at.String(), "next", stateFailed.String())
		if at > stateDownloading {
			y.cleanup(staging, transcoded)
		}
		return err
	}

	if err := y.downloadStream(ctx, source, staging); err != nil {
		return fail(stateDownloading, err)
	}

	if err := y.transcode(staging, transcoded); err != nil {
		return fail(stateTranscoding, err)
	}

	if err := os.Rename(transcoded, destPath); err != nil {
		return fail(stateRelocating, errs.Wrap(errs.ErrInvalidPath, "relocate", "fetch", destPath, err))
	}
	y.cleanup(staging, "")

	y.log.Info("fetch complete", "adapter", y.Name(), "source", source,
		"dest", destPath, "state", stateDone.String())
	return nil
}

// FetchBuffer stages through FetchFile and reads the result back, so a
// success always returns the populated bytes.
func (y *ytb) FetchBuffer(ctx context.Context, source string) ([]byte, error) {
	tmp := filepath.Join(os.TempDir(), "ingest-"+uuid.NewString()+"."+y.extension)
	if err := y.FetchFile(ctx, source, tmp); err != nil {
		return nil, err
	}
	defer y.cleanup(tmp, "")

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, errs.Wrap(errs.ErrInternal, "relocate", "fetch", tmp, err)
	}
	return data, nil
}

// downloadStream resolves the video, picks the best audio format and
// copies the stream to the staging path. Every resolution or transport
// failure collapses to ErrClientPlatform: private, region-blocked,
// unavailable and malformed identifiers are all the same to the caller.
func (y *ytb) downloadStream(ctx context.Context, source, staging string) error {
	video, err := y.client.GetVideoContext(ctx, source)
	if err != nil {
		return errs.Wrap(errs.ErrClientPlatform, "download", "fetch", source, err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return errs.Wrap(errs.ErrClientPlatform, "download", "fetch",
			"no audio formats for "+source, nil)
	}

	stream, _, err := y.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return errs.Wrap(errs.ErrClientPlatform, "download", "fetch", source, err)
	}
	defer stream.Close()

	file, err := os.Create(staging)
	if err != nil {
		return errs.Wrap(errs.ErrInternal, "download", "fetch", staging, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, stream); err != nil {
		y.cleanup(staging, "")
		return errs.Wrap(errs.ErrClientPlatform, "download", "fetch", source, err)
	}
	return nil
}

// transcode re-encodes the staged stream to the target container and
// bitrate. Subprocess failures surface as ErrVideoProcessing.
func (y *ytb) transcode(staging, transcoded string) error {
	cmd := ffmpeg.Input(staging).
		Output(transcoded, ffmpeg.KwArgs{
			"map":      "0:a",
			"b:a":      fmt.Sprintf("%dk", y.bitrate),
			"loglevel": "error",
		}).
		OverWriteOutput().
		ErrorToStdOut()

	if y.ffmpegPath != "" {
		cmd.SetFfmpegPath(y.ffmpegPath)
	}

	if err := cmd.Run(); err != nil {
		return errs.Wrap(errs.ErrVideoProcessing, "transcode", "fetch", staging, err)
	}
	return nil
}

// cleanup removes staging artifacts. Best-effort: failures are logged
// and never raised.
func (y *ytb) cleanup(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			y.log.Warn("staging cleanup failed", "path", p, "error", err)
		}
	}
}
