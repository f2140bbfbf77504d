package audio

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/tcolgate/mp3"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
	"github.com/Ildiar25/NavidromeServer-sub000/internal/model"
)

// Extractor derives read-only technical characteristics from an MP3
// frame stream. It never mutates its input.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile opens the file at path and extracts its TrackInfo.
func (e *Extractor) ExtractFile(path string) (model.TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.TrackInfo{}, errs.Wrap(errs.ErrPathNotFound, "open", "extract", path, err)
		}
		return model.TrackInfo{}, errs.Wrap(errs.ErrInternal, "open", "extract", path, err)
	}
	defer f.Close()

	return e.Extract(f)
}

// Extract walks every MPEG frame in r, accumulating duration and
// bitrate statistics. Duration is rounded to the nearest whole second.
// A stream yielding no decodable frame is a corrupt or foreign
// container and fails with ErrInvalidFormat.
func (e *Extractor) Extract(r io.Reader) (model.TrackInfo, error) {
	var (
		dec      = mp3.NewDecoder(r)
		frame    mp3.Frame
		skipped  int
		duration time.Duration
		frames   int
		kbpsSum  int
		firstBR  int
		info     model.TrackInfo
		cbr      = true
	)

	for {
		err := dec.Decode(&frame, &skipped)
		if err == io.EOF {
			break
		}
		if err != nil {
			if frames == 0 {
				return model.TrackInfo{}, errs.Wrap(errs.ErrInvalidFormat, "normalize", "extract",
					"no decodable mpeg frames", err)
			}
			// Truncated tail after valid frames: report what was read.
			break
		}

		header := frame.Header()
		kbps := int(header.BitRate()) / 1000
		if frames == 0 {
			firstBR = kbps
			info.SampleRateHz = int(header.SampleRate())
			info.Mode = header.ChannelMode().String()
			info.Version = header.Version().String()
			info.Layer = header.Layer().String()
			if header.ChannelMode() == mp3.SingleChannel {
				info.ChannelCount = 1
			} else {
				info.ChannelCount = 2
			}
		} else if kbps != firstBR {
			cbr = false
		}

		kbpsSum += kbps
		duration += frame.Duration()
		frames++
	}

	if frames == 0 {
		return model.TrackInfo{}, errs.Wrap(errs.ErrInvalidFormat, "normalize", "extract",
			"no decodable mpeg frames", nil)
	}

	info.Codec = "MP3"
	info.TotalFrames = frames
	info.ConstantBitrate = cbr
	info.DurationSeconds = int(duration.Round(time.Second) / time.Second)
	if cbr {
		info.BitrateKbps = firstBR
	} else {
		info.BitrateKbps = kbpsSum / frames
	}
	return info, nil
}
