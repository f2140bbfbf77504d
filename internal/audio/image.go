package audio

import (
	"bytes"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	"image/png"

	"golang.org/x/image/draw"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

// ImageService prepares cover art for embedding: it bounds images to a
// configured square pixel size and re-encodes them as PNG, the format
// the tag codec declares in the picture frame.
type ImageService struct {
	maxSize int
}

// NewImageService returns an ImageService bounding covers to
// maxSize x maxSize pixels.
func NewImageService(maxSize int) *ImageService {
	return &ImageService{maxSize: maxSize}
}

// Prepare decodes data, scales it down to fit the configured bounds
// with aspect ratio preserved, and returns PNG-encoded bytes. Images
// already inside the bounds are re-encoded without scaling.
func (s *ImageService) Prepare(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrInvalidFormat, "normalize", "cover", "decoding image", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > s.maxSize || height > s.maxSize {
		ratio := float64(width) / float64(height)
		if ratio > 1 {
			width = s.maxSize
			height = int(float64(s.maxSize) / ratio)
		} else {
			height = s.maxSize
			width = int(float64(s.maxSize) * ratio)
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(errs.ErrInternal, "normalize", "cover", "encoding png", err)
	}
	return buf.Bytes(), nil
}
