// Package preprocess prepares a captured image for text recognition.
//
// The pipeline is fixed and order-sensitive: grayscale, contrast boost,
// sharpen, then a global mean threshold down to a two-level image. Every
// stage allocates its output, so the caller's image (the preview) is
// never touched.
package preprocess

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// DefaultContrastBoost approximates a 2x contrast enhancement.
const DefaultContrastBoost = 1.0

// Pipeline holds the tunable stage parameters. The zero value is not
// useful; use New for defaults.
type Pipeline struct {
	// ContrastBoost is the contrast change applied after grayscale
	// conversion (0 = no change, 1 = strong boost).
	ContrastBoost float64
}

// New returns a pipeline with the default stage parameters.
func New() Pipeline {
	return Pipeline{ContrastBoost: DefaultContrastBoost}
}

// Run applies the pipeline and returns the binarized result. Deterministic:
// the same input always produces byte-identical output.
func (p Pipeline) Run(src image.Image) (*image.Gray, error) {
	if src == nil {
		return nil, fmt.Errorf("nil input image")
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("empty input image: %dx%d", b.Dx(), b.Dy())
	}

	gray := effect.Grayscale(src)
	contrasted := adjust.Contrast(gray, p.ContrastBoost)
	sharpened := effect.Sharpen(contrasted)

	// Threshold at the mean intensity of the sharpened image so dark
	// and light captures binarize sensibly without a fixed constant.
	return segment.Threshold(sharpened, meanLevel(sharpened)), nil
}

// meanLevel returns the average intensity of an already-grayscale RGBA
// image, sampling the red channel.
func meanLevel(img *image.RGBA) uint8 {
	var sum, count uint64
	for i := 0; i < len(img.Pix); i += 4 {
		sum += uint64(img.Pix[i])
		count++
	}
	if count == 0 {
		return 128
	}
	return uint8(sum / count)
}
