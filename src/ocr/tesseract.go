package ocr

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/otiai10/gosseract/v2"

	"snip-ocr/src/screenshot"
)

// bestSuffix marks the best-quality (LSTM "best") traineddata variant the
// accurate backend depends on, e.g. eng_best.traineddata.
const bestSuffix = "_best"

// fastEngine runs stock tesseract with PSM single-block, the same
// configuration the classic snipping workflow used.
type fastEngine struct {
	language string
}

func newFastEngine(opts Options) *fastEngine {
	return &fastEngine{language: opts.language()}
}

func (e *fastEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := validateInput(img); err != nil {
		return "", err
	}
	return recognizeWithContext(ctx, img, e.language)
}

// accurateEngine uses the best-quality traineddata when installed.
// The dependency is optional: a missing language pack is reported as
// ErrUnavailable, never silently downgraded to the fast engine.
type accurateEngine struct {
	language string
	// available probes the installed language list; replaced in tests.
	available func(language string) (bool, error)
}

func newAccurateEngine(opts Options) *accurateEngine {
	return &accurateEngine{
		language:  opts.language() + bestSuffix,
		available: languageInstalled,
	}
}

func (e *accurateEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := validateInput(img); err != nil {
		return "", err
	}
	ok, err := e.available(e.language)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: language data %q is not installed", ErrUnavailable, e.language)
	}
	return recognizeWithContext(ctx, img, e.language)
}

func languageInstalled(language string) (bool, error) {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return false, err
	}
	for _, l := range langs {
		if l == language {
			return true, nil
		}
	}
	return false, nil
}

// recognizeWithContext runs tesseract on its own goroutine so the caller's
// deadline is honored; an abandoned recognition finishes in the background.
func recognizeWithContext(ctx context.Context, img image.Image, language string) (string, error) {
	resCh := make(chan struct {
		text string
		err  error
	}, 1)

	go func() {
		text, err := recognize(img, language)
		resCh <- struct {
			text string
			err  error
		}{text, err}
	}()

	select {
	case r := <-resCh:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func recognize(img image.Image, language string) (string, error) {
	data, err := screenshot.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("%w: failed to set language %q: %v", ErrUnavailable, language, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("%w: failed to load image: %v", ErrInvalidInput, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	log.Printf("OCR: recognized %d characters with language %q", len(text), language)
	return text, nil
}
