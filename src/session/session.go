// Package session runs a single snip -> capture -> preprocess -> recognize
// flow outside the resident event loop, for run-once mode and the CLI.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"snip-ocr/src/clipboard"
	"snip-ocr/src/config"
	"snip-ocr/src/ocr"
	"snip-ocr/src/preprocess"
	"snip-ocr/src/screenshot"
)

// ErrSelectionCancelled reports that the user dismissed the overlay.
var ErrSelectionCancelled = errors.New("selection cancelled")

type RegionSelectorFunc func(ctx context.Context) (screenshot.Region, bool, error)

type CaptureFunc func(region screenshot.Region) (*image.RGBA, error)

type RecognizeFunc func(ctx context.Context, img image.Image) (string, error)

// ResultTarget receives the outcome of a session.
type ResultTarget interface {
	OnSuccess(text string) error
	OnFailure(err error) error
}

type Options struct {
	Deadline     time.Duration
	SelectRegion RegionSelectorFunc
	Capture      CaptureFunc
	Recognize    RecognizeFunc
	Target       ResultTarget
}

type Result struct {
	Text string
}

// Execute runs one full session. Capture and Recognize default to the
// real implementations; SelectRegion and Target are required.
func Execute(ctx context.Context, opts Options) (Result, error) {
	if opts.SelectRegion == nil {
		return Result{}, errors.New("SelectRegion is required")
	}
	if opts.Target == nil {
		return Result{}, errors.New("Target is required")
	}

	region, cancelled, err := opts.SelectRegion(ctx)
	if err != nil {
		_ = opts.Target.OnFailure(err)
		return Result{}, err
	}
	if cancelled {
		_ = opts.Target.OnFailure(ErrSelectionCancelled)
		return Result{}, ErrSelectionCancelled
	}

	capture := opts.Capture
	if capture == nil {
		capture = screenshot.CaptureRegion
	}
	img, err := capture(region)
	if err != nil {
		_ = opts.Target.OnFailure(err)
		return Result{}, err
	}

	deadline := opts.Deadline
	if deadline <= 0 {
		deadline = config.DefaultDeadlineSec * time.Second
	}
	jobCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	recognize := opts.Recognize
	if recognize == nil {
		recognize = DefaultRecognizer(ocr.BackendFast, ocr.Options{})
	}

	text, err := recognize(jobCtx, img)
	if err != nil {
		_ = opts.Target.OnFailure(err)
		return Result{}, err
	}

	if err := opts.Target.OnSuccess(text); err != nil {
		_ = opts.Target.OnFailure(err)
		return Result{}, err
	}
	return Result{Text: text}, nil
}

// DefaultRecognizer builds a RecognizeFunc running the standard
// preprocessing pipeline ahead of the selected backend.
func DefaultRecognizer(backend ocr.Backend, opts ocr.Options) RecognizeFunc {
	pipeline := preprocess.New()
	engine := ocr.NewEngine(backend, opts)
	return func(ctx context.Context, img image.Image) (string, error) {
		processed, err := pipeline.Run(img)
		if err != nil {
			return "", err
		}
		return engine.Recognize(ctx, processed)
	}
}

// ClipboardTarget delivers the recognized text to the system clipboard.
type ClipboardTarget struct{}

func (ClipboardTarget) OnSuccess(text string) error {
	return clipboard.WriteText(text)
}

func (ClipboardTarget) OnFailure(err error) error {
	return nil
}

// StdoutTarget prints the recognized text, for run-once-to-stdout mode.
type StdoutTarget struct {
	Writer io.Writer
}

func (t StdoutTarget) OnSuccess(text string) error {
	w := t.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprint(w, text)
	return err
}

func (t StdoutTarget) OnFailure(err error) error {
	return nil
}
