// snipocr-cli runs the snipping tool's preprocessing and recognition
// pipeline against an image file, for scripting and for exercising the
// backends without a display.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"snip-ocr/src/ocr"
	"snip-ocr/src/session"
)

const (
	maxFileSizeMB = 10
	maxFileSize   = maxFileSizeMB * 1024 * 1024

	recognitionTimeout = 60 * time.Second
)

type cliOptions struct {
	filePath   string
	backend    string
	language   string
	jsonOutput bool
	verbose    bool
}

type jsonResult struct {
	Text       string `json:"text"`
	Backend    string `json:"backend"`
	DurationMS int64  `json:"duration_ms"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(os.Args)
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"snipocr-cli"}
	}
	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "snipocr-cli",
		Short:         "Recognize text in an image file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOCR(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.filePath, "file", "f", "", "path to the image file (required)")
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", "fast", "recognition backend: fast, accurate, cloud")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "tesseract language code (default eng)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit JSON instead of plain text")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runOCR(opts *cliOptions, w io.Writer) error {
	if err := validateFile(opts.filePath); err != nil {
		return err
	}

	backend, err := ocr.ParseBackend(opts.backend)
	if err != nil {
		return err
	}

	img, err := imaging.Open(opts.filePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	if opts.verbose {
		fmt.Fprintf(os.Stderr, "Loaded %s (%dx%d), backend=%s\n",
			opts.filePath, img.Bounds().Dx(), img.Bounds().Dy(), backend)
	}

	recognize := session.DefaultRecognizer(backend, ocr.Options{Language: opts.language})

	ctx, cancel := context.WithTimeout(context.Background(), recognitionTimeout)
	defer cancel()

	start := time.Now()
	text, err := recognize(ctx, img)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return json.NewEncoder(w).Encode(jsonResult{
			Text:       text,
			Backend:    backend.String(),
			DurationMS: time.Since(start).Milliseconds(),
		})
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func validateFile(path string) error {
	if path == "" {
		return fmt.Errorf("no input file specified")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not an image file", path)
	}
	if info.Size() > maxFileSize {
		return fmt.Errorf("file exceeds %dMB limit", maxFileSizeMB)
	}
	return nil
}
