package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"snip-ocr/src/clipboard"
	"snip-ocr/src/config"
	"snip-ocr/src/eventloop"
	"snip-ocr/src/gui"
	"snip-ocr/src/hotkey"
	"snip-ocr/src/logutil"
	"snip-ocr/src/messages"
	"snip-ocr/src/ocr"
	"snip-ocr/src/overlay"
	"snip-ocr/src/session"
	"snip-ocr/src/singleinstance"
)

// normalizeFlagDashes maps GNU-style --flag to Go's -flag so both spellings work.
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		if strings.HasPrefix(os.Args[i], "--") {
			os.Args[i] = os.Args[i][1:]
		}
	}
}

func main() {
	// DPI awareness must be set before any window or screen metric call.
	enableDPIAwareness()

	normalizeFlagDashes()
	runOnce := flag.Bool("run-once", false, "Snip once, copy the recognized text to the clipboard, and exit")
	runOnceStd := flag.Bool("run-once-std", false, "Snip once, print the recognized text to stdout, and exit")
	backendFlag := flag.String("backend", "", "Recognition backend override: fast, accurate, cloud")
	flag.Parse()

	cfg, err := config.LoadWithOptions(config.LoadOptions{BackendOverride: *backendFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logutil.Setup(cfg.EnableFileLogging)

	if *runOnce || *runOnceStd {
		os.Exit(runOnceMode(cfg, *runOnceStd))
	}

	release, err := singleinstance.Acquire(singleinstance.DefaultPortFile())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Snip OCR is already running")
		os.Exit(1)
	}
	defer release()

	if err := clipboard.Init(); err != nil {
		log.Fatalf("Failed to initialize clipboard: %v", err)
	}

	log.Printf("Snip OCR initialized")
	log.Printf("Hotkey: %s", cfg.Hotkey)
	log.Printf("Default backend: %s", cfg.Backend)
	log.Printf("OCR deadline: %ds", cfg.OCRDeadlineSec)

	shell := gui.New()
	loop := eventloop.New(cfg, overlay.NewSelector(), shell)
	shell.Bind(loop.Post)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("event loop stopped: %v", err)
		}
	}()

	hotkey.Listen(cfg.Hotkey, func() {
		loop.Post(messages.SnipRequested{})
	})
	defer hotkey.Stop()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	// Blocks on the main goroutine until the window closes or the app quits.
	shell.Run()

	cancel()
	select {
	case <-loopDone:
	case <-time.After(2 * time.Second):
		log.Printf("event loop did not stop in time")
	}
}

// runOnceMode performs a single selection and recognition outside the
// resident loop, delivering the text to the clipboard or stdout.
func runOnceMode(cfg *config.Config, toStdout bool) int {
	if err := clipboard.Init(); err != nil && !toStdout {
		fmt.Fprintf(os.Stderr, "Failed to initialize clipboard: %v\n", err)
		return 1
	}

	var target session.ResultTarget = session.ClipboardTarget{}
	if toStdout {
		target = session.StdoutTarget{}
	}

	selector := overlay.NewSelector()
	res, err := session.Execute(context.Background(), session.Options{
		Deadline:     time.Duration(cfg.OCRDeadlineSec) * time.Second,
		SelectRegion: selector.Select,
		Recognize:    session.DefaultRecognizer(cfg.Backend, ocrOptions(cfg)),
		Target:       target,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	log.Printf("run-once recognized %d chars: %q", len(res.Text), sanitizeForLogging(res.Text))
	return 0
}

func ocrOptions(cfg *config.Config) ocr.Options {
	return ocr.Options{Language: cfg.Language}
}

// sanitizeForLogging truncates recognized text and escapes control
// characters so a capture cannot inject log lines.
func sanitizeForLogging(text string) string {
	const maxLogLength = 100
	if len(text) > maxLogLength {
		text = text[:maxLogLength] + "..."
	}

	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			b.WriteString("\\n")
		case r == '\t':
			b.WriteString("\\t")
		case r < 32 || r == 127:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
