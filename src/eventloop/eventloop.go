package eventloop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"snip-ocr/src/appstate"
	"snip-ocr/src/clipboard"
	"snip-ocr/src/config"
	"snip-ocr/src/messages"
	"snip-ocr/src/ocr"
	"snip-ocr/src/overlay"
	"snip-ocr/src/screenshot"
	"snip-ocr/src/worker"
)

// Presenter is the loop's view of the UI. Implementations must be safe to
// call from the event-loop goroutine (the Fyne shell funnels through
// fyne.Do). Every failure is reported through ShowStatus and leaves the
// previously shown preview and text alone.
type Presenter interface {
	ShowPreview(img image.Image)
	ShowText(text string)
	ShowStatus(status string)
	SetBusy(busy bool)
}

// NopPresenter discards all presentation calls.
type NopPresenter struct{}

func (NopPresenter) ShowPreview(image.Image) {}
func (NopPresenter) ShowText(string)         {}
func (NopPresenter) ShowStatus(string)       {}
func (NopPresenter) SetBusy(bool)            {}

// Capture, clipboard, and engine seams, injectable for tests.
type (
	CaptureFunc   func(screenshot.Region) (*image.RGBA, error)
	ReadImageFunc func() (image.Image, error)
	WriteTextFunc func(text string) error
	EngineFactory func(b ocr.Backend) ocr.Engine
)

// Loop is the single-goroutine coordinator. It owns the application state
// and is the only place that mutates it; the GUI, tray, and hotkey
// listener communicate with it exclusively through Post.
type Loop struct {
	selector  overlay.Selector
	pool      *worker.Pool
	presenter Presenter
	state     appstate.State

	events  chan messages.Message
	results chan result
	busy    bool

	deadline  time.Duration
	capture   CaptureFunc
	readImage ReadImageFunc
	writeText WriteTextFunc
	newEngine EngineFactory
}

type result struct {
	text   string
	err    error
	cancel context.CancelFunc
}

// New creates an event loop wired to the real capture, clipboard, and
// engine implementations. cfg may be nil; teacher defaults apply.
func New(cfg *config.Config, selector overlay.Selector, presenter Presenter) *Loop {
	deadlineSec := config.DefaultDeadlineSec
	language := config.DefaultLanguage
	if cfg != nil {
		if cfg.OCRDeadlineSec > 0 {
			deadlineSec = cfg.OCRDeadlineSec
		}
		if cfg.Language != "" {
			language = cfg.Language
		}
	}
	if selector == nil {
		selector = overlay.NewSelector()
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}

	return &Loop{
		selector:  selector,
		pool:      worker.New(0),
		presenter: presenter,
		events:    make(chan messages.Message, 8),
		results:   make(chan result, 1),
		deadline:  time.Duration(deadlineSec) * time.Second,
		capture:   screenshot.CaptureRegion,
		readImage: clipboard.ReadImage,
		writeText: clipboard.WriteText,
		newEngine: func(b ocr.Backend) ocr.Engine {
			return ocr.NewEngine(b, ocr.Options{Language: language})
		},
	}
}

// Post hands an event to the loop without blocking. Returns false when the
// queue is full (the event is dropped, matching hotkey debounce behavior).
func (l *Loop) Post(msg messages.Message) bool {
	select {
	case l.events <- msg:
		return true
	default:
		log.Printf("eventloop: dropped %s (queue full)", msg.Type())
		return false
	}
}

// State exposes the loop-owned state for tests and the run-once flow.
func (l *Loop) State() *appstate.State { return &l.state }

// Deadline returns the configured recognition deadline.
func (l *Loop) Deadline() time.Duration { return l.deadline }

// Run processes events until ctx is cancelled or QuitRequested arrives.
func (l *Loop) Run(ctx context.Context) error {
	defer l.pool.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.events:
			if _, quit := msg.(messages.QuitRequested); quit {
				return nil
			}
			l.dispatch(ctx, msg)
		case res := <-l.results:
			l.handleResult(res)
		}
	}
}

func (l *Loop) dispatch(ctx context.Context, msg messages.Message) {
	log.Printf("eventloop: handling %s", msg.Type())
	switch m := msg.(type) {
	case messages.SnipRequested:
		l.handleSnip(ctx)
	case messages.PasteRequested:
		l.handlePaste()
	case messages.ExtractRequested:
		l.handleExtract(ctx, m.Backend)
	case messages.CopyRequested:
		l.handleCopy()
	default:
		log.Printf("eventloop: ignoring unexpected message %s", msg.Type())
	}
}

func (l *Loop) setBusy(b bool) {
	l.busy = b
	l.presenter.SetBusy(b)
}

// handleSnip runs the overlay selection and replaces the current capture.
// Refused while a recognition is in flight; a stale result must not land
// on a fresh capture.
func (l *Loop) handleSnip(ctx context.Context) {
	if l.busy {
		l.presenter.ShowStatus("Busy recognizing, please retry")
		return
	}

	region, cancelled, err := l.selector.Select(ctx)
	if err != nil {
		l.presenter.ShowStatus(fmt.Sprintf("Selection failed: %v", err))
		return
	}
	if cancelled {
		l.presenter.ShowStatus("Selection cancelled")
		return
	}

	img, err := l.capture(region)
	if err != nil {
		l.presenter.ShowStatus(fmt.Sprintf("Capture failed: %v", err))
		return
	}

	l.state.SetImage(img)
	l.presenter.ShowPreview(img)
	l.presenter.ShowText("")
	l.presenter.ShowStatus(fmt.Sprintf("Captured %s - Extract Text to recognize", region))
}

// handlePaste replaces the current capture with the clipboard image, if any.
func (l *Loop) handlePaste() {
	if l.busy {
		l.presenter.ShowStatus("Busy recognizing, please retry")
		return
	}

	img, err := l.readImage()
	if err != nil {
		if errors.Is(err, clipboard.ErrNoImage) {
			l.presenter.ShowStatus("No image on clipboard")
		} else {
			l.presenter.ShowStatus(fmt.Sprintf("Clipboard read failed: %v", err))
		}
		return
	}

	l.state.SetImage(img)
	l.presenter.ShowPreview(img)
	l.presenter.ShowText("")
	l.presenter.ShowStatus("Image pasted from clipboard - Extract Text to recognize")
}

// handleExtract submits the current capture to the worker pool.
func (l *Loop) handleExtract(ctx context.Context, backend ocr.Backend) {
	if l.busy {
		l.presenter.ShowStatus("Recognition already in progress")
		return
	}
	if !l.state.HasImage() {
		l.presenter.ShowStatus("No image captured - snip or paste first")
		return
	}

	engine := l.newEngine(backend)
	jobCtx, cancel := context.WithTimeout(ctx, l.deadline)

	l.setBusy(true)
	l.presenter.ShowStatus(fmt.Sprintf("Recognizing with %s backend...", backend))
	submitted := l.pool.Submit(jobCtx, l.state.Image(), engine, func(text string, err error) {
		l.results <- result{text: text, err: err, cancel: cancel}
	})
	if !submitted {
		cancel()
		l.setBusy(false)
		l.presenter.ShowStatus("Recognition already in progress")
	}
}

// handleResult lands a finished recognition. Failures leave the previous
// text (and image) untouched.
func (l *Loop) handleResult(res result) {
	l.setBusy(false)
	if res.cancel != nil {
		res.cancel()
	}

	if res.err != nil {
		log.Printf("eventloop: recognition failed: %v", res.err)
		l.presenter.ShowStatus(recognitionFailureStatus(res.err))
		return
	}

	l.state.SetText(res.text)
	l.presenter.ShowText(res.text)
	if res.text == "" {
		l.presenter.ShowStatus("No text detected in image")
	} else {
		l.presenter.ShowStatus(fmt.Sprintf("Recognized %d characters", len(res.text)))
	}
}

func recognitionFailureStatus(err error) string {
	switch {
	case errors.Is(err, ocr.ErrNotImplemented):
		return "Cloud backend is not implemented"
	case errors.Is(err, ocr.ErrUnavailable):
		return "Accurate backend unavailable - language data not installed"
	case errors.Is(err, ocr.ErrInvalidInput):
		return "Cannot recognize: invalid image"
	case errors.Is(err, context.DeadlineExceeded):
		return "Recognition timed out"
	default:
		return fmt.Sprintf("Recognition failed: %v", err)
	}
}

// handleCopy writes the current recognition result to the clipboard.
func (l *Loop) handleCopy() {
	if !l.state.HasText() {
		l.presenter.ShowStatus("Nothing to copy - extract text first")
		return
	}
	if err := l.writeText(l.state.Text()); err != nil {
		l.presenter.ShowStatus(fmt.Sprintf("Clipboard write failed: %v", err))
		return
	}
	l.presenter.ShowStatus("Text copied to clipboard")
}
