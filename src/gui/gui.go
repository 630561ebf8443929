// Package gui is the Fyne application shell: preview pane, result text,
// controls, and shortcuts. It owns no snip/OCR logic; every user action is
// posted to the event loop, and the loop presents back through the
// Presenter methods implemented here.
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"

	"snip-ocr/src/messages"
	"snip-ocr/src/ocr"
	"snip-ocr/src/tray"
)

const (
	previewMaxW = 600
	previewMaxH = 320
)

// Shell is the main window. Construct with New, bind the event loop with
// Bind, then Run on the main goroutine.
type Shell struct {
	app    fyne.App
	win    fyne.Window
	post   func(messages.Message) bool
	status *widget.Label
	text   *widget.Label
	prev   *canvas.Image

	extractBtn *widget.Button
	copyBtn    *widget.Button
	backendSel *widget.Select

	backend ocr.Backend
	// snipHidden marks that the window was hidden for an in-flight snip
	// and should reappear with the next presenter update.
	snipHidden bool
}

func New() *Shell {
	s := &Shell{
		app:  app.NewWithID("snip-ocr"),
		post: func(messages.Message) bool { return false },
	}
	s.win = s.app.NewWindow("Snip OCR")
	s.buildUI()
	return s
}

// Bind connects the shell to the event loop's Post function. Must be
// called before Run.
func (s *Shell) Bind(post func(messages.Message) bool) {
	s.post = post
}

func (s *Shell) buildUI() {
	snipBtn := widget.NewButton("New Snip (Ctrl+Shift+S)", s.startSnip)
	pasteBtn := widget.NewButton("Paste Image (Ctrl+V)", func() {
		s.post(messages.PasteRequested{})
	})

	labels := make([]string, 0, len(ocr.Backends()))
	for _, b := range ocr.Backends() {
		labels = append(labels, b.Label())
	}
	s.backendSel = widget.NewSelect(labels, func(label string) {
		if b, err := ocr.ParseBackendLabel(label); err == nil {
			s.backend = b
		}
	})
	s.backendSel.SetSelected(ocr.BackendFast.Label())

	s.extractBtn = widget.NewButton("Extract Text", func() {
		s.post(messages.ExtractRequested{Backend: s.backend})
	})
	s.extractBtn.Disable()

	s.copyBtn = widget.NewButton("Copy to Clipboard", func() {
		s.post(messages.CopyRequested{})
	})
	s.copyBtn.Disable()

	controls := container.NewHBox(snipBtn, pasteBtn, s.backendSel, s.extractBtn)

	s.prev = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, previewMaxW, previewMaxH)))
	s.prev.FillMode = canvas.ImageFillContain
	s.prev.SetMinSize(fyne.NewSize(previewMaxW/2, previewMaxH/2))

	s.text = widget.NewLabel("Extracted text will appear here")
	s.text.Wrapping = fyne.TextWrapWord
	textScroll := container.NewVScroll(s.text)
	textScroll.SetMinSize(fyne.NewSize(previewMaxW/2, 140))

	s.status = widget.NewLabel("Click New Snip or press Ctrl+Shift+S to capture")

	s.win.SetContent(container.NewBorder(
		controls,
		container.NewVBox(s.copyBtn, s.status),
		nil, nil,
		container.NewVSplit(s.prev, textScroll),
	))
	s.win.Resize(fyne.NewSize(640, 560))

	s.win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl | fyne.KeyModifierShift},
		func(fyne.Shortcut) { s.startSnip() },
	)
	s.win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyV, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { s.post(messages.PasteRequested{}) },
	)

	s.win.SetCloseIntercept(func() {
		s.post(messages.QuitRequested{})
		s.app.Quit()
	})

	tray.Setup(s.app, s.startSnip, s.win.Show)
}

// startSnip hides the window so the overlay captures the screen beneath
// it, then requests the selection flow.
func (s *Shell) startSnip() {
	s.snipHidden = true
	s.win.Hide()
	s.post(messages.SnipRequested{})
}

// Run shows the window and blocks until the application quits. Must run
// on the main goroutine.
func (s *Shell) Run() {
	s.win.ShowAndRun()
}

// reappear restores the window hidden by startSnip. Callers hold the Fyne
// thread (inside fyne.Do).
func (s *Shell) reappear() {
	if s.snipHidden {
		s.snipHidden = false
		s.win.Show()
	}
}

// Presenter implementation. Called from the event-loop goroutine, so all
// widget access funnels through fyne.Do.

func (s *Shell) ShowPreview(img image.Image) {
	// Scale for display only; the state keeps the untouched capture.
	scaled := imaging.Fit(img, previewMaxW, previewMaxH, imaging.Lanczos)
	fyne.Do(func() {
		s.reappear()
		s.prev.Image = scaled
		s.prev.Refresh()
		s.extractBtn.Enable()
	})
}

func (s *Shell) ShowText(text string) {
	fyne.Do(func() {
		s.text.SetText(text)
		if text == "" {
			s.copyBtn.Disable()
		} else {
			s.copyBtn.Enable()
		}
	})
}

func (s *Shell) ShowStatus(status string) {
	fyne.Do(func() {
		s.reappear()
		s.status.SetText(status)
	})
}

func (s *Shell) SetBusy(busy bool) {
	fyne.Do(func() {
		if busy {
			s.extractBtn.Disable()
		} else {
			s.extractBtn.Enable()
		}
	})
}
