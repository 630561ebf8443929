// Package tray provides the system-tray icon and menu for the resident app.
package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Setup installs the tray menu when the driver supports one (desktop
// builds). onSnip posts the start-snip request; onShow raises the window.
// Fyne appends its own Quit item.
func Setup(app fyne.App, onSnip, onShow func()) {
	desk, ok := app.(desktop.App)
	if !ok {
		return
	}
	menu := fyne.NewMenu("Snip OCR",
		fyne.NewMenuItem("New Snip", onSnip),
		fyne.NewMenuItem("Show Window", onShow),
	)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(Icon())
}

// Icon returns the tray icon: a dashed selection rectangle, rendered at
// startup so no binary asset needs shipping.
func Icon() fyne.Resource {
	return fyne.NewStaticResource("snip-ocr-tray.png", iconPNG())
}

func iconPNG() []byte {
	const size = 32
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	frame := color.RGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff}

	dash := func(x, y int) {
		// 3-on 2-off dash pattern along the frame.
		if (x+y)%5 < 3 {
			img.SetRGBA(x, y, frame)
			img.SetRGBA(x, y+1, frame)
		}
	}
	for x := 4; x < size-4; x++ {
		dash(x, 4)
		dash(x, size-6)
	}
	for y := 4; y < size-4; y++ {
		dash(4, y)
		dash(size-6, y)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
