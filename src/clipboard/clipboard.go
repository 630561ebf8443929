package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

// ErrNoImage is returned by ReadImage when the clipboard holds no image data.
var ErrNoImage = errors.New("no image on clipboard")

var writeMu sync.Mutex

func Init() error {
	return clipboard.Init()
}

// WriteText performs a mutex-guarded clipboard write to prevent corruption
// under parallel writes.
func WriteText(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadImage returns the clipboard image, or ErrNoImage when the clipboard
// holds no decodable image data.
func ReadImage() (image.Image, error) {
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image data: %v", ErrNoImage, err)
	}
	return img, nil
}
