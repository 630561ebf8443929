package ocr

import (
	"context"
	"errors"
	"image"
	"testing"
)

func testImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 10, 10))
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"fast", BackendFast, false},
		{"tesseract", BackendFast, false},
		{"", BackendFast, false},
		{"  Accurate ", BackendAccurate, false},
		{"best", BackendAccurate, false},
		{"cloud", BackendCloud, false},
		{"easyocr", BackendFast, true},
		{"remote", BackendFast, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseBackend(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBackendLabelRoundTrip(t *testing.T) {
	for _, b := range Backends() {
		got, err := ParseBackendLabel(b.Label())
		if err != nil {
			t.Errorf("ParseBackendLabel(%q) failed: %v", b.Label(), err)
			continue
		}
		if got != b {
			t.Errorf("ParseBackendLabel(%q) = %v, want %v", b.Label(), got, b)
		}
	}
	if _, err := ParseBackendLabel("EasyOCR"); err == nil {
		t.Error("Expected error for unknown label")
	}
}

func TestCloudBackendAlwaysNotImplemented(t *testing.T) {
	engine := NewEngine(BackendCloud, Options{})

	// Must refuse before looking at the image, so even a nil image gets
	// the not-implemented condition rather than invalid-input.
	for _, img := range []image.Image{nil, testImage()} {
		_, err := engine.Recognize(context.Background(), img)
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("Cloud Recognize = %v, want ErrNotImplemented", err)
		}
	}
}

func TestFastBackendRejectsInvalidInput(t *testing.T) {
	engine := NewEngine(BackendFast, Options{})

	if _, err := engine.Recognize(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Recognize(nil) = %v, want ErrInvalidInput", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := engine.Recognize(context.Background(), empty); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Recognize(empty) = %v, want ErrInvalidInput", err)
	}
}

func TestAccurateBackendUnavailable(t *testing.T) {
	engine := newAccurateEngine(Options{})
	engine.available = func(string) (bool, error) { return false, nil }

	_, err := engine.Recognize(context.Background(), testImage())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Recognize = %v, want ErrUnavailable", err)
	}
}

func TestAccurateBackendProbeFailure(t *testing.T) {
	engine := newAccurateEngine(Options{})
	engine.available = func(string) (bool, error) { return false, errors.New("tessdata dir missing") }

	_, err := engine.Recognize(context.Background(), testImage())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Recognize = %v, want ErrUnavailable", err)
	}
}

func TestAccurateBackendUsesBestLanguage(t *testing.T) {
	engine := newAccurateEngine(Options{Language: "eng"})
	if engine.language != "eng_best" {
		t.Errorf("language = %q, want %q", engine.language, "eng_best")
	}
}

func TestNewEngineSelectsBackend(t *testing.T) {
	if _, ok := NewEngine(BackendFast, Options{}).(*fastEngine); !ok {
		t.Error("BackendFast should build a fastEngine")
	}
	if _, ok := NewEngine(BackendAccurate, Options{}).(*accurateEngine); !ok {
		t.Error("BackendAccurate should build an accurateEngine")
	}
	if _, ok := NewEngine(BackendCloud, Options{}).(cloudEngine); !ok {
		t.Error("BackendCloud should build a cloudEngine")
	}
}

func TestBackendStrings(t *testing.T) {
	if BackendFast.String() != "fast" || BackendAccurate.String() != "accurate" || BackendCloud.String() != "cloud" {
		t.Error("Backend String values changed")
	}
}
