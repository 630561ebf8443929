package worker

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

type stubEngine struct {
	text  string
	err   error
	delay time.Duration
}

func (s stubEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func smallImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 220, G: 220, B: 220, A: 255})
		}
	}
	return img
}

func TestPoolDeliversResult(t *testing.T) {
	p := New(1)
	defer p.Close()

	done := make(chan struct{})
	var gotText string
	var gotErr error
	ok := p.Submit(context.Background(), smallImage(), stubEngine{text: "hello"}, func(text string, err error) {
		gotText, gotErr = text, err
		close(done)
	})
	if !ok {
		t.Fatal("Submit should succeed on an idle pool")
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for result")
	}
	if gotErr != nil {
		t.Fatalf("Unexpected error: %v", gotErr)
	}
	if gotText != "hello" {
		t.Errorf("Text = %q, want %q", gotText, "hello")
	}
}

func TestPoolSubmitDropWhenBusy(t *testing.T) {
	p := New(1)
	defer p.Close()
	ctx := context.Background()

	done := make(chan struct{})
	slow := stubEngine{text: "slow", delay: 100 * time.Millisecond}
	ok := p.Submit(ctx, smallImage(), slow, func(string, error) { close(done) })
	if !ok {
		t.Fatal("first submit should succeed")
	}
	// With one worker busy and a 1-slot queue, at most one more submit
	// can be accepted; a third must drop.
	ok2 := p.Submit(ctx, smallImage(), slow, func(string, error) {})
	ok3 := p.Submit(ctx, smallImage(), slow, func(string, error) {})
	if ok2 && ok3 {
		t.Fatal("expected at least one submit to drop due to full queue")
	}
	<-done
}

func TestPoolPropagatesEngineError(t *testing.T) {
	p := New(1)
	defer p.Close()

	wantErr := errors.New("backend exploded")
	done := make(chan error, 1)
	p.Submit(context.Background(), smallImage(), stubEngine{err: wantErr}, func(_ string, err error) {
		done <- err
	})
	select {
	case err := <-done:
		if !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for result")
	}
}

func TestPoolReportsPreprocessFailure(t *testing.T) {
	p := New(1)
	defer p.Close()

	done := make(chan error, 1)
	p.Submit(context.Background(), nil, stubEngine{text: "unused"}, func(_ string, err error) {
		done <- err
	})
	select {
	case err := <-done:
		if err == nil {
			t.Error("Expected preprocessing error for nil image")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for result")
	}
}

func TestPoolHonorsContextDeadline(t *testing.T) {
	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	p.Submit(ctx, smallImage(), stubEngine{text: "late", delay: 2 * time.Second}, func(_ string, err error) {
		done <- err
	})
	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want context.DeadlineExceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for result")
	}
}
