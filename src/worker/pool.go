package worker

import (
	"context"
	"image"
	"log"
	"runtime"
	"sync"

	"snip-ocr/src/ocr"
	"snip-ocr/src/preprocess"
)

// ResultCallback is invoked on recognition completion (from a worker
// goroutine). The event loop should pass a closure that posts back into
// the loop safely.
type ResultCallback func(text string, err error)

// Pool is a fixed-size recognition worker pool with a 1-slot input queue
// (strict back-pressure). Each job preprocesses its image and runs the
// selected engine under the job context's deadline.
type Pool struct {
	jobs     chan job
	pipeline preprocess.Pipeline
	wg       sync.WaitGroup
}

type job struct {
	ctx    context.Context
	img    image.Image
	engine ocr.Engine
	cb     ResultCallback
}

// New creates a worker pool. Size defaults to NumCPU when size<=0.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1), pipeline: preprocess.New()}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				text, err := p.process(j)
				j.cb(text, err)
			}
		}()
	}
}

func (p *Pool) process(j job) (string, error) {
	processed, err := p.pipeline.Run(j.img)
	if err != nil {
		return "", err
	}
	log.Printf("Worker: recognizing %dx%d image", processed.Bounds().Dx(), processed.Bounds().Dy())
	return j.engine.Recognize(j.ctx, processed)
}

// Submit enqueues a recognition job if the single-slot queue is free.
// Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, img image.Image, engine ocr.Engine, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, img: img, engine: engine, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
