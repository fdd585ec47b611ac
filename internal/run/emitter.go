package run

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/veruslab/harvest/internal/extract"
)

// emitter streams records to stdout as whole lines in sorted-path order.
// Out-of-order completions from the worker pool are buffered until every
// earlier index has been emitted, so a parallel run's stream matches the
// sequential baseline. A single mutex serializes the stream and the
// progress bar.
type emitter struct {
	mu      sync.Mutex
	w       io.Writer
	bar     *progressbar.ProgressBar
	next    int
	pending map[int]extract.Record
}

func newEmitter(w io.Writer, bar *progressbar.ProgressBar) *emitter {
	return &emitter{
		w:       w,
		bar:     bar,
		pending: make(map[int]extract.Record),
	}
}

// emit registers the record for index and flushes the contiguous run of
// buffered records starting at the next expected index.
func (e *emitter) emit(index int, rec extract.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending[index] = rec
	for {
		next, ok := e.pending[e.next]
		if !ok {
			return
		}
		delete(e.pending, e.next)
		e.next++

		if line, err := next.JSONLine(); err == nil {
			_, _ = fmt.Fprintln(e.w, line)
		}
		if e.bar != nil {
			_ = e.bar.Add(1)
		}
	}
}
