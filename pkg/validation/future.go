package validation

import (
	"context"
	"sync"
	"time"
)

// Future is the pending result of a scheduled pass.
type Future struct {
	report Report
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) complete(report Report, err error) {
	f.once.Do(func() {
		f.report = report
		f.err = err
		close(f.done)
	})
}

// Await blocks until the pass completes and returns its report and error.
func (f *Future) Await() (Report, error) {
	<-f.done
	return f.report, f.err
}

// AwaitContext is Await bounded by ctx. A canceled wait does not cancel the pass.
func (f *Future) AwaitContext(ctx context.Context) (Report, error) {
	select {
	case <-f.done:
		return f.report, f.err
	case <-ctx.Done():
		return Report{}, ctx.Err()
	}
}

// AwaitWithTimeout is Await bounded by timeout; it returns ErrTimeout when the
// pass is still running after timeout.
func (f *Future) AwaitWithTimeout(timeout time.Duration) (Report, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-f.done:
		return f.report, f.err
	case <-t.C:
		return Report{}, ErrTimeout
	}
}

// Done returns a channel closed when the pass completes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the pass has completed without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll waits for every future and returns the first error encountered.
func WaitAll(futures ...*Future) ([]Report, error) {
	reports := make([]Report, len(futures))
	var first error
	for i, f := range futures {
		r, err := f.Await()
		reports[i] = r
		if err != nil && first == nil {
			first = err
		}
	}
	return reports, first
}
