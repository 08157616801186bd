package observe

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/serbench/bench"
)

// AsyncSink forwards samples to another sink from a background goroutine.
//
// Record never blocks: when the buffer is full, or after Close, the sample is dropped,
// counted, and reported to the drop hook.
type AsyncSink struct {
	next    bench.Sink
	samples chan bench.Sample
	done    chan struct{}
	stopped chan struct{}
	onDrop  func()

	// mu orders sends in Record before the close of done.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	dropped   atomic.Uint64
}

var _ bench.Sink = (*AsyncSink)(nil)

// NewAsyncSink starts a sink buffering up to size samples for next. onDrop may be nil.
func NewAsyncSink(next bench.Sink, size int, onDrop func()) *AsyncSink {
	if size < 1 {
		size = 1
	}
	if onDrop == nil {
		onDrop = func() {}
	}

	s := &AsyncSink{
		next:    next,
		samples: make(chan bench.Sample, size),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		onDrop:  onDrop,
	}
	go s.run()

	return s
}

// Record implements bench.Sink.
func (s *AsyncSink) Record(sample bench.Sample) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.drop()
		return
	}

	select {
	case s.samples <- sample:
	default:
		s.drop()
	}
}

// Dropped returns the number of samples dropped so far.
func (s *AsyncSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Close stops accepting samples, delivers the buffered ones and waits for the
// background goroutine to exit. It is safe to call more than once.
func (s *AsyncSink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.done)
		s.mu.Unlock()
	})
	<-s.stopped

	return nil
}

func (s *AsyncSink) drop() {
	s.dropped.Add(1)
	s.onDrop()
}

func (s *AsyncSink) run() {
	defer close(s.stopped)

	for {
		select {
		case sample := <-s.samples:
			s.next.Record(sample)
		case <-s.done:
			for {
				select {
				case sample := <-s.samples:
					s.next.Record(sample)
				default:
					return
				}
			}
		}
	}
}
