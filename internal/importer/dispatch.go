package importer

import "sync"

// SerialDispatcher runs callbacks one at a time, in submission order, on a
// single goroutine. All presentation callbacks go through it so the front end
// never sees two deliveries at once.
type SerialDispatcher struct {
	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewSerialDispatcher starts the delivery goroutine.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go d.loop()
	return d
}

// Dispatch queues fn. It never blocks and returns false once the dispatcher
// is closed.
func (d *SerialDispatcher) Dispatch(fn func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.pending = append(d.pending, fn)
	d.mu.Unlock()

	d.signal()
	return true
}

// Close stops accepting work, runs whatever is already queued and waits for
// the goroutine to exit. It must not be called from a dispatched callback.
func (d *SerialDispatcher) Close() {
	d.mu.Lock()
	already := d.closed
	d.closed = true
	d.mu.Unlock()

	if !already {
		d.signal()
	}
	<-d.done
}

func (d *SerialDispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *SerialDispatcher) loop() {
	defer close(d.done)
	for {
		d.mu.Lock()
		batch := d.pending
		d.pending = nil
		closed := d.closed
		d.mu.Unlock()

		for _, fn := range batch {
			fn()
		}

		if len(batch) == 0 {
			if closed {
				return
			}
			<-d.wake
		}
	}
}
