package control

import "sync/atomic"

// StopControl is polled once per loop iteration.
type StopControl interface {
	StopRequested() bool
}

// Remote is a stop flag raised from outside the loop (HTTP, OS signal).
type Remote struct {
	stopped atomic.Bool
}

// Stop raises the flag. It is safe to call from any goroutine, any number of times.
func (r *Remote) Stop() {
	r.stopped.Store(true)
}

// StopRequested reports whether Stop has been called.
func (r *Remote) StopRequested() bool {
	return r.stopped.Load()
}

// Any stops when at least one member asks to. Every member is polled each time so
// that key-polling controls keep pumping their event loop.
type Any []StopControl

// StopRequested polls all members.
func (a Any) StopRequested() bool {
	stop := false
	for _, c := range a {
		if c.StopRequested() {
			stop = true
		}
	}
	return stop
}
