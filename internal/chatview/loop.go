package chatview

import "context"

// Loop runs functions one at a time, in the order they were queued. It is
// the event loop for panels that have no UI framework of their own.
type Loop struct {
	fns  chan func()
	done chan struct{}
}

// NewLoop creates a loop with room for buffer pending functions.
func NewLoop(buffer int) *Loop {
	return &Loop{
		fns:  make(chan func(), buffer),
		done: make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled. Call it once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.fns:
			fn()
		}
	}
}

// Do queues fn. It returns false if the loop has stopped.
func (l *Loop) Do(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.fns <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call queues fn and waits for it to finish. It returns false if the loop
// stopped before fn ran.
func (l *Loop) Call(fn func()) bool {
	ran := make(chan struct{})
	if !l.Do(func() { fn(); close(ran) }) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
