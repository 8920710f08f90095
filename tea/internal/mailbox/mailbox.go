// Package mailbox provides an unbounded FIFO channel with one receiver and
// any number of sender handles.
//
// A send never blocks on a slow receiver: values are parked in a slice owned
// by a pump goroutine until the receiver takes them. Closure is observable on
// both ends:
//   - when every Sender has been closed and the backlog is drained, Out is closed.
//   - when the receiver calls Close, further sends fail with ErrClosed.
package mailbox

import (
	"errors"
	"sync"
	"sync/atomic"
)

var ErrClosed = errors.New("mailbox receiver is closed")

type Mailbox[T any] struct {
	in   chan T
	out  chan T
	done chan struct{}

	senders   atomic.Int32
	closeIn   sync.Once
	closeDone sync.Once
}

// New creates a mailbox and starts its pump goroutine.
// The pump exits once the receiver closes or every sender has closed and
// the backlog has been handed out.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{
		in:   make(chan T),
		out:  make(chan T),
		done: make(chan struct{}),
	}
	go m.pump()
	return m
}

// Sender returns a new sending handle.
// All handles must be taken before the first one is closed.
func (m *Mailbox[T]) Sender() *Sender[T] {
	m.senders.Add(1)
	return &Sender[T]{mb: m}
}

// Out is the receiving side. It is closed once all senders are gone and the
// backlog is drained, or once the receiver closes the mailbox.
func (m *Mailbox[T]) Out() <-chan T {
	return m.out
}

// Recv blocks until a value is available. ok is false once Out is closed.
func (m *Mailbox[T]) Recv() (v T, ok bool) {
	v, ok = <-m.out
	return
}

// Close detaches the receiver. Buffered values are dropped and every
// subsequent Send fails with ErrClosed.
func (m *Mailbox[T]) Close() {
	m.closeDone.Do(func() {
		close(m.done)
	})
}

func (m *Mailbox[T]) releaseSender() {
	if m.senders.Add(-1) == 0 {
		m.closeIn.Do(func() {
			close(m.in)
		})
	}
}

func (m *Mailbox[T]) pump() {
	defer close(m.out)

	var zero T
	queue := make([]T, 0, 16)
	in := m.in

	for {
		if len(queue) == 0 {
			if in == nil {
				return
			}
			select {
			case v, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				queue = append(queue, v)
			case <-m.done:
				return
			}
			continue
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			queue = append(queue, v)
		case m.out <- queue[0]:
			queue[0] = zero
			queue = queue[1:]
		case <-m.done:
			return
		}
	}
}

// Sender is one producer's handle on a Mailbox.
// Send is safe for concurrent use. Values sent by one goroutine arrive in order.
type Sender[T any] struct {
	mb     *Mailbox[T]
	closed atomic.Bool
}

// Send enqueues v. It fails with ErrClosed when the receiver has detached or
// when this handle, or the mailbox input, is already closed.
func (s *Sender[T]) Send(v T) (err error) {
	if s.closed.Load() {
		return ErrClosed
	}
	defer func() {
		// the last handle closed the input while this send was in flight
		if r := recover(); r != nil {
			err = ErrClosed
		}
	}()

	select {
	case <-s.mb.done:
		return ErrClosed
	default:
	}

	select {
	case <-s.mb.done:
		return ErrClosed
	case s.mb.in <- v:
		return nil
	}
}

// Close releases the handle. The mailbox input closes with its last handle.
func (s *Sender[T]) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.mb.releaseSender()
	}
}
