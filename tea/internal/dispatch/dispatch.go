// Package dispatch runs effect invocations under one of three disciplines:
// inline on the caller's goroutine, one goroutine per invocation, or a fixed
// set of partition workers selected by key hash.
package dispatch

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Partitionable values choose the partition worker that handles them.
type Partitionable interface {
	PartitionKey() string
}

// KeyOf returns v's partition key, or "" when v does not declare one.
func KeyOf(v any) string {
	if p, ok := v.(Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}

// Dispatcher hands items to a handler.
//
// Dispatch and Wait are called from a single goroutine. After Wait returns
// no handler invocation is running and Dispatch must not be called again.
type Dispatcher[T any] interface {
	Dispatch(ctx context.Context, item T) error
	Wait()
}

// PanicFunc receives the value recovered from a panicking handler.
type PanicFunc func(recovered any)

// --- inline ---

type inline[T any] struct {
	handleFn func(context.Context, T)
}

// NewInline runs every item to completion inside Dispatch.
// Panics propagate to the caller.
func NewInline[T any](handleFn func(context.Context, T)) Dispatcher[T] {
	return inline[T]{handleFn: handleFn}
}

func (d inline[T]) Dispatch(ctx context.Context, item T) error {
	d.handleFn(ctx, item)
	return nil
}

func (inline[T]) Wait() {}

// --- goroutine per item ---

type pool[T any] struct {
	handleFn func(context.Context, T)
	onPanic  PanicFunc
	slots    chan struct{}
	wg       sync.WaitGroup
}

// NewPool starts one goroutine per item. When limit > 0 at most limit
// handlers run at once and Dispatch blocks for a free slot.
func NewPool[T any](limit int, handleFn func(context.Context, T), onPanic PanicFunc) Dispatcher[T] {
	p := &pool[T]{
		handleFn: handleFn,
		onPanic:  onPanic,
	}
	if limit > 0 {
		p.slots = make(chan struct{}, limit)
	}
	return p
}

func (p *pool[T]) Dispatch(ctx context.Context, item T) error {
	if p.slots != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p.slots <- struct{}{}:
		}
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.slots != nil {
			defer func() { <-p.slots }()
		}
		defer recoverWith(p.onPanic)
		p.handleFn(ctx, item)
	}()
	return nil
}

func (p *pool[T]) Wait() {
	p.wg.Wait()
}

// --- partitioned workers ---

type partitioned[T any] struct {
	keyFn  func(T) string
	chs    []chan T
	wg     sync.WaitGroup
	closed sync.Once
}

// NewPartitioned starts numWorkers goroutines, each draining its own queue of
// bufferSize items in order. Items with equal keys always land on the same
// worker. Workers stop when Wait drains them or when ctx is cancelled.
func NewPartitioned[T any](
	ctx context.Context,
	numWorkers, bufferSize int,
	keyFn func(T) string,
	handleFn func(context.Context, T),
	onPanic PanicFunc,
) Dispatcher[T] {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}

	p := &partitioned[T]{
		keyFn: keyFn,
		chs:   make([]chan T, numWorkers),
	}

	ready := sync.WaitGroup{}
	for i := range p.chs {
		ch := make(chan T, bufferSize)
		p.chs[i] = ch
		p.wg.Add(1)
		ready.Add(1)
		go func(ch chan T) {
			defer p.wg.Done()
			ready.Done()
			for {
				select {
				case item, ok := <-ch:
					if !ok {
						return
					}
					runGuarded(ctx, item, handleFn, onPanic)
				case <-ctx.Done():
					return
				}
			}
		}(ch)
	}
	ready.Wait()

	return p
}

func (p *partitioned[T]) Dispatch(ctx context.Context, item T) error {
	ch := p.chs[indexByHash(p.keyFn(item), len(p.chs))]
	select {
	case <-ctx.Done():
		return ctx.Err()
	case ch <- item:
		return nil
	}
}

func (p *partitioned[T]) Wait() {
	p.closed.Do(func() {
		for _, ch := range p.chs {
			close(ch)
		}
	})
	p.wg.Wait()
}

func runGuarded[T any](ctx context.Context, item T, handleFn func(context.Context, T), onPanic PanicFunc) {
	defer recoverWith(onPanic)
	handleFn(ctx, item)
}

func recoverWith(onPanic PanicFunc) {
	if r := recover(); r != nil && onPanic != nil {
		onPanic(r)
	}
}

func indexByHash(key string, numChs int) int {
	switch numChs {
	case 0:
		panic("number of partitions cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numChs))
	}
}
