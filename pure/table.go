package pure

import (
	"sync"
	"sync/atomic"
)

// Table is a bounded cache with two generations. Stores go to the head
// generation; once it holds maxSize entries the generations swap and the
// oldest one is discarded, so recently used keys survive one rotation.
// Load and Store are safe for concurrent use.
type Table[O any] struct {
	mu      sync.Mutex
	gens    [2]atomic.Pointer[sync.Map]
	head    atomic.Uint32
	size    atomic.Uint32
	maxSize uint32
}

func NewTable[O any](maxSize uint32) *Table[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	t := &Table[O]{maxSize: maxSize}
	t.gens[0].Store(&sync.Map{})
	t.gens[1].Store(&sync.Map{})
	return t
}

func (t *Table[O]) Load(key any) (O, bool) {
	head := t.head.Load()
	if v, ok := t.gens[head].Load().Load(key); ok {
		return v.(O), true
	}
	if v, ok := t.gens[1-head].Load().Load(key); ok {
		return v.(O), true
	}
	var zero O
	return zero, false
}

func (t *Table[O]) Store(key any, value O) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.size.Load() >= t.maxSize {
		next := 1 - t.head.Load()
		t.gens[next].Store(&sync.Map{})
		t.head.Store(next)
		t.size.Store(0)
	}
	t.gens[t.head.Load()].Load().Store(key, value)
	t.size.Add(1)
}
