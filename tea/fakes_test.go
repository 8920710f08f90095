package tea_test

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/teatui/terminal"
)

var errBroken = errors.New("broken")

// frame is the widget the test programs render; it only carries the state.
type frame[S any] struct {
	state S
}

func (frame[S]) Render(terminal.Surface) {}

// fakeTerminal is a Renderer and InputSource that records frames and
// replays scripted events. Once the script is exhausted ReadEvent blocks
// until Restore, then fails.
type fakeTerminal[S any] struct {
	mu     sync.Mutex
	frames []S

	events   chan tcell.Event
	restored chan struct{}

	initErr    error
	readErr    error
	restoreErr error
	// failDrawAt makes the n-th draw (1-based) fail; 0 never fails
	failDrawAt int
	draws      int

	initCalls    atomic.Int32
	restoreCalls atomic.Int32
	restoreOnce  sync.Once
}

func newFakeTerminal[S any](events ...tcell.Event) *fakeTerminal[S] {
	ch := make(chan tcell.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	return &fakeTerminal[S]{
		events:   ch,
		restored: make(chan struct{}),
	}
}

func (f *fakeTerminal[S]) Init() error {
	f.initCalls.Add(1)
	return f.initErr
}

func (f *fakeTerminal[S]) Draw(w terminal.Widget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws++
	if f.failDrawAt > 0 && f.draws == f.failDrawAt {
		return errBroken
	}
	f.frames = append(f.frames, w.(frame[S]).state)
	return nil
}

func (f *fakeTerminal[S]) Restore() error {
	f.restoreCalls.Add(1)
	f.restoreOnce.Do(func() { close(f.restored) })
	return f.restoreErr
}

func (f *fakeTerminal[S]) ReadEvent() (tcell.Event, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	select {
	case ev := <-f.events:
		return ev, nil
	case <-f.restored:
		return nil, terminal.ErrInputClosed
	}
}

func (f *fakeTerminal[S]) Frames() []S {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]S(nil), f.frames...)
}

// drawOnly is a Renderer that cannot read input.
type drawOnly struct{}

func (drawOnly) Init() error                { return nil }
func (drawOnly) Draw(terminal.Widget) error { return nil }
func (drawOnly) Restore() error             { return nil }

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// channelInput yields whatever the test sends, independent of the renderer's
// lifetime. Closing it ends the input.
type channelInput chan tcell.Event

func (c channelInput) ReadEvent() (tcell.Event, error) {
	ev, ok := <-c
	if !ok {
		return nil, terminal.ErrInputClosed
	}
	return ev, nil
}
