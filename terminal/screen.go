package terminal

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

var (
	// ErrInputClosed is returned by ReadEvent once the screen is finalised.
	ErrInputClosed = errors.New("terminal input closed")

	ErrNotInitialized = errors.New("terminal not initialized")
)

// Screen implements both the renderer and the input source of the runtime
// on top of a single tcell.Screen.
type Screen struct {
	screen tcell.Screen

	// set for simulation screens, whose size is reset by Init
	sim           tcell.SimulationScreen
	width, height int

	// mu serialises drawing against finalisation; ReadEvent runs unlocked
	mu          sync.Mutex
	initialized atomic.Bool
	restored    atomic.Bool
	restoreOnce sync.Once
}

// NewScreen opens the controlling terminal.
func NewScreen() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return &Screen{screen: screen}, nil
}

// NewSimulationScreen returns a Screen backed by tcell's in-memory screen,
// together with the simulation handle used to inject input and inspect cells.
func NewSimulationScreen(width, height int) (*Screen, tcell.SimulationScreen) {
	sim := tcell.NewSimulationScreen("UTF-8")
	return &Screen{screen: sim, sim: sim, width: width, height: height}, sim
}

// Tcell exposes the underlying screen.
func (s *Screen) Tcell() tcell.Screen {
	return s.screen
}

// Init switches the terminal into raw mode on the alternate screen.
// It must be paired with Restore.
func (s *Screen) Init() error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	if s.sim != nil {
		s.sim.SetSize(s.width, s.height)
	}
	s.screen.EnablePaste()
	s.screen.HideCursor()
	s.initialized.Store(true)
	return nil
}

// Draw replaces the screen contents with w.
func (s *Screen) Draw(w Widget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized.Load() || s.restored.Load() {
		return ErrNotInitialized
	}
	s.screen.Clear()
	if w != nil {
		w.Render(s.screen)
	}
	s.screen.Show()
	return nil
}

// ReadEvent blocks for the next terminal event.
func (s *Screen) ReadEvent() (tcell.Event, error) {
	ev := s.screen.PollEvent()
	if ev == nil {
		return nil, ErrInputClosed
	}
	return ev, nil
}

// Restore leaves raw mode and the alternate screen. Only the first call has
// an effect; it also unblocks a pending ReadEvent.
func (s *Screen) Restore() error {
	s.restoreOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.restored.Store(true)
		if s.initialized.Load() {
			s.screen.Fini()
		}
	})
	return nil
}
