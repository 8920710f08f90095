package tea

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/teatui/terminal"
)

// Program bundles the functions an application supplies.
//
// Update and View must be pure. Effects runs on the effects actor (or on its
// own goroutine under the concurrent disciplines) and receives the State the
// Effect was emitted with, not the latest one. FromEvent must map every
// event to some Message, using a no-op Message for events the application
// ignores.
type Program[S, M, E any] struct {
	// Init returns the initial State and, when the bool is true, an Effect
	// dispatched before the first Message is processed.
	Init func() (S, E, bool)

	Update func(S, M) Transition[S, E]

	View func(S) terminal.Widget

	// Effects may be nil when the program never emits an Effect.
	Effects func(context.Context, S, E) (M, bool)

	FromEvent func(tcell.Event) M

	// Clone, when set, is applied to every State crossing an actor boundary.
	// Programs whose State holds slices or maps they later modify in place
	// need it; value-only States do not.
	Clone func(S) S
}

func (p Program[S, M, E]) validate() error {
	switch {
	case p.Init == nil:
		return fmt.Errorf("%w: Init is nil", ErrInvalidProgram)
	case p.Update == nil:
		return fmt.Errorf("%w: Update is nil", ErrInvalidProgram)
	case p.View == nil:
		return fmt.Errorf("%w: View is nil", ErrInvalidProgram)
	case p.FromEvent == nil:
		return fmt.Errorf("%w: FromEvent is nil", ErrInvalidProgram)
	}
	return nil
}

func (p Program[S, M, E]) effects() func(context.Context, S, E) (M, bool) {
	if p.Effects != nil {
		return p.Effects
	}
	return func(context.Context, S, E) (m M, ok bool) { return }
}

func (p Program[S, M, E]) clone() func(S) S {
	if p.Clone != nil {
		return p.Clone
	}
	return func(s S) S { return s }
}

// Transition is the result of one Update step: either Terminate, or a new
// State with an optional Effect.
type Transition[S, E any] struct {
	terminate bool
	state     S
	effect    E
	hasEffect bool
}

// Terminate stops the program. Nothing is drawn or dispatched afterwards.
func Terminate[S, E any]() Transition[S, E] {
	return Transition[S, E]{terminate: true}
}

// Continue replaces the State without requesting an Effect.
func Continue[S, E any](s S) Transition[S, E] {
	return Transition[S, E]{state: s}
}

// ContinueWith replaces the State and requests e, which is handled with s.
func ContinueWith[S, E any](s S, e E) Transition[S, E] {
	return Transition[S, E]{state: s, effect: e, hasEffect: true}
}

func (t Transition[S, E]) Terminated() bool { return t.terminate }

func (t Transition[S, E]) State() S { return t.state }

func (t Transition[S, E]) Effect() (E, bool) { return t.effect, t.hasEffect }

// envelope carries an Effect together with the State it was emitted with.
type envelope[S, E any] struct {
	state  S
	effect E
}
