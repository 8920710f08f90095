package tea

import (
	"errors"
	"fmt"

	"github.com/rickb777/date/v2/timespan"
)

var (
	// ErrRender covers draw failures and terminal init/restore failures.
	ErrRender = errors.New("render failed")

	ErrInputRead = errors.New("failed to read input event")

	ErrViewSend    = errors.New("failed to send state to view")
	ErrEffectSend  = errors.New("failed to send effect to effects")
	ErrMessageSend = errors.New("failed to send message to update")

	// ErrGracefulShutdownUnavailable is returned when every actor stopped
	// without reporting an outcome.
	ErrGracefulShutdownUnavailable = errors.New("no actor reported an outcome")

	ErrActorPanic     = errors.New("actor panicked")
	ErrInvalidProgram = errors.New("invalid program")
	ErrMissingBackend = errors.New("missing backend")
)

// Actor names a stage of the runtime.
type Actor string

const (
	ActorSupervisor Actor = "supervisor"
	ActorEvents     Actor = "events"
	ActorUpdate     Actor = "update"
	ActorEffects    Actor = "effects"
	ActorView       Actor = "view"
)

// ActorError attributes a failure to the stage where it happened.
type ActorError struct {
	Actor Actor
	Err   error
}

func (e *ActorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Actor, e.Err)
}

func (e *ActorError) Unwrap() error {
	return e.Err
}

// outcome is the final result of one actor.
type outcome struct {
	actor Actor
	// err is nil for a clean stop
	err error
	// span covers the actor's lifetime, from spawn to exit
	span timespan.TimeSpan
}
