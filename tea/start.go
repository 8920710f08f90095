package tea

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/teatui/tea/internal/mailbox"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Start runs program until the first actor stops or ctx is done.
//
// It returns nil when Update terminates the program or the message stream
// ends, ctx.Err() when ctx is done first, and otherwise the failing actor's
// *ActorError. The renderer is restored exactly once before Start returns;
// a restore failure is combined with the result. The context passed to
// effect handlers is cancelled when Start returns.
func Start[S, M, E any](ctx context.Context, program Program[S, M, E], opts ...Option) (err error) {
	if err := program.validate(); err != nil {
		return &ActorError{Actor: ActorSupervisor, Err: err}
	}

	o := newOptions(opts)
	logger := o.logger.With(zap.String("run_id", uuid.NewString()))

	renderer, input, err := o.backends()
	if err != nil {
		return &ActorError{Actor: ActorSupervisor, Err: err}
	}
	if err := renderer.Init(); err != nil {
		return &ActorError{Actor: ActorSupervisor, Err: fmt.Errorf("%w: %w", ErrRender, err)}
	}
	defer func() {
		if rerr := renderer.Restore(); rerr != nil {
			logger.Error("failed to restore terminal", zap.Error(rerr))
			err = multierr.Append(err, &ActorError{
				Actor: ActorSupervisor,
				Err:   fmt.Errorf("%w: %w", ErrRender, rerr),
			})
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	clone := program.clone()
	state, initEffect, hasInitEffect := program.Init()

	updateBox := mailbox.New[M]()
	viewBox := mailbox.New[S]()
	effectsBox := mailbox.New[envelope[S, E]]()

	// every sender handle exists before any actor can close one
	eventsToUpdate := updateBox.Sender()
	effectsToUpdate := updateBox.Sender()
	updateToView := viewBox.Sender()
	updateToEffects := effectsBox.Sender()

	sv := newSupervisor(logger, o.metrics)

	initial := clone(state)
	sv.spawn(ActorView, func() error {
		return runView(renderer, program.View, initial, viewBox, o.metrics)
	}, viewBox.Close)

	u := updateLoop[S, M, E]{
		update:    program.Update,
		clone:     clone,
		inbox:     updateBox,
		viewTx:    updateToView,
		effectsTx: updateToEffects,
		metrics:   o.metrics,
	}
	sv.spawn(ActorUpdate, func() error {
		return u.run(state, initEffect, hasInitEffect)
	}, u.release)

	fx := newEffectsLoop(program.effects(), o.effects, effectsBox, effectsToUpdate, o.metrics)
	sv.spawn(ActorEffects, func() error {
		return fx.run(runCtx)
	}, fx.release)

	sv.spawn(ActorEvents, func() error {
		return runEvents(input, program.FromEvent, eventsToUpdate)
	}, eventsToUpdate.Close)
	sv.seal()

	logger.Debug("program started", zap.String("effects_mode", o.effects.Mode.String()))

	select {
	case <-ctx.Done():
		logger.Info("program cancelled", zap.Error(ctx.Err()))
		return ctx.Err()
	case out, ok := <-sv.outcomes:
		if !ok {
			return &ActorError{Actor: ActorSupervisor, Err: ErrGracefulShutdownUnavailable}
		}
		logger.Info("program stopped",
			zap.String("actor", string(out.actor)),
			zap.Time("started", out.span.Start()),
			zap.Duration("lifetime", out.span.Duration()),
			zap.Error(out.err),
		)
		return out.err
	}
}

type supervisor struct {
	logger   *zap.Logger
	metrics  *Metrics
	wg       sync.WaitGroup
	outcomes chan outcome
}

func newSupervisor(logger *zap.Logger, metrics *Metrics) *supervisor {
	return &supervisor{
		logger:  logger,
		metrics: metrics,
		// one slot per actor so late outcomes never block
		outcomes: make(chan outcome, 4),
	}
}

// spawn runs fn on its own goroutine. The outcome is posted before release
// runs, so an actor that fails first is also reported first.
func (sv *supervisor) spawn(actor Actor, fn func() error, release func()) {
	sv.wg.Add(1)
	go func() {
		defer sv.wg.Done()
		defer release()

		logger := sv.logger.With(zap.String("actor", string(actor)))
		logger.Debug("actor started")
		started := time.Now()

		err := runRecovered(fn)

		out := outcome{actor: actor, span: timespan.BetweenTimes(started, time.Now())}
		if err != nil {
			out.err = &ActorError{Actor: actor, Err: err}
			logger.Error("actor failed", zap.Error(err))
		} else {
			logger.Debug("actor stopped")
		}
		sv.metrics.observeExit(actor, err)
		sv.outcomes <- out
	}()
}

// seal closes the outcome stream once every spawned actor has exited.
// No spawn may follow.
func (sv *supervisor) seal() {
	go func() {
		sv.wg.Wait()
		close(sv.outcomes)
	}()
}

func runRecovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrActorPanic, r)
		}
	}()
	return fn()
}
