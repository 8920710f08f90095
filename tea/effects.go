package tea

import (
	"context"
	"fmt"

	"github.com/on-the-ground/teatui/tea/internal/dispatch"
	"github.com/on-the-ground/teatui/tea/internal/mailbox"
)

type effectsLoop[S, M, E any] struct {
	handle   func(context.Context, S, E) (M, bool)
	cfg      EffectsConfig
	inbox    *mailbox.Mailbox[envelope[S, E]]
	updateTx *mailbox.Sender[M]
	metrics  *Metrics

	// failures holds the first error raised off the actor goroutine.
	failures chan error
}

func newEffectsLoop[S, M, E any](
	handle func(context.Context, S, E) (M, bool),
	cfg EffectsConfig,
	inbox *mailbox.Mailbox[envelope[S, E]],
	updateTx *mailbox.Sender[M],
	metrics *Metrics,
) *effectsLoop[S, M, E] {
	return &effectsLoop[S, M, E]{
		handle:   handle,
		cfg:      cfg,
		inbox:    inbox,
		updateTx: updateTx,
		metrics:  metrics,
		failures: make(chan error, 1),
	}
}

// run hands each envelope to the dispatcher selected by cfg.Mode. It returns
// on the first failure, or once the inbox is closed and every dispatched
// handler has finished. No handler is running when run returns.
func (l *effectsLoop[S, M, E]) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d := l.dispatcher(ctx)

	// stop cancels in-flight handlers and waits for them before update's
	// sender is released
	stop := func(err error) error {
		cancel()
		d.Wait()
		return err
	}

	for {
		// a pending failure wins over further input
		select {
		case err := <-l.failures:
			return stop(err)
		default:
		}

		select {
		case env, ok := <-l.inbox.Out():
			if !ok {
				d.Wait()
				select {
				case err := <-l.failures:
					return err
				default:
					return nil
				}
			}
			if err := d.Dispatch(ctx, env); err != nil {
				return stop(err)
			}
		case err := <-l.failures:
			return stop(err)
		}
	}
}

func (l *effectsLoop[S, M, E]) dispatcher(ctx context.Context) dispatch.Dispatcher[envelope[S, E]] {
	onPanic := func(r any) {
		l.fail(fmt.Errorf("%w: %v", ErrActorPanic, r))
	}

	switch l.cfg.Mode {
	case EffectsConcurrent:
		return dispatch.NewPool(l.cfg.Workers, l.invoke, onPanic)
	case EffectsPartitioned:
		return dispatch.NewPartitioned(
			ctx,
			l.cfg.Workers,
			l.cfg.BufferSize,
			func(env envelope[S, E]) string { return dispatch.KeyOf(env.effect) },
			l.invoke,
			onPanic,
		)
	default:
		return dispatch.NewInline(l.invoke)
	}
}

func (l *effectsLoop[S, M, E]) invoke(ctx context.Context, env envelope[S, E]) {
	msg, ok := l.handle(ctx, env.state, env.effect)
	l.metrics.observeEffect(ok)
	if !ok {
		return
	}
	if err := l.updateTx.Send(msg); err != nil {
		l.fail(fmt.Errorf("%w: %w", ErrMessageSend, err))
	}
}

func (l *effectsLoop[S, M, E]) fail(err error) {
	select {
	case l.failures <- err:
	default:
	}
}

func (l *effectsLoop[S, M, E]) release() {
	l.inbox.Close()
	l.updateTx.Close()
}
