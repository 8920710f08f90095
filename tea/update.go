package tea

import (
	"fmt"

	"github.com/on-the-ground/teatui/tea/internal/mailbox"
)

type updateLoop[S, M, E any] struct {
	update    func(S, M) Transition[S, E]
	clone     func(S) S
	inbox     *mailbox.Mailbox[M]
	viewTx    *mailbox.Sender[S]
	effectsTx *mailbox.Sender[envelope[S, E]]
	metrics   *Metrics
}

// run folds messages into state. Every new state goes to view before its
// effect goes to effects.
func (u updateLoop[S, M, E]) run(state S, initEffect E, hasInitEffect bool) error {
	if hasInitEffect {
		if err := u.dispatch(state, initEffect); err != nil {
			return err
		}
	}

	for {
		msg, ok := u.inbox.Recv()
		if !ok {
			return nil
		}

		t := u.update(state, msg)
		u.metrics.observeUpdate()
		if t.Terminated() {
			return nil
		}

		next := t.State()
		if err := u.viewTx.Send(u.clone(next)); err != nil {
			return fmt.Errorf("%w: %w", ErrViewSend, err)
		}
		if e, ok := t.Effect(); ok {
			if err := u.dispatch(next, e); err != nil {
				return err
			}
		}
		state = next
	}
}

func (u updateLoop[S, M, E]) dispatch(state S, e E) error {
	if err := u.effectsTx.Send(envelope[S, E]{state: u.clone(state), effect: e}); err != nil {
		return fmt.Errorf("%w: %w", ErrEffectSend, err)
	}
	return nil
}

// release detaches update from all three of its mailboxes.
func (u updateLoop[S, M, E]) release() {
	u.inbox.Close()
	u.viewTx.Close()
	u.effectsTx.Close()
}
