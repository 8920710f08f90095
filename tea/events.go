package tea

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/teatui/tea/internal/mailbox"
)

// runEvents forwards every input event to update until the input fails or
// update stops listening.
func runEvents[M any](
	input InputSource,
	fromEvent func(tcell.Event) M,
	updateTx *mailbox.Sender[M],
) error {
	for {
		ev, err := input.ReadEvent()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInputRead, err)
		}
		if err := updateTx.Send(fromEvent(ev)); err != nil {
			return fmt.Errorf("%w: %w", ErrMessageSend, err)
		}
	}
}
