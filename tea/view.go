package tea

import (
	"fmt"
	"time"

	"github.com/on-the-ground/teatui/tea/internal/mailbox"
	"github.com/on-the-ground/teatui/terminal"
)

// runView draws state, then every state update sends, in order.
func runView[S any](
	renderer Renderer,
	view func(S) terminal.Widget,
	state S,
	inbox *mailbox.Mailbox[S],
	metrics *Metrics,
) error {
	for {
		start := time.Now()
		if err := renderer.Draw(view(state)); err != nil {
			return fmt.Errorf("%w: %w", ErrRender, err)
		}
		metrics.observeDraw(time.Since(start))

		next, ok := inbox.Recv()
		if !ok {
			return nil
		}
		state = next
	}
}
