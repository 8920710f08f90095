package terminal_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/on-the-ground/teatui/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowText(sim tcell.SimulationScreen, y int) string {
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func TestScreen_DrawBeforeInitFails(t *testing.T) {
	screen, _ := terminal.NewSimulationScreen(20, 5)
	err := screen.Draw(terminal.Text{Lines: []string{"hi"}})
	assert.ErrorIs(t, err, terminal.ErrNotInitialized)
}

func TestScreen_SimulationKeepsRequestedSize(t *testing.T) {
	screen, sim := terminal.NewSimulationScreen(20, 5)
	require.NoError(t, screen.Init())
	defer screen.Restore()

	assert.Equal(t, tcell.Screen(sim), screen.Tcell())
	width, height := screen.Tcell().Size()
	assert.Equal(t, 20, width)
	assert.Equal(t, 5, height)
}

func TestScreen_DrawText(t *testing.T) {
	screen, sim := terminal.NewSimulationScreen(20, 5)
	require.NoError(t, screen.Init())
	defer screen.Restore()

	require.NoError(t, screen.Draw(terminal.Text{Lines: []string{"hello", "world"}}))

	assert.Equal(t, "hello", strings.TrimRight(rowText(sim, 0), " "))
	assert.Equal(t, "world", strings.TrimRight(rowText(sim, 1), " "))
}

func TestScreen_DrawReplacesPreviousFrame(t *testing.T) {
	screen, sim := terminal.NewSimulationScreen(20, 5)
	require.NoError(t, screen.Init())
	defer screen.Restore()

	require.NoError(t, screen.Draw(terminal.Text{Lines: []string{"first frame"}}))
	require.NoError(t, screen.Draw(terminal.Text{Lines: []string{"2nd"}}))

	assert.Equal(t, "2nd", strings.TrimRight(rowText(sim, 0), " "))
}

func TestScreen_ReadEventReturnsInjectedKey(t *testing.T) {
	screen, sim := terminal.NewSimulationScreen(20, 5)
	require.NoError(t, screen.Init())
	defer screen.Restore()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan tcell.Event, 1)
	go func() {
		for {
			ev, err := screen.ReadEvent()
			if err != nil {
				return
			}
			if _, ok := ev.(*tcell.EventKey); ok {
				done <- ev
				return
			}
		}
	}()

	select {
	case ev := <-done:
		assert.True(t, terminal.IsRune(ev, 'q'))
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for key event")
	}
}

func TestScreen_RestoreUnblocksReadEvent(t *testing.T) {
	screen, _ := terminal.NewSimulationScreen(20, 5)
	require.NoError(t, screen.Init())

	errCh := make(chan error, 1)
	go func() {
		for {
			if _, err := screen.ReadEvent(); err != nil {
				errCh <- err
				return
			}
		}
	}()

	require.NoError(t, screen.Restore())
	require.NoError(t, screen.Restore())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, terminal.ErrInputClosed)
	case <-time.After(time.Second):
		t.Fatal("ReadEvent still blocked after Restore")
	}

	assert.ErrorIs(t, screen.Draw(terminal.Text{}), terminal.ErrNotInitialized)
}
