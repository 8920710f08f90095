package terminal

import "github.com/gdamore/tcell/v2"

// IsKey reports whether ev is a press of the special key k.
func IsKey(ev tcell.Event, k tcell.Key) bool {
	key, ok := ev.(*tcell.EventKey)
	return ok && key.Key() == k
}

// IsRune reports whether ev is a printable key press of r.
func IsRune(ev tcell.Event, r rune) bool {
	key, ok := ev.(*tcell.EventKey)
	return ok && key.Key() == tcell.KeyRune && key.Rune() == r
}

// IsCtrlC reports whether ev is Ctrl-C. In raw mode it arrives as a key
// event instead of SIGINT.
func IsCtrlC(ev tcell.Event) bool {
	return IsKey(ev, tcell.KeyCtrlC)
}
