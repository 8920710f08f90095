// Package tea is an Elm-architecture runtime for terminal user interfaces.
//
// An application is a Program: an initial State, a pure Update function, a
// pure View function, an effect handler and a total conversion from terminal
// events to Messages. Start runs it as four actors connected by unbounded
// mailboxes:
//
//	input ──▶ events ──▶ update ──▶ view
//	                       ▲  │
//	                       │  ▼
//	                     effects
//
//   - events reads terminal events, converts them and feeds update.
//   - update owns the canonical State. For every Message it calls Update and
//     sends the new State to view, then the pending Effect (with that same
//     State) to effects.
//   - effects runs the effect handler and feeds any resulting Message back
//     to update.
//   - view draws the initial State once, then every State it receives.
//
// Start returns when the first actor stops. A Terminate transition is a
// clean stop (nil error). Any read, send or draw failure stops its actor and
// is returned as an *ActorError naming the stage. The terminal is restored
// on every path.
//
// Example:
//
//	err := tea.Start(ctx, tea.Program[Model, Msg, Eff]{
//	    Init:      func() (Model, Eff, bool) { return Model{}, nil, false },
//	    Update:    update,
//	    View:      view,
//	    Effects:   effects,
//	    FromEvent: fromEvent,
//	}, tea.WithLogger(logger))
package tea
