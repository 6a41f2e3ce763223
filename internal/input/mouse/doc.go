// Package mouse decodes terminal mouse samples into grid gestures.
//
// Terminals report the set of buttons currently held, not transitions.
// Handler.Decode compares each sample with the previous one to recover
// press, drag and release actions, and Handler.Handle turns those into a
// Gesture for the grid:
//
//	h := mouse.NewHandler(mouse.DefaultConfig())
//	ev := h.Decode(pos, mouse.ButtonLeft, false, false, time.Now())
//	if g := h.Handle(ev); g != nil {
//	    dispatch(g)
//	}
//
// Gestures:
//
//   - KindPress: primary press, with a click count of 1 or 2
//   - KindDrag: pointer moved to a new cell while the primary button is held
//   - KindRelease: primary button released
//   - KindContext: secondary press
//   - KindScroll: wheel tick, with a signed row count
//
// # Thread Safety
//
// Handler is safe for concurrent use.
package mouse
