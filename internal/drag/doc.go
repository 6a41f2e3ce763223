// Package drag implements drag-to-reorder for a contiguous block of rows.
//
// The package is split into a pure part and a stateful part. The pure
// part needs no terminal and no event loop:
//
//   - TargetIndex maps a pointer position onto an insertion slot using the
//     row midpoints of a Layout.
//   - ComputePreviewState turns a Preview into per-row drawing hints.
//   - Commit splices the selected block into its new slot.
//
// The stateful part is the Session, which subscribes pointer and Escape
// listeners on an event.Bus for the lifetime of one gesture, and the
// Controller, which owns the rows, the selection and the current preview.
//
// # Gesture
//
//	ctrl := drag.NewController(bus, grid, rows,
//	    drag.WithPreviewMove(func(p drag.Preview) { redraw() }),
//	    drag.WithMoveRows(func() { save(ctrl.Rows()) }),
//	)
//	ctrl.Select(1, true)
//	ctrl.BeginDrag(y)                           // pointer down on the handle
//	bus.Publish(ctx, event.TopicPointerMove, p) // preview follows the pointer
//	bus.Publish(ctx, event.TopicPointerUp, p)   // commit
//
// Slots are numbered 0..n; slot i means "before row i" and slot n means
// after the last row. Dropping the block on a slot in [min, max+1] would
// leave it where it is, so such previews are marked Invalid and never
// committed.
package drag
