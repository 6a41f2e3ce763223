package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/event"
	"github.com/dshills/trilex/internal/input/mouse"
	"github.com/dshills/trilex/internal/renderer/backend"
	"github.com/dshills/trilex/internal/renderer/core"
	"github.com/dshills/trilex/internal/renderer/grid"
	"github.com/dshills/trilex/internal/renderer/statusline"
)

// wakeup is posted to unblock PollEvent during shutdown.
type wakeup struct{}

// resultQueueSize bounds the results waiting for the event loop. Senders
// block when it is full.
const resultQueueSize = 64

// eventLoop is the main application loop. Every state change happens on
// this goroutine; background work reports back through post.
func (app *Application) eventLoop() error {
	events := app.startInputPolling()
	app.render()

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); errors.Is(err, ErrQuit) {
				return ErrQuit
			} else if err != nil {
				app.reportError(err)
			}
			app.render()

		case v := <-app.results:
			if err := app.handleResult(v); err != nil {
				app.reportError(err)
			}
			app.render()
		}
	}
}

// handleBackendEvent routes backend events to appropriate handlers.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	app.metrics.RecordEvent()
	return app.guard(func() error { return app.dispatch(ev) })
}

// handleResult applies a result sent by a background goroutine.
func (app *Application) handleResult(v any) error {
	return app.guard(func() error { return app.applyResult(v) })
}

// guard runs fn on the event loop and then applies results held back by
// a drag that has since ended. A panic in fn is reported rather than
// tearing down the terminal.
func (app *Application) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	err = fn()
	if !app.rows.Dragging() && len(app.deferred) > 0 {
		err = errors.Join(err, app.flushDeferred())
	}
	return err
}

func (app *Application) dispatch(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	}
	return nil
}

// resize lays the grid out above a one-line status bar.
func (app *Application) resize(width, height int) {
	app.grid.SetRect(core.NewScreenRect(0, 0, max(height-1, 0), width))
	app.status.Resize(width)
	app.grid.EnsureVisible(app.cursor.Row)
}

func (app *Application) handleKeyEvent(ev backend.Event) error {
	if app.editing {
		return app.handleEditKey(ev)
	}
	if ev.Key != backend.KeyCtrlQ && ev.Key != backend.KeyCtrlC {
		app.quitArmed = false
	}
	app.status.ClearMessage()

	switch ev.Key {
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return app.Quit(false)
	case backend.KeyEscape:
		return app.escape()
	case backend.KeyCtrlS:
		return app.Save()
	case backend.KeyCtrlT:
		return app.TranslateRow(app.cursor.Row)
	case backend.KeyCtrlL:
		app.backend.Clear()
	case backend.KeyEnter:
		return app.BeginEdit()
	case backend.KeyDelete:
		return app.DeleteRow(app.cursor.Row)
	case backend.KeyUp:
		app.moveCursor(-1, 0)
	case backend.KeyDown:
		app.moveCursor(1, 0)
	case backend.KeyLeft, backend.KeyBackspace:
		app.moveCursor(0, -1)
	case backend.KeyRight, backend.KeyTab:
		app.moveCursor(0, 1)
	case backend.KeyHome:
		app.moveCursor(-len(app.sequence()), 0)
	case backend.KeyEnd:
		app.moveCursor(len(app.sequence()), 0)
	case backend.KeyPageUp:
		app.grid.ScrollBy(-app.grid.BodyHeight())
	case backend.KeyPageDown:
		app.grid.ScrollBy(app.grid.BodyHeight())
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	}
	return nil
}

func (app *Application) handleRune(r rune) error {
	switch r {
	case ' ':
		app.ToggleSelection(app.cursor.Row)
	case 'a':
		return app.AddRow()
	case 'd':
		return app.DeleteRow(app.cursor.Row)
	case 'e':
		return app.BeginEdit()
	case 'v':
		return app.ToggleVerified(app.cursor.Row)
	case 't':
		return app.TranslateRow(app.cursor.Row)
	case 'T':
		return app.TranslateAll()
	case 'x':
		app.ClearSelection()
	case 'j':
		app.moveCursor(1, 0)
	case 'k':
		app.moveCursor(-1, 0)
	case 'h':
		app.moveCursor(0, -1)
	case 'l':
		app.moveCursor(0, 1)
	}
	return nil
}

// escape cancels a drag in progress, or clears the selection.
func (app *Application) escape() error {
	if app.rows.Dragging() {
		app.mouse.Reset()
		return app.eventBus.Publish(app.ctx, event.TopicKeyEscape, nil)
	}
	app.ClearSelection()
	return nil
}

func (app *Application) handleEditKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape:
		app.CancelEdit()
	case backend.KeyEnter, backend.KeyTab:
		return app.CommitEdit()
	case backend.KeyBackspace:
		if n := len(app.editText); n > 0 {
			app.editText = app.editText[:n-1]
		}
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		app.CancelEdit()
		return app.Quit(false)
	case backend.KeyRune:
		app.editText = append(app.editText, ev.Rune)
	}
	return nil
}

func (app *Application) handleMouseEvent(ev backend.Event) error {
	pos := mouse.Position{X: ev.MouseX, Y: ev.MouseY}
	mev := app.mouse.Decode(pos, mouseButton(ev.MouseButton),
		ev.Mod.Has(backend.ModShift), ev.Mod.Has(backend.ModCtrl), time.Now())
	g := app.mouse.Handle(mev)
	if g == nil {
		return nil
	}

	switch g.Kind {
	case mouse.KindPress:
		return app.press(g)
	case mouse.KindDrag:
		return app.pointerMove(g.Position)
	case mouse.KindRelease:
		return app.pointerUp(g.Position)
	case mouse.KindContext:
		if hit := app.grid.HitTest(g.Position.X, g.Position.Y); hit.Row >= 0 {
			app.ToggleSelection(hit.Row)
		}
	case mouse.KindScroll:
		app.grid.ScrollBy(g.Count)
		if app.rows.Dragging() {
			// The rows moved under a still pointer.
			return app.publishPointer(event.TopicPointerMove, mouse.Position{Y: app.dragY})
		}
	}
	return nil
}

func (app *Application) press(g *mouse.Gesture) error {
	if app.editing {
		if err := app.CommitEdit(); err != nil {
			return err
		}
	}
	app.status.ClearMessage()

	hit := app.grid.HitTest(g.Position.X, g.Position.Y)
	if hit.Row < 0 {
		return nil
	}
	switch hit.Zone {
	case grid.ZoneHandle:
		if !app.rows.Selection().Contains(hit.Row) {
			return nil
		}
		if app.readOnly() {
			return NewOperationError("move", "rows", ErrReadOnly)
		}
		app.dragY = g.Position.Y
		app.dragCount = app.rows.Selection().Len()
		app.lastPreview = drag.NoPreview()
		return app.rows.BeginDrag(app.grid.ContentY(g.Position.Y))
	case grid.ZoneCheck:
		app.ToggleSelection(hit.Row)
	case grid.ZoneVerify:
		return app.ToggleVerified(hit.Row)
	case grid.ZoneNumber:
		app.cursor.Row = hit.Row
	case grid.ZoneCell:
		app.cursor = grid.Cursor{Row: hit.Row, Field: hit.Field}
		if g.Count >= 2 {
			return app.BeginEdit()
		}
	}
	return nil
}

func (app *Application) pointerMove(pos mouse.Position) error {
	if !app.rows.Dragging() {
		return nil
	}
	app.dragY = pos.Y
	rect := app.grid.Rect()
	switch {
	case pos.Y <= rect.Top:
		app.grid.ScrollBy(-1)
	case pos.Y >= rect.Bottom-1:
		app.grid.ScrollBy(1)
	}
	return app.publishPointer(event.TopicPointerMove, pos)
}

func (app *Application) pointerUp(pos mouse.Position) error {
	if !app.rows.Dragging() {
		return nil
	}
	return app.publishPointer(event.TopicPointerUp, pos)
}

// publishPointer reports a pointer position to the drag session in
// content coordinates.
func (app *Application) publishPointer(topic event.Topic, pos mouse.Position) error {
	return app.eventBus.Publish(app.ctx, topic, event.Pointer{
		X: float64(pos.X),
		Y: app.grid.ContentY(pos.Y),
	})
}

func mouseButton(b backend.MouseButton) mouse.Button {
	switch b {
	case backend.MouseLeft:
		return mouse.ButtonLeft
	case backend.MouseMiddle:
		return mouse.ButtonMiddle
	case backend.MouseRight:
		return mouse.ButtonRight
	case backend.MouseWheelUp:
		return mouse.ButtonScrollUp
	case backend.MouseWheelDown:
		return mouse.ButtonScrollDown
	}
	return mouse.ButtonNone
}

// post hands v to the event loop from any goroutine. It never drops a
// result: it waits for room in the queue unless the application is
// shutting down.
func (app *Application) post(v any) {
	select {
	case app.results <- v:
	case <-app.done:
	}
}

// reportError logs err and shows it on the status line.
func (app *Application) reportError(err error) {
	var panicErr *RecoveredPanicError
	if errors.As(err, &panicErr) {
		app.Logger().Error("%v", err)
		app.status.SetMessage("internal error, see log", statusline.MessageError)
		return
	}
	app.Logger().Warn("%v", err)
	kind := messageType(err)
	app.status.SetMessage(err.Error(), kind)
	if kind == statusline.MessageError && app.backend != nil {
		app.backend.Beep()
	}
}

func (app *Application) render() {
	start := time.Now()
	b := app.backend
	_, height := b.Size()

	app.updateStatus()
	app.grid.Draw(b, app.view())
	app.status.Render(b, height-1)
	b.HideCursor()
	b.Show()

	app.metrics.RecordRender(time.Since(start))
}

func (app *Application) view() grid.View {
	seq := app.sequence()
	busy := make(map[int]bool, len(app.busy))
	for id := range app.busy {
		if i := seq.IndexOf(id); i >= 0 {
			busy[i] = true
		}
	}
	return grid.View{
		Selection:  app.rows.Selection(),
		Preview:    app.rows.PreviewState(),
		DragOffset: app.rows.Offset(),
		Dragging:   app.rows.Dragging(),
		Cursor:     app.cursor,
		Editing:    app.editing,
		EditText:   string(app.editText),
		Busy:       busy,
	}
}

func (app *Application) updateStatus() {
	switch {
	case app.rows.Dragging():
		app.status.SetMode("DRAG")
	case app.editing:
		app.status.SetMode("EDIT")
	case app.readOnly():
		app.status.SetMode("READ-ONLY")
	default:
		app.status.SetMode("VIEW")
	}
	app.status.SetModified(app.modified)
	app.status.SetPosition(app.cursor.Row, len(app.sequence()))

	sel := app.rows.Selection()
	if lo, hi, ok := sel.Bounds(); ok {
		app.status.SetSelection(fmt.Sprintf("%d-%d (%d)", lo+1, hi+1, sel.Len()))
	} else {
		app.status.SetSelection("")
	}
}

// startInputPolling starts a goroutine that polls for input events.
//
// PollEvent is blocking, so Shutdown posts a wakeup event to let the
// goroutine observe done.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)
		for {
			ev := app.backend.PollEvent()
			select {
			case <-app.done:
				return
			default:
			}
			if ev.Type == backend.EventNone {
				continue
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
