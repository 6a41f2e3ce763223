package app

import (
	"errors"
	"fmt"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/event"
	"github.com/dshills/trilex/internal/renderer/statusline"
)

// RowsMoved is the payload published on event.TopicRowsMoved after a
// committed reorder.
type RowsMoved struct {
	From  int
	To    int
	Count int
}

// check returns the reason op may not run now. Structural changes are
// refused while rows are selected so the selection never points at
// different rows than the user picked.
func (app *Application) check(op string, structural bool) error {
	if app.readOnly() {
		return NewOperationError(op, "", ErrReadOnly)
	}
	if structural && !app.rows.Selection().IsEmpty() {
		return NewOperationError(op, "", ErrSelectionActive)
	}
	return nil
}

// setRows installs an edited sequence and marks the dictionary modified.
func (app *Application) setRows(seq dictionary.Sequence) {
	app.rows.SetRows([]dictionary.Row(seq))
	app.grid.SetRows(seq)
	app.modified = true
	app.generation++
	app.clampCursor()
}

// replaceRows installs a freshly loaded sequence.
func (app *Application) replaceRows(seq dictionary.Sequence) {
	app.rows.ClearSelection()
	app.rows.SetRows([]dictionary.Row(seq))
	app.grid.SetRows(seq)
	app.modified = false
	app.generation++
	app.clampCursor()
}

func (app *Application) clampCursor() {
	n := len(app.sequence())
	app.cursor.Row = min(max(app.cursor.Row, 0), max(n-1, 0))
}

func (app *Application) moveCursor(rows, fields int) {
	app.cursor.Row += rows
	app.clampCursor()

	if fields != 0 {
		at := 0
		for i, f := range app.fields {
			if f == app.cursor.Field {
				at = i
				break
			}
		}
		at = min(max(at+fields, 0), len(app.fields)-1)
		app.cursor.Field = app.fields[at]
	}
	app.grid.EnsureVisible(app.cursor.Row)
}

// ToggleSelection checks or unchecks row i.
func (app *Application) ToggleSelection(i int) {
	sel := app.rows.Selection()
	app.rows.Select(i, !sel.Contains(i))
}

// ClearSelection empties the selection.
func (app *Application) ClearSelection() {
	app.rows.ClearSelection()
}

// AddRow appends a blank row and moves the cursor to it.
func (app *Application) AddRow() error {
	if err := app.check("add", true); err != nil {
		return err
	}
	app.setRows(app.sequence().Append())
	app.cursor.Row = len(app.sequence()) - 1
	app.grid.EnsureVisible(app.cursor.Row)
	return nil
}

// DeleteRow removes row i.
func (app *Application) DeleteRow(i int) error {
	if err := app.check("delete", true); err != nil {
		return err
	}
	seq, err := app.sequence().Delete(i)
	if err != nil {
		return NewOperationError("delete", rowName(i), err)
	}
	app.setRows(seq)
	return nil
}

// ToggleVerified flips the verified flag of row i.
func (app *Application) ToggleVerified(i int) error {
	if err := app.check("verify", false); err != nil {
		return err
	}
	seq := app.sequence()
	row, err := seq.At(i)
	if err != nil {
		return NewOperationError("verify", rowName(i), err)
	}
	seq, err = seq.SetVerified(i, !row.Verified)
	if err != nil {
		return NewOperationError("verify", rowName(i), err)
	}
	app.setRows(seq)
	return nil
}

// BeginEdit starts editing the cell under the cursor.
func (app *Application) BeginEdit() error {
	if err := app.check("edit", false); err != nil {
		return err
	}
	row, err := app.sequence().At(app.cursor.Row)
	if err != nil {
		return NewOperationError("edit", rowName(app.cursor.Row), err)
	}
	if row.Verified {
		return NewOperationError("edit", rowName(app.cursor.Row), dictionary.ErrVerified)
	}
	app.editing = true
	app.editText = []rune(row.Get(app.cursor.Field))
	return nil
}

// CommitEdit stores the edited text.
func (app *Application) CommitEdit() error {
	if !app.editing {
		return nil
	}
	app.editing = false
	text := string(app.editText)
	app.editText = nil

	seq := app.sequence()
	row, err := seq.At(app.cursor.Row)
	if err != nil {
		return NewOperationError("edit", rowName(app.cursor.Row), err)
	}
	if row.With(app.cursor.Field, text) == row {
		return nil
	}
	seq, err = seq.Update(app.cursor.Row, app.cursor.Field, text)
	if err != nil {
		return NewOperationError("edit", rowName(app.cursor.Row), err)
	}
	app.setRows(seq)
	return nil
}

// CancelEdit drops the edited text.
func (app *Application) CancelEdit() {
	app.editing = false
	app.editText = nil
}

// Quit asks to leave. With unsaved changes the first request only warns.
func (app *Application) Quit(force bool) error {
	if app.modified && !force && !app.quitArmed {
		app.quitArmed = true
		return NewOperationError("quit", "", ErrUnsavedChanges).WithContext("press Ctrl-Q again to discard")
	}
	return ErrQuit
}

func (app *Application) onPreviewMove(p drag.Preview) {
	if p.HasTarget {
		app.lastPreview = p
	}
	app.Logger().Debug("preview %s", p)
}

func (app *Application) onMoveRows() {
	seq := app.sequence()
	app.grid.SetRows(seq)
	app.modified = true
	app.generation++

	sel := app.rows.Selection()
	if lo, _, ok := sel.Bounds(); ok {
		app.cursor.Row = lo
		app.grid.EnsureVisible(lo)
	}

	moved := RowsMoved{From: app.lastPreview.From, To: app.lastPreview.To, Count: app.dragCount}
	if err := app.eventBus.Publish(app.ctx, event.TopicRowsMoved, moved); err != nil {
		app.logComponentError("event", err)
	}
}

// showInfo puts an informational message on the status line.
func (app *Application) showInfo(format string, args ...any) {
	app.status.SetMessage(fmt.Sprintf(format, args...), statusline.MessageInfo)
}

func messageType(err error) statusline.MessageType {
	switch {
	case errors.Is(err, ErrUnsavedChanges), errors.Is(err, ErrSelectionActive), errors.Is(err, ErrBusy):
		return statusline.MessageWarning
	}
	return statusline.MessageError
}

func rowName(i int) string {
	return fmt.Sprintf("row %d", i+1)
}
