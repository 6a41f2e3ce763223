package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/translate"
)

// translateTimeout bounds a single-row translation.
const translateTimeout = 60 * time.Second

// Results posted back to the event loop by background work.
type (
	reloadRequest struct{}

	loaded struct {
		snap dictionary.Snapshot
		err  error
	}

	saved struct {
		generation int
		err        error
	}

	translated struct {
		id     string
		korean string
		res    translate.Result
		err    error
	}

	bulkProgress struct {
		done, total int
	}

	bulkTranslated struct {
		before dictionary.Sequence
		after  dictionary.Sequence
		err    error
	}
)

// applyResult applies a result posted by a background goroutine. Results
// that change rows wait until a drag in progress has ended.
func (app *Application) applyResult(data any) error {
	switch v := data.(type) {
	case reloadRequest:
		return app.reload()
	case loaded:
		return app.applyLoaded(v)
	case saved:
		return app.applySaved(v)
	case bulkProgress:
		app.showInfo("translating %d/%d", v.done, v.total)
		return nil
	case translated, bulkTranslated:
		if app.rows.Dragging() {
			app.deferred = append(app.deferred, v)
			return nil
		}
		return app.applyTranslation(v)
	}
	return fmt.Errorf("unexpected result %T", data)
}

func (app *Application) flushDeferred() error {
	pending := app.deferred
	app.deferred = nil
	var first error
	for _, v := range pending {
		if err := app.applyTranslation(v); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (app *Application) applyTranslation(v any) error {
	switch v := v.(type) {
	case translated:
		return app.applyTranslated(v)
	case bulkTranslated:
		return app.applyBulk(v)
	}
	return nil
}

// Save writes the dictionary to the store in the background.
func (app *Application) Save() error {
	if err := app.check("save", true); err != nil {
		return err
	}
	if app.saving {
		app.showInfo("save already in progress")
		return nil
	}
	app.saving = true
	app.showInfo("saving to %s", app.store.Name())

	snap := app.sequence().Snapshot()
	gen := app.generation
	go func() {
		ctx, cancel := app.storeContext()
		defer cancel()
		app.post(saved{generation: gen, err: app.store.Save(ctx, snap)})
	}()
	return nil
}

func (app *Application) applySaved(v saved) error {
	app.saving = false
	if v.err != nil {
		return NewOperationError("save", app.store.Name(), v.err)
	}
	app.metrics.RecordSave()
	if v.generation == app.generation {
		app.modified = false
	}
	app.showInfo("saved to %s", app.store.Name())
	app.publishStore(TopicStoreSaved)
	return nil
}

// reload re-reads the store after an external change. Unsaved edits win
// over the change on disk.
func (app *Application) reload() error {
	if app.modified {
		app.status.SetMessage("store changed on disk; keeping unsaved edits", messageType(ErrUnsavedChanges))
		return nil
	}
	go func() {
		ctx, cancel := app.storeContext()
		defer cancel()
		snap, err := app.store.Load(ctx)
		app.post(loaded{snap: snap, err: err})
	}()
	return nil
}

func (app *Application) applyLoaded(v loaded) error {
	if v.err != nil {
		return NewOperationError("reload", app.store.Name(), v.err)
	}
	if app.modified {
		return nil
	}
	if app.rows.Dragging() {
		app.rows.Close()
	}
	app.replaceRows(dictionary.FromSnapshot(v.snap))
	app.publishStore(TopicStoreLoaded)
	app.showInfo("reloaded from %s", app.store.Name())
	return nil
}

// TranslateRow asks the translator for row i in the background. The
// result is applied to the same row wherever it has moved by then.
func (app *Application) TranslateRow(i int) error {
	if err := app.check("translate", false); err != nil {
		return err
	}
	if app.translator == nil {
		return NewOperationError("translate", rowName(i), ErrNoTranslator)
	}
	row, err := app.sequence().At(i)
	switch {
	case err != nil:
		return NewOperationError("translate", rowName(i), err)
	case row.Verified:
		return NewOperationError("translate", rowName(i), dictionary.ErrVerified)
	case row.Korean == "":
		return NewOperationError("translate", rowName(i), translate.ErrEmptySource)
	case app.busy[row.ID] || app.bulk:
		return NewOperationError("translate", rowName(i), ErrBusy)
	}

	app.busy[row.ID] = true
	req := translate.Request{Korean: row.Korean, Description: row.Description}
	go func() {
		ctx, cancel := context.WithTimeout(app.ctx, translateTimeout)
		defer cancel()
		res, err := app.translator.Translate(ctx, req)
		app.post(translated{id: row.ID, korean: row.Korean, res: res, err: err})
	}()
	return nil
}

func (app *Application) applyTranslated(v translated) error {
	delete(app.busy, v.id)
	app.metrics.RecordTranslation(v.err)
	if v.err != nil {
		return NewOperationError("translate", v.korean, v.err)
	}

	seq := app.sequence()
	i := seq.IndexOf(v.id)
	if i < 0 {
		// Deleted while the request was in flight.
		return nil
	}
	seq, err := seq.Translated(i, v.res.Key, v.res.English, v.res.Arabic)
	if err != nil {
		return NewOperationError("translate", v.korean, err)
	}
	app.setRows(seq)
	app.showInfo("%s: %s / %s", v.korean, v.res.English, v.res.Arabic)
	return nil
}

// TranslateAll translates every unverified row in the background.
func (app *Application) TranslateAll() error {
	if err := app.check("translate", false); err != nil {
		return err
	}
	if app.translator == nil {
		return NewOperationError("translate", "all", ErrNoTranslator)
	}
	if app.bulk || len(app.busy) > 0 {
		return NewOperationError("translate", "all", ErrBusy)
	}

	seq := app.sequence()
	todo := seq.Unverified()
	if len(todo) == 0 {
		app.showInfo("nothing to translate")
		return nil
	}
	for _, i := range todo {
		app.busy[seq[i].ID] = true
	}
	app.bulk = true
	app.showInfo("translating %d rows", len(todo))

	opts := translate.BulkOptions{
		Concurrency: app.config.Translate.Concurrency,
		Progress: func(done, total int) {
			app.post(bulkProgress{done: done, total: total})
		},
	}
	go func() {
		out, err := translate.Bulk(app.ctx, app.translator, seq, opts)
		app.post(bulkTranslated{before: seq, after: out, err: err})
	}()
	return nil
}

// applyBulk merges bulk results by row identity, so rows moved, edited or
// deleted meanwhile are handled. Only rows the bulk run changed are
// touched.
func (app *Application) applyBulk(v bulkTranslated) error {
	app.bulk = false
	clear(app.busy)

	cur := app.sequence()
	changed := 0
	for k, after := range v.after {
		if k < len(v.before) && v.before[k] == after {
			continue
		}
		i := cur.IndexOf(after.ID)
		if i < 0 {
			continue
		}
		next, err := cur.Translated(i, after.Key, after.English, after.Arabic)
		if err != nil {
			continue
		}
		cur = next
		changed++
	}
	for range changed {
		app.metrics.RecordTranslation(nil)
	}
	if changed > 0 {
		app.setRows(cur)
	}
	if v.err != nil {
		app.metrics.RecordTranslation(v.err)
		return NewOperationError("translate", "all", v.err).WithContext(fmt.Sprintf("%d translated", changed))
	}
	app.showInfo("translated %d rows", changed)
	return nil
}
