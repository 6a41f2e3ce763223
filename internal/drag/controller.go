package drag

import (
	"errors"

	"github.com/dshills/trilex/internal/event"
	"github.com/dshills/trilex/internal/selection"
)

// ErrNoSelection is returned by BeginDrag when no row is selected.
var ErrNoSelection = errors.New("no rows selected")

// Policy decides what happens to the selection after a successful move.
type Policy uint8

const (
	// PolicyFollow keeps the moved block selected at its new position.
	PolicyFollow Policy = iota
	// PolicyClear empties the selection after a move.
	PolicyClear
)

// String returns the policy name.
func (p Policy) String() string {
	if p == PolicyClear {
		return "clear"
	}
	return "follow"
}

// ParsePolicy converts a configuration value to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "follow":
		return PolicyFollow, true
	case "clear":
		return PolicyClear, true
	}
	return PolicyFollow, false
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	policy        Policy
	onPreviewMove func(Preview)
	onMoveRows    func()
}

// WithPolicy sets the selection policy applied after a move.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithPreviewMove registers the callback fired whenever the preview
// changes during a drag, and once with NoPreview when the drag ends.
func WithPreviewMove(fn func(Preview)) Option {
	return func(o *options) { o.onPreviewMove = fn }
}

// WithMoveRows registers the callback fired once after a successful move.
// The new order and selection are available from Rows and Selection.
func WithMoveRows(fn func()) Option {
	return func(o *options) { o.onMoveRows = fn }
}

// Controller ties the selection, drag session and committer together for
// a sequence of rows of type T.
//
// Controller is driven from a single event loop and is not safe for
// concurrent use. Callbacks may call back into the controller.
type Controller[T any] struct {
	rows     []T
	sel      selection.Range
	preview  Preview
	offset   float64
	measurer Measurer
	session  *Session
	opts     options
}

// NewController creates a controller over rows. Pointer and keyboard
// events are received from bus only while a drag is in progress.
func NewController[T any](bus event.Bus, m Measurer, rows []T, opts ...Option) *Controller[T] {
	c := &Controller[T]{
		rows:     rows,
		preview:  NoPreview(),
		measurer: m,
		session:  NewSession(bus),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Rows returns the current sequence. The slice must not be modified.
func (c *Controller[T]) Rows() []T {
	return c.rows
}

// Selection returns the current selection.
func (c *Controller[T]) Selection() selection.Range {
	return c.sel
}

// Preview returns the current preview.
func (c *Controller[T]) Preview() Preview {
	return c.preview
}

// Offset returns the clamped visual offset of the dragged block.
func (c *Controller[T]) Offset() float64 {
	return c.offset
}

// Dragging reports whether a drag is in progress.
func (c *Controller[T]) Dragging() bool {
	return c.session.Dragging()
}

// Policy returns the active selection policy.
func (c *Controller[T]) Policy() Policy {
	return c.opts.policy
}

// SetPolicy changes the selection policy for later moves.
func (c *Controller[T]) SetPolicy(p Policy) {
	c.opts.policy = p
}

// SetRows replaces the sequence, for example after an edit, add or delete.
// The selection is clipped to the new length and any drag is cancelled.
func (c *Controller[T]) SetRows(rows []T) {
	if c.session.Dragging() {
		c.cancel()
	}
	c.rows = rows
	c.sel = c.sel.Clip(len(rows))
}

// Select applies one checkbox toggle. Toggles are ignored while dragging.
func (c *Controller[T]) Select(index int, selecting bool) selection.Range {
	if c.session.Dragging() || index >= len(c.rows) {
		return c.sel
	}
	c.sel = c.sel.Select(index, selecting)
	return c.sel
}

// ClearSelection empties the selection and drops any preview, cancelling
// a drag in progress.
func (c *Controller[T]) ClearSelection() {
	if c.session.Dragging() {
		c.session.End()
	}
	c.sel = selection.Empty()
	c.resetPreview()
}

// BeginDrag starts a drag at startY in rail coordinates.
func (c *Controller[T]) BeginDrag(startY float64) error {
	if c.sel.IsEmpty() {
		return ErrNoSelection
	}
	c.resetPreview()
	return c.session.Begin(startY, Hooks{
		Move:    c.move,
		Release: c.release,
		Cancel:  c.resetPreview,
	})
}

// Close tears down a drag in progress without committing.
func (c *Controller[T]) Close() {
	if c.session.Dragging() {
		c.cancel()
	}
}

// PreviewState returns the per-row hints for the current preview.
func (c *Controller[T]) PreviewState() PreviewState {
	return ComputePreviewState(c.layout(), c.sel, c.preview)
}

func (c *Controller[T]) layout() Layout {
	if c.measurer == nil {
		return NewLayout(len(c.rows), nil)
	}
	return c.measurer.MeasureRows()
}

func (c *Controller[T]) move(y float64) {
	l := c.layout()
	to, ok := TargetIndex(l, y)
	if !ok {
		// Hold the previous preview until geometry is back.
		return
	}
	if lo, hi, ok := OffsetBounds(l, c.sel); ok {
		c.offset = ClampOffset(y-c.session.StartY(), lo, hi)
	}

	p := NewPreview(c.sel, to)
	if p.Equal(c.preview) {
		return
	}
	c.preview = p
	if c.opts.onPreviewMove != nil {
		c.opts.onPreviewMove(p)
	}
}

func (c *Controller[T]) release(float64) {
	res := Commit(c.rows, c.sel, c.preview)
	c.resetPreview()
	if !res.Moved {
		return
	}

	c.rows = res.Rows
	switch c.opts.policy {
	case PolicyClear:
		c.sel = selection.Empty()
	default:
		c.sel = res.Selection
	}
	if c.opts.onMoveRows != nil {
		c.opts.onMoveRows()
	}
}

func (c *Controller[T]) cancel() {
	c.session.End()
	c.resetPreview()
}

func (c *Controller[T]) resetPreview() {
	had := c.preview.HasTarget
	c.preview = NoPreview()
	c.offset = 0
	if had && c.opts.onPreviewMove != nil {
		c.opts.onPreviewMove(c.preview)
	}
}
