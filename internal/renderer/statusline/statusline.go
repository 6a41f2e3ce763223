// Package statusline draws the editor's bottom status bar.
package statusline

import (
	"fmt"

	"github.com/dshills/trilex/internal/renderer/backend"
	"github.com/dshills/trilex/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the mode, store and position information, or a
// transient message in their place.
type StatusLine struct {
	mode      string
	store     string
	model     string
	modified  bool
	selection string
	row       int
	rows      int

	message     string
	messageType MessageType

	modeStyles map[string]core.Style
	width      int
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		mode:       "VIEW",
		modeStyles: defaultModeStyles(),
	}
}

var (
	colorBlue   = core.ColorFromRGB(59, 130, 246)
	colorGreen  = core.ColorFromRGB(34, 197, 94)
	colorPurple = core.ColorFromRGB(168, 85, 247)
	colorYellow = core.ColorFromRGB(234, 179, 8)
)

func defaultModeStyles() map[string]core.Style {
	return map[string]core.Style{
		"VIEW":      core.DefaultStyle().Bold().WithBackground(colorBlue).WithForeground(core.ColorWhite),
		"EDIT":      core.DefaultStyle().Bold().WithBackground(colorGreen).WithForeground(core.ColorBlack),
		"DRAG":      core.DefaultStyle().Bold().WithBackground(colorPurple).WithForeground(core.ColorWhite),
		"READ-ONLY": core.DefaultStyle().Bold().WithBackground(core.ColorGray).WithForeground(core.ColorWhite),
	}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetStore updates the displayed store name.
func (s *StatusLine) SetStore(name string) {
	s.store = name
}

// SetModel updates the displayed translation model.
func (s *StatusLine) SetModel(model string) {
	s.model = model
}

// SetModified updates the unsaved-changes indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetSelection updates the selection summary, empty for none.
func (s *StatusLine) SetSelection(summary string) {
	s.selection = summary
}

// SetPosition updates the focused row (0-indexed) and row count.
func (s *StatusLine) SetPosition(row, rows int) {
	s.row = row
	s.rows = rows
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status line at screen row y.
func (s *StatusLine) Render(b backend.Backend, y int) {
	if s.message != "" {
		s.renderMessage(b, y)
		return
	}
	s.renderStatusBar(b, y)
}

func (s *StatusLine) renderStatusBar(b backend.Backend, y int) {
	modeStyle, ok := s.modeStyles[s.mode]
	if !ok {
		modeStyle = core.DefaultStyle().Bold().WithBackground(core.ColorGray)
	}
	barStyle := core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite)
	b.Fill(core.RectFromSize(y, 0, 1, s.width), core.Cell{Rune: ' ', Width: 1, Style: barStyle})

	col := put(b, 0, y, s.width, " "+s.mode+" ", modeStyle)
	col++

	left := s.store
	if left == "" {
		left = "[no store]"
	}
	if s.modified {
		left += " [+]"
	}
	if s.selection != "" {
		left += "  sel " + s.selection
	}

	right := s.formatPosition()
	rightStart := s.width - core.StringWidth(right) - 1
	col += put(b, col, y, rightStart-col-1, left, barStyle)
	if rightStart > col {
		put(b, rightStart, y, s.width-rightStart, right, barStyle)
	}
}

func (s *StatusLine) renderMessage(b backend.Backend, y int) {
	style := core.DefaultStyle()
	switch s.messageType {
	case MessageError:
		style = style.WithForeground(core.ColorRed).Bold()
	case MessageWarning:
		style = style.WithForeground(colorYellow)
	}
	b.Fill(core.RectFromSize(y, 0, 1, s.width), core.Cell{Rune: ' ', Width: 1, Style: style})
	put(b, 0, y, s.width, s.message, style)
}

// formatPosition formats the right side, e.g. "row 3/40 | gpt-4o-mini".
func (s *StatusLine) formatPosition() string {
	out := fmt.Sprintf("row %d/%d", s.row+1, s.rows)
	if s.rows == 0 {
		out = "empty"
	}
	if s.model != "" {
		out += " | " + s.model
	}
	return out
}

// put draws text from x within width cells and returns the width used.
func put(b backend.Backend, x, y, width int, text string, style core.Style) int {
	used := 0
	for _, r := range text {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > width {
			break
		}
		b.SetCell(x+used, y, core.Cell{Rune: r, Width: w, Style: style})
		for k := 1; k < w; k++ {
			b.SetCell(x+used+k, y, core.Cell{Rune: 0, Width: 0, Style: style})
		}
		used += w
	}
	return used
}
