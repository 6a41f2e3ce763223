package grid

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap splits text into lines no wider than width terminal cells.
// Lines break at spaces when possible and inside words otherwise; Hangul
// syllables count as two cells. Explicit newlines are kept.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	if line == "" {
		return []string{""}
	}

	var (
		out       []string
		cur       strings.Builder
		curWidth  int
		lastSpace = -1 // byte offset in cur just after the last space
		spaceW    int  // width of cur up to lastSpace
	)

	flush := func() {
		out = append(out, strings.TrimRight(cur.String(), " "))
		cur.Reset()
		curWidth = 0
		lastSpace = -1
	}

	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		w := gr.Width()
		if curWidth+w > width && curWidth > 0 {
			if lastSpace > 0 && cluster != " " {
				// Carry the partial word to the next line.
				head := cur.String()[:lastSpace]
				tail := cur.String()[lastSpace:]
				tailW := curWidth - spaceW
				cur.Reset()
				cur.WriteString(head)
				flush()
				cur.WriteString(tail)
				curWidth = tailW
			} else {
				flush()
			}
		}
		if cluster == " " && curWidth == 0 && len(out) > 0 {
			continue
		}
		cur.WriteString(cluster)
		curWidth += w
		if cluster == " " {
			lastSpace = cur.Len()
			spaceW = curWidth
		}
	}
	if cur.Len() > 0 || len(out) == 0 {
		flush()
	}
	return out
}

// Truncate shortens text to at most width cells, ending with an ellipsis
// when something was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(text) <= width {
		return text
	}
	var b strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if used+w > width-1 {
			break
		}
		b.WriteString(gr.Str())
		used += w
	}
	b.WriteString("…")
	return b.String()
}
