// Package terminal adapts tcell to the renderer and input contracts of the
// tea runtime and provides the few widgets needed to put text on screen.
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Surface is the drawable area handed to a Widget.
// tcell.Screen satisfies it.
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Widget draws itself onto a Surface. A Widget is produced from a state
// snapshot and must not be mutated after it is returned.
type Widget interface {
	Render(s Surface)
}

// WidgetFunc adapts a plain function to Widget.
type WidgetFunc func(s Surface)

func (f WidgetFunc) Render(s Surface) { f(s) }

// Align controls horizontal placement of Text lines.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Text draws one line per entry starting at the top of the surface.
// Lines wider than the surface are clipped.
type Text struct {
	Lines []string
	Style tcell.Style
	Align Align
}

func (t Text) Render(s Surface) {
	width, height := s.Size()
	for y, line := range t.Lines {
		if y >= height {
			return
		}
		x := 0
		if t.Align == AlignCenter {
			if w := uniseg.StringWidth(line); w < width {
				x = (width - w) / 2
			}
		}
		PutString(s, x, y, line, t.Style)
	}
}

// PutString writes str at (x, y) one grapheme cluster per cell group and
// returns the column after the last cluster written.
func PutString(s Surface, x, y int, str string, style tcell.Style) int {
	width, _ := s.Size()
	state := -1
	for len(str) > 0 && x < width {
		var cluster string
		var w int
		cluster, str, w, state = uniseg.FirstGraphemeClusterInString(str, state)
		runes := []rune(cluster)
		if w == 0 || len(runes) == 0 {
			continue
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// Frame draws a single-line border with an optional title and renders Body
// inside it.
type Frame struct {
	Title string
	Body  Widget
	Style tcell.Style
}

func (f Frame) Render(s Surface) {
	width, height := s.Size()
	if width < 2 || height < 2 {
		return
	}

	for x := 1; x < width-1; x++ {
		s.SetContent(x, 0, tcell.RuneHLine, nil, f.Style)
		s.SetContent(x, height-1, tcell.RuneHLine, nil, f.Style)
	}
	for y := 1; y < height-1; y++ {
		s.SetContent(0, y, tcell.RuneVLine, nil, f.Style)
		s.SetContent(width-1, y, tcell.RuneVLine, nil, f.Style)
	}
	s.SetContent(0, 0, tcell.RuneULCorner, nil, f.Style)
	s.SetContent(width-1, 0, tcell.RuneURCorner, nil, f.Style)
	s.SetContent(0, height-1, tcell.RuneLLCorner, nil, f.Style)
	s.SetContent(width-1, height-1, tcell.RuneLRCorner, nil, f.Style)

	if f.Title != "" {
		PutString(Region(s, 1, 0, width-2, 1), 1, 0, f.Title, f.Style.Bold(true))
	}
	if f.Body != nil {
		f.Body.Render(Region(s, 1, 1, width-2, height-2))
	}
}

type region struct {
	parent        Surface
	x, y          int
	width, height int
}

// Region returns a Surface translated to (x, y) in parent and clipped to
// width x height.
func Region(parent Surface, x, y, width, height int) Surface {
	pw, ph := parent.Size()
	if width > pw-x {
		width = pw - x
	}
	if height > ph-y {
		height = ph - y
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return region{parent: parent, x: x, y: y, width: width, height: height}
}

func (r region) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.parent.SetContent(r.x+x, r.y+y, primary, combining, style)
}

func (r region) Size() (int, int) {
	return r.width, r.height
}
