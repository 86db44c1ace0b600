package surface

import (
	"fmt"
	"image"
	"strings"
	"unicode/utf8"
)

// Op is one recorded drawing call.
type Op struct {
	Name  string
	Args  []int
	Color Color
	Font  Font
	Text  string
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	b.WriteString(fmt.Sprint(o.Args))
	if o.Text != "" {
		fmt.Fprintf(&b, " %q@%d", o.Text, o.Font)
	}
	return b.String()
}

// Recorder is a Surface that keeps the call sequence instead of pixels.
// Text is measured as 0.6em per rune by 1em.
type Recorder struct {
	Ops  []Op
	size image.Point
	font Font
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{size: image.Pt(width, height), font: Font10}
}

func (r *Recorder) add(name string, c Color, args ...int) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Color: c})
}

func (r *Recorder) Size() image.Point { return r.size }

func (r *Recorder) DrawRect(x, y, w, h int, c Color) { r.add("drawRect", c, x, y, w, h) }
func (r *Recorder) FillRect(x, y, w, h int, c Color) { r.add("fillRect", c, x, y, w, h) }
func (r *Recorder) DrawCircle(x, y, rad int, c Color) { r.add("drawCircle", c, x, y, rad) }
func (r *Recorder) FillCircle(x, y, rad int, c Color) { r.add("fillCircle", c, x, y, rad) }
func (r *Recorder) DrawLine(x0, y0, x1, y1 int, c Color) {
	r.add("drawLine", c, x0, y0, x1, y1)
}
func (r *Recorder) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	r.add("fillTriangle", c, x0, y0, x1, y1, x2, y2)
}
func (r *Recorder) DrawHLine(x, y, length int, c Color) { r.add("hline", c, x, y, length) }
func (r *Recorder) DrawVLine(x, y, length int, c Color) { r.add("vline", c, x, y, length) }
func (r *Recorder) SetPixel(x, y int, c Color)          { r.add("pixel", c, x, y) }
func (r *Recorder) Pixel(int, int) Color                { return Paper }

func (r *Recorder) SetFont(f Font) { r.font = f }

func (r *Recorder) TextBounds(text string) (int, int) {
	return utf8.RuneCountInString(text) * int(r.font) * 6 / 10, int(r.font)
}

func (r *Recorder) WriteText(x, y int, text string) {
	r.Ops = append(r.Ops, Op{Name: "text", Args: []int{x, y}, Font: r.font, Text: text})
}

// Texts returns every string written, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Name == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns how many ops carry the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset drops the recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
