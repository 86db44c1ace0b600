// Package surface defines the drawing primitives the layout is composed of
// and the monochrome raster that implements them.
package surface

import "image"

// Color is a monochrome ink value.
type Color uint8

const (
	Ink   Color = 0x00
	Paper Color = 0xFF
)

// Font selects one of the fixed text sizes, in points.
type Font int

const (
	Font8  Font = 8
	Font10 Font = 10
	Font12 Font = 12
	Font18 Font = 18
	Font24 Font = 24
)

// Surface is a fixed-size canvas with integer pixel coordinates.
type Surface interface {
	Size() image.Point

	DrawRect(x, y, w, h int, c Color)
	FillRect(x, y, w, h int, c Color)
	DrawCircle(x, y, r int, c Color)
	FillCircle(x, y, r int, c Color)
	FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawHLine(x, y, length int, c Color)
	DrawVLine(x, y, length int, c Color)
	SetPixel(x, y int, c Color)
	Pixel(x, y int) Color

	SetFont(f Font)
	// TextBounds measures text in the active font.
	TextBounds(text string) (w, h int)
	// WriteText draws text with its baseline at y.
	WriteText(x, y int, text string)
}

// Align positions text horizontally relative to the anchor x.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// DrawString writes text whose top edge is at y, aligned around x.
func DrawString(s Surface, x, y int, text string, align Align) {
	w, h := s.TextBounds(text)
	switch align {
	case AlignRight:
		x -= w
	case AlignCenter:
		x -= w / 2
	}
	s.WriteText(x, y+h, text)
}
