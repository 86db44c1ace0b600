package surface

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const fontDPI = 96

var (
	boldOnce sync.Once
	boldFont *sfnt.Font
)

func loadBold() *sfnt.Font {
	boldOnce.Do(func() {
		f, err := opentype.Parse(gobold.TTF)
		if err != nil {
			log.Printf("ERROR: parse bold font: %v; falling back to 7x13 bitmap font", err)
			return
		}
		boldFont = f
	})
	return boldFont
}

// Raster draws onto an 8-bit gray working image; Mono and EncodePNG
// threshold it into the 1-bit frame buffer the panel takes.
// A Raster is owned by a single render pass.
type Raster struct {
	img   *image.Gray
	font  Font
	faces map[Font]font.Face
}

// NewRaster returns a blank (paper) canvas. The size never changes.
func NewRaster(width, height int) *Raster {
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Gray{Y: uint8(Paper)}}, image.Point{}, draw.Src)
	return &Raster{img: img, font: Font10, faces: make(map[Font]font.Face)}
}

func (r *Raster) Size() image.Point { return r.img.Rect.Size() }

func (r *Raster) set(x, y int, c Color) {
	if image.Pt(x, y).In(r.img.Rect) {
		r.img.SetGray(x, y, color.Gray{Y: uint8(c)})
	}
}

func (r *Raster) SetPixel(x, y int, c Color) { r.set(x, y, c) }

// Pixel reports the thresholded color at (x, y); outside the canvas is paper.
func (r *Raster) Pixel(x, y int) Color {
	if !image.Pt(x, y).In(r.img.Rect) {
		return Paper
	}
	if r.img.GrayAt(x, y).Y < 0x80 {
		return Ink
	}
	return Paper
}

func (r *Raster) DrawHLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		r.set(x+i, y, c)
	}
}

func (r *Raster) DrawVLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		r.set(x, y+i, c)
	}
}

func (r *Raster) DrawRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r.DrawHLine(x, y, w, c)
	r.DrawHLine(x, y+h-1, w, c)
	r.DrawVLine(x, y, h, c)
	r.DrawVLine(x+w-1, y, h, c)
}

func (r *Raster) FillRect(x, y, w, h int, c Color) {
	for j := 0; j < h; j++ {
		r.DrawHLine(x, y+j, w, c)
	}
}

// DrawLine uses Bresenham's algorithm.
func (r *Raster) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	e := dx + dy
	for {
		r.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawCircle is the midpoint circle algorithm.
func (r *Raster) DrawCircle(x0, y0, radius int, c Color) {
	if radius < 0 {
		return
	}
	f := 1 - radius
	ddx, ddy := 1, -2*radius
	x, y := 0, radius

	r.set(x0, y0+radius, c)
	r.set(x0, y0-radius, c)
	r.set(x0+radius, y0, c)
	r.set(x0-radius, y0, c)
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		r.set(x0+x, y0+y, c)
		r.set(x0-x, y0+y, c)
		r.set(x0+x, y0-y, c)
		r.set(x0-x, y0-y, c)
		r.set(x0+y, y0+x, c)
		r.set(x0-y, y0+x, c)
		r.set(x0+y, y0-x, c)
		r.set(x0-y, y0-x, c)
	}
}

func (r *Raster) FillCircle(x0, y0, radius int, c Color) {
	if radius < 0 {
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		dx := isqrt(radius*radius - dy*dy)
		r.DrawHLine(x0-dx, y0+dy, 2*dx+1, c)
	}
}

// FillTriangle rasterizes the triangle coverage with x/image/vector and sets
// every pixel that is at least half covered.
func (r *Raster) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	minX, maxX := min(x0, x1, x2), max(x0, x1, x2)
	minY, maxY := min(y0, y1, y2), max(y0, y1, y2)
	w, h := maxX-minX+2, maxY-minY+2

	z := vector.NewRasterizer(w, h)
	pt := func(x, y int) (float32, float32) {
		return float32(x-minX) + 0.5, float32(y-minY) + 0.5
	}
	z.MoveTo(pt(x0, y0))
	z.LineTo(pt(x1, y1))
	z.LineTo(pt(x2, y2))
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				r.set(minX+x, minY+y, c)
			}
		}
	}
}

func (r *Raster) SetFont(f Font) { r.font = f }

func (r *Raster) face() font.Face {
	if f, ok := r.faces[r.font]; ok {
		return f
	}
	var face font.Face = basicfont.Face7x13
	if bold := loadBold(); bold != nil {
		f, err := opentype.NewFace(bold, &opentype.FaceOptions{
			Size:    float64(r.font),
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
		if err == nil {
			face = f
		}
	}
	r.faces[r.font] = face
	return face
}

func (r *Raster) TextBounds(text string) (int, int) {
	face := r.face()
	bounds, advance := font.BoundString(face, text)
	return advance.Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

func (r *Raster) WriteText(x, y int, text string) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(color.Gray{Y: uint8(Ink)}),
		Face: r.face(),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Gray exposes the working image.
func (r *Raster) Gray() *image.Gray { return r.img }

// Mono thresholds the canvas into a 1-bit frame buffer.
func (r *Raster) Mono() *image1bit.VerticalLSB {
	m := image1bit.NewVerticalLSB(r.img.Bounds())
	draw.Draw(m, m.Bounds(), r.img, image.Point{}, draw.Src)
	return m
}

// EncodePNG writes the 1-bit frame as a two-color paletted PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	mono := r.Mono()
	pal := image.NewPaletted(mono.Bounds(), color.Palette{color.Black, color.White})
	draw.Draw(pal, pal.Bounds(), mono, image.Point{}, draw.Src)
	return png.Encode(w, pal)
}

// Close releases the font faces.
func (r *Raster) Close() error {
	for k, f := range r.faces {
		_ = f.Close()
		delete(r.faces, k)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isqrt(v int) int {
	if v <= 0 {
		return 0
	}
	s := 0
	for (s+1)*(s+1) <= v {
		s++
	}
	return s
}
