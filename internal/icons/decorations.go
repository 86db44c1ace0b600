package icons

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-display/internal/surface"
)

// CloudCover draws a three-cloud glyph followed by the percentage.
func CloudCover(s surface.Surface, x, y, percent int) {
	p := pen{s: s, size: Small}
	unit := Small.Scale()
	p.cloud(x-9, y, mul(unit, 0.3), 2)
	p.cloud(x+3, y-2, mul(unit, 0.3), 2)
	p.cloud(x, y+15, mul(unit, 0.6), 2)
	surface.DrawString(s, x+30, y, fmt.Sprintf("%d%%", percent), surface.AlignLeft)
}

// Visibility draws an eye glyph followed by text.
func Visibility(s surface.Surface, x, y int, text string) {
	const (
		r      = 14
		offset = 10
		step   = 0.05
	)
	for a := 0.52; a < 2.61; a += step {
		px := at(x, r*math.Cos(a))
		py := int(float64(y-r/2) + r*math.Sin(a) + offset)
		s.SetPixel(px, py, surface.Ink)
		s.SetPixel(px, py+1, surface.Ink)
	}
	for a := 3.61; a < 5.78; a += step {
		px := at(x, r*math.Cos(a))
		py := int(float64(y+r/2) + r*math.Sin(a) + offset)
		s.SetPixel(px, py, surface.Ink)
		s.SetPixel(px, py+1, surface.Ink)
	}
	s.FillCircle(x, y+offset, r/4, surface.Ink)
	surface.DrawString(s, x+20, y, text, surface.AlignLeft)
}

// UV draws a small rayed sun whose box starts at (x, y).
func UV(s surface.Surface, x, y int) {
	cx, cy := x+12, y+12
	s.FillCircle(cx, cy, 5, surface.Ink)
	for deg := 0; deg < 360; deg += 45 {
		a := float64(deg) * math.Pi / 180
		s.DrawLine(at(cx, 8*math.Cos(a)), at(cy, 8*math.Sin(a)), at(cx, 11*math.Cos(a)), at(cy, 11*math.Sin(a)), surface.Ink)
	}
}

// Sunrise draws a half sun on the horizon with an upward arrow.
func Sunrise(s surface.Surface, x, y int) {
	horizonSun(s, x, y)
	s.DrawVLine(x+40, y+6, 16, surface.Ink)
	s.FillTriangle(x+35, y+10, x+45, y+10, x+40, y+3, surface.Ink)
}

// Sunset draws a half sun on the horizon with a downward arrow.
func Sunset(s surface.Surface, x, y int) {
	horizonSun(s, x, y)
	s.DrawVLine(x+40, y+3, 16, surface.Ink)
	s.FillTriangle(x+35, y+15, x+45, y+15, x+40, y+22, surface.Ink)
}

func horizonSun(s surface.Surface, x, y int) {
	cx, cy := x+17, y+24
	s.FillCircle(cx, cy, 11, surface.Ink)
	s.FillCircle(cx, cy, 8, surface.Paper)
	s.FillRect(x, cy+1, 36, 12, surface.Paper)
	for _, deg := range []float64{180, 225, 270, 315, 360} {
		a := deg * math.Pi / 180
		s.DrawLine(at(cx, 13*math.Cos(a)), at(cy, 13*math.Sin(a)), at(cx, 17*math.Cos(a)), at(cy, 17*math.Sin(a)), surface.Ink)
	}
	s.FillRect(x, cy, 36, 2, surface.Ink)
}
