package icons

import (
	"math"

	"github.com/i474232898/weather-display/internal/surface"
)

const strokeWidth = 5

// pen draws one glyph at a fixed size class. It holds no state between
// glyphs so the same request always yields the same primitive sequence.
type pen struct {
	s    surface.Surface
	size Size
}

func (p pen) large() bool { return p.size == Large }

// pick returns l for large icons and sm for small ones.
func (p pen) pick(l, sm float64) float64 {
	if p.large() {
		return l
	}
	return sm
}

// at offsets base by a fractional amount and truncates toward zero.
func at(base int, off float64) int {
	return int(float64(base) + off)
}

func mul(scale int, f float64) int {
	return int(float64(scale) * f)
}

func (p pen) cloud(x, y, scale, line int) {
	s := float64(scale)
	p.s.FillCircle(x-scale*3, y, scale, surface.Ink)
	p.s.FillCircle(x+scale*3, y, scale, surface.Ink)
	p.s.FillCircle(x-scale, y-scale, mul(scale, 1.4), surface.Ink)
	p.s.FillCircle(at(x, s*1.5), at(y, -s*1.3), mul(scale, 1.75), surface.Ink)
	p.s.FillRect(x-scale*3-1, y-scale, scale*6, scale*2+1, surface.Ink)

	p.s.FillCircle(x-scale*3, y, scale-line, surface.Paper)
	p.s.FillCircle(x+scale*3, y, scale-line, surface.Paper)
	p.s.FillCircle(x-scale, y-scale, int(s*1.4-float64(line)), surface.Paper)
	p.s.FillCircle(at(x, s*1.5), at(y, -s*1.3), int(s*1.75-float64(line)), surface.Paper)
	p.s.FillRect(x-scale*3+2, y-scale+line-1, mul(scale, 5.9), scale*2-line*2+2, surface.Paper)
}

func (p pen) rain(x, y int) {
	if p.large() {
		p.s.SetFont(surface.Font18)
		surface.DrawString(p.s, x-60, y+25, "///////", surface.AlignLeft)
		return
	}
	p.s.SetFont(surface.Font8)
	surface.DrawString(p.s, x-25, y+12, "///////", surface.AlignLeft)
}

func (p pen) snow(x, y int) {
	if p.large() {
		p.s.SetFont(surface.Font18)
		surface.DrawString(p.s, x-60, y+30, "* * * *", surface.AlignLeft)
		return
	}
	p.s.SetFont(surface.Font8)
	surface.DrawString(p.s, x-25, y+15, "* * * *", surface.AlignLeft)
}

// thunder draws four lightning bolts under a cloud, each three pixels thick.
func (p pen) thunder(x, y, scale int) {
	s := float64(scale)
	y += scale / 2
	for i := 1; i < 5; i++ {
		fi := float64(i)
		for d := 0; d < 3; d++ {
			fd := float64(d)
			p.s.DrawLine(at(x, -s*4+s*fi*1.5+fd), at(y, s*1.5), at(x, -s*3.5+s*fi*1.5+fd), y+scale, surface.Ink)
		}
		for d := 0; d < 3; d++ {
			fd := float64(d)
			p.s.DrawLine(at(x, -s*4+s*fi*1.5), at(y, s*1.5+fd), at(x, -s*3+s*fi*1.5), at(y, s*1.5+fd), surface.Ink)
		}
		for d := 0; d < 3; d++ {
			fd := float64(d)
			p.s.DrawLine(at(x, -s*3.5+s*fi*1.4+fd), at(y, s*2.5), at(x, -s*3+s*fi*1.5+fd), at(y, s*1.5), surface.Ink)
		}
	}
}

func (p pen) sun(x, y, scale int) {
	s := float64(scale)
	p.s.FillRect(x-scale*2, y, scale*4, strokeWidth, surface.Ink)
	p.s.FillRect(x, y-scale*2, strokeWidth, scale*4, surface.Ink)
	ray := strokeWidth * 3 / 2
	angledLine(p.s, at(x, s*1.4), at(y, s*1.4), at(x, -s*1.4), at(y, -s*1.4), ray)
	angledLine(p.s, at(x, -s*1.4), at(y, s*1.4), at(x, s*1.4), at(y, -s*1.4), ray)
	p.s.FillCircle(x, y, mul(scale, 1.3), surface.Paper)
	p.s.FillCircle(x, y, scale, surface.Ink)
	p.s.FillCircle(x, y, scale-strokeWidth, surface.Paper)
}

func (p pen) fog(x, y, scale, line int) {
	if !p.large() {
		line = 3
	}
	s := float64(scale)
	for _, f := range []float64{1.5, 2.0, 2.5} {
		p.s.FillRect(x-scale*3, at(y, s*f), scale*6, line, surface.Ink)
	}
}

// angledLine fills a thick segment from (x, y) to (x1, y1) as two triangles.
func angledLine(s surface.Surface, x, y, x1, y1, size int) {
	fx, fy := float64(x-x1), float64(y-y1)
	length := math.Sqrt(fx*fx + fy*fy)
	if length == 0 {
		return
	}
	half := float64(size) / 2
	dx := int(half * fx / length)
	dy := int(half * fy / length)
	s.FillTriangle(x+dx, y-dy, x-dx, y+dy, x1+dx, y1-dy, surface.Ink)
	s.FillTriangle(x-dx, y+dy, x1-dx, y1+dy, x1+dx, y1-dy, surface.Ink)
}

func (p pen) clearSky(x, y int) {
	scale := p.size.Scale()
	if !p.large() {
		y += 10
	}
	p.sun(x, y, mul(scale, p.pick(1.7, 1.2)))
}

func (p pen) fewClouds(x, y int) {
	scale := p.size.Scale()
	s := float64(scale)
	y += 15
	cx := x
	if p.large() {
		cx += 10
	}
	p.cloud(cx, y, mul(scale, p.pick(0.9, 0.8)), strokeWidth)
	p.sun(at(cx, -s*1.8), at(y, -s*1.6), scale)
}

func (p pen) scatteredClouds(x, y int) {
	scale := p.size.Scale()
	y += 15
	bx := x
	if p.large() {
		bx -= 35
	}
	p.cloud(bx, int(float64(y)*p.pick(0.75, 0.93)), scale/2, strokeWidth)
	p.cloud(x, y, mul(scale, 0.9), strokeWidth)
}

func (p pen) brokenClouds(x, y int) {
	scale := p.size.Scale()
	s := float64(scale)
	y += 15
	p.sun(at(x, -s*1.8), at(y, -s*1.8), scale)
	p.cloud(x, y, mul(scale, p.pick(1, 0.75)), strokeWidth)
}

func (p pen) rainCloud(x, y int) {
	scale := p.size.Scale()
	y += 15
	p.cloud(x, y, mul(scale, p.pick(1, 0.75)), strokeWidth)
	p.rain(x, y)
}

func (p pen) chanceRain(x, y int) {
	scale := p.size.Scale()
	s := float64(scale)
	y += 15
	p.sun(at(x, -s*1.8), at(y, -s*1.8), scale)
	p.cloud(x, y, mul(scale, p.pick(1, 0.65)), strokeWidth)
	p.rain(x, y)
}

func (p pen) thunderstorm(x, y int) {
	scale := p.size.Scale()
	y += 5
	p.cloud(x, y, mul(scale, p.pick(1, 0.75)), strokeWidth)
	p.thunder(x, y, scale)
}

func (p pen) snowCloud(x, y int) {
	scale := p.size.Scale()
	p.cloud(x, y, mul(scale, p.pick(1, 0.75)), strokeWidth)
	p.snow(x, y)
}

func (p pen) mist(x, y int) {
	scale := p.size.Scale()
	p.sun(x, y, mul(scale, p.pick(1, 0.75)))
	p.fog(x, y, scale, strokeWidth)
}

// moon draws a crescent up and to the right of the anchor. Its radius does
// not follow the size class, only its offset does.
func (p pen) moon(x, y int) {
	xo, yo := 65, 12
	if p.large() {
		xo, yo = 130, -40
	}
	r := Small.Scale()
	p.s.FillCircle(x-28+xo, y-37+yo, r, surface.Ink)
	p.s.FillCircle(x-16+xo, y-37+yo, mul(r, 1.6), surface.Paper)
}

func (p pen) noData(x, y int) {
	if p.large() {
		p.s.SetFont(surface.Font24)
	} else {
		p.s.SetFont(surface.Font12)
	}
	surface.DrawString(p.s, x-3, y-10, "?", surface.AlignCenter)
}
