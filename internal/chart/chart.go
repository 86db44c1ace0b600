// Package chart renders a numeric series as a framed, auto-scaling line or
// bar graph with dashed gridlines and value ticks.
package chart

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/i474232898/weather-display/internal/surface"
)

const (
	yTicks    = 5
	dashes    = 20
	dayLabels = 3

	scanFloor   = -10000.0
	scanCeiling = 10000.0
)

// Spec describes one chart invocation.
type Spec struct {
	X, Y          int
	Width, Height int

	// Min and Max are the fixed range, ignored when AutoScale is set.
	Min, Max  float64
	AutoScale bool
	Bar       bool

	Title  string
	Series []float64

	// OneDecimal forces one-decimal tick labels regardless of magnitude.
	OneDecimal bool
}

// Range is the resolved vertical axis.
type Range struct {
	Min, Max float64
}

// Span is never zero.
func (r Range) Span() float64 { return r.Max - r.Min }

// Scale resolves the axis range for a series.
//
// Auto-scaling skips sample 0. The maximum is truncated to an integer and
// pushed to the next one (round(trunc(max)+0.5)); the minimum is floored
// unless it is exactly zero. A flat or inverted range becomes [min, min+1].
func Scale(series []float64, lo, hi float64, auto bool) Range {
	if auto && len(series) > 1 {
		maxV, minV := scanFloor, scanCeiling
		for _, v := range series[1:] {
			if math.IsNaN(v) {
				continue
			}
			maxV = math.Max(maxV, v)
			minV = math.Min(minV, v)
		}
		hi = math.Round(math.Trunc(maxV) + 0.5)
		lo = 0
		if minV != 0 {
			lo = math.Floor(minV)
		}
	}
	if !(hi > lo) {
		hi = lo + 1
	}
	return Range{Min: lo, Max: hi}
}

func clamp(v float64, r Range) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// MapY maps v onto a rectangle of height h whose top edge is y. Larger
// values land higher. Out-of-range values are clamped.
func MapY(v float64, r Range, y, h int) float64 {
	return float64(y) + (r.Max-clamp(v, r))/r.Span()*float64(h)
}

// Plot returns the pixel position of every sample.
func (sp Spec) Plot(r Range) []image.Point {
	n := len(sp.Series)
	if n < 2 {
		return nil
	}
	pts := make([]image.Point, n)
	for i, v := range sp.Series {
		pts[i] = image.Pt(sp.X+i*sp.Width/(n-1)-1, int(MapY(v, r, sp.Y, sp.Height)+1))
	}
	return pts
}

// TickValue is the value of gridline i, counted from the top.
func TickValue(r Range, i int) float64 {
	return r.Max - r.Span()/yTicks*float64(i)
}

// TickLabel formats tick i and returns how far left of the frame it is
// right-aligned.
func TickLabel(r Range, i int, oneDecimal bool) (int, string) {
	v := TickValue(r, i)
	switch {
	case v < 5 || oneDecimal:
		return 10, strconv.FormatFloat(v+0.01, 'f', 1, 64)
	case r.Min < 1 && r.Max < 10:
		return 3, strconv.FormatFloat(v+0.01, 'f', 1, 64)
	default:
		return 7, strconv.FormatFloat(v+0.01, 'f', 0, 64)
	}
}

// Draw renders sp onto s and returns the axis range it used.
func Draw(s surface.Surface, sp Spec) Range {
	r := Scale(sp.Series, sp.Min, sp.Max, sp.AutoScale)

	s.SetFont(surface.Font10)
	s.DrawRect(sp.X, sp.Y, sp.Width+3, sp.Height+2, surface.Ink)
	surface.DrawString(s, sp.X-20+sp.Width/2, sp.Y-28, sp.Title, surface.AlignCenter)

	if pts := sp.Plot(r); pts != nil {
		lastX := sp.X + 1
		lastY := int(MapY(sp.Series[1], r, sp.Y, sp.Height))
		barWidth := sp.Width/len(pts) - 1
		for _, p := range pts {
			if sp.Bar {
				s.FillRect(lastX+2, p.Y, barWidth, sp.Y+sp.Height-p.Y+2, surface.Ink)
			} else {
				s.DrawLine(lastX, lastY-1, p.X, p.Y-1, surface.Ink)
				s.DrawLine(lastX, lastY, p.X, p.Y, surface.Ink)
			}
			lastX, lastY = p.X, p.Y
		}
	}

	for i := 0; i <= yTicks; i++ {
		gy := sp.Y + sp.Height*i/yTicks
		if i < yTicks {
			for j := 0; j < dashes; j++ {
				s.DrawHLine(sp.X+3+j*sp.Width/dashes, gy, sp.Width/(2*dashes), surface.Ink)
			}
		}
		off, label := TickLabel(r, i, sp.OneDecimal)
		surface.DrawString(s, sp.X-off, gy-5, label, surface.AlignRight)
	}

	for i := 0; i < dayLabels; i++ {
		surface.DrawString(s, 20+sp.X+sp.Width/3*i, sp.Y+sp.Height+10, fmt.Sprintf("%dd", i), surface.AlignLeft)
		if i < dayLabels-1 {
			s.DrawVLine(sp.X+sp.Width/3*i+sp.Width/3, sp.Y, sp.Height, surface.Ink)
		}
	}
	return r
}
