package layout

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/weather-display/internal/astro"
	"github.com/i474232898/weather-display/internal/chart"
	"github.com/i474232898/weather-display/internal/icons"
	"github.com/i474232898/weather-display/internal/surface"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

// Status is device telemetry for the status bar.
type Status struct {
	RSSI    int     `json:"rssi"`
	Voltage float64 `json:"voltage"`
}

// Scene is everything one composition reads. Records is borrowed and never
// modified.
type Scene struct {
	Records  *weather.RecordSet
	Location string
	Now      time.Time
	// Status is optional; without it the status bar is left blank.
	Status *Status
}

// Composer draws a Scene onto a surface in a fixed order.
type Composer struct {
	table      Table
	hemisphere astro.Hemisphere
}

func NewComposer(t Table, h astro.Hemisphere) *Composer {
	return &Composer{table: t, hemisphere: h}
}

// Compose draws every panel. The same scene always produces the same
// sequence of primitive calls.
func (c *Composer) Compose(s surface.Surface, sc Scene) {
	rs := sc.Records
	if sc.Status != nil {
		c.status(s, *sc.Status)
	}
	c.general(s, sc)
	c.wind(s, rs)
	c.astronomy(s, rs, sc.Now)
	c.main(s, rs)
	p := c.table[PanelIcon]
	icons.Draw(s, p.X, p.Y, rs.Current.Icon, icons.Large)
	c.forecast(s, rs)
	c.charts(s, rs)
}

func (c *Composer) status(s surface.Surface, st Status) {
	s.SetFont(surface.Font8)
	sig, bat := c.table[PanelSignal], c.table[PanelBattery]
	rssiBars(s, sig.X, sig.Y, st.RSSI)
	battery(s, bat.X, bat.Y, st.Voltage)
}

// rssiBars draws one bar per 20 dBm step from -100 up to rssi.
func rssiBars(s surface.Surface, x, y, rssi int) {
	pos := 1
	for level := -100; level <= rssi; level += 20 {
		h := 30
		switch {
		case level <= -100:
			h = 6
		case level <= -80:
			h = 12
		case level <= -60:
			h = 18
		case level <= -40:
			h = 24
		}
		s.FillRect(x+pos*8, y-h, 6, h, surface.Ink)
		pos++
	}
}

func battery(s surface.Surface, x, y int, v float64) {
	if v <= 1 {
		return
	}
	pct := BatteryPercent(v)
	s.DrawRect(x+25, y-14, 40, 15, surface.Ink)
	s.FillRect(x+65, y-10, 4, 7, surface.Ink)
	s.FillRect(x+27, y-12, 36*pct/100, 11, surface.Ink)
	surface.DrawString(s, x+85, y-14, fmt.Sprintf("%d%%  %.1fv", pct, v), surface.AlignLeft)
}

func (c *Composer) general(s surface.Surface, sc Scene) {
	city := c.table[PanelCity]
	s.SetFont(surface.Font10)
	surface.DrawString(s, city.X, city.Y, sc.Location, surface.AlignLeft)

	date := c.table[PanelDate]
	local := sc.Records.Current.LocalTime(sc.Now.Unix())
	s.SetFont(surface.Font8)
	surface.DrawString(s, date.X, date.Y, DateLine(local, sc.Records.Units), surface.AlignLeft)
}

func (c *Composer) wind(s surface.Surface, rs *weather.RecordSet) {
	p := c.table[PanelWind]
	x, y, r := p.X, p.Y, p.W
	angle := rs.Current.WindDirection

	windArrow(s, x, y, r-22, angle, 18, 33)
	s.SetFont(surface.Font8)
	s.DrawCircle(x, y, r, surface.Ink)
	s.DrawCircle(x, y, r+1, surface.Ink)
	s.DrawCircle(x, y, int(float64(r)*0.7), surface.Ink)

	for a := 0.0; a < 360; a += 22.5 {
		rad := (a - 90) * math.Pi / 180
		dxo := int(float64(r) * math.Cos(rad))
		dyo := int(float64(r) * math.Sin(rad))
		switch a {
		case 45:
			surface.DrawString(s, dxo+x+15, dyo+y-18, "NE", surface.AlignCenter)
		case 135:
			surface.DrawString(s, dxo+x+20, dyo+y-2, "SE", surface.AlignCenter)
		case 225:
			surface.DrawString(s, dxo+x-20, dyo+y-2, "SW", surface.AlignCenter)
		case 315:
			surface.DrawString(s, dxo+x-15, dyo+y-18, "NW", surface.AlignCenter)
		}
		tick(s, x, y, dxo, dyo)
		tick(s, x, y, int(float64(dxo)*0.7), int(float64(dyo)*0.7))
	}

	surface.DrawString(s, x, y-r-20, "N", surface.AlignCenter)
	surface.DrawString(s, x, y+r+10, "S", surface.AlignCenter)
	surface.DrawString(s, x-r-15, y-5, "W", surface.AlignCenter)
	surface.DrawString(s, x+r+10, y-5, "E", surface.AlignCenter)
	surface.DrawString(s, x+3, y+50, fmt.Sprintf("%.0f°", angle), surface.AlignCenter)

	s.SetFont(surface.Font12)
	surface.DrawString(s, x, y-50, WindOrdinal(angle), surface.AlignCenter)
	s.SetFont(surface.Font24)
	surface.DrawString(s, x+3, y-18, fmt.Sprintf("%.1f", rs.Current.WindSpeed), surface.AlignCenter)
	s.SetFont(surface.Font12)
	surface.DrawString(s, x, y+25, rs.Units.WindSpeedLabel(), surface.AlignCenter)
}

// tick draws an inward compass tick from offset (dx, dy) to 90% of it.
func tick(s surface.Surface, x, y, dx, dy int) {
	s.DrawLine(dx+x, dy+y, int(float64(dx)*0.9)+x, int(float64(dy)*0.9)+y, surface.Ink)
}

// windArrow draws the direction pointer on the inner ring. The 135 offset
// is in radians, which turns the pointer about its base onto the heading.
func windArrow(s surface.Surface, x, y, size int, deg float64, width, length int) {
	heading := (deg - 90) * math.Pi / 180
	dx := float64(size-10)*math.Cos(heading) + float64(x)
	dy := float64(size-10)*math.Sin(heading) + float64(y)

	rot := deg*math.Pi/180 - 135
	sin, cos := math.Sincos(rot)
	half := float64(width / 2)
	pt := func(px, py float64) (int, int) {
		return int(px*cos - py*sin + dx), int(py*cos + px*sin + dy)
	}
	x1, y1 := pt(0, float64(length))
	x2, y2 := pt(half, half)
	x3, y3 := pt(-half, half)
	s.FillTriangle(x1, y1, x3, y3, x2, y2, surface.Ink)
}

func (c *Composer) astronomy(s surface.Surface, rs *weather.RecordSet, now time.Time) {
	utc := now.UTC()
	d, m, yr := utc.Day(), int(utc.Month()), utc.Year()

	s.SetFont(surface.Font10)
	label := c.table[PanelMoonLabel]
	surface.DrawString(s, label.X, label.Y, astro.MoonPhase(d, m, yr, c.hemisphere).String(), surface.AlignLeft)
	moon := c.table[PanelMoon]
	moonDisc(s, moon.X, moon.Y, moon.W, astro.NormalizedMoonPhase(d, m, yr), c.hemisphere)

	cur := rs.Current
	rise, set := c.table[PanelSunriseTime], c.table[PanelSunsetTime]
	surface.DrawString(s, rise.X, rise.Y, ClockText(cur.LocalTime(cur.Sunrise), rs.Units), surface.AlignLeft)
	surface.DrawString(s, set.X, set.Y, ClockText(cur.LocalTime(cur.Sunset), rs.Units), surface.AlignLeft)
	rise, set = c.table[PanelSunriseIcon], c.table[PanelSunsetIcon]
	icons.Sunrise(s, rise.X, rise.Y)
	icons.Sunset(s, set.X, set.Y)
}

const moonLines = 90

// moonDisc shades a disc of the given diameter for a normalized phase.
// The lit part is left as paper.
func moonDisc(s surface.Surface, x, y, diameter int, phase float64, h astro.Hemisphere) {
	if !h.IsNorthern() {
		phase = 1 - phase
	}
	s.FillCircle(x+diameter-1, y+diameter, diameter/2+1, surface.Ink)

	const half = moonLines / 2
	d := float64(diameter)
	px := func(v float64) int { return int((v+moonLines)/moonLines*d + float64(x)) }
	py := func(v float64) int { return int(v/moonLines*d + float64(y)) }
	for yp := 0.0; yp <= half; yp++ {
		xp := math.Sqrt(half*half - yp*yp)
		rp := 2 * xp
		var x1, x2 float64
		if phase < 0.5 {
			x1 = -xp
			x2 = rp - 2*phase*rp - xp
		} else {
			x1 = xp
			x2 = xp - 2*phase*rp + rp
		}
		s.DrawLine(px(x1), py(moonLines-yp), px(x2), py(moonLines-yp), surface.Paper)
		s.DrawLine(px(x1), py(yp+moonLines), px(x2), py(yp+moonLines), surface.Paper)
	}
	s.DrawCircle(x+diameter-1, y+diameter, diameter/2, surface.Ink)
}

func (c *Composer) main(s surface.Surface, rs *weather.RecordSet) {
	s.SetFont(surface.Font8)
	c.readings(s, rs)
	c.description(s, rs)
	c.sky(s, rs)
}

func (c *Composer) readings(s surface.Surface, rs *weather.RecordSet) {
	p := c.table[PanelReadings]
	cur := rs.Current
	s.SetFont(surface.Font18)
	surface.DrawString(s, p.X, p.Y, TempHumidity(cur), surface.AlignLeft)

	s.SetFont(surface.Font12)
	pr := c.table[PanelPressure]
	pressureTrend(s, pr.X, pr.Y, cur.Pressure, cur.Trend, rs.Units)

	off := 42
	if cur.WindSpeed > 0 {
		surface.DrawString(s, p.X, p.Y+off, fmt.Sprintf("%.1f° FL", cur.FeelsLike), surface.AlignLeft)
		off += 30
	}
	surface.DrawString(s, p.X, p.Y+off, fmt.Sprintf("%.0f° | %.0f° Hi/Lo", cur.High, cur.Low), surface.AlignLeft)
}

// trendSegments holds two line segments per trend, as offsets from the anchor.
var trendSegments = map[weather.PressureTrend][2][4]int{
	weather.TrendRising:  {{0, 0, 8, -8}, {8, -8, 16, 0}},
	weather.TrendZero:    {{8, -8, 16, 0}, {8, 8, 16, 0}},
	weather.TrendFalling: {{0, 0, 8, 8}, {8, 8, 16, 0}},
}

func pressureTrend(s surface.Surface, x, y int, p float64, t weather.PressureTrend, mode units.Mode) {
	surface.DrawString(s, x+25, y-10, PressureText(p, mode), surface.AlignLeft)
	segs, ok := trendSegments[t]
	if !ok {
		return
	}
	for _, bx := range []int{x, x - 1} {
		for _, seg := range segs {
			s.DrawLine(bx+seg[0], y+seg[1], bx+seg[2], y+seg[3], surface.Ink)
		}
	}
}

func (c *Composer) description(s surface.Surface, rs *weather.RecordSet) {
	p := c.table[PanelDescription]
	s.SetFont(surface.Font12)
	first, second := DescriptionLines(rs)
	surface.DrawString(s, p.X, p.Y, first, surface.AlignLeft)
	if second != "" {
		surface.DrawString(s, p.X, p.Y+p.H, second, surface.AlignLeft)
	}
}

func (c *Composer) sky(s surface.Surface, rs *weather.RecordSet) {
	cur := rs.Current
	s.SetFont(surface.Font12)
	vis, cloud := c.table[PanelVisibility], c.table[PanelCloudCover]
	icons.Visibility(s, vis.X, vis.Y, fmt.Sprintf("%dM", cur.Visibility))
	icons.CloudCover(s, cloud.X, cloud.Y, cur.CloudCover)
	uvText, uvIcon := c.table[PanelUVText], c.table[PanelUVIcon]
	surface.DrawString(s, uvText.X, uvText.Y, UVText(cur.UVI), surface.AlignLeft)
	icons.UV(s, uvIcon.X, uvIcon.Y)
}

func (c *Composer) forecast(s surface.Surface, rs *weather.RecordSet) {
	p := c.table[PanelForecast]
	for i := 0; i < forecastCells; i++ {
		f := rs.Forecast[i]
		x := p.X + forecastCellW*i
		mid := x + forecastCellW/2
		icons.Draw(s, mid-5, p.Y+85, f.Icon, icons.Small)
		s.SetFont(surface.Font10)
		surface.DrawString(s, mid, p.Y+30, ClockText(rs.Current.LocalTime(f.Timestamp), rs.Units), surface.AlignCenter)
		surface.DrawString(s, mid, p.Y+130, fmt.Sprintf("%.0f°/%.0f°", f.High, f.Low), surface.AlignCenter)
	}
}

func (c *Composer) charts(s surface.Surface, rs *weather.RecordSet) {
	p := c.table[PanelCharts]
	gap := c.table.ChartGap()
	metric := rs.Units.IsMetric()
	pick := func(m, i string) string {
		if metric {
			return m
		}
		return i
	}

	specs := []chart.Spec{
		{
			Min: 900, Max: 1050, AutoScale: true,
			Title:      pick("Pressure (hPa)", "Pressure (in)"),
			Series:     rs.PressureSeries(),
			OneDecimal: !metric,
		},
		{
			Min: 10, Max: 30, AutoScale: true,
			Title:  pick("Temperature (°C)", "Temperature (°F)"),
			Series: rs.TemperatureSeries(),
		},
		{
			Min: 0, Max: 100,
			Title:  "Humidity (%)",
			Series: rs.HumiditySeries(),
		},
	}
	precip := chart.Spec{
		Min: 0, Max: 30, AutoScale: true, Bar: true,
		Title:  pick("Rainfall (mm)", "Rainfall (in)"),
		Series: rs.RainSeries(),
	}
	if rs.SnowDominates() {
		precip.Title = pick("Snowfall (mm)", "Snowfall (in)")
		precip.Series = rs.SnowSeries()
	}
	specs = append(specs, precip)

	for i := range specs {
		sp := &specs[i]
		sp.X, sp.Y = p.X+i*gap, p.Y
		sp.Width, sp.Height = p.W, p.H
		if sp.Bar {
			sp.X += 5
		}
		chart.Draw(s, *sp)
	}
}
