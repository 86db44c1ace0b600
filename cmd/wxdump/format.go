package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/i474232898/weather-display/internal/layout"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

var (
	labelColor   = color.New(color.FgCyan)
	valueColor   = color.New(color.FgWhite)
	sectionColor = color.New(color.FgBlue, color.Bold)
	timeColor    = color.New(color.FgGreen)
	warmColor    = color.New(color.FgRed)
	coldColor    = color.New(color.FgBlue)
	rainColor    = color.New(color.FgYellow)
)

func field(w io.Writer, label, format string, args ...any) {
	labelColor.Fprintf(w, "  %-14s", label+":")
	valueColor.Fprintf(w, format+"\n", args...)
}

// tempColor highlights temperatures at or above the current high in red and
// at or below the current low in blue.
func tempColor(rs *weather.RecordSet, v float64) *color.Color {
	switch {
	case v >= rs.Current.High:
		return warmColor
	case v <= rs.Current.Low:
		return coldColor
	}
	return valueColor
}

func writeRecords(w io.Writer, rs *weather.RecordSet, location string) {
	c := rs.Current
	mode := rs.Units
	first, second := layout.DescriptionLines(rs)

	sectionColor.Fprintf(w, "%s (%s)\n", location, mode)
	field(w, "Conditions", "%s", strings.TrimSpace(first+" "+second))
	field(w, "Temp/Humidity", "%s", layout.TempHumidity(c))
	field(w, "Feels like", "%.1f°", c.FeelsLike)
	field(w, "Hi/Lo", "%.0f° | %.0f°", c.High, c.Low)
	field(w, "Dew point", "%.1f°", c.DewPoint)
	field(w, "Pressure", "%s (%s)", layout.PressureText(c.Pressure, mode), c.Trend)
	field(w, "Wind", "%.1f %s from %.0f° %s", c.WindSpeed, mode.WindSpeedLabel(), c.WindDirection, layout.WindOrdinal(c.WindDirection))
	field(w, "Clouds", "%d%%", c.CloudCover)
	field(w, "Visibility", "%dM", c.Visibility)
	field(w, "UV", "%s", layout.UVText(c.UVI))
	field(w, "Sunrise/set", "%s / %s",
		layout.ClockText(c.LocalTime(c.Sunrise), mode), layout.ClockText(c.LocalTime(c.Sunset), mode))

	rainSeries, snowSeries := rs.RainSeries(), rs.SnowSeries()
	sectionColor.Fprintln(w, "Forecast")
	for i, f := range rs.Forecast {
		timeColor.Fprintf(w, "  %s", c.LocalTime(f.Timestamp).Format("Mon 15:04"))
		valueColor.Fprintf(w, "  %-4s", f.Icon)
		tempColor(rs, f.Temperature).Fprintf(w, " %6.1f°", f.Temperature)
		valueColor.Fprintf(w, " %5.0f%% %s", f.Humidity, layout.PressureText(f.Pressure, units.Metric))
		if rainSeries[i] > 0 || snowSeries[i] > 0 {
			rainColor.Fprintf(w, "  rain %.1f snow %.1f", rainSeries[i], snowSeries[i])
		}
		fmt.Fprintln(w)
	}

	rain, snow := weather.SumOfPrecip(rainSeries), weather.SumOfPrecip(snowSeries)
	field(w, "Rain total", "%.1f%s", rain, mode.PrecipLabel())
	field(w, "Snow total", "%.1f%s", snow, mode.PrecipLabel())
}
