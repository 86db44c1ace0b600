// Package preview renders the forecast series of a record set as an
// interactive HTML page.
package preview

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/i474232898/weather-display/internal/weather"
)

const (
	chartWidth  = "900px"
	chartHeight = "320px"
)

// Labels returns the local "Mon 15:04" time of every forecast period.
func Labels(rs *weather.RecordSet) []string {
	out := make([]string, weather.ForecastPeriods)
	for i, f := range rs.Forecast {
		out[i] = rs.Current.LocalTime(f.Timestamp).Format("Mon 15:04")
	}
	return out
}

func lineData(series []float64) []opts.LineData {
	items := make([]opts.LineData, len(series))
	for i, v := range series {
		items[i] = opts.LineData{Value: v}
	}
	return items
}

func barData(series []float64) []opts.BarData {
	items := make([]opts.BarData, len(series))
	for i, v := range series {
		items[i] = opts.BarData{Value: v}
	}
	return items
}

func newLine(title, unit string, labels []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	line.SetXAxis(labels)
	return line
}

// Page builds the four forecast charts the display draws: pressure,
// temperature, humidity and precipitation.
func Page(rs *weather.RecordSet, location string) *components.Page {
	labels := Labels(rs)
	mode := rs.Units
	tempUnit := "°C"
	pressureUnit := "hPa"
	if !mode.IsMetric() {
		tempUnit, pressureUnit = "°F", "in"
	}

	pressure := newLine("Pressure", pressureUnit, labels)
	pressure.AddSeries("pressure", lineData(rs.PressureSeries()))

	temperature := newLine("Temperature", tempUnit, labels)
	temperature.AddSeries("temperature", lineData(rs.TemperatureSeries()))

	humidity := newLine("Humidity", "%", labels)
	humidity.AddSeries("humidity", lineData(rs.HumiditySeries()))

	precip := charts.NewBar()
	precip.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Precipitation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: mode.PrecipLabel()}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	precip.SetXAxis(labels).
		AddSeries("rain", barData(rs.RainSeries())).
		AddSeries("snow", barData(rs.SnowSeries()))

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s forecast", location)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(pressure, temperature, humidity, precip)
	return page
}

// Render writes the HTML page for rs to w.
func Render(w io.Writer, rs *weather.RecordSet, location string) error {
	if err := Page(rs, location).Render(w); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}
