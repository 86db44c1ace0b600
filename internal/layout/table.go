// Package layout places every panel of the weather display and draws it.
package layout

import "image"

// PanelID names one block of the display.
type PanelID string

const (
	PanelStatus    PanelID = "status"
	PanelCity      PanelID = "city"
	PanelDate      PanelID = "date"
	PanelWind      PanelID = "wind"
	PanelAstronomy PanelID = "astronomy"
	PanelMain      PanelID = "main"
	PanelIcon      PanelID = "icon"
	PanelForecast  PanelID = "forecast"
	PanelCharts    PanelID = "charts"

	// Sub-blocks. Their entries are anchors placed relative to the parent
	// panel; W and H are zero unless noted.
	PanelSignal      PanelID = "status.signal"
	PanelBattery     PanelID = "status.battery"
	PanelMoon        PanelID = "astronomy.moon" // W is the disc diameter
	PanelMoonLabel   PanelID = "astronomy.moon-label"
	PanelSunriseTime PanelID = "astronomy.sunrise-time"
	PanelSunriseIcon PanelID = "astronomy.sunrise-icon"
	PanelSunsetTime  PanelID = "astronomy.sunset-time"
	PanelSunsetIcon  PanelID = "astronomy.sunset-icon"
	PanelReadings    PanelID = "main.readings"
	PanelPressure    PanelID = "main.pressure"
	PanelDescription PanelID = "main.description" // H is the line pitch
	PanelVisibility  PanelID = "main.visibility"
	PanelCloudCover  PanelID = "main.cloud-cover"
	PanelUVIcon      PanelID = "main.uv-icon"
	PanelUVText      PanelID = "main.uv-text"
)

// Panel is a placed block. X and Y are the anchor the panel draws around;
// for the wind compass that is its centre and W is the ring radius.
type Panel struct {
	X, Y int
	W, H int
}

func (p Panel) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// Table maps each panel to its placement.
type Table map[PanelID]Panel

const (
	chartWidth     = 175
	chartHeight    = 100
	charts         = 4
	forecastCells  = 8
	forecastCellW  = 82
	compassRadius  = 100
	statusWidth    = 360
	dateFromRight  = 460
	iconFromRight  = 125
	chartBaseInset = 30
	moonDiameter   = 75
)

// NewTable lays the panels out for a width x height canvas. The reference
// canvas is 960x540; panels pinned to the right edge and the chart row move
// with the canvas size, and sub-blocks move with their parent.
func NewTable(width, height int) Table {
	gx := (width-chartWidth*charts)/(charts+1) + 8
	gy := height - chartHeight - chartBaseInset

	status := Panel{X: width - statusWidth, Y: 20, W: statusWidth, H: 20}
	astronomy := Panel{X: 5, Y: 252, W: 240, H: 120}
	readings := Panel{X: 320, Y: 110, W: 400, H: 110}
	sky := image.Pt(readings.X-10, readings.Y+95)

	return Table{
		PanelStatus:    status,
		PanelCity:      {X: 5, Y: 2, W: width - dateFromRight - 10, H: 20},
		PanelDate:      {X: width - dateFromRight, Y: 2, W: dateFromRight, H: 20},
		PanelWind:      {X: 137, Y: 150, W: compassRadius, H: compassRadius},
		PanelAstronomy: astronomy,
		PanelMain:      readings,
		PanelIcon:      {X: width - iconFromRight, Y: 140, W: iconFromRight, H: 80},
		PanelForecast:  {X: 285, Y: 220, W: forecastCellW * forecastCells, H: 140},
		PanelCharts:    {X: gx, Y: gy, W: chartWidth, H: chartHeight},

		PanelSignal:  {X: status.X + 305, Y: status.Y + 15},
		PanelBattery: {X: status.X + 150, Y: status.Y},

		PanelMoon:        {X: astronomy.X - 28, Y: astronomy.Y - 15, W: moonDiameter, H: moonDiameter},
		PanelMoonLabel:   {X: astronomy.X + 5, Y: astronomy.Y + 102},
		PanelSunriseTime: {X: astronomy.X + 115, Y: astronomy.Y + 40},
		PanelSunriseIcon: {X: astronomy.X + 180, Y: astronomy.Y + 20},
		PanelSunsetTime:  {X: astronomy.X + 115, Y: astronomy.Y + 80},
		PanelSunsetIcon:  {X: astronomy.X + 180, Y: astronomy.Y + 60},

		PanelReadings:    {X: readings.X - 30, Y: readings.Y - 60},
		PanelPressure:    {X: readings.X + 195, Y: readings.Y - 45},
		PanelDescription: {X: readings.X - 25, Y: readings.Y + 50, H: 25},
		PanelVisibility:  {X: sky.X + 5, Y: sky.Y},
		PanelCloudCover:  {X: sky.X + 155, Y: sky.Y},
		PanelUVIcon:      {X: sky.X + 255, Y: sky.Y - 5},
		PanelUVText:      {X: sky.X + 285, Y: sky.Y - 5},
	}
}

// ChartGap is the horizontal distance between chart origins.
func (t Table) ChartGap() int {
	c := t[PanelCharts]
	return c.W + c.X
}
