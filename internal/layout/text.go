package layout

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

// DescriptionWidth is the column at which forecast text wraps.
const DescriptionWidth = 34

// LineBreak marks where a wrapped description continues on the next line.
const LineBreak = '~'

// Wrap replaces the last space before each width boundary with LineBreak,
// so every line holds at most width runes. A line without an inner space is
// left unbroken; a space at the start of a line never becomes a break.
func Wrap(text string, width int) string {
	runes := []rune(text)
	lineStart, space := 0, -1
	for p, r := range runes {
		if r == ' ' {
			space = p
		}
		if p-lineStart >= width && space > lineStart {
			runes[space] = LineBreak
			lineStart = space + 1
		}
	}
	return string(runes)
}

// TitleCase upper-cases the first letter only.
func TitleCase(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// DescriptionLines splits the current description into at most two display
// lines. Full stops are dropped and the next period's rainfall is appended.
// The second line is empty when the text fits on one.
func DescriptionLines(rs *weather.RecordSet) (string, string) {
	text := strings.ReplaceAll(rs.Current.Description, ".", "")
	text = Wrap(text, DescriptionWidth)
	if rain := rs.Forecast[0].Rainfall; rain > 0 {
		text += fmt.Sprintf(" (%.1f%s)", rain, rs.Units.PrecipLabel())
	}
	first, rest, found := strings.Cut(text, string(LineBreak))
	if !found {
		return TitleCase(first), ""
	}
	return TitleCase(first), rest
}

// TempHumidity is the headline temperature and humidity text.
func TempHumidity(c weather.ConditionRecord) string {
	return fmt.Sprintf("%.1f°   %.0f%%", c.Temperature, c.Humidity)
}

// PressureText formats pressure in the unit mode's precision.
func PressureText(p float64, mode units.Mode) string {
	if mode.IsMetric() {
		return fmt.Sprintf("%.0fhPa", p)
	}
	return fmt.Sprintf("%.1fin", p)
}

var ordinals = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindOrdinal names a direction on the 16-point compass rose. Each point
// covers 22.5 degrees centred on its heading.
func WindOrdinal(deg float64) string {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return "?"
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return ordinals[int((deg+11.25)/22.5)%len(ordinals)]
}

// UVLevel classifies a UV index as (L), (M), (H), (VH) or (EX).
func UVLevel(uvi float64) string {
	switch {
	case uvi < 3:
		return "(L)"
	case uvi < 6:
		return "(M)"
	case uvi < 8:
		return "(H)"
	case uvi < 11:
		return "(VH)"
	default:
		return "(EX)"
	}
}

// UVText is the index followed by its level.
func UVText(uvi float64) string {
	prec := 0
	if uvi < 0 {
		prec = 1
	}
	return fmt.Sprintf("%.*f %s", prec, uvi, UVLevel(uvi))
}

// BatteryPercent maps a Li-ion cell voltage to a charge estimate.
func BatteryPercent(v float64) int {
	switch {
	case v >= 4.20:
		return 100
	case v <= 3.20:
		return 0
	}
	p := 2836.9625*math.Pow(v, 4) - 43987.4889*math.Pow(v, 3) +
		255233.8134*math.Pow(v, 2) - 656689.7123*v + 632041.7303
	return int(math.Max(0, math.Min(100, p)))
}

// DateLine is the date and time shown in the header.
func DateLine(t time.Time, mode units.Mode) string {
	if mode.IsMetric() {
		return t.Format("Mon, 02 Jan 2006 @ 15:04:05")
	}
	return t.Format("Mon Jan-02-2006 @ 03:04:05 PM")
}

// ClockText is the hour and minute of t.
func ClockText(t time.Time, mode units.Mode) string {
	if mode.IsMetric() {
		return t.Format("15:04")
	}
	return t.Format("03:04")
}
