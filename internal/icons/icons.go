// Package icons composes weather condition glyphs out of surface primitives.
package icons

import (
	"strings"

	"github.com/i474232898/weather-display/internal/surface"
)

// Size is the icon size class. Each class carries its own scale unit.
type Size int

const (
	Small Size = iota
	Large
)

// Scale returns the base scale unit of the size class.
func (s Size) Scale() int {
	if s == Large {
		return 20
	}
	return 10
}

func (s Size) String() string {
	if s == Large {
		return "large"
	}
	return "small"
}

// Kind identifies one composed glyph.
type Kind int

const (
	Unknown Kind = iota
	ClearSky
	FewClouds
	ScatteredClouds
	BrokenClouds
	ChanceRain
	Rain
	Thunderstorm
	Snow
	Mist
	Moon
)

var kindNames = map[Kind]string{
	Unknown:         "no-data",
	ClearSky:        "clear-sky",
	FewClouds:       "few-clouds",
	ScatteredClouds: "scattered-clouds",
	BrokenClouds:    "broken-clouds",
	ChanceRain:      "chance-rain",
	Rain:            "rain",
	Thunderstorm:    "thunderstorm",
	Snow:            "snow",
	Mist:            "mist",
	Moon:            "moon",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "no-data"
}

// conditions maps the two-character condition prefix to its glyph.
var conditions = map[string]Kind{
	"01": ClearSky,
	"02": FewClouds,
	"03": ScatteredClouds,
	"04": BrokenClouds,
	"09": ChanceRain,
	"10": Rain,
	"11": Thunderstorm,
	"13": Snow,
	"50": Mist,
}

const nightSuffix = "n"

// ParseCode resolves a condition code such as "10n" into its primary glyph
// and whether it carries the night suffix. Unmatched codes resolve to Unknown.
func ParseCode(code string) (Kind, bool) {
	night := strings.HasSuffix(code, nightSuffix)
	prefix := code
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	k, ok := conditions[prefix]
	if !ok {
		return Unknown, night
	}
	return k, night
}

// Glyphs lists the glyphs composed for code, bottom first.
func Glyphs(code string) []Kind {
	k, night := ParseCode(code)
	if night {
		return []Kind{Moon, k}
	}
	return []Kind{k}
}

// Draw composes the glyphs for code anchored at (x, y).
func Draw(s surface.Surface, x, y int, code string, size Size) {
	for _, k := range Glyphs(code) {
		DrawKind(s, x, y, k, size)
	}
}

// DrawKind draws a single glyph anchored at (x, y).
func DrawKind(s surface.Surface, x, y int, k Kind, size Size) {
	p := pen{s: s, size: size}
	switch k {
	case ClearSky:
		p.clearSky(x, y)
	case FewClouds:
		p.fewClouds(x, y)
	case ScatteredClouds:
		p.scatteredClouds(x, y)
	case BrokenClouds:
		p.brokenClouds(x, y)
	case ChanceRain:
		p.chanceRain(x, y)
	case Rain:
		p.rainCloud(x, y)
	case Thunderstorm:
		p.thunderstorm(x, y)
	case Snow:
		p.snowCloud(x, y)
	case Mist:
		p.mist(x, y)
	case Moon:
		p.moon(x, y)
	default:
		p.noData(x, y)
	}
}
