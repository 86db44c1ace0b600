package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-display/internal/surface"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		code  string
		kind  Kind
		night bool
	}{
		{"01d", ClearSky, false},
		{"02n", FewClouds, true},
		{"03d", ScatteredClouds, false},
		{"04d", BrokenClouds, false},
		{"09d", ChanceRain, false},
		{"10n", Rain, true},
		{"11d", Thunderstorm, false},
		{"13d", Snow, false},
		{"50n", Mist, true},
		{"99", Unknown, false},
		{"", Unknown, false},
		{"n", Unknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			k, night := ParseCode(tt.code)
			assert.Equal(t, tt.kind, k)
			assert.Equal(t, tt.night, night)
		})
	}
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, []Kind{Moon, Rain}, Glyphs("10n"))
	assert.Equal(t, []Kind{Rain}, Glyphs("10d"))
	assert.Equal(t, []Kind{Unknown}, Glyphs("99"))
	assert.Equal(t, "no-data", Unknown.String())
	assert.Equal(t, "moon", Moon.String())
}

func TestSizeScale(t *testing.T) {
	assert.Equal(t, 10, Small.Scale())
	assert.Equal(t, 20, Large.Scale())
}

func TestNightRainDrawsMoonFirst(t *testing.T) {
	rec := surface.NewRecorder(960, 540)
	Draw(rec, 835, 140, "10n", Large)

	require.GreaterOrEqual(t, len(rec.Ops), 3)
	// crescent: ink disc then paper cut-out, offset for the large class
	assert.Equal(t, surface.Op{Name: "fillCircle", Args: []int{937, 63, 10}, Color: surface.Ink}, rec.Ops[0])
	assert.Equal(t, surface.Op{Name: "fillCircle", Args: []int{949, 63, 16}, Color: surface.Paper}, rec.Ops[1])
	// then the rain cloud, anchored 15px lower
	assert.Equal(t, []int{835 - 60, 155, 20}, rec.Ops[2].Args)
	assert.Equal(t, []string{"///////"}, rec.Texts())
}

func TestUnknownDrawsOnlyNoData(t *testing.T) {
	rec := surface.NewRecorder(960, 540)
	Draw(rec, 100, 100, "99", Large)

	require.Len(t, rec.Ops, 1)
	assert.Equal(t, "?", rec.Ops[0].Text)
	assert.Equal(t, surface.Font24, rec.Ops[0].Font)

	rec.Reset()
	Draw(rec, 100, 100, "zz", Small)
	require.Len(t, rec.Ops, 1)
	assert.Equal(t, surface.Font12, rec.Ops[0].Font)
}

func TestDrawIsDeterministic(t *testing.T) {
	for _, code := range []string{"01d", "02d", "03n", "04d", "09d", "10d", "11n", "13d", "50d", "77"} {
		for _, size := range []Size{Small, Large} {
			a := surface.NewRecorder(960, 540)
			b := surface.NewRecorder(960, 540)
			Draw(a, 400, 200, code, size)
			Draw(b, 400, 200, code, size)
			assert.Equal(t, a.Ops, b.Ops, "%s %s", code, size)
			assert.NotEmpty(t, a.Ops)
		}
	}
}

func TestSmallSunGlyph(t *testing.T) {
	rec := surface.NewRecorder(960, 540)
	Draw(rec, 100, 100, "01d", Small)

	// small clear sky: anchor moves down 10, scale 10*1.2 = 12
	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, surface.Op{Name: "fillRect", Args: []int{76, 110, 48, 5}, Color: surface.Ink}, rec.Ops[0])
	assert.Equal(t, surface.Op{Name: "fillRect", Args: []int{100, 86, 5, 48}, Color: surface.Ink}, rec.Ops[1])
	assert.Equal(t, 4, rec.Count("fillTriangle"))
	last := rec.Ops[len(rec.Ops)-1]
	assert.Equal(t, surface.Op{Name: "fillCircle", Args: []int{100, 110, 7}, Color: surface.Paper}, last)
}

func TestThunderstormBolts(t *testing.T) {
	rec := surface.NewRecorder(960, 540)
	Draw(rec, 400, 200, "11d", Large)
	assert.Equal(t, 4*9, rec.Count("drawLine"))
}

func TestRasterGlyphInksPixels(t *testing.T) {
	r := surface.NewRaster(200, 200)
	Draw(r, 100, 100, "04d", Large)
	inked := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if r.Pixel(x, y) == surface.Ink {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 100)
}

func TestDecorations(t *testing.T) {
	rec := surface.NewRecorder(960, 540)
	CloudCover(rec, 465, 205, 40)
	Visibility(rec, 315, 205, "10000M")
	assert.Equal(t, []string{"40%", "10000M"}, rec.Texts())
	assert.Greater(t, rec.Count("pixel"), 0)

	rec.Reset()
	Sunrise(rec, 185, 272)
	Sunset(rec, 185, 312)
	UV(rec, 570, 200)
	assert.Equal(t, 2, rec.Count("fillTriangle"))
	assert.Equal(t, 8+2*5, rec.Count("drawLine"))
}
