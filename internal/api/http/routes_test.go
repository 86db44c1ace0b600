package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"k8s.io/utils/ptr"

	"github.com/i474232898/weather-display/internal/astro"
	"github.com/i474232898/weather-display/internal/display"
	"github.com/i474232898/weather-display/internal/store"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
	"github.com/i474232898/weather-display/internal/weather/providers"
)

const currentDoc = `{"timezone_offset":0,"current":{"temp":18.2,"humidity":61,"pressure":1009,
"wind_speed":3.1,"wind_deg":90,"weather":[{"icon":"03d","description":"scattered clouds"}]}}`

func forecastDoc() string {
	var b strings.Builder
	b.WriteString(`{"list":[`)
	for i := 0; i < weather.ForecastPeriods; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"dt":%d,"main":{"temp":17,"temp_min":12,"temp_max":19,"pressure":1010,"humidity":65},"weather":[{"icon":"02d"}]}`,
			1718445600+i*10800)
	}
	b.WriteString(`]}`)
	return b.String()
}

func newTestApp(t *testing.T, wakeup, sleep int) (*fiber.App, *display.Service) {
	t.Helper()
	dir := t.TempDir()
	cur := filepath.Join(dir, "current.json")
	fc := filepath.Join(dir, "forecast.json")
	if err := os.WriteFile(cur, []byte(currentDoc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(fc, []byte(forecastDoc()), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := display.NewService(store.NewMemoryStore(10, time.Hour), providers.NewFileProvider(cur, fc), nil, display.Options{
		Location:   weather.Location{City: "Paris", Country: "FR", Lat: ptr.To(48.85), Lon: ptr.To(2.35)},
		Units:      units.Metric,
		Hemisphere: astro.North,
		Width:      960,
		Height:     540,
		WakeupHour: wakeup,
		SleepHour:  sleep,
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, svc)
	return app, svc
}

func do(t *testing.T, app *fiber.App, method, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

func TestNoFrameYet(t *testing.T) {
	app, _ := newTestApp(t, 0, 0)

	for _, target := range []string{"/api/v1/display.png", "/api/v1/conditions", "/api/v1/charts"} {
		resp := do(t, app, http.MethodGet, target)
		expectStatus(t, resp, http.StatusNotFound)

		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if body["error"] != true {
			t.Fatalf("expected error envelope, got %v", body)
		}
	}
}

func TestRenderAndServeFrame(t *testing.T) {
	app, _ := newTestApp(t, 0, 0)

	resp := do(t, app, http.MethodPost, "/api/v1/render")
	expectStatus(t, resp, http.StatusCreated)
	var created struct {
		ID       string         `json:"id"`
		Records  map[string]any `json:"records"`
		Location map[string]any `json:"location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if created.ID == "" || created.Records == nil {
		t.Fatalf("expected frame metadata, got %+v", created)
	}
	if created.Location["city"] != "Paris" {
		t.Fatalf("expected Paris, got %v", created.Location["city"])
	}

	resp = do(t, app, http.MethodGet, "/api/v1/display.png")
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if got := resp.Header.Get("X-Frame-Id"); got != created.ID {
		t.Fatalf("expected frame %s, got %s", created.ID, got)
	}
	png, _ := io.ReadAll(resp.Body)
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatalf("body is not a PNG")
	}

	resp = do(t, app, http.MethodGet, "/api/v1/frames/"+created.ID+"/display.png")
	expectStatus(t, resp, http.StatusOK)

	resp = do(t, app, http.MethodGet, "/api/v1/conditions")
	expectStatus(t, resp, http.StatusOK)

	resp = do(t, app, http.MethodGet, "/api/v1/charts")
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
}

func TestFrameByID(t *testing.T) {
	app, _ := newTestApp(t, 0, 0)

	resp := do(t, app, http.MethodGet, "/api/v1/frames/not-a-uuid/display.png")
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, app, http.MethodGet, "/api/v1/frames/6f1c1f8e-2f5e-4d52-9a55-0f3f8f0b6c11/display.png")
	expectStatus(t, resp, http.StatusNotFound)
}

// TestFramesRangeValidation verifies that the frames endpoint requires an
// ordered from/to pair.
func TestFramesRangeValidation(t *testing.T) {
	app, svc := newTestApp(t, 0, 0)

	resp := do(t, app, http.MethodGet, "/api/v1/frames")
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, app, http.MethodGet, "/api/v1/frames?from=yesterday&to=now")
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, app, http.MethodGet, "/api/v1/frames?from=2000&to=1000")
	expectStatus(t, resp, http.StatusBadRequest)

	frame, err := svc.RenderPass(context.Background())
	if err != nil {
		t.Fatalf("render pass: %v", err)
	}
	from := frame.RenderedAt.Add(-time.Minute).Format(time.RFC3339)
	to := frame.RenderedAt.Add(time.Minute).Unix()
	resp = do(t, app, http.MethodGet, fmt.Sprintf("/api/v1/frames?from=%s&to=%d", from, to))
	expectStatus(t, resp, http.StatusOK)

	var body struct {
		Frames []map[string]any `json:"frames"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode frames: %v", err)
	}
	if len(body.Frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(body.Frames))
	}
	if _, ok := body.Frames[0]["PNG"]; ok {
		t.Fatalf("frame listing must not carry image data")
	}
}

func TestRenderOutsideWakeWindow(t *testing.T) {
	hour := time.Now().Hour()
	// a one-hour window that excludes the current hour
	wake := (hour + 2) % 24
	app, _ := newTestApp(t, wake, (wake+1)%24)

	resp := do(t, app, http.MethodPost, "/api/v1/render")
	expectStatus(t, resp, http.StatusConflict)
}
