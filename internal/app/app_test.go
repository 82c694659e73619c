package app

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/input"
	"github.com/rook-computer/ringclock/internal/render"
	"github.com/rook-computer/ringclock/internal/render/layout"
	"github.com/rook-computer/ringclock/internal/state"
	"github.com/rook-computer/ringclock/internal/theme"
	"github.com/rook-computer/ringclock/internal/web"
)

var fixedInstant = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *render.ImageRenderer) {
	t.Helper()
	r := render.NewImageRenderer(320, 240)
	require.NoError(t, r.Start(t.Context()))
	t.Cleanup(func() { _ = r.Stop() })

	a := New(state.NewStore(), r, nil, nil)
	a.Clock = clock.FixedSource{T: fixedInstant}
	a.ExportDir = t.TempDir()
	a.Attach()
	return a, r
}

func TestSelect_AppliesValues(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.Select("timezone", "Asia/Tokyo"))
	require.NoError(t, a.Select("theme", "Salmon"))
	require.NoError(t, a.Select("mode", "Light Mode"))

	snap := a.Store.Snapshot()
	assert.Equal(t, "Asia/Tokyo", snap.Zone.Name())
	assert.Equal(t, "Salmon", snap.ThemeName)
	assert.Equal(t, theme.Light, snap.Mode)
	assert.Equal(t, theme.Lookup("Salmon", theme.Light), snap.Palette)
}

func TestSelect_InvalidLeavesStateUntouched(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Select("timezone", "UTC"))
	before := a.Store.Snapshot()

	tests := []struct {
		source, value string
		want          error
	}{
		{"timezone", "Mars/Olympus", clock.ErrUnsupportedZone},
		{"theme", "Mauve", theme.ErrUnknownTheme},
		{"mode", "Dim Mode", theme.ErrUnknownMode},
		{"volume", "11", ErrUnknownSource},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			err := a.Select(tt.source, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, a.Store.Snapshot())
		})
	}
}

func TestSelect_ModeKeepsZone(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Select("timezone", "Australia/Sydney"))
	require.NoError(t, a.Select("mode", "light"))
	require.NoError(t, a.Select("mode", "dark"))
	assert.Equal(t, "Australia/Sydney", a.Store.Snapshot().Zone.Name())
}

func TestResize(t *testing.T) {
	a, _ := newTestApp(t)

	assert.ErrorIs(t, a.Resize(0, 100), ErrInvalidViewport)
	assert.ErrorIs(t, a.Resize(100, -1), ErrInvalidViewport)
	assert.ErrorIs(t, a.Resize(maxViewport+1, 100), ErrInvalidViewport)
	assert.ErrorIs(t, a.Resize(100, maxViewport+1), ErrInvalidViewport)
	require.NoError(t, a.Resize(maxViewport, maxViewport))

	require.NoError(t, a.Resize(1000, 600))
	zonePos, themePos, modePos := layout.ControlRow(1000, 600)
	controls := a.Controls()
	require.Len(t, controls, 3)
	assert.Equal(t, SourceTimezone, controls[0].Source)
	assert.Equal(t, zonePos, controls[0].Position)
	assert.Equal(t, themePos, controls[1].Position)
	assert.Equal(t, modePos, controls[2].Position)
	assert.Equal(t, image.Pt(340, 620), controls[0].Position)
}

func TestControls_Values(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Select("theme", "b&w"))

	controls := a.Controls()
	assert.Equal(t, clock.LocalLabel, controls[0].Value)
	assert.Equal(t, clock.ZoneLabels(), controls[0].Options)
	assert.Equal(t, "B&W", controls[1].Value)
	assert.Equal(t, theme.Names(), controls[1].Options)
	assert.Equal(t, "Dark Mode", controls[2].Value)
}

func TestExport_WritesNamedPNG(t *testing.T) {
	a, _ := newTestApp(t)
	a.Now = func() time.Time { return fixedInstant }

	path, err := a.Export()
	require.NoError(t, err)
	assert.Equal(t, clock.ExportName(fixedInstant)+".png", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
}

func TestExport_NamedFromWallClock(t *testing.T) {
	a, _ := newTestApp(t)
	pressed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	a.Now = func() time.Time { return pressed }

	path, err := a.Export()
	require.NoError(t, err)
	assert.Equal(t, clock.ExportName(pressed)+".png", filepath.Base(path))
	assert.NotEqual(t, clock.ExportName(fixedInstant)+".png", filepath.Base(path))
}

func TestHandleKey(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.HandleKey(input.Export))
	entries, err := os.ReadDir(a.ExportDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, a.HandleKey(input.Exit))
	select {
	case err := <-a.exitCh:
		assert.NoError(t, err)
	default:
		t.Fatal("exit not requested")
	}

	assert.Error(t, a.HandleKey(input.Key("volume")))
}

func TestAPIHandlers(t *testing.T) {
	a, _ := newTestApp(t)
	router := web.NewRouter("", a.APIHandlers())

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, post("/api/v1/select/theme", `{"value":"Blue"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/v1/select/theme", `{"value":"Nope"}`).Code)
	assert.Equal(t, http.StatusOK, post("/api/v1/viewport", `{"width":400,"height":300}`).Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/v1/key", `{"key":"q"}`).Code)

	huge := `{"width":4611686018427387904,"height":4611686018427387904}`
	assert.Equal(t, http.StatusBadRequest, post("/api/v1/viewport", huge).Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/v1/viewport", `{"width":60000,"height":60000}`).Code)
	snap := a.Store.Snapshot()
	assert.Equal(t, 400, snap.Width)
	assert.Equal(t, 300, snap.Height)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var st web.StateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "Blue", st.Theme)
	assert.Equal(t, 400, st.Width)
	assert.Equal(t, "#000064", st.Background)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/frame.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())
}

type chanSource struct{ ch chan input.Key }

func (c *chanSource) Start(ctx context.Context) error { return nil }
func (c *chanSource) Stop() error                     { return nil }
func (c *chanSource) Events() <-chan input.Key        { return c.ch }

func TestStart_RunsUntilExitKey(t *testing.T) {
	r := render.NewImageRenderer(200, 150)
	r.FPS = 60
	keys := &chanSource{ch: make(chan input.Key)}
	a := New(state.NewStore(), r, &web.NoopServer{}, keys)
	a.Clock = clock.FixedSource{T: fixedInstant}

	done := make(chan error, 1)
	go func() { done <- a.Start(t.Context()) }()

	require.Eventually(t, func() bool { return r.Frames() > 0 }, 2*time.Second, 10*time.Millisecond)

	// Selections go through the running event loop.
	require.NoError(t, a.Select("timezone", "UTC"))
	assert.Equal(t, "UTC", a.Store.Snapshot().Zone.Name())
	assert.Equal(t, 200, a.Store.Snapshot().Width)

	keys.ch <- input.Exit
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestStart_ContextCancel(t *testing.T) {
	r := render.NewImageRenderer(64, 64)
	a := New(state.NewStore(), r, nil, nil)
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	require.Eventually(t, func() bool { return r.Frames() > 0 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZerologLogger(&buf, "info", "json")
	require.NoError(t, err)
	l.Infof("app", "hello %d", 42)
	l.Errorf("web", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "app", rec["component"])
	assert.Equal(t, "hello 42", rec["message"])

	_, err = NewZerologLogger(&buf, "loud", "console")
	assert.Error(t, err)

	buf.Reset()
	quiet, err := NewZerologLogger(&buf, "error", "console")
	require.NoError(t, err)
	quiet.Infof("app", "hidden")
	assert.Empty(t, buf.String())
}
