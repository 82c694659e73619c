package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/ringclock/internal/app"
	"github.com/rook-computer/ringclock/internal/render"
	"github.com/rook-computer/ringclock/internal/state"
	"github.com/rook-computer/ringclock/internal/web"
)

func TestSimClock(t *testing.T) {
	host := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	c := &SimClock{now: func() time.Time { return host }}

	assert.Equal(t, host, c.Now())
	c.SetOffset(90 * time.Minute)
	assert.Equal(t, host.Add(90*time.Minute), c.Now())

	at := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	c.Freeze(at)
	assert.Equal(t, at, c.Now())
	assert.True(t, c.Status().Frozen)

	c.Resume()
	assert.Equal(t, host.Add(90*time.Minute), c.Now())
}

func newSimRouter(t *testing.T) (http.Handler, *app.App, *SimControl) {
	t.Helper()
	r := render.NewImageRenderer(160, 120)
	require.NoError(t, r.Start(t.Context()))
	a := app.New(state.NewStore(), r, nil, nil)
	clock := NewSimClock()
	a.Clock = clock
	a.Attach()
	control := NewSimControl(a, clock)

	srv := web.NewHTTPServer("", a.APIHandlers())
	srv.Routes = func(r chi.Router) { registerSimEndpoints(r, control) }
	return srv.Handler(), a, control
}

func TestSimEndpoints_FreezeAndReset(t *testing.T) {
	h, a, control := newSimRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/sim/clock", strings.NewReader(`{"at":"2001-02-03T04:05:06Z"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC), control.Clock.Now())

	require.NoError(t, a.Select("theme", "Pink"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Green", a.Store.Snapshot().ThemeName)
	assert.False(t, control.Clock.Status().Frozen)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/clock", strings.NewReader(`{"at":"yesterday"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_FrozenClockKeepsDistinctNames(t *testing.T) {
	h, a, control := newSimRouter(t)
	a.ExportDir = t.TempDir()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/clock", strings.NewReader(`{"at":"2001-02-03T04:05:06Z"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, control.Clock.Status().Frozen)

	pressed := time.Date(2026, 10, 19, 16, 0, 29, 0, time.Local)
	a.Now = func() time.Time {
		at := pressed
		pressed = pressed.Add(time.Second)
		return at
	}

	first, err := a.Export()
	require.NoError(t, err)
	second, err := a.Export()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "clock_20261019_160029.png", filepath.Base(first))
	assert.Equal(t, "clock_20261019_160030.png", filepath.Base(second))
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}
