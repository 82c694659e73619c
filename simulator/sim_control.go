package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rook-computer/ringclock/internal/app"
	"github.com/rook-computer/ringclock/internal/state"
)

// SimClock is a clock source that can be frozen or shifted for demos and
// screenshots.
type SimClock struct {
	mu     sync.RWMutex
	frozen bool
	at     time.Time
	offset time.Duration
	now    func() time.Time
}

type SimClockStatus struct {
	Frozen        bool    `json:"frozen"`
	Now           string  `json:"now"`
	OffsetSeconds float64 `json:"offsetSeconds"`
}

func NewSimClock() *SimClock { return &SimClock{now: time.Now} }

func (c *SimClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.frozen {
		return c.at
	}
	return c.now().Add(c.offset)
}

// Freeze stops the clock at at.
func (c *SimClock) Freeze(at time.Time) {
	c.mu.Lock()
	c.frozen = true
	c.at = at
	c.mu.Unlock()
}

// Resume lets a frozen clock run again from the host time plus offset.
func (c *SimClock) Resume() {
	c.mu.Lock()
	c.frozen = false
	c.mu.Unlock()
}

func (c *SimClock) SetOffset(d time.Duration) {
	c.mu.Lock()
	c.offset = d
	c.mu.Unlock()
}

func (c *SimClock) Status() SimClockStatus {
	now := c.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SimClockStatus{Frozen: c.frozen, Now: now.Format(time.RFC3339), OffsetSeconds: c.offset.Seconds()}
}

// SimControl restores the simulator's startup selections and drives its clock.
type SimControl struct {
	Clock *SimClock

	app     *app.App
	initial state.State
}

func NewSimControl(a *app.App, clock *SimClock) *SimControl {
	return &SimControl{Clock: clock, app: a, initial: a.Store.Snapshot()}
}

// Reset resumes the clock, clears the offset and reapplies the startup
// zone, theme and mode.
func (c *SimControl) Reset() error {
	c.Clock.Resume()
	c.Clock.SetOffset(0)
	return errors.Join(
		c.app.Select(string(app.SourceTimezone), c.initial.Zone.Label()),
		c.app.Select(string(app.SourceTheme), c.initial.ThemeName),
		c.app.Select(string(app.SourceMode), c.initial.Mode.Label()),
	)
}

func registerSimEndpoints(r chi.Router, control *SimControl) {
	r.Post("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "clock": control.Clock.Status()})
	})

	r.Get("/sim/clock", func(w http.ResponseWriter, r *http.Request) {
		writeSimJSON(w, http.StatusOK, control.Clock.Status())
	})

	r.Post("/sim/clock", func(w http.ResponseWriter, r *http.Request) {
		var patch struct {
			At            *string  `json:"at"`
			OffsetSeconds *float64 `json:"offsetSeconds"`
			Frozen        *bool    `json:"frozen"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeSimError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if patch.OffsetSeconds != nil {
			control.Clock.SetOffset(time.Duration(*patch.OffsetSeconds * float64(time.Second)))
		}
		if patch.At != nil {
			at, err := time.Parse(time.RFC3339, *patch.At)
			if err != nil {
				writeSimError(w, http.StatusBadRequest, "at must be RFC 3339")
				return
			}
			control.Clock.Freeze(at)
		} else if patch.Frozen != nil {
			if *patch.Frozen {
				control.Clock.Freeze(control.Clock.Now())
			} else {
				control.Clock.Resume()
			}
		}
		writeSimJSON(w, http.StatusOK, control.Clock.Status())
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
