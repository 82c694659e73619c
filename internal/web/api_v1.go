package web

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// StateView is the JSON form of the current selections.
type StateView struct {
	Zone       string `json:"zone"`
	Theme      string `json:"theme"`
	Mode       string `json:"mode"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// ControlView describes one selection control and where it sits on the frame.
type ControlView struct {
	Source  string   `json:"source"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
	Value   string   `json:"value"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
}

type selectRequest struct {
	Value string `json:"value"`
}

type viewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type exportResponse struct {
	OK   bool   `json:"ok"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// APIV1Handlers connects the API to the application. Errors returned by
// SelectFunc, ViewportFunc and KeyFunc are reported as bad requests.
type APIV1Handlers struct {
	StateFunc    func() StateView
	ControlsFunc func() []ControlView
	SelectFunc   func(source, value string) error
	ViewportFunc func(width, height int) error
	FrameFunc    func() image.Image
	ExportFunc   func() (string, error)
	KeyFunc      func(key string) error
}

func apiV1Router(h APIV1Handlers) http.Handler {
	r := chi.NewRouter()
	r.Get("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, h) })
	r.Get("/controls", func(w http.ResponseWriter, r *http.Request) { handleControls(w, r, h) })
	r.Post("/select/{source}", func(w http.ResponseWriter, r *http.Request) { handleSelect(w, r, h) })
	r.Post("/viewport", func(w http.ResponseWriter, r *http.Request) { handleViewport(w, r, h) })
	r.Get("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, h) })
	r.Post("/export", func(w http.ResponseWriter, r *http.Request) { handleExport(w, r, h) })
	r.Post("/key", func(w http.ResponseWriter, r *http.Request) { handleKey(w, r, h) })
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}

func handleState(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.StateFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	writeJSON(w, http.StatusOK, h.StateFunc())
}

func handleControls(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.ControlsFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "controls not configured")
		return
	}
	writeJSON(w, http.StatusOK, h.ControlsFunc())
}

func handleSelect(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.SelectFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "select not configured")
		return
	}
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := h.SelectFunc(chi.URLParam(r, "source"), req.Value); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_selection", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleViewport(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.ViewportFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "viewport not configured")
		return
	}
	var req viewportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := h.ViewportFunc(req.Width, req.Height); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_viewport", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handleFrame(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.FrameFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "frame not configured")
		return
	}
	img := h.FrameFunc()
	if img == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(w, img)
}

func handleExport(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.ExportFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "export not configured")
		return
	}
	path, err := h.ExportFunc()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{OK: true, Path: path, Name: filepath.Base(path)})
}

func handleKey(w http.ResponseWriter, r *http.Request, h APIV1Handlers) {
	if h.KeyFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "keys not configured")
		return
	}
	var req keyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := h.KeyFunc(req.Key); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_key", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
