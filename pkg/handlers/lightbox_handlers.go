package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"craft-gallery/pkg/lightbox"
)

type openRequest struct {
	Category string `json:"category"`
	ID       string `json:"id"`
}

type sessionResponse struct {
	Session string         `json:"session"`
	Frame   lightbox.Frame `json:"frame"`
}

// OpenLightboxHandler opens a lightbox session on a tile of a category
func (h *Handlers) OpenLightboxHandler(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" || req.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.svc.OpenLightbox(r.Context(), h.sessions, req.Category, req.ID)
	switch {
	case errors.Is(err, lightbox.ErrTileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.logger.Error("Error opening lightbox", zap.String("category", req.Category), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.logger.Info("Opened lightbox", zap.String("session", sess.ID), zap.String("category", req.Category), zap.String("id", req.ID))
	writeJSON(w, http.StatusCreated, sessionResponse{Session: sess.ID, Frame: sess.Frame()})
}

// FrameHandler returns what a session's overlay displays
func (h *Handlers) FrameHandler(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, nil)
}

// NextHandler advances a session
func (h *Handlers) NextHandler(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(v *lightbox.Viewer) { v.Next() })
}

// PrevHandler retreats a session
func (h *Handlers) PrevHandler(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(v *lightbox.Viewer) { v.Previous() })
}

// CloseHandler closes a session and forgets it
func (h *Handlers) CloseHandler(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(v *lightbox.Viewer) { v.Close() })
}

// KeyHandler routes a keyboard event to a session
func (h *Handlers) KeyHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.withSession(w, r, func(v *lightbox.Viewer) { v.HandleKey(req.Key) })
}

// ClickHandler routes a pointer click to a session
func (h *Handlers) ClickHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target lightbox.Target `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.withSession(w, r, func(v *lightbox.Viewer) { v.HandleClick(req.Target) })
}

func (h *Handlers) withSession(w http.ResponseWriter, r *http.Request, fn func(v *lightbox.Viewer)) {
	id := chi.URLParam(r, "session")
	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	frame := sess.Do(fn)
	if frame.State == lightbox.Closed.String() {
		h.sessions.Delete(id)
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: id, Frame: frame})
}
