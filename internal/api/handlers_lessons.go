package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/dgallion1/lessongest/internal/render"
	"github.com/dgallion1/lessongest/internal/snapshot"
)

// maxOutlineRequestBytes bounds the JSON body of a direct outline request.
const maxOutlineRequestBytes = 8 << 20

// loadSnapshot fetches the session named in the URL, writing an error
// response and returning nil when it cannot.
func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) *snapshot.Snapshot {
	id := chi.URLParam(r, "sessionID")
	if _, err := uuid.Parse(id); err != nil {
		jsonError(w, "invalid session id", http.StatusBadRequest)
		return nil
	}
	snap, err := s.orchestrator.Store().Get(r.Context(), id)
	if err != nil {
		s.log.Error("load snapshot failed", "session_id", id, "error", err)
		jsonError(w, "failed to load lesson", http.StatusInternalServerError)
		return nil
	}
	if snap == nil {
		jsonError(w, "lesson not found", http.StatusNotFound)
		return nil
	}
	return snap
}

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if _, err := uuid.Parse(id); err != nil {
		jsonError(w, "invalid session id", http.StatusBadRequest)
		return
	}
	if err := s.orchestrator.DeleteSession(r.Context(), id); err != nil {
		s.log.Error("delete lesson failed", "session_id", id, "error", err)
		jsonError(w, "failed to delete lesson", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func deckFor(snap *snapshot.Snapshot, r *http.Request) render.Deck {
	return render.BuildDeck(snap.Outline, render.DeckOptions{
		Labels:        render.LabelsFor(r.URL.Query().Get("lang")),
		FallbackTitle: snap.Title,
	})
}

func (s *Server) handleDeckJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, deckFor(snap, r))
}

func (s *Server) handleDeckPDF(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(w, r)
	if snap == nil {
		return
	}

	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	err := render.WriteDeckPDF(&buf, deckFor(snap, r), render.PDFOptions{
		Scheme:   render.Scheme(r.URL.Query().Get("scheme")),
		FontPath: s.cfg.DeckFontPath,
	})
	if err != nil {
		s.log.Error("deck render failed", "session_id", snap.ID, "error", err)
		jsonError(w, "failed to render deck", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+snap.ID+`.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, render.BuildQuiz(snap.Outline, render.LabelsFor(r.URL.Query().Get("lang"))))
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(w, r)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, render.BuildActivities(snap.Outline, render.LabelsFor(r.URL.Query().Get("lang"))))
}

// outlineRequest is the body of POST /api/outline.
type outlineRequest struct {
	Pages []outline.Page `json:"pages"`
}

// handleBuildOutline runs the outline builder over caller-supplied pages
// without touching storage.
func (s *Server) handleBuildOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxOutlineRequestBytes)

	var req outlineRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, outline.Build(req.Pages, s.orchestrator.Heuristics()))
}
