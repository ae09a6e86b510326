package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealerops/invcompare/internal/core"
)

// handleIndex serves the single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleCreateSession accepts the two inventory exports as a multipart
// form with "vauto" and "reynolds" file fields, parses both, and
// returns the new session with its selector values.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	// Two files plus form overhead
	maxSize := 2*s.cfg.Upload.MaxFileSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("parse upload form: %w", err))
		return
	}

	vautoFile, vautoHeader, err := r.FormFile("vauto")
	if err != nil {
		badRequest(w, "missing vAuto file (field \"vauto\")")
		return
	}
	defer vautoFile.Close()

	reynoldsFile, reynoldsHeader, err := r.FormFile("reynolds")
	if err != nil {
		badRequest(w, "missing Reynolds file (field \"reynolds\")")
		return
	}
	defer reynoldsFile.Close()

	if vautoHeader.Size > s.cfg.Upload.MaxFileSize || reynoldsHeader.Size > s.cfg.Upload.MaxFileSize {
		respondErrorJSON(w, core.UserMessage{
			Message: "A file exceeds the upload size limit",
			Action:  "Export a single store or a narrower date range and retry",
			Code:    "FILE002",
		}, http.StatusRequestEntityTooLarge)
		return
	}

	info, err := s.service.CreateSession(r.Context(),
		vautoHeader.Filename, vautoFile,
		reynoldsHeader.Filename, reynoldsFile,
	)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// handleGetSession returns the selector values for a live session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, info)
}

// handleDeleteSession drops a session ahead of its TTL.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// handleCompare runs the diff for one store and inventory type and
// returns the full result as JSON.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	store, invType, ok := s.selection(w, r)
	if !ok {
		return
	}

	result, err := s.service.Compare(r.Context(), chi.URLParam(r, "sessionID"), store, invType)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleReport runs the diff and streams the xlsx report as a download.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	store, invType, ok := s.selection(w, r)
	if !ok {
		return
	}

	// Build the workbook in memory first so a comparison error can
	// still produce a JSON error response instead of a torn download.
	var buf bytes.Buffer
	name, err := s.service.Report(r.Context(), &buf, chi.URLParam(r, "sessionID"), store, invType)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.Write(buf.Bytes())
}

// selection reads and validates the store and type query parameters.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (string, core.InventoryType, bool) {
	store := r.URL.Query().Get("store")
	if store == "" {
		badRequest(w, "missing store query parameter")
		return "", "", false
	}

	invType, err := core.ParseInventoryType(r.URL.Query().Get("type"))
	if err != nil {
		badRequest(w, "type query parameter must be NEW or USED")
		return "", "", false
	}

	return store, invType, true
}
