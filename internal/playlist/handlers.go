package playlist

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 32 << 20

func (s *Server) handleListPlaylist(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleInsertTrack(w http.ResponseWriter, r *http.Request) {
	var body NewTrack
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := s.svc.Insert(r.Context(), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeServiceError(w, ErrMissingFile)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeServiceError(w, ErrMissingFile)
		return
	}
	defer file.Close()

	t, err := s.svc.Ingest(r.Context(), Upload{
		Filename: header.Filename,
		Content:  file,
		Size:     header.Size,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleStreamTrack(w http.ResponseWriter, r *http.Request) {
	// chi routes on RawPath when it is set, leaving the wildcard escaped.
	// Otherwise the wildcard comes from the already decoded Path.
	p := chi.URLParam(r, "*")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
	}

	st, err := s.svc.OpenStream(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer st.Body.Close()

	w.Header().Set("Content-Type", st.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, st.Body); err != nil {
		log.Printf("musicquiz: relay %s: %v", st.Path, err)
	}
}
