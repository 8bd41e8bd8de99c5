package playlist

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

// writeServiceError maps a Service error to a response. Only a missing
// upload is the client's fault; everything else, including an unknown
// track path, is reported as 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMissingFile) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("musicquiz: %v", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
