// shared/api/response.go
package api

import (
	"net/http"
)

// ContentTypeSVG is the media type of rendered stats cards.
const ContentTypeSVG = "image/svg+xml"

// WriteSVG writes an SVG document with the given status code.
func WriteSVG(w http.ResponseWriter, status int, svg string) error {
	w.Header().Set("Content-Type", ContentTypeSVG)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, err := w.Write([]byte(svg))
	return err
}

// WriteError writes a plain-text error body with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

// WriteBadRequest convenience function
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteInternalServerError convenience function
func WriteInternalServerError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
