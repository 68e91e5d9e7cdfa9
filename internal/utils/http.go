package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON encodes data as the JSON body of a response with the given status.
// It returns the number of body bytes written.
//
// Encoding happens before any header is sent, so a value that cannot be
// encoded turns into a plain 500 instead of a truncated body.
//
//	utils.WriteJSON(w, list, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response as JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// WritePrivateJSON is WriteJSON for bodies that carry ciphertext, wrapped keys
// or generated passwords. Such responses must not be stored by any cache.
func WritePrivateJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	return WriteJSON(w, data, statusCode)
}
