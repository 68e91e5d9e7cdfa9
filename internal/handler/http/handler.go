package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
)

// maxBodySize bounds every JSON request body.
const maxBodySize = 1 << 20

// Handler serves the HTTP API on top of [service.Services].
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler returns a Handler. Routes are built by [Handler.Init].
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// decodeJSON reads the request body into v. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", op).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return false
	}

	return true
}

// writeError logs err and writes the status and message mapped from it.
func writeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status, msg := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", op).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Str("func", op).Int("status", status).Msg("request rejected")
	}

	http.Error(w, msg, status)
}
