package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/utils"
)

// versionResponse is the JSON form of GET /api/version.
type versionResponse struct {
	Version string `json:"version"`
}

// getServerVersion answers in plain text unless the client accepts JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())
	w.Header().Set("Cache-Control", "no-cache")

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		if _, err := utils.WriteJSON(w, versionResponse{Version: serverVersion}, http.StatusOK); err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("error writing version")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(serverVersion)); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("error writing version")
	}
}
