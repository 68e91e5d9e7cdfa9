package http

import (
	"net/http"

	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
)

// generatePassword handles POST /api/generator.
func (h *Handler) generatePassword(w http.ResponseWriter, r *http.Request) {
	var opts models.PasswordOptions
	if !decodeJSON(w, r, &opts, "*Handler.generatePassword") {
		return
	}

	generated, err := h.services.GeneratorService.Generate(r.Context(), opts)
	if err != nil {
		writeError(w, r, err, "*Handler.generatePassword")
		return
	}

	utils.WritePrivateJSON(w, generated, http.StatusOK)
}

// validateOptions handles POST /api/generator/validate. Invalid options are
// reported in the body with status 200.
func (h *Handler) validateOptions(w http.ResponseWriter, r *http.Request) {
	var opts models.PasswordOptions
	if !decodeJSON(w, r, &opts, "*Handler.validateOptions") {
		return
	}

	utils.WriteJSON(w, h.services.GeneratorService.ValidateOptions(r.Context(), opts), http.StatusOK)
}

// passwordStrength handles POST /api/generator/strength.
func (h *Handler) passwordStrength(w http.ResponseWriter, r *http.Request) {
	var req models.StrengthRequest
	if !decodeJSON(w, r, &req, "*Handler.passwordStrength") {
		return
	}

	utils.WritePrivateJSON(w, h.services.GeneratorService.Strength(r.Context(), req), http.StatusOK)
}
