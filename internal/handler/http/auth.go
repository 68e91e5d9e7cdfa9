package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
)

// authCookieName is the HttpOnly cookie mirroring the bearer token.
const authCookieName = "auth_token"

// register handles POST /api/auth/register. The new user is answered with
// 201 and a fresh token in both the Authorization header and the auth cookie.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeJSON(w, r, &user, "*Handler.register") {
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	if !h.issueToken(w, r, registeredUser, app.MsgRegistrationFailed) {
		return
	}

	utils.WritePrivateJSON(w, registeredUser, http.StatusCreated)
}

// login handles POST /api/auth/login. Unknown email and wrong auth hash both
// answer 401 with the same message.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeJSON(w, r, &user, "*Handler.login") {
		return
	}

	foundUser, err := h.services.AuthService.Login(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")

	if !h.issueToken(w, r, foundUser, app.MsgLoginFailed) {
		return
	}

	utils.WritePrivateJSON(w, foundUser, http.StatusOK)
}

// logout expires the auth cookie. Bearer tokens are stateless and simply
// dropped by the client.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me for the user resolved by the auth middleware.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "*Handler.me")
		return
	}

	utils.WritePrivateJSON(w, user, http.StatusOK)
}

// changePassword handles PUT /api/auth/password. The current auth hash must
// match before the new hash and re-wrapped vault key are stored.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	var change models.PasswordChange
	if !decodeJSON(w, r, &change, "*Handler.changePassword") {
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), userID, change); err != nil {
		writeError(w, r, err, "*Handler.changePassword")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// issueToken sets the bearer header and the auth cookie. On failure it writes
// a 500 carrying failMsg and returns false.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User, failMsg string) bool {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.issueToken").Msg("creation of token failed")
		http.Error(w, failMsg, http.StatusInternalServerError)
		return false
	}

	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	}
	if token.ExpiresAt != nil {
		cookie.Expires = token.ExpiresAt.Time
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	http.SetCookie(w, cookie)
	return true
}
