package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/store"
)

// errorResponse pairs a status with the client-safe message sent for it.
type errorResponse struct {
	status  int
	message string
}

// errorStatusMap is consulted in order; the first matching target wins.
var errorStatusMap = []struct {
	target error
	errorResponse
}{
	{generator.ErrInvalidOptions, errorResponse{http.StatusBadRequest, app.MsgInvalidPasswordOptions}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{store.ErrNothingToUpdate, errorResponse{http.StatusBadRequest, app.MsgNothingToUpdate}},
	{service.ErrWrongCredentials, errorResponse{http.StatusUnauthorized, app.MsgInvalidEmailPassword}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{store.ErrEmailAlreadyExists, errorResponse{http.StatusConflict, app.MsgEmailAlreadyExists}},
	{store.ErrVaultItemExists, errorResponse{http.StatusConflict, app.MsgVaultItemExists}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrVaultItemNotFound, errorResponse{http.StatusNotFound, app.MsgVaultItemNotFound}},

	{service.ErrTokenCreationFailed, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{service.ErrPasswordHashing, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrBuildingSQLQuery, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrExecutingQuery, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrScanningRow, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrScanningRows, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
}

// statusFromError maps err to a status and message. Errors that match no
// entry become 500 with a generic message so internals never leak.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
