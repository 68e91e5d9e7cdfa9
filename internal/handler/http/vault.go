package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
)

// createItem handles POST /api/vault. The owner is always taken from the
// token, never from the body.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	var item models.VaultItem
	if !decodeJSON(w, r, &item, "*Handler.createItem") {
		return
	}
	item.UserID = userID

	created, err := h.services.VaultService.CreateItem(r.Context(), item)
	if err != nil {
		writeError(w, r, err, "*Handler.createItem")
		return
	}

	utils.WritePrivateJSON(w, created, http.StatusCreated)
}

// getItem handles GET /api/vault/{id}. Items of other users answer 404.
func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	item, err := h.services.VaultService.GetItem(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "*Handler.getItem")
		return
	}

	utils.WritePrivateJSON(w, item, http.StatusOK)
}

// listItems handles GET /api/vault, newest update first.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	items, err := h.services.VaultService.ListItems(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "*Handler.listItems")
		return
	}

	utils.WritePrivateJSON(w, items, http.StatusOK)
}

// searchItems reads q, repeated tag, limit and offset from the query string.
func (h *Handler) searchItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := models.VaultSearchRequest{
		UserID: userID,
		Query:  query.Get("q"),
		Tags:   query["tag"],
	}

	var err error
	if req.Limit, err = intParam(query.Get("limit")); err != nil {
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if req.Offset, err = intParam(query.Get("offset")); err != nil {
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	list, err := h.services.VaultService.SearchItems(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "*Handler.searchItems")
		return
	}

	utils.WritePrivateJSON(w, list, http.StatusOK)
}

// updateItem handles PATCH /api/vault/{id}. Only fields present in the body
// are changed.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	var update models.VaultItemUpdate
	if !decodeJSON(w, r, &update, "*Handler.updateItem") {
		return
	}
	update.ID = chi.URLParam(r, "id")
	update.UserID = userID

	updated, err := h.services.VaultService.UpdateItem(r.Context(), update)
	if err != nil {
		writeError(w, r, err, "*Handler.updateItem")
		return
	}

	utils.WritePrivateJSON(w, updated, http.StatusOK)
}

// deleteItem handles DELETE /api/vault/{id}.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrError(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.DeleteItem(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "*Handler.deleteItem")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userIDOrError reads the user id set by the auth middleware and answers 401
// when it is missing.
func userIDOrError(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
	}
	return userID, ok
}

// intParam parses an optional integer query parameter. Empty means 0.
func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
