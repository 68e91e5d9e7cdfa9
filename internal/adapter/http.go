package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
)

// API routes of the secure-vault server.
const (
	routeRegister       = "/api/auth/register"
	routeLogin          = "/api/auth/login"
	routeLogout         = "/api/auth/logout"
	routeMe             = "/api/auth/me"
	routePassword       = "/api/auth/password"
	routeVault          = "/api/vault"
	routeVaultItem      = "/api/vault/{id}"
	routeVaultSearch    = "/api/vault/search"
	routeGenerator      = "/api/generator"
	routeGeneratorScore = "/api/generator/strength"
	routeVersion        = "/api/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/register and keeps the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, routeRegister, user)
}

// Login implements [ServerAdapter]. It POSTs the email and auth hash to
// POST /api/auth/login and keeps the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, routeLogin, user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, route string, user models.User) (models.User, error) {
	var result models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&result).
		Post(route)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", route, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrNoToken, err)
	}

	h.SetToken(token)
	return result, nil
}

// Logout implements [ServerAdapter]. The local token is dropped even when the
// request fails.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	defer h.SetToken("")

	resp, err := h.authedRequest(ctx).Post(routeLogout)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get(routeMe)
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(change).
		Put(routePassword)
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	var created models.VaultItem

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		SetResult(&created).
		Post(routeVault)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) GetItem(ctx context.Context, itemID string) (models.VaultItem, error) {
	var item models.VaultItem

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", itemID).
		SetResult(&item).
		Get(routeVaultItem)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}

	return item, nil
}

func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.VaultItem, error) {
	items := make([]models.VaultItem, 0)

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get(routeVault)
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// SearchItems implements [ServerAdapter]. Tags are sent as repeated "tag"
// query parameters; zero limit and offset are omitted.
func (h *httpServerAdapter) SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
	var list models.VaultItemList

	query := url.Values{}
	if req.Query != "" {
		query.Set("q", req.Query)
	}
	for _, tag := range req.Tags {
		query.Add("tag", tag)
	}
	if req.Limit != 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset != 0 {
		query.Set("offset", strconv.Itoa(req.Offset))
	}

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(query).
		SetResult(&list).
		Get(routeVaultSearch)
	if err != nil {
		return models.VaultItemList{}, fmt.Errorf("search items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItemList{}, err
	}

	return list, nil
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	var updated models.VaultItem

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", update.ID).
		SetBody(update).
		SetResult(&updated).
		Patch(routeVaultItem)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}

	return updated, nil
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", itemID).
		Delete(routeVaultItem)
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GeneratePassword(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error) {
	var generated models.GeneratedPassword

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(opts).
		SetResult(&generated).
		Post(routeGenerator)
	if err != nil {
		return models.GeneratedPassword{}, fmt.Errorf("generate password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GeneratedPassword{}, err
	}

	return generated, nil
}

func (h *httpServerAdapter) CheckStrength(ctx context.Context, req models.StrengthRequest) (models.PasswordStrength, error) {
	var strength models.PasswordStrength

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&strength).
		Post(routeGeneratorScore)
	if err != nil {
		return models.PasswordStrength{}, fmt.Errorf("strength request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PasswordStrength{}, err
	}

	return strength, nil
}

func (h *httpServerAdapter) GetVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(routeVersion)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

// authedRequest returns a request carrying the stored bearer token, if any.
func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
