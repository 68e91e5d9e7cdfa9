package client

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/models"
)

// fakeServer keeps accounts and items in memory and answers the way the
// HTTP server does, including the error bodies the client maps.
type fakeServer struct {
	mu      sync.Mutex
	users   map[string]models.User
	items   map[string]models.VaultItem
	logouts int
	version string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		users:   make(map[string]models.User),
		items:   make(map[string]models.VaultItem),
		version: "v1.2.3",
	}
}

func (s *fakeServer) newAdapter() (adapter.ServerAdapter, error) {
	return &fakeAdapter{server: s}, nil
}

func (s *fakeServer) itemsOf(email string) []models.VaultItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.VaultItem
	for _, item := range s.items {
		if item.UserID == s.users[email].UserID {
			out = append(out, item)
		}
	}
	return out
}

type fakeAdapter struct {
	server *fakeServer
	token  string
}

var errFakeUnauthorized = fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid)

func (f *fakeAdapter) SetToken(token string) { f.token = token }
func (f *fakeAdapter) Token() string         { return f.token }

// userID resolves the token. Callers hold the server lock.
func (f *fakeAdapter) userID() (string, error) {
	if f.token == "" {
		return "", errFakeUnauthorized
	}
	user, ok := f.server.users[strings.TrimPrefix(f.token, "token-")]
	if !ok {
		return "", errFakeUnauthorized
	}
	return user.UserID, nil
}

func (f *fakeAdapter) Register(_ context.Context, user models.User) (models.User, error) {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	if _, ok := f.server.users[user.Email]; ok {
		return models.User{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgEmailAlreadyExists)
	}
	user.UserID = uuid.NewString()
	user.CreatedAt = time.Now()
	f.server.users[user.Email] = user
	f.token = "token-" + user.Email

	user.AuthHash = ""
	return user, nil
}

func (f *fakeAdapter) Login(_ context.Context, user models.User) (models.User, error) {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	stored, ok := f.server.users[user.Email]
	if !ok || stored.AuthHash != user.AuthHash {
		return models.User{}, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidEmailPassword)
	}
	f.token = "token-" + user.Email

	stored.AuthHash = ""
	return stored, nil
}

func (f *fakeAdapter) Logout(_ context.Context) error {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	f.server.logouts++
	f.token = ""
	return nil
}

func (f *fakeAdapter) Me(_ context.Context) (models.User, error) {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	if _, err := f.userID(); err != nil {
		return models.User{}, err
	}
	user := f.server.users[strings.TrimPrefix(f.token, "token-")]
	user.AuthHash = ""
	return user, nil
}

func (f *fakeAdapter) ChangePassword(_ context.Context, change models.PasswordChange) error {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	if _, err := f.userID(); err != nil {
		return err
	}
	email := strings.TrimPrefix(f.token, "token-")
	user := f.server.users[email]
	if user.AuthHash != change.AuthHash {
		return fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidEmailPassword)
	}
	user.AuthHash = change.NewAuthHash
	user.WrappedVaultKey = change.NewWrappedVaultKey
	f.server.users[email] = user
	return nil
}

func (f *fakeAdapter) CreateItem(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	userID, err := f.userID()
	if err != nil {
		return models.VaultItem{}, err
	}
	now := time.Now()
	item.ID = uuid.NewString()
	item.UserID = userID
	item.CreatedAt, item.UpdatedAt = now, now
	f.server.items[item.ID] = item
	return item, nil
}

func (f *fakeAdapter) GetItem(_ context.Context, itemID string) (models.VaultItem, error) {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	userID, err := f.userID()
	if err != nil {
		return models.VaultItem{}, err
	}
	item, ok := f.server.items[itemID]
	if !ok || item.UserID != userID {
		return models.VaultItem{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgVaultItemNotFound)
	}
	return item, nil
}

func (f *fakeAdapter) ListItems(_ context.Context) ([]models.VaultItem, error) {
	f.server.mu.Lock()
	defer f.server.mu.Unlock()

	userID, err := f.userID()
	if err != nil {
		return nil, err
	}
	var items []models.VaultItem
	for _, item := range f.server.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b models.VaultItem) int { return strings.Compare(a.Title, b.Title) })
	return items, nil
}

func (f *fakeAdapter) SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
	items, err := f.ListItems(ctx)
	if err != nil {
		return models.VaultItemList{}, err
	}

	query := strings.ToLower(req.Query)
	var matched []models.VaultItem
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Username + " " + item.URL)
		if query != "" && !strings.Contains(text, query) {
			continue
		}
		if !slices.ContainsFunc(req.Tags, func(tag string) bool { return !slices.Contains(item.Tags, tag) }) {
			matched = append(matched, item)
		}
	}

	limit := req.Limit
	if limit == 0 {
		limit = 50
	}
	page := matched[min(req.Offset, len(matched)):min(req.Offset+limit, len(matched))]
	return models.VaultItemList{Count: len(page), Total: len(matched), Offset: req.Offset, Limit: limit, Items: page}, nil
}

func (f *fakeAdapter) UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	item, err := f.GetItem(ctx, update.ID)
	if err != nil {
		return models.VaultItem{}, err
	}

	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.Username != nil {
		item.Username = *update.Username
	}
	if update.URL != nil {
		item.URL = *update.URL
	}
	if update.Tags != nil {
		item.Tags = *update.Tags
	}
	if update.EncryptedPassword != nil {
		item.EncryptedPassword = *update.EncryptedPassword
	}
	if update.EncryptedNotes != nil {
		item.EncryptedNotes = update.EncryptedNotes
		if *update.EncryptedNotes == "" {
			item.EncryptedNotes = nil
		}
	}
	item.UpdatedAt = time.Now()

	f.server.mu.Lock()
	f.server.items[item.ID] = item
	f.server.mu.Unlock()
	return item, nil
}

func (f *fakeAdapter) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := f.GetItem(ctx, itemID); err != nil {
		return err
	}

	f.server.mu.Lock()
	delete(f.server.items, itemID)
	f.server.mu.Unlock()
	return nil
}

func (f *fakeAdapter) GeneratePassword(_ context.Context, _ models.PasswordOptions) (models.GeneratedPassword, error) {
	return models.GeneratedPassword{}, fmt.Errorf("%w: generation runs locally", adapter.ErrInternalServerError)
}

func (f *fakeAdapter) CheckStrength(_ context.Context, _ models.StrengthRequest) (models.PasswordStrength, error) {
	return models.PasswordStrength{}, fmt.Errorf("%w: strength runs locally", adapter.ErrInternalServerError)
}

func (f *fakeAdapter) GetVersion(_ context.Context) (string, error) {
	if f.server.version == "" {
		return "", fmt.Errorf("%w: down", adapter.ErrServerUnavailable)
	}
	return f.server.version, nil
}

// scriptedPrompter answers prompts from a fixed list.
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptedPrompter) next(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", errNoInput
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Line(prompt string) (string, error)     { return p.next(prompt) }
func (p *scriptedPrompter) Password(prompt string) (string, error) { return p.next(prompt) }

type fakeClipboard struct {
	unavailable bool
	text        string
	clearAfter  time.Duration
	waited      bool
	waitErr     error
}

func (c *fakeClipboard) Available() bool { return !c.unavailable }

func (c *fakeClipboard) Copy(text string, autoClear time.Duration) error {
	c.text = text
	c.clearAfter = autoClear
	return nil
}

func (c *fakeClipboard) Wait(_ context.Context) error {
	c.waited = true
	return c.waitErr
}
