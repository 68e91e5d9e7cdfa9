// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/secure-vault/models"
)

const (
	usersTable      = "users"
	vaultItemsTable = "vault_items"

	// likeEscape is the ESCAPE character of every LIKE pattern.
	likeEscape = "!"
)

var userColumns = []string{
	"id",
	"email",
	"auth_hash",
	"wrapped_vault_key",
	"created_at",
	"updated_at",
}

var vaultItemColumns = []string{
	"id",
	"user_id",
	"title",
	"username",
	"url",
	"tags",
	"encrypted_password",
	"encrypted_notes",
	"created_at",
	"updated_at",
}

// returning renders a RETURNING clause. Postgres and SQLite 3.35+ both accept it.
func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ── users ────────────────────────────────────────────────────────────────────

// buildCreateUserQuery inserts user and returns the stored row.
func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.UserID, user.Email, user.AuthHash, string(user.WrappedVaultKey), user.CreatedAt, user.UpdatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildFindUserQuery selects one user by column. column is never user input.
func buildFindUserQuery(b sq.StatementBuilderType, column, value string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		ToSql()
}

// buildUpdateCredentialsQuery replaces the auth hash and wrapped vault key.
func buildUpdateCredentialsQuery(b sq.StatementBuilderType, userID, authHash string, wrapped models.EncryptedBlob, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("auth_hash", authHash).
		Set("wrapped_vault_key", string(wrapped)).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// ── vault items ──────────────────────────────────────────────────────────────

// buildCreateVaultItemQuery inserts item and returns the stored row.
func buildCreateVaultItemQuery(b sq.StatementBuilderType, item models.VaultItem) (string, []any, error) {
	tags, err := encodeTags(item.Tags)
	if err != nil {
		return "", nil, err
	}

	return b.Insert(vaultItemsTable).
		Columns(vaultItemColumns...).
		Values(
			item.ID,
			item.UserID,
			item.Title,
			item.Username,
			item.URL,
			tags,
			string(item.EncryptedPassword),
			nullableBlob(item.EncryptedNotes),
			item.CreatedAt,
			item.UpdatedAt,
		).
		Suffix(returning(vaultItemColumns)).
		ToSql()
}

// buildGetVaultItemQuery selects one item scoped by its owner.
func buildGetVaultItemQuery(b sq.StatementBuilderType, userID, itemID string) (string, []any, error) {
	return b.Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		ToSql()
}

// buildListVaultItemsQuery selects every item of userID, newest update first.
func buildListVaultItemsQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
}

// searchConditions matches items of req.UserID whose title, username or url
// contains req.Query, and which carry any of req.Tags. Both comparisons are
// case-insensitive.
func searchConditions(req models.VaultSearchRequest) sq.And {
	conds := sq.And{sq.Eq{"user_id": req.UserID}}

	if q := strings.TrimSpace(req.Query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		conds = append(conds, sq.Or{
			sq.Expr("LOWER(title) LIKE ? ESCAPE '"+likeEscape+"'", pattern),
			sq.Expr("LOWER(username) LIKE ? ESCAPE '"+likeEscape+"'", pattern),
			sq.Expr("LOWER(url) LIKE ? ESCAPE '"+likeEscape+"'", pattern),
		})
	}

	if len(req.Tags) > 0 {
		anyTag := sq.Or{}
		for _, tag := range req.Tags {
			encoded, _ := json.Marshal(strings.ToLower(tag))
			anyTag = append(anyTag, sq.Expr("LOWER(tags) LIKE ? ESCAPE '"+likeEscape+"'", "%"+escapeLike(string(encoded))+"%"))
		}
		conds = append(conds, anyTag)
	}

	return conds
}

// buildSearchVaultItemsQuery pages through the items matching req.
func buildSearchVaultItemsQuery(b sq.StatementBuilderType, req models.VaultSearchRequest) (string, []any, error) {
	return b.Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(searchConditions(req)).
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(req.Limit)).
		Offset(uint64(req.Offset)).
		ToSql()
}

// buildCountVaultItemsQuery counts the matches of req, ignoring paging.
func buildCountVaultItemsQuery(b sq.StatementBuilderType, req models.VaultSearchRequest) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(vaultItemsTable).
		Where(searchConditions(req)).
		ToSql()
}

// buildUpdateVaultItemQuery sets only the non-nil fields of update. An empty
// EncryptedNotes clears the notes column.
func buildUpdateVaultItemQuery(b sq.StatementBuilderType, update models.VaultItemUpdate, now time.Time) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	query := b.Update(vaultItemsTable)

	if update.Title != nil {
		query = query.Set("title", *update.Title)
	}
	if update.Username != nil {
		query = query.Set("username", *update.Username)
	}
	if update.URL != nil {
		query = query.Set("url", *update.URL)
	}
	if update.Tags != nil {
		tags, err := encodeTags(*update.Tags)
		if err != nil {
			return "", nil, err
		}
		query = query.Set("tags", tags)
	}
	if update.EncryptedPassword != nil {
		query = query.Set("encrypted_password", string(*update.EncryptedPassword))
	}
	if update.EncryptedNotes != nil {
		query = query.Set("encrypted_notes", nullableBlob(update.EncryptedNotes))
	}

	return query.
		Set("updated_at", now).
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix(returning(vaultItemColumns)).
		ToSql()
}

// buildDeleteVaultItemQuery deletes one item scoped by its owner.
func buildDeleteVaultItemQuery(b sq.StatementBuilderType, userID, itemID string) (string, []any, error) {
	return b.Delete(vaultItemsTable).
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		ToSql()
}

// ── helpers ──────────────────────────────────────────────────────────────────

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads the columns of userColumns in order.
func scanUser(row rowScanner) (models.User, error) {
	var (
		user    models.User
		wrapped string
	)

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.AuthHash,
		&wrapped,
		timestamp{&user.CreatedAt},
		timestamp{&user.UpdatedAt},
	)
	if err != nil {
		return models.User{}, err
	}
	user.WrappedVaultKey = models.EncryptedBlob(wrapped)

	return user, nil
}

// scanVaultItem reads the columns of vaultItemColumns in order.
func scanVaultItem(row rowScanner) (models.VaultItem, error) {
	var (
		item     models.VaultItem
		tags     string
		password string
		notes    sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Username,
		&item.URL,
		&tags,
		&password,
		&notes,
		timestamp{&item.CreatedAt},
		timestamp{&item.UpdatedAt},
	)
	if err != nil {
		return models.VaultItem{}, err
	}

	item.EncryptedPassword = models.EncryptedBlob(password)
	if notes.Valid {
		blob := models.EncryptedBlob(notes.String)
		item.EncryptedNotes = &blob
	}

	if item.Tags, err = decodeTags(tags); err != nil {
		return models.VaultItem{}, err
	}

	return item, nil
}

// timestamp scans a time column into UTC. SQLite hands back text when the
// column type is unknown to the driver, as for RETURNING clauses.
type timestamp struct {
	t *time.Time
}

// Scan implements [sql.Scanner].
func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

// encodeTags stores tags as a JSON array. nil is stored as [].
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}

	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingTags, err)
	}
	return string(b), nil
}

// decodeTags is the inverse of encodeTags.
func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}

	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingTags, err)
	}
	return tags, nil
}

// nullableBlob maps absent and empty notes to NULL.
func nullableBlob(blob *models.EncryptedBlob) any {
	if blob == nil || *blob == "" {
		return nil
	}
	return string(*blob)
}

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
