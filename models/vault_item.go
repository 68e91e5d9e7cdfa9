package models

import "time"

// EncryptedBlob is an opaque ciphertext string produced by the cipher adapter.
// The empty blob is the encoding of the empty plaintext.
type EncryptedBlob string

// VaultItem is a stored credential record. Title, Username, URL and Tags are
// plaintext metadata used for listing and search; EncryptedPassword and
// EncryptedNotes hold ciphertext only.
type VaultItem struct {
	ID     string `json:"id"`
	UserID string `json:"-"`

	Title    string   `json:"title"`
	Username string   `json:"username"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`

	EncryptedPassword EncryptedBlob  `json:"encrypted_password"`
	EncryptedNotes    *EncryptedBlob `json:"encrypted_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VaultItemUpdate is a partial update of a vault item: nil fields are left
// unchanged.
type VaultItemUpdate struct {
	ID     string `json:"-"`
	UserID string `json:"-"`

	Title             *string        `json:"title,omitempty"`
	Username          *string        `json:"username,omitempty"`
	URL               *string        `json:"url,omitempty"`
	Tags              *[]string      `json:"tags,omitempty"`
	EncryptedPassword *EncryptedBlob `json:"encrypted_password,omitempty"`
	EncryptedNotes    *EncryptedBlob `json:"encrypted_notes,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u VaultItemUpdate) IsEmpty() bool {
	return u.Title == nil && u.Username == nil && u.URL == nil && u.Tags == nil &&
		u.EncryptedPassword == nil && u.EncryptedNotes == nil
}

// VaultSearchRequest filters a user's vault items.
type VaultSearchRequest struct {
	UserID string   `json:"-"`
	Query  string   `json:"q,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// VaultItemList is a page of vault items.
type VaultItemList struct {
	Count  int         `json:"count"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
	Items  []VaultItem `json:"items"`
}

// VaultItemSecrets is the plaintext view of the confidential fields of an item.
// Notes is nil when the item carries no notes.
type VaultItemSecrets struct {
	Password string
	Notes    *string
}

// EncryptedVaultItemSecrets is the ciphertext view of VaultItemSecrets.
type EncryptedVaultItemSecrets struct {
	EncryptedPassword EncryptedBlob
	EncryptedNotes    *EncryptedBlob
}

// DecryptedVaultItem is a vault item as seen by an unlocked client.
type DecryptedVaultItem struct {
	VaultItem

	Password string  `json:"password"`
	Notes    *string `json:"notes,omitempty"`

	// DecryptFailed marks an item whose secret fields could not be decrypted
	// with the session key; Password and Notes then hold a placeholder.
	DecryptFailed bool `json:"decrypt_failed,omitempty"`
}

// VaultItemInput is the plaintext form a client fills in to create an item.
type VaultItemInput struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    *string
	Tags     []string
}

// VaultItemPatch is a plaintext partial update built by the client. Nil
// fields are left unchanged. A non-nil empty Notes clears the notes.
type VaultItemPatch struct {
	Title    *string
	Username *string
	URL      *string
	Tags     *[]string
	Password *string
	Notes    *string
}

// DecryptedVaultItemList is one decrypted page of search results.
type DecryptedVaultItemList struct {
	Total  int                  `json:"total"`
	Offset int                  `json:"offset"`
	Limit  int                  `json:"limit"`
	Items  []DecryptedVaultItem `json:"items"`
}
