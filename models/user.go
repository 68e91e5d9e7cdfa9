package models

import "time"

// User represents an account entity used for authentication and authorization.
// The server never learns the user's password: it stores only a bcrypt hash of
// the client-computed auth hash and the vault key wrapped by the client.
type User struct {
	// UserID is the server-assigned identifier (UUIDv7).
	UserID string `json:"user_id,omitempty"`

	// Email is the normalised (trimmed, lower-case) login of the user.
	// It also serves as the key derivation salt on the client.
	Email string `json:"email"`

	// AuthHash is the client-computed authentication hash on the wire and the
	// bcrypt hash of it at rest. Never returned to clients.
	AuthHash string `json:"auth_hash,omitempty"`

	// WrappedVaultKey is the vault key encrypted under the password-derived
	// key. Opaque to the server.
	WrappedVaultKey EncryptedBlob `json:"wrapped_vault_key,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of the user safe to send to clients.
func (u User) Public() User {
	u.AuthHash = ""
	return u
}

// PasswordChange is sent by a client rotating its login password.
// The vault key itself is unchanged; only its wrapping is replaced.
type PasswordChange struct {
	// AuthHash proves knowledge of the current password.
	AuthHash string `json:"auth_hash"`

	NewAuthHash string `json:"new_auth_hash"`

	NewWrappedVaultKey EncryptedBlob `json:"new_wrapped_vault_key"`
}
