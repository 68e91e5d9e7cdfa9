package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVaultItemNotFound is returned when a vault item does not exist or
	// belongs to another user.
	ErrVaultItemNotFound = errors.New("vault item was not found")

	// ErrVaultItemExists is returned when an item id collides with a stored one.
	ErrVaultItemExists = errors.New("vault item already exists")

	// ErrNothingToUpdate is returned for an update that sets no column.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUnsupportedDSN is returned when no driver matches the configured DSN.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingTags is returned when tags cannot be converted to or from
	// their stored JSON form.
	ErrEncodingTags = errors.New("failed to encode tags")
)
