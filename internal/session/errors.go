package session

import "errors"

var (
	// ErrLocked is returned by key-consuming operations on a locked holder.
	ErrLocked = errors.New("vault is locked")

	// ErrKeyUnavailable is returned when the sealed key cannot be opened.
	ErrKeyUnavailable = errors.New("session key unavailable")

	errSelfTestFailed = errors.New("key self-test failed")
)
