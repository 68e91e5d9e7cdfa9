package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong email or password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrPasswordHashing = errors.New("error hashing credentials")
)

// Client-side errors.
var (
	ErrVaultLocked      = errors.New("vault is locked")
	ErrUnlockFailed     = errors.New("wrong password or corrupted vault key")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrEncryptingItem   = errors.New("error encrypting vault item")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrWeakPassword     = errors.New("master password does not meet the policy")
)
