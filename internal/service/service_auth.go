package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/internal/validators"
	"github.com/MKhiriev/secure-vault/models"
)

// BcryptCost is the work factor of stored auth hashes.
const BcryptCost = 12

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for the stored
// auth hash.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator
	ids       *utils.UUIDGenerator

	// bcryptCost is BcryptCost outside of tests.
	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		ids:            utils.NewUUIDGenerator(),
		bcryptCost:     BcryptCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new account.
//
// The email is normalised, the auth hash is stored as a bcrypt hash and the
// wrapped vault key is stored verbatim. The returned user carries no hash.
//
// Errors:
//   - ErrInvalidDataProvided (wrapping the validator error) for bad input.
//   - store.ErrEmailAlreadyExists (wrapped) when the email is taken.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Email = crypto.NormalizeEmail(user.Email)
	if err := a.validator.Validate(ctx, user, validators.FieldEmail, validators.FieldAuthHash, validators.FieldWrappedVaultKey); err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.AuthHash), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing auth hash")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	user.UserID = a.ids.Generate()
	user.AuthHash = string(hashed)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser.Public(), nil
}

// Login authenticates an existing account and returns it together with its
// wrapped vault key. An unknown email and a wrong auth hash both yield
// ErrWrongCredentials.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Email = crypto.NormalizeEmail(user.Email)
	if err := a.validator.Validate(ctx, user, validators.FieldEmail, validators.FieldAuthHash); err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "*authService.Login").Msg("login for unknown email")
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.AuthHash), []byte(user.AuthHash)); err != nil {
		log.Info().Str("func", "*authService.Login").Str("user_id", foundUser.UserID).Msg("wrong credentials")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser.Public(), nil
}

func (a *authService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.GetUser").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user.Public(), nil
}

// ChangePassword rotates the credentials of userID. The vault key itself is
// unchanged, so no item needs re-encryption.
func (a *authService) ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, change); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("invalid password change")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.AuthHash), []byte(change.AuthHash)); err != nil {
		log.Info().Str("func", "*authService.ChangePassword").Str("user_id", userID).Msg("wrong current credentials")
		return ErrWrongCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(change.NewAuthHash), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error hashing auth hash")
		return fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	if err = a.userRepository.UpdateCredentials(ctx, userID, string(hashed), change.NewWrappedVaultKey); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("error storing new credentials")
		return fmt.Errorf("error storing new credentials: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
