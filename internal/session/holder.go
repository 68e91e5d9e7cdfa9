package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/awnumar/memguard"
)

// Holder is the default [KeyHolder].
type Holder struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave

	deriver  crypto.KeyDeriver
	keyChain crypto.KeyChainService
	cipher   crypto.Cipher
	codec    *crypto.FieldCodec

	// probe is the fixed plaintext used by TestEncryption.
	probe string

	logger *logger.Logger
}

// NewHolder returns a locked holder.
func NewHolder(deriver crypto.KeyDeriver, keyChain crypto.KeyChainService, cipher crypto.Cipher, logger *logger.Logger) (*Holder, error) {
	probe, err := newProbe()
	if err != nil {
		return nil, fmt.Errorf("create session probe: %w", err)
	}

	return &Holder{
		deriver:  deriver,
		keyChain: keyChain,
		cipher:   cipher,
		codec:    crypto.NewFieldCodec(cipher),
		probe:    probe,
		logger:   logger,
	}, nil
}

// Unlock derives the key from email and password and keeps it when it passes
// the encryption self-test. It reports false on any failure and leaves the
// holder locked, dropping a key held before.
func (h *Holder) Unlock(email, password string) bool {
	key, err := h.deriver.FromCredentials(email, password)
	if err != nil {
		h.logger.Err(err).Str("func", "*Holder.Unlock").Msg("key derivation failed")
		h.Lock()
		return false
	}

	return h.keep(key)
}

// UnlockWrapped derives the key-encryption key from email and password and
// uses it to unwrap the vault key. Failure semantics match [Holder.Unlock].
func (h *Holder) UnlockWrapped(email, password string, wrapped models.EncryptedBlob) bool {
	kek, err := h.deriver.FromCredentials(email, password)
	if err != nil {
		h.logger.Err(err).Str("func", "*Holder.UnlockWrapped").Msg("key derivation failed")
		h.Lock()
		return false
	}
	defer kek.Wipe()

	vaultKey, err := h.keyChain.UnwrapKey(wrapped, kek)
	if err != nil {
		h.logger.Debug().Err(err).Str("func", "*Holder.UnlockWrapped").Msg("vault key could not be unwrapped")
		h.Lock()
		return false
	}

	return h.keep(vaultKey)
}

// keep self-tests key and seals it on success. key is wiped in every case.
func (h *Holder) keep(key crypto.MasterKey) bool {
	if !h.selfTest(key, h.probe) {
		key.Wipe()
		h.logger.Debug().Str("func", "*Holder.keep").Msg("key rejected by self-test")
		h.Lock()
		return false
	}

	// NewEnclave wipes its input.
	enclave := memguard.NewEnclave(key)
	if enclave == nil {
		h.Lock()
		return false
	}

	h.mu.Lock()
	h.enclave = enclave
	h.mu.Unlock()

	return true
}

// Lock drops the sealed key. It is safe to call on a locked holder.
func (h *Holder) Lock() {
	h.mu.Lock()
	h.enclave = nil
	h.mu.Unlock()
}

// IsUnlocked reports whether a key is held. It does not check the key.
func (h *Holder) IsUnlocked() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.enclave != nil
}

// IsKeyValid runs a round trip with a fresh random probe under the held key.
// A locked holder is never valid.
func (h *Holder) IsKeyValid() bool {
	probe, err := newProbe()
	if err != nil {
		return false
	}

	return h.WithKey(func(key crypto.MasterKey) error {
		if !h.selfTest(key, probe) {
			return errSelfTestFailed
		}
		return nil
	}) == nil
}

// TestEncryption repeats the self-test that accepted the key at unlock time.
func (h *Holder) TestEncryption() bool {
	return h.WithKey(func(key crypto.MasterKey) error {
		if !h.selfTest(key, h.probe) {
			return errSelfTestFailed
		}
		return nil
	}) == nil
}

// WithKey opens the sealed key for the duration of fn. The key is destroyed
// when fn returns, so fn must not retain it.
func (h *Holder) WithKey(fn func(key crypto.MasterKey) error) error {
	h.mu.RLock()
	enclave := h.enclave
	h.mu.RUnlock()

	if enclave == nil {
		return ErrLocked
	}

	buf, err := enclave.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}
	defer buf.Destroy()

	return fn(crypto.MasterKey(buf.Bytes()))
}

// EncryptItem encrypts the secret fields of an item under the held key.
func (h *Holder) EncryptItem(secrets models.VaultItemSecrets) (models.EncryptedVaultItemSecrets, error) {
	var out models.EncryptedVaultItemSecrets

	err := h.WithKey(func(key crypto.MasterKey) error {
		var err error
		out, err = h.codec.EncryptItem(secrets, key)
		return err
	})

	return out, err
}

// DecryptItem decrypts the secret fields of an item. A field that fails to
// decrypt fails the whole call with a wrapped [crypto.ErrDecryption].
func (h *Holder) DecryptItem(encrypted models.EncryptedVaultItemSecrets) (models.VaultItemSecrets, error) {
	var out models.VaultItemSecrets

	err := h.WithKey(func(key crypto.MasterKey) error {
		var err error
		out, err = h.codec.DecryptItem(encrypted, key)
		return err
	})

	return out, err
}

func (h *Holder) selfTest(key crypto.MasterKey, probe string) bool {
	blob, err := h.cipher.Encrypt(probe, key)
	if err != nil {
		return false
	}

	got, err := h.cipher.Decrypt(blob, key)
	if err != nil {
		return false
	}

	return crypto.SecureCompare(got, probe)
}

func newProbe() (string, error) {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return "probe_" + hex.EncodeToString(b), nil
}
