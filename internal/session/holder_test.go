package session

import (
	"testing"

	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 1000

func newTestHolder(t *testing.T) *Holder {
	t.Helper()
	c := crypto.NewCipher()
	h, err := NewHolder(crypto.NewKeyDeriver(testIterations), crypto.NewKeyChainService(c), c, logger.Nop())
	require.NoError(t, err)
	return h
}

// brokenCipher encrypts fine but never decrypts back to the input.
type brokenCipher struct{}

func (brokenCipher) Encrypt(plaintext string, _ crypto.MasterKey) (models.EncryptedBlob, error) {
	return models.EncryptedBlob(plaintext), nil
}

func (brokenCipher) Decrypt(_ models.EncryptedBlob, _ crypto.MasterKey) (string, error) {
	return "garbage", nil
}

func TestHolder_StartsLocked(t *testing.T) {
	h := newTestHolder(t)

	assert.False(t, h.IsUnlocked())
	assert.False(t, h.IsKeyValid())
	assert.False(t, h.TestEncryption())

	_, err := h.EncryptItem(models.VaultItemSecrets{Password: "p"})
	assert.ErrorIs(t, err, ErrLocked)
	_, err = h.DecryptItem(models.EncryptedVaultItemSecrets{})
	assert.ErrorIs(t, err, ErrLocked)
}

func TestHolder_UnlockLockCycle(t *testing.T) {
	h := newTestHolder(t)

	require.True(t, h.Unlock("alice@example.com", "correct horse"))
	assert.True(t, h.IsUnlocked())
	assert.True(t, h.IsKeyValid())
	assert.True(t, h.TestEncryption())

	h.Lock()
	assert.False(t, h.IsUnlocked())
	assert.False(t, h.IsKeyValid())

	h.Lock()
	assert.False(t, h.IsUnlocked())
}

func TestHolder_UnlockRejectsEmptyCredentials(t *testing.T) {
	h := newTestHolder(t)

	assert.False(t, h.Unlock("", "password"))
	assert.False(t, h.Unlock("alice@example.com", ""))
	assert.False(t, h.IsUnlocked())
}

func TestHolder_UnlockFailingSelfTestStaysLocked(t *testing.T) {
	h, err := NewHolder(crypto.NewKeyDeriver(testIterations), crypto.NewKeyChainService(brokenCipher{}), brokenCipher{}, logger.Nop())
	require.NoError(t, err)

	assert.False(t, h.Unlock("alice@example.com", "password"))
	assert.False(t, h.IsUnlocked())
}

func TestHolder_FailedUnlockDropsPreviousKey(t *testing.T) {
	h := newTestHolder(t)

	require.True(t, h.Unlock("alice@example.com", "password"))
	assert.False(t, h.Unlock("alice@example.com", ""))
	assert.False(t, h.IsUnlocked())
}

func TestHolder_KeyMatchesDerivation(t *testing.T) {
	h := newTestHolder(t)
	require.True(t, h.Unlock(" Alice@Example.com ", "password"))

	want, err := crypto.DeriveMasterKey("password", "alice@example.com", testIterations)
	require.NoError(t, err)

	err = h.WithKey(func(key crypto.MasterKey) error {
		assert.Equal(t, want.Hex(), key.Hex())
		return nil
	})
	require.NoError(t, err)
}

func TestHolder_EncryptDecryptItem(t *testing.T) {
	h := newTestHolder(t)
	require.True(t, h.Unlock("alice@example.com", "password"))

	notes := "pin 0000"
	enc, err := h.EncryptItem(models.VaultItemSecrets{Password: "s3cret", Notes: &notes})
	require.NoError(t, err)

	dec, err := h.DecryptItem(enc)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", dec.Password)
	require.NotNil(t, dec.Notes)
	assert.Equal(t, notes, *dec.Notes)
}

func TestHolder_DifferentSessionCannotDecrypt(t *testing.T) {
	alice := newTestHolder(t)
	bob := newTestHolder(t)
	require.True(t, alice.Unlock("alice@example.com", "password"))
	require.True(t, bob.Unlock("bob@example.com", "password"))

	enc, err := alice.EncryptItem(models.VaultItemSecrets{Password: "alice only"})
	require.NoError(t, err)

	_, err = bob.DecryptItem(enc)
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

func TestHolder_UnlockWrapped(t *testing.T) {
	c := crypto.NewCipher()
	keyChain := crypto.NewKeyChainService(c)
	deriver := crypto.NewKeyDeriver(testIterations)

	kek, err := deriver.FromCredentials("carol@example.com", "password")
	require.NoError(t, err)
	vaultKey, err := keyChain.GenerateVaultKey()
	require.NoError(t, err)
	wrapped, err := keyChain.WrapKey(vaultKey, kek)
	require.NoError(t, err)

	h, err := NewHolder(deriver, keyChain, c, logger.Nop())
	require.NoError(t, err)

	assert.False(t, h.UnlockWrapped("carol@example.com", "wrong password", wrapped))
	assert.False(t, h.IsUnlocked())

	require.True(t, h.UnlockWrapped("carol@example.com", "password", wrapped))
	err = h.WithKey(func(key crypto.MasterKey) error {
		assert.Equal(t, vaultKey.Hex(), key.Hex())
		return nil
	})
	require.NoError(t, err)

	assert.False(t, h.UnlockWrapped("carol@example.com", "password", "v2:corrupted"))
	assert.False(t, h.IsUnlocked())
}
