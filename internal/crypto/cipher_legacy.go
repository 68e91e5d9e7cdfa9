package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/MKhiriev/secure-vault/models"
)

const (
	legacyHeader   = "Salted__"
	legacySaltSize = 8
	legacyIVSize   = aes.BlockSize
)

// legacyCipher reads and writes [VersionLegacy] blobs, the passphrase format
// produced by CryptoJS.AES.encrypt and `openssl enc -aes-256-cbc -md md5`.
// The passphrase is the hex form of the master key.
//
// The format has no MAC: a wrong key is only noticed when the padding or the
// UTF-8 check fails, which is probabilistic.
type legacyCipher struct {
	rand io.Reader
}

// NewLegacyCipher returns a [Cipher] that writes [VersionLegacy] blobs. It
// exists for interoperability with vaults created by older clients; new data
// should go through [NewCipher].
func NewLegacyCipher() Cipher {
	return &legacyCipher{rand: rand.Reader}
}

func (c *legacyCipher) Encrypt(plaintext string, key MasterKey) (models.EncryptedBlob, error) {
	if plaintext == "" {
		return "", nil
	}
	if !key.Valid() {
		return "", fmt.Errorf("%w: %w", ErrEncryption, ErrInvalidKey)
	}

	salt := make([]byte, legacySaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", ErrEncryption, err)
	}

	aesKey, iv := evpBytesToKey([]byte(key.Hex()), salt, KeySize, legacyIVSize)
	defer clear(aesKey)

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	raw := make([]byte, 0, len(legacyHeader)+len(salt)+len(ciphertext))
	raw = append(raw, legacyHeader...)
	raw = append(raw, salt...)
	raw = append(raw, ciphertext...)

	return models.EncryptedBlob(base64.StdEncoding.EncodeToString(raw)), nil
}

func (c *legacyCipher) Decrypt(blob models.EncryptedBlob, key MasterKey) (string, error) {
	if blob == "" {
		return "", nil
	}
	if !key.Valid() {
		return "", fmt.Errorf("%w: %w", ErrDecryption, ErrInvalidKey)
	}

	raw, err := base64.StdEncoding.DecodeString(string(blob))
	if err != nil {
		return "", fmt.Errorf("%w: bad encoding", ErrDecryption)
	}

	headerSize := len(legacyHeader) + legacySaltSize
	if len(raw) < headerSize+aes.BlockSize || !bytes.HasPrefix(raw, []byte(legacyHeader)) {
		return "", fmt.Errorf("%w: %w", ErrDecryption, ErrUnsupportedBlob)
	}

	salt := raw[len(legacyHeader):headerSize]
	ciphertext := raw[headerSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: truncated ciphertext", ErrDecryption)
	}

	aesKey, iv := evpBytesToKey([]byte(key.Hex()), salt, KeySize, legacyIVSize)
	defer clear(aesKey)

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok {
		return "", fmt.Errorf("%w: bad padding", ErrDecryption)
	}

	return checkPlaintext(plaintext)
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and a single round:
// D_i = MD5(D_{i-1} ‖ passphrase ‖ salt), concatenated until keyLen+ivLen
// bytes are available.
func evpBytesToKey(passphrase, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	var (
		derived []byte
		prev    []byte
	)

	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}

	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}

	return data[:len(data)-n], true
}
