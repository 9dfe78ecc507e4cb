package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealvault/sealvault-core/internal/common"
)

func TestDeriveBackupKey_Deterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	nonce := []byte("0123456789abcdef")

	a := DeriveBackupKey(password, nonce)
	b := DeriveBackupKey(password, nonce)
	require.Len(t, a, 32)
	assert.Equal(t, a, b)

	other := DeriveBackupKey(password, []byte("fedcba9876543210"))
	assert.NotEqual(t, a, other, "different nonce must derive a different key")
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := DeriveBackupKey([]byte("pw"), []byte("0123456789abcdef"))
	plaintext := []byte("wallet secrets")
	aad := []byte(`{"backup_version":3}`)

	ciphertext, nonce, err := EncryptWithAAD(key, plaintext, aad)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := DecryptWithAAD(key, ciphertext, nonce, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecrypt_TamperedAADFails(t *testing.T) {
	key := DeriveBackupKey([]byte("pw"), []byte("0123456789abcdef"))
	aad := []byte(`{"backup_version":3}`)

	ciphertext, nonce, err := EncryptWithAAD(key, []byte("payload"), aad)
	require.NoError(t, err)

	_, err = DecryptWithAAD(key, ciphertext, nonce, []byte(`{"backup_version":4}`))
	require.Error(t, err)
	assert.True(t, common.IsFatal(err))
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	key := DeriveBackupKey([]byte("pw"), []byte("0123456789abcdef"))
	aad := []byte("aad")

	ciphertext, nonce, err := EncryptWithAAD(key, []byte("payload"), aad)
	require.NoError(t, err)

	wrong := DeriveBackupKey([]byte("other"), []byte("0123456789abcdef"))
	_, err = DecryptWithAAD(wrong, ciphertext, nonce, aad)
	require.Error(t, err)
	assert.True(t, common.IsFatal(err))
}

func TestDecrypt_TamperedCiphertextFails(t *testing.T) {
	key := DeriveBackupKey([]byte("pw"), []byte("0123456789abcdef"))

	ciphertext, nonce, err := EncryptWithAAD(key, []byte("payload"), nil)
	require.NoError(t, err)
	ciphertext[0] ^= 0xff

	_, err = DecryptWithAAD(key, ciphertext, nonce, nil)
	require.Error(t, err)
}
