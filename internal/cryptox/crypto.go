// Package cryptox implements the backup payload cipher: an argon2id-derived
// key and AES-256-GCM with the canonical backup metadata bound in as
// associated data, so any post-hoc mutation of the metadata invalidates
// decryption.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/argon2"

	"github.com/sealvault/sealvault-core/internal/common"
)

const (
	// KDFNonceSize is the size of the per-backup key-derivation nonce.
	KDFNonceSize = 16

	// CipherNonceSize is the AES-GCM nonce size; the cipher nonce is stored
	// as a prefix of the encrypted payload.
	CipherNonceSize = 12

	keySize = 32
)

// DeriveBackupKey derives the backup encryption key from the user's password
// and the per-backup KDF nonce. Same inputs always produce the same key.
func DeriveBackupKey(password, kdfNonce []byte) []byte {
	return argon2.IDKey(password, kdfNonce, 1, 64*1024, 4, keySize)
}

// EncryptWithAAD encrypts plaintext under key with AES-256-GCM, binding aad
// as authenticated associated data. A fresh random nonce is generated per
// call and returned next to the ciphertext.
func EncryptWithAAD(key, plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// DecryptWithAAD reverses EncryptWithAAD. Authentication failure (a wrong
// key, a tampered ciphertext or tampered associated data) is fatal: the
// input can never decrypt as given.
func DecryptWithAAD(key, ciphertext, nonce, aad []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, common.Fatalf("backup payload failed authentication: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, common.Fatalf("invalid cipher key: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, common.Fatalf("gcm init: %w", err)
	}
	return aesgcm, nil
}
