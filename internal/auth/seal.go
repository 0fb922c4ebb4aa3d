package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrSealBroken is returned when a sealed value was tampered with or sealed
// under another key.
var ErrSealBroken = errors.New("sealed value cannot be opened")

// Seal encrypts and authenticates plain under key. The result is URL-safe
// base64 of nonce followed by the box.
func Seal(key *[32]byte, plain []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], plain, &nonce, key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

// Open reverses Seal.
func Open(key *[32]byte, sealed string) ([]byte, error) {
	box, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrSealBroken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrSealBroken
	}
	return plain, nil
}
