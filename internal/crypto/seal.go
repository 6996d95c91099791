package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"fhsslink/internal/domain"
)

// TagSize is the length of a truncated beacon authentication tag.
const TagSize = 16

// LinkKeys holds the per-session subkeys derived from the shared secret.
// Beacon authentication and payload sealing use independent keys so a
// compromise of one never weakens the other.
type LinkKeys struct {
	BeaconAuth [32]byte
	Payload    [32]byte
}

// DeriveLinkKeys expands the shared secret into link subkeys with HKDF-SHA256.
func DeriveLinkKeys(secret domain.Secret) (LinkKeys, error) {
	var keys LinkKeys
	if err := expand(secret, "fhsslink beacon-auth", keys.BeaconAuth[:]); err != nil {
		return LinkKeys{}, err
	}
	if err := expand(secret, "fhsslink payload", keys.Payload[:]); err != nil {
		return LinkKeys{}, err
	}
	return keys, nil
}

func expand(secret domain.Secret, info string, out []byte) error {
	r := hkdf.New(sha256.New, secret.Slice(), nil, []byte(info))
	_, err := io.ReadFull(r, out)
	return err
}

// Tag returns a truncated HMAC-SHA256 tag over msg.
func Tag(key [32]byte, msg []byte) [TagSize]byte {
	h := hmac.New(sha256.New, key[:])
	h.Write(msg)
	sum := h.Sum(nil)

	var tag [TagSize]byte
	copy(tag[:], sum[:TagSize])
	return tag
}

// VerifyTag checks tag against msg in constant time.
func VerifyTag(key [32]byte, msg []byte, tag [TagSize]byte) bool {
	want := Tag(key, msg)
	return subtle.ConstantTimeCompare(want[:], tag[:]) == 1
}

// Seal encrypts plaintext with ChaCha20-Poly1305 under key, prefixing the
// random nonce to the ciphertext.
func Seal(key [32]byte, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a nonce-prefixed ciphertext produced by Seal.
func Open(key [32]byte, sealed []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSize {
		return nil, errors.New("sealed payload too short")
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	nonce, ct := sealed[:chacha20poly1305.NonceSize], sealed[chacha20poly1305.NonceSize:]
	return aead.Open(nil, nonce, ct, nil)
}

// SealedOverhead is the fixed size added to a plaintext by Seal.
const SealedOverhead = chacha20poly1305.NonceSize + chacha20poly1305.Overhead
