package keytab

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Scope names the binding a wrapped blob is tied to (spec.md §4.H).
// The core treats these as opaque policy labels, not OS primitives: a
// host program is responsible for actually restricting who can invoke
// Unprotect for a given scope (e.g. via filesystem ACLs, see
// RestrictACL in acl_unix.go / acl_other.go).
type Scope string

const (
	ScopeCurrentUser Scope = "current-user"
	ScopeMachine     Scope = "machine"
)

const (
	protectMagic      = "KTWRAP01"
	protectSaltLen    = 16
	protectNonceLen   = 12
	argonTime         = 3
	argonMemoryKiB    = 64 * 1024
	argonThreads      = 4
	argonKeyLen       = 32
)

// Protect wraps blob in an opaque symmetric container bound to scope,
// optionally mixed with caller-supplied entropy (spec.md §4.H). The
// wrap does not interpret blob's contents. The wrapping key is derived
// with Argon2id from (scope, entropy) and a fresh random salt stored
// alongside the ciphertext; entropy should be a secret the host
// program controls (e.g. a machine-bound value), since scope alone is
// a label, not a secret.
func Protect(blob []byte, scope Scope, entropy []byte) ([]byte, error) {
	salt := make([]byte, protectSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, newProtectionError(err)
	}

	key := deriveWrapKey(scope, entropy, salt)
	defer zeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, newProtectionError(err)
	}

	nonce := make([]byte, protectNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, newProtectionError(err)
	}

	ciphertext := gcm.Seal(nil, nonce, blob, []byte(scope))

	out := make([]byte, 0, len(protectMagic)+len(salt)+len(nonce)+len(ciphertext))
	out = append(out, []byte(protectMagic)...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// Unprotect reverses Protect. scope and entropy must match the values
// passed to Protect, or decryption fails with ProtectionError.
func Unprotect(wrapped []byte, scope Scope, entropy []byte) ([]byte, error) {
	minLen := len(protectMagic) + protectSaltLen + protectNonceLen
	if len(wrapped) < minLen {
		return nil, newProtectionError(errors.New("wrapped blob too short"))
	}
	if string(wrapped[:len(protectMagic)]) != protectMagic {
		return nil, newProtectionError(errors.New("bad wrap magic"))
	}

	rest := wrapped[len(protectMagic):]
	salt := rest[:protectSaltLen]
	rest = rest[protectSaltLen:]
	nonce := rest[:protectNonceLen]
	ciphertext := rest[protectNonceLen:]

	key := deriveWrapKey(scope, entropy, salt)
	defer zeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, newProtectionError(err)
	}

	blob, err := gcm.Open(nil, nonce, ciphertext, []byte(scope))
	if err != nil {
		return nil, newProtectionError(err)
	}
	return blob, nil
}

func deriveWrapKey(scope Scope, entropy, salt []byte) []byte {
	password := make([]byte, 0, len(scope)+len(entropy))
	password = append(password, []byte(scope)...)
	password = append(password, entropy...)
	defer zeroBytes(password)
	return argon2.IDKey(password, salt, argonTime, argonMemoryKiB, argonThreads, argonKeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
