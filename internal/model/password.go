package model

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordMinLength is the baseline length requirement enforced by
// NewPassword. Stronger policies are layered on with PasswordPolicy.
const PasswordMinLength = 8

// Argon2id parameters, fixed for interactive login latency. Changing
// them only affects newly hashed passwords: Verify reads the
// parameters back from the stored hash.
const (
	argonTime      = 1
	argonMemoryKiB = 64 * 1024
	argonThreads   = 4
	argonSaltLen   = 16
	argonKeyLen    = 32

	// argonMaxVerifyMemoryKiB bounds the memory parameter accepted
	// from a stored hash during Verify.
	argonMaxVerifyMemoryKiB = 1 << 21 // 2 GiB
)

// Password holds the argon2id hash of a secret in PHC string format.
// The plaintext is never retained on the value.
type Password struct {
	hash string
}

// NewPassword validates plain and hashes it. The hash is salted and
// one-way: there is no path back to the plaintext.
func NewPassword(plain string) (Password, error) {
	if len(plain) < PasswordMinLength {
		return Password{}, NewError(KindInvalidPassword,
			fmt.Sprintf("password must be at least %d characters", PasswordMinLength), nil)
	}

	salt := make([]byte, argonSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return Password{}, NewError(KindInvalidPassword, "failed to generate password salt", err)
	}

	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemoryKiB, argonThreads, argonKeyLen)

	hash := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemoryKiB, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return Password{hash: hash}, nil
}

// PasswordFromHash wraps an already-hashed value loaded from storage.
// No validation or hashing happens here.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Hash returns the stored hash for persistence.
func (p Password) Hash() string { return p.hash }

func (p Password) IsZero() bool { return p.hash == "" }

// Verify re-derives the hash of candidate with the stored salt and
// parameters and compares in constant time. Every failure mode returns
// ErrIncorrectPassword; the caller learns nothing about which property
// of the candidate or the stored hash was wrong.
func (p Password) Verify(candidate string) error {
	parts := strings.Split(p.hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ErrIncorrectPassword
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return ErrIncorrectPassword
	}
	// argon2.IDKey panics on zero rounds or parallelism, and an
	// oversized memory parameter in a tampered hash would allocate
	// unboundedly. Such hashes can never verify.
	if time < 1 || threads < 1 || memory > argonMaxVerifyMemoryKiB {
		return ErrIncorrectPassword
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrIncorrectPassword
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return ErrIncorrectPassword
	}

	got := argon2.IDKey([]byte(candidate), salt, time, memory, threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrIncorrectPassword
	}
	return nil
}
