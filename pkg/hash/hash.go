// Package hash is the password-hashing collaborator. The stores only ever
// see the digest it produces and compare digests by equality, so the
// digest must be deterministic: Argon2id keyed with a service-level pepper
// instead of a per-hash random salt.
package hash

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

var DefaultParams = &Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	KeyLength:   32,
}

type Hasher struct {
	pepper []byte
	params *Params
}

func New(pepper string, params *Params) *Hasher {
	if params == nil {
		params = DefaultParams
	}
	return &Hasher{pepper: []byte(pepper), params: params}
}

// Digest computes the hex-encoded Argon2id digest of password.
func (h *Hasher) Digest(password string) string {
	key := argon2.IDKey([]byte(password), h.pepper, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	return hex.EncodeToString(key)
}

// Verify reports whether password digests to encoded, in constant time.
func (h *Hasher) Verify(encoded, password string) bool {
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(h.Digest(password))) == 1
}
