// rng.go - default CSPRNG used when a caller has no entropy source of its
// own to hand to GenerateKeyPair/Encapsulate.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20"
)

// DefaultRNG returns an io.Reader that streams ChaCha20 keystream bytes
// from a key and nonce drawn from the operating system CSPRNG.
// GenerateKeyPair and Encapsulate fall back to it when called with a nil
// rng, per the rng-absent behavior in their data model.
func DefaultRNG() (io.Reader, error) {
	var key [chacha20.KeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, newError(ErrRngFailure, "mlkem: failed to seed default RNG key: %v", err)
	}

	var nonce [chacha20.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, newError(ErrRngFailure, "mlkem: failed to seed default RNG nonce: %v", err)
	}

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, newError(ErrRngFailure, "mlkem: failed to construct default RNG: %v", err)
	}
	return &chachaRNG{cipher: c}, nil
}

// chachaRNG implements io.Reader by XORing ChaCha20 keystream over the
// caller's (zeroed) buffer, i.e. emitting raw keystream.
type chachaRNG struct {
	cipher *chacha20.Cipher
}

func (r *chachaRNG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
