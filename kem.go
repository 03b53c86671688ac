// kem.go - ML-KEM key encapsulation mechanism: the Fujisaki-Okamoto
// transform lifting K-PKE into an IND-CCA2 secure KEM.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/sha3"
)

// PublicKey is an ML-KEM public key: the IND-CPA public key plus the hash
// of its packed form, cached per the kem-public data model so Encapsulate
// doesn't re-hash on every call.
type PublicKey struct {
	ps *ParameterSet
	pk *indcpaPublicKey
	h  [SymBytes]byte
}

// PrivateKey is an ML-KEM private key: the IND-CPA private key, a copy of
// the associated public key and its hash, and the implicit-rejection
// value z.
type PrivateKey struct {
	PublicKey
	sk *indcpaPrivateKey
	z  [SymBytes]byte
}

// Bytes returns the byte serialization of pk: pack(t) ‖ ρ.
func (pk *PublicKey) Bytes() []byte {
	b := make([]byte, pk.ps.publicKeyBytes)
	pk.pk.pack(b)
	return b
}

// ParameterSet returns the parameter set a public key was generated under.
func (pk *PublicKey) ParameterSet() *ParameterSet { return pk.ps }

// PublicKeyFromBytes deserializes a byte serialized PublicKey under the
// given parameter set.
func PublicKeyFromBytes(ps *ParameterSet, b []byte) (*PublicKey, error) {
	if len(b) != ps.publicKeyBytes {
		return nil, newError(ErrIncorrectBufferLength, "mlkem: public key must be %d bytes, got %d", ps.publicKeyBytes, len(b))
	}

	indcpaPk, err := unpackIndcpaPublicKey(b, ps)
	if err != nil {
		return nil, err
	}

	pk := &PublicKey{ps: ps, pk: indcpaPk}
	pk.h = sha3.Sum256(b)
	return pk, nil
}

// Bytes returns the byte serialization of sk: pack(s) ‖ pack(pk) ‖ h_pk ‖ z.
func (sk *PrivateKey) Bytes() []byte {
	ps := sk.ps
	b := make([]byte, 0, ps.secretKeyBytes)

	skBuf := make([]byte, ps.indcpaSecretKeyBytes)
	sk.sk.pack(skBuf)
	b = append(b, skBuf...)
	b = append(b, sk.PublicKey.Bytes()...)
	b = append(b, sk.h[:]...)
	b = append(b, sk.z[:]...)
	return b
}

// PrivateKeyFromBytes deserializes a byte serialized PrivateKey under the
// given parameter set, verifying the embedded hash of the public key.
func PrivateKeyFromBytes(ps *ParameterSet, b []byte) (*PrivateKey, error) {
	if len(b) != ps.secretKeyBytes {
		return nil, newError(ErrIncorrectBufferLength, "mlkem: private key must be %d bytes, got %d", ps.secretKeyBytes, len(b))
	}

	off := 0
	indcpaSk, err := unpackIndcpaPrivateKey(b[off:off+ps.indcpaSecretKeyBytes], ps)
	if err != nil {
		return nil, err
	}
	off += ps.indcpaSecretKeyBytes

	pkBytes := b[off : off+ps.publicKeyBytes]
	pk, err := PublicKeyFromBytes(ps, pkBytes)
	if err != nil {
		return nil, err
	}
	off += ps.publicKeyBytes

	hPk := b[off : off+SymBytes]
	off += SymBytes
	if subtle.ConstantTimeCompare(hPk, pk.h[:]) != 1 {
		return nil, newError(ErrInternalError, "mlkem: private key public-key hash mismatch")
	}

	sk := &PrivateKey{PublicKey: *pk, sk: indcpaSk}
	copy(sk.z[:], b[off:])
	return sk, nil
}

// GenerateKeyPair generates a fresh ML-KEM key pair under ps, drawing 64
// bytes of randomness from rng: 32 bytes for the PKE seed, 32 for the
// implicit-rejection value z. If rng is nil, DefaultRNG is used.
func (ps *ParameterSet) GenerateKeyPair(rng io.Reader) (*PublicKey, *PrivateKey, error) {
	if rng == nil {
		var err error
		rng, err = DefaultRNG()
		if err != nil {
			return nil, nil, err
		}
	}

	var seed [2 * SymBytes]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, nil, newError(ErrRngFailure, "mlkem: failed to read key generation seed: %v", err)
	}
	return ps.GenerateKeyPairFromSeed(seed[:])
}

// GenerateKeyPairFromSeed deterministically generates a key pair from a
// 64-byte seed: the first 32 bytes drive K-PKE.KeyGen, the last 32 become
// the implicit-rejection value z. Exposed for reproducible key generation
// and known-answer testing; callers wanting fresh keys should prefer
// GenerateKeyPair.
func (ps *ParameterSet) GenerateKeyPairFromSeed(seed []byte) (*PublicKey, *PrivateKey, error) {
	if len(seed) != 2*SymBytes {
		return nil, nil, newError(ErrInvalidSeedLength, "mlkem: key generation seed must be %d bytes, got %d", 2*SymBytes, len(seed))
	}

	indcpaSk, indcpaPk, err := indcpaGenerateKeyPair(seed[:SymBytes], ps)
	if err != nil {
		return nil, nil, err
	}

	pkBuf := make([]byte, ps.publicKeyBytes)
	indcpaPk.pack(pkBuf)

	pk := PublicKey{ps: ps, pk: indcpaPk, h: sha3.Sum256(pkBuf)}

	sk := &PrivateKey{PublicKey: pk, sk: indcpaSk}
	copy(sk.z[:], seed[SymBytes:])

	return &pk, sk, nil
}

// GetPublicKey returns sk's associated public key.
func (sk *PrivateKey) GetPublicKey() *PublicKey {
	return &sk.PublicKey
}

// Encapsulate generates a shared secret against pk, drawing 32 bytes of
// randomness from rng, and returns the Ciphertext to send the peer
// alongside it. If rng is nil, DefaultRNG is used.
func (pk *PublicKey) Encapsulate(rng io.Reader) (ct *Ciphertext, sharedSecret []byte, err error) {
	if rng == nil {
		rng, err = DefaultRNG()
		if err != nil {
			return nil, nil, err
		}
	}

	var m [SymBytes]byte
	if _, err := io.ReadFull(rng, m[:]); err != nil {
		return nil, nil, newError(ErrRngFailure, "mlkem: failed to read encapsulation seed: %v", err)
	}
	return pk.EncapsulateFromSeed(m[:])
}

// EncapsulateFromSeed deterministically encapsulates against pk using m as
// the 32-byte message. Exposed for known-answer testing; callers wanting a
// fresh shared secret should prefer Encapsulate.
func (pk *PublicKey) EncapsulateFromSeed(m []byte) (ct *Ciphertext, sharedSecret []byte, err error) {
	if len(m) != SymBytes {
		return nil, nil, newError(ErrInvalidSeedLength, "mlkem: encapsulation seed must be %d bytes, got %d", SymBytes, len(m))
	}

	h := sha3.New512()
	_, _ = h.Write(m)
	_, _ = h.Write(pk.h[:])
	kr := h.Sum(nil)
	kHat, r := kr[:SymBytes], kr[SymBytes:]

	ctBytes := make([]byte, pk.ps.cipherTextBytes)
	if err := indcpaEncrypt(pk.pk, m, r, pk.ps, ctBytes); err != nil {
		return nil, nil, err
	}

	sharedSecret = make([]byte, SharedSecretBytes)
	copy(sharedSecret, kHat)
	return &Ciphertext{ps: pk.ps, data: ctBytes}, sharedSecret, nil
}

// Decapsulate recovers the shared secret encapsulated in ct. On a
// ciphertext that does not correspond to any valid encapsulation against
// sk, Decapsulate still returns a well-formed 32-byte value, derived
// pseudorandomly from sk's implicit-rejection value z, indistinguishable
// from a genuine shared secret to a caller who cannot observe internal
// state. Only a nil ciphertext or a ciphertext from a mismatched
// ParameterSet is reported as an error.
func (sk *PrivateKey) Decapsulate(ct *Ciphertext) ([]byte, error) {
	ps := sk.ps
	if ct == nil || ct.ps == nil {
		return nil, newError(ErrIncorrectBufferLength, "mlkem: ciphertext must not be nil")
	}
	if err := matchSecLevel(ct.ps.k, ps.k); err != nil {
		return nil, err
	}
	cipherText := ct.data

	mPrime, err := indcpaDecrypt(sk.sk, cipherText, ps)
	if err != nil {
		return nil, err
	}

	h := sha3.New512()
	_, _ = h.Write(mPrime)
	_, _ = h.Write(sk.h[:])
	kr := h.Sum(nil)
	kHatPrime, rPrime := kr[:SymBytes], kr[SymBytes:]

	kBar := make([]byte, SymBytes)
	shake := sha3.NewShake256()
	_, _ = shake.Write(sk.z[:])
	_, _ = shake.Write(cipherText)
	_, _ = shake.Read(kBar)

	ctPrime := make([]byte, ps.cipherTextBytes)
	if err := indcpaEncrypt(sk.PublicKey.pk, mPrime, rPrime, ps, ctPrime); err != nil {
		return nil, err
	}

	valid := subtle.ConstantTimeCompare(cipherText, ctPrime)

	sharedSecret := make([]byte, SharedSecretBytes)
	subtle.ConstantTimeCopy(valid, sharedSecret, kHatPrime)
	subtle.ConstantTimeCopy(1-valid, sharedSecret, kBar)
	return sharedSecret, nil
}
