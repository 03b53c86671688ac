// indcpa.go - K-PKE, the IND-CPA secure public key encryption scheme that
// the KEM's Fujisaki-Okamoto transform builds on.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"golang.org/x/crypto/sha3"
)

// indcpaPublicKey is pk = (t, rho): t is the noisy matrix-vector product in
// the NTT domain, normalised; rho is the 32-byte seed the matrix A was
// derived from. aT caches the transpose of A, derived once from rho, so
// repeated calls to indcpaEncrypt against the same key don't re-run the
// uniform sampler.
type indcpaPublicKey struct {
	secLevel int
	rho      [SymBytes]byte
	t        polyVec[Normalised]
	aT       matrix[Montgomery]
}

// indcpaPrivateKey is sk = s, the noise vector in the NTT domain,
// normalised.
type indcpaPrivateKey struct {
	secLevel int
	s        polyVec[Normalised]
}

// indcpaGenerateKeyPair runs K-PKE.KeyGen on a SymBytes-byte seed,
// returning the unpacked secret and public key.
func indcpaGenerateKeyPair(seed []byte, ps *ParameterSet) (*indcpaPrivateKey, *indcpaPublicKey, error) {
	if len(seed) != SymBytes {
		return nil, nil, newError(ErrInvalidSeedLength, "mlkem: indcpa keygen seed must be %d bytes, got %d", SymBytes, len(seed))
	}

	expanded := sha3.Sum512(seed)
	rho, sigma := expanded[:SymBytes], expanded[SymBytes:]

	k := ps.k
	a := deriveMatrix(rho, k, false)
	aT := transposeMatrix(a)

	s := deriveNoisePolyVec(sigma, 0, ps.eta1, k)
	sHat := nttPolyVec(s)

	e := deriveNoisePolyVec(sigma, byte(k), ps.eta1, k)
	eHat := nttPolyVec(e)

	var tPre polyVec[Montgomery]
	tPre.secLevel = k
	for i := 0; i < k; i++ {
		row, err := innerProduct(a.row(i), sHat)
		if err != nil {
			return nil, nil, err
		}
		tPre.polys[i] = montgomeryFormPoly(row)
	}

	tSum, err := addPolyVec(tPre, eHat)
	if err != nil {
		return nil, nil, err
	}
	t := normalisePolyVec(tSum)

	sk := &indcpaPrivateKey{secLevel: k, s: normalisePolyVec(sHat)}
	pk := &indcpaPublicKey{secLevel: k, t: t, aT: aT}
	copy(pk.rho[:], rho)
	return sk, pk, nil
}

// pack serializes sk into k*polyBytes bytes.
func (sk *indcpaPrivateKey) pack(buf []byte) {
	packPolyVec(sk.s, buf)
}

// unpackIndcpaPrivateKey is the inverse of pack.
func unpackIndcpaPrivateKey(buf []byte, ps *ParameterSet) (*indcpaPrivateKey, error) {
	s, err := unpackPolyVec(buf, ps.k)
	if err != nil {
		return nil, err
	}
	return &indcpaPrivateKey{secLevel: ps.k, s: normalisePolyVec(s)}, nil
}

// pack serializes pk into pk.t packed as k*polyBytes bytes followed by the
// 32-byte seed rho.
func (pk *indcpaPublicKey) pack(buf []byte) {
	packPolyVec(pk.t, buf[:pk.secLevel*polyBytes])
	copy(buf[pk.secLevel*polyBytes:], pk.rho[:])
}

// unpackIndcpaPublicKey is the inverse of pack. aT is regenerated from rho
// with the transpose flag set, per the keygen data model.
func unpackIndcpaPublicKey(buf []byte, ps *ParameterSet) (*indcpaPublicKey, error) {
	k := ps.k
	want := k*polyBytes + SymBytes
	if len(buf) != want {
		return nil, newError(ErrIncorrectBufferLength, "mlkem: indcpa public key expected %d bytes, got %d", want, len(buf))
	}

	tRaw, err := unpackPolyVec(buf[:k*polyBytes], k)
	if err != nil {
		return nil, err
	}

	pk := &indcpaPublicKey{secLevel: k, t: normalisePolyVec(tRaw)}
	copy(pk.rho[:], buf[k*polyBytes:])
	pk.aT = deriveMatrix(pk.rho[:], k, true)
	return pk, nil
}

// indcpaEncrypt encrypts the SymBytes-byte message m under pk, using coins
// as the encryption randomness. ct must be ps.indcpaBytes bytes.
func indcpaEncrypt(pk *indcpaPublicKey, m, coins []byte, ps *ParameterSet, ct []byte) error {
	k := ps.k
	if len(m) != SymBytes {
		return newError(ErrIncorrectBufferLength, "mlkem: message must be %d bytes, got %d", SymBytes, len(m))
	}
	if len(coins) != SymBytes {
		return newError(ErrIncorrectBufferLength, "mlkem: encryption coins must be %d bytes, got %d", SymBytes, len(coins))
	}
	if len(ct) != ps.indcpaBytes {
		return newError(ErrIncorrectBufferLength, "mlkem: ciphertext buffer must be %d bytes, got %d", ps.indcpaBytes, len(ct))
	}

	rHat := nttPolyVec(deriveNoisePolyVec(coins, 0, ps.eta1, k))
	rReduced := barrettReducePolyVec(rHat)

	e1 := deriveNoisePolyVec(coins, byte(k), ps.eta2, k)
	e2 := deriveNoise(coins, byte(2*k), ps.eta2)

	var uRaw polyVec[Unreduced]
	uRaw.secLevel = k
	for i := 0; i < k; i++ {
		row, err := innerProduct(pk.aT.row(i), rReduced)
		if err != nil {
			return err
		}
		uRaw.polys[i] = row
	}
	uInv := invNTTPolyVec(barrettReducePolyVec(uRaw))
	uSum, err := addPolyVec(uInv, e1)
	if err != nil {
		return err
	}
	u := normalisePolyVec(uSum)

	vInner, err := innerProduct(pk.t, rReduced)
	if err != nil {
		return err
	}
	vInv := invNTTPoly(barrettReducePoly(vInner))
	vSum := addPoly(addPoly(vInv, e2), readMsg(m))
	v := normalisePoly(vSum)

	compressPolyVec(u, ct[:ps.polyVecCompressedBytes], ps.du)
	compressPoly(v, ct[ps.polyVecCompressedBytes:], ps.dv)
	return nil
}

// indcpaDecrypt recovers the SymBytes-byte message encoded in ct under sk.
func indcpaDecrypt(sk *indcpaPrivateKey, ct []byte, ps *ParameterSet) ([]byte, error) {
	if len(ct) != ps.indcpaBytes {
		return nil, newError(ErrIncorrectBufferLength, "mlkem: ciphertext must be %d bytes, got %d", ps.indcpaBytes, len(ct))
	}

	u := nttPolyVec(decompressPolyVec(ct[:ps.polyVecCompressedBytes], ps.k, ps.du))
	v := decompressPoly(ct[ps.polyVecCompressedBytes:], ps.dv)

	inner, err := innerProduct(sk.s, u)
	if err != nil {
		return nil, err
	}
	mp := invNTTPoly(barrettReducePoly(inner))
	m := normalisePoly(subPoly(v, mp))

	msg := make([]byte, SymBytes)
	writeMsgPoly(m, msg)
	return msg, nil
}
