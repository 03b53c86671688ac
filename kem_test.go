// kem_test.go - ML-KEM KEM tests.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const nTests = 50

var allParams = []*ParameterSet{
	MLKEM512,
	MLKEM768,
	MLKEM1024,
}

func TestKEM(t *testing.T) {
	for _, p := range allParams {
		t.Run(p.Name()+"_Keys", func(t *testing.T) { doTestKEMKeys(t, p) })
		t.Run(p.Name()+"_Invalid_SecretKey", func(t *testing.T) { doTestKEMInvalidSk(t, p) })
		t.Run(p.Name()+"_Invalid_CipherText", func(t *testing.T) { doTestKEMInvalidCipherText(t, p) })
	}
}

func doTestKEMKeys(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	t.Logf("PrivateKeySize(): %v", p.PrivateKeySize())
	t.Logf("PublicKeySize(): %v", p.PublicKeySize())
	t.Logf("CipherTextSize(): %v", p.CipherTextSize())

	for i := 0; i < nTests; i++ {
		pk, sk, err := p.GenerateKeyPair(rand.Reader)
		require.NoError(err, "GenerateKeyPair()")
		require.Equal(pk.Bytes(), sk.GetPublicKey().Bytes(), "sk.GetPublicKey()")

		b := sk.Bytes()
		require.Len(b, p.PrivateKeySize(), "sk.Bytes(): Length")
		sk2, err := PrivateKeyFromBytes(p, b)
		require.NoError(err, "PrivateKeyFromBytes(b)")
		require.Equal(sk.Bytes(), sk2.Bytes(), "sk round-trip")

		b = pk.Bytes()
		require.Len(b, p.PublicKeySize(), "pk.Bytes(): Length")
		pk2, err := PublicKeyFromBytes(p, b)
		require.NoError(err, "PublicKeyFromBytes(b)")
		require.Equal(pk.Bytes(), pk2.Bytes(), "pk round-trip")

		ct, ss, err := pk.Encapsulate(rand.Reader)
		require.NoError(err, "Encapsulate()")
		require.Len(ct.AsBytes(), p.CipherTextSize(), "Encapsulate(): ct Length")
		require.Len(ss, SharedSecretBytes, "Encapsulate(): ss Length")

		ct2, err := CiphertextFromBytes(p, ct.AsBytes())
		require.NoError(err, "CiphertextFromBytes(ct.AsBytes())")
		require.Equal(ct.AsBytes(), ct2.AsBytes(), "ct round-trip")

		ss2, err := sk.Decapsulate(ct)
		require.NoError(err, "Decapsulate()")
		require.Equal(ss, ss2, "Decapsulate(): ss")
	}
}

// doTestKEMInvalidSk confirms that decapsulating with a corrupted secret
// key falls through implicit rejection: the recovered shared secret no
// longer matches what the encapsulating side derived.
func doTestKEMInvalidSk(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	for i := 0; i < nTests; i++ {
		pk, skA, err := p.GenerateKeyPair(rand.Reader)
		require.NoError(err, "GenerateKeyPair()")

		ct, keyB, err := pk.Encapsulate(rand.Reader)
		require.NoError(err, "Encapsulate()")

		for j := range skA.sk.s.polys[0].coeffs {
			skA.sk.s.polys[0].coeffs[j] ^= 1
		}

		keyA, err := skA.Decapsulate(ct)
		require.NoError(err, "Decapsulate()")
		require.NotEqual(keyA, keyB, "Decapsulate(): ss")
	}
}

func doTestKEMInvalidCipherText(t *testing.T, p *ParameterSet) {
	require := require.New(t)
	var rawPos [2]byte

	ciphertextSize := p.CipherTextSize()

	for i := 0; i < nTests; i++ {
		_, err := rand.Read(rawPos[:])
		require.NoError(err, "rand.Read()")
		pos := (int(rawPos[0]) << 8) | int(rawPos[1])

		pk, skA, err := p.GenerateKeyPair(rand.Reader)
		require.NoError(err, "GenerateKeyPair()")

		ct, keyB, err := pk.Encapsulate(rand.Reader)
		require.NoError(err, "Encapsulate()")

		ct.data[pos%ciphertextSize] ^= 23

		keyA, err := skA.Decapsulate(ct)
		require.NoError(err, "Decapsulate()")
		require.NotEqual(keyA, keyB, "Decapsulate(): ss")
	}
}

// TestKEMDefaultRNG exercises the rng-absent path: GenerateKeyPair and
// Encapsulate fall back to DefaultRNG's ChaCha20 keystream when passed a
// nil io.Reader.
func TestKEMDefaultRNG(t *testing.T) {
	require := require.New(t)
	p := MLKEM768

	pk, sk, err := p.GenerateKeyPair(nil)
	require.NoError(err, "GenerateKeyPair(nil)")

	ct, ss, err := pk.Encapsulate(nil)
	require.NoError(err, "Encapsulate(nil)")
	require.Len(ct.AsBytes(), p.CipherTextSize())
	require.Len(ss, SharedSecretBytes)

	ss2, err := sk.Decapsulate(ct)
	require.NoError(err, "Decapsulate()")
	require.Equal(ss, ss2)
}

func TestCiphertextFromBytesRejectsWrongLength(t *testing.T) {
	require := require.New(t)
	p := MLKEM768

	_, err := CiphertextFromBytes(p, make([]byte, p.CipherTextSize()-1))
	require.ErrorIs(err, SentinelInvalidCiphertextLength)
}

func TestKEMDecapsulateRejectsMismatchedSecurityLevel(t *testing.T) {
	require := require.New(t)

	_, sk, err := MLKEM768.GenerateKeyPair(rand.Reader)
	require.NoError(err)

	pk1024, _, err := MLKEM1024.GenerateKeyPair(rand.Reader)
	require.NoError(err)

	ct, _, err := pk1024.Encapsulate(rand.Reader)
	require.NoError(err)

	_, err = sk.Decapsulate(ct)
	require.ErrorIs(err, SentinelMismatchedSecurityLevels)
}

// TestKEMEndToEndBitFlip exercises the exact k=3 scenario from the
// reference test vectors: flipping a single bit of an otherwise valid
// ciphertext must produce a shared secret on the decapsulating side that
// differs from the one the encapsulating side derived.
func TestKEMEndToEndBitFlip(t *testing.T) {
	require := require.New(t)
	p := MLKEM768

	pk, sk, err := p.GenerateKeyPair(rand.Reader)
	require.NoError(err)

	ct, ssEnc, err := pk.Encapsulate(rand.Reader)
	require.NoError(err)

	flipped, err := CiphertextFromBytes(p, ct.AsBytes())
	require.NoError(err)
	flipped.data[0] ^= 1

	ssDec, err := sk.Decapsulate(flipped)
	require.NoError(err)
	require.NotEqual(ssEnc, ssDec)

	ssDecClean, err := sk.Decapsulate(ct)
	require.NoError(err)
	require.Equal(ssEnc, ssDecClean)
}

func BenchmarkKEM(b *testing.B) {
	for _, p := range allParams {
		b.Run(p.Name()+"_GenerateKeyPair", func(b *testing.B) { doBenchKEMGenerateKeyPair(b, p) })
		b.Run(p.Name()+"_Encapsulate", func(b *testing.B) { doBenchKEMEncDec(b, p, true) })
		b.Run(p.Name()+"_Decapsulate", func(b *testing.B) { doBenchKEMEncDec(b, p, false) })
	}
}

func doBenchKEMGenerateKeyPair(b *testing.B, p *ParameterSet) {
	for i := 0; i < b.N; i++ {
		if _, _, err := p.GenerateKeyPair(rand.Reader); err != nil {
			b.Fatalf("GenerateKeyPair(): %v", err)
		}
	}
}

func doBenchKEMEncDec(b *testing.B, p *ParameterSet, isEnc bool) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		pk, sk, err := p.GenerateKeyPair(rand.Reader)
		if err != nil {
			b.Fatalf("GenerateKeyPair(): %v", err)
		}

		if isEnc {
			b.StartTimer()
		}

		ct, ss, err := pk.Encapsulate(rand.Reader)
		if err != nil {
			b.Fatalf("Encapsulate(): %v", err)
		}

		if !isEnc {
			b.StartTimer()
			if _, err := sk.Decapsulate(ct); err != nil {
				b.Fatalf("Decapsulate(): %v", err)
			}
			b.StopTimer()
		} else {
			b.StopTimer()
			_ = ss
		}
	}
}
