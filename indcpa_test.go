// indcpa_test.go - K-PKE round trip and keypair serialization.
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

func TestIndcpaRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, ps := range allParams {
		seed := make([]byte, SymBytes)
		_, err := rand.Read(seed)
		require.NoError(err)

		sk, pk, err := indcpaGenerateKeyPair(seed, ps)
		require.NoError(err)

		skBuf := make([]byte, ps.indcpaSecretKeyBytes)
		sk.pack(skBuf)
		sk2, err := unpackIndcpaPrivateKey(skBuf, ps)
		require.NoError(err)

		pkBuf := make([]byte, ps.indcpaPublicKeyBytes)
		pk.pack(pkBuf)
		pk2, err := unpackIndcpaPublicKey(pkBuf, ps)
		require.NoError(err)

		m := make([]byte, SymBytes)
		coins := make([]byte, SymBytes)
		_, err = rand.Read(m)
		require.NoError(err)
		_, err = rand.Read(coins)
		require.NoError(err)

		ct := make([]byte, ps.indcpaBytes)
		require.NoError(indcpaEncrypt(pk2, m, coins, ps, ct))

		recovered, err := indcpaDecrypt(sk2, ct, ps)
		require.NoError(err)
		require.Equal(m, recovered, "%s round trip", ps.Name())
	}
}

func TestIndcpaKeyPairBufferLengths(t *testing.T) {
	require := require.New(t)

	for _, ps := range allParams {
		seed := make([]byte, SymBytes)
		sk, pk, err := indcpaGenerateKeyPair(seed, ps)
		require.NoError(err)

		skBuf := make([]byte, ps.indcpaSecretKeyBytes)
		sk.pack(skBuf)
		require.Len(skBuf, ps.k*polyBytes)

		pkBuf := make([]byte, ps.indcpaPublicKeyBytes)
		pk.pack(pkBuf)
		require.Len(pkBuf, ps.k*polyBytes+SymBytes)
	}
}
