// rng_test.go - default CSPRNG tests.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRNG(t *testing.T) {
	require := require.New(t)

	rng, err := DefaultRNG()
	require.NoError(err)

	a := make([]byte, 256)
	_, err = io.ReadFull(rng, a)
	require.NoError(err)

	b := make([]byte, 256)
	_, err = io.ReadFull(rng, b)
	require.NoError(err)

	require.NotEqual(a, b, "successive reads must not repeat the keystream")

	rng2, err := DefaultRNG()
	require.NoError(err)
	c := make([]byte, 256)
	_, err = io.ReadFull(rng2, c)
	require.NoError(err)

	require.NotEqual(a, c, "independent DefaultRNG calls must not share a key/nonce")
}
