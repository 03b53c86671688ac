// matrix_test.go - matrix derivation and transpose properties.
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

func TestMatrixTransposeInvolution(t *testing.T) {
	require := require.New(t)

	rho := make([]byte, SymBytes)
	_, err := rand.Read(rho)
	require.NoError(err)

	for _, k := range []int{2, 3, 4} {
		direct := deriveMatrix(rho, k, true)
		transposed := transposeMatrix(deriveMatrix(rho, k, false))

		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				require.Equal(direct.rows[i].polys[j].coeffs, transposed.rows[i].polys[j].coeffs,
					"k=%d entry (%d,%d)", k, i, j)
			}
		}
	}
}

func TestInnerProductCommutes(t *testing.T) {
	require := require.New(t)

	rho := make([]byte, SymBytes)
	_, err := rand.Read(rho)
	require.NoError(err)

	const k = 3
	a := deriveMatrix(rho, k, false).row(0)
	b := deriveMatrix(rho, k, false).row(1)

	vw, err := innerProduct(a, b)
	require.NoError(err)
	wv, err := innerProduct(b, a)
	require.NoError(err)
	require.Equal(vw.coeffs, wv.coeffs)
}
