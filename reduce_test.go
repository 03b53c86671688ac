// reduce_test.go - field arithmetic invariants.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMontgomeryReduceBounds(t *testing.T) {
	require := require.New(t)

	for _, x := range []int32{0, 1, -1, int32(q) * 32767, -int32(q) * 32768, 12345678, -12345678} {
		y := montgomeryReduce(x)
		require.True(y > -q && y < q, "montgomeryReduce(%d) = %d out of range", x, y)

		lhs := (int64(y) * 65536) % int64(q)
		if lhs < 0 {
			lhs += int64(q)
		}
		rhs := int64(x) % int64(q)
		if rhs < 0 {
			rhs += int64(q)
		}
		require.Equal(rhs, lhs, "montgomeryReduce(%d)*R !≡ x (mod q)", x)
	}
}

func TestBarrettReduceBounds(t *testing.T) {
	require := require.New(t)

	for x := int16(-32768); x < 32767; x += 97 {
		y := barrettReduce(x)
		require.True(y >= 0 && y <= q, "barrettReduce(%d) = %d out of [0,q]", x, y)

		diff := (int32(y) - int32(x)) % int32(q)
		if diff < 0 {
			diff += int32(q)
		}
		require.Zero(diff, "barrettReduce(%d) = %d not ≡ x (mod q)", x, y)
	}
}

func TestCondSubQ(t *testing.T) {
	require := require.New(t)

	for x := int16(0); x < 2*q; x++ {
		y := condSubQ(x)
		require.True(y >= 0 && y < q, "condSubQ(%d) = %d out of [0,q)", x, y)

		diff := (int32(y) - int32(x)) % int32(q)
		if diff < 0 {
			diff += int32(q)
		}
		require.Zero(diff, "condSubQ(%d) = %d not ≡ x (mod q)", x, y)
	}
}
