// ntt_test.go - NTT reference vector and algebraic properties.
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

func TestNTTReferenceVector(t *testing.T) {
	require := require.New(t)

	var p poly[Unreduced]
	for i := range p.coeffs {
		p.coeffs[i] = int16(uint16(i * 127))
	}

	out := nttPoly(montgomeryFormPoly(p))
	want := [8]int16{-5463, -541, -6575, -1333, -5158, -25, -2604, 1087}
	require.Equal(want[:], out.coeffs[:8])
}

// TestInvNTTRoundTrip checks the quantified invariant that ntt and inv_ntt
// are inverses up to a factor of R: the round trip recovers p.c*R mod q,
// not p.c itself.
func TestInvNTTRoundTrip(t *testing.T) {
	require := require.New(t)

	var p poly[Normalised]
	for i := range p.coeffs {
		p.coeffs[i] = int16(i % q)
	}

	transformed := nttPoly(p)
	back := normalisePoly(invNTTPoly(barrettReducePoly(transformed)))
	want := normalisePoly(montgomeryFormPoly(p))

	for i := range p.coeffs {
		require.Equal(want.coeffs[i], back.coeffs[i], "coefficient %d", i)
	}
}

func TestPointwiseMulBounded(t *testing.T) {
	require := require.New(t)

	var a, b poly[Montgomery]
	for i := range a.coeffs {
		a.coeffs[i] = int16(i % q)
		b.coeffs[i] = int16((n - i) % q)
	}

	r := pointwiseMul(a, b)
	for _, c := range r.coeffs {
		require.True(c > -32768 && c < 32767)
	}
}
