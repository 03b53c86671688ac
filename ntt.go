// ntt.go - Number-Theoretic Transform and pointwise multiplication.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

// zetas holds the 128 precomputed powers of the primitive 256th root of
// unity used by the NTT, already in Montgomery form.
var zetas = [128]int16{
	2285, 2571, 2970, 1812, 1493, 1422, 287, 202, 3158, 622, 1577, 182,
	962, 2127, 1855, 1468, 573, 2004, 264, 383, 2500, 1458, 1727, 3199,
	2648, 1017, 732, 608, 1787, 411, 3124, 1758, 1223, 652, 2777, 1015,
	2036, 1491, 3047, 1785, 516, 3321, 3009, 2663, 1711, 2167, 126,
	1469, 2476, 3239, 3058, 830, 107, 1908, 3082, 2378, 2931, 961, 1821,
	2604, 448, 2264, 677, 2054, 2226, 430, 555, 843, 2078, 871, 1550,
	105, 422, 587, 177, 3094, 3038, 2869, 1574, 1653, 3083, 778, 1159,
	3182, 2552, 1483, 2727, 1119, 1739, 644, 2457, 349, 418, 329, 3173,
	3254, 817, 1097, 603, 610, 1322, 2044, 1864, 384, 2114, 3193, 1218,
	1994, 2455, 220, 2142, 1670, 2144, 1799, 2051, 794, 1819, 2475,
	2459, 478, 3221, 3021, 996, 991, 958, 1869, 1522, 1628,
}

// invNTTReductions indexes the coefficients that need an extra Barrett
// reduction between layers of the inverse NTT, grouped by layer and
// terminated with -1; the final -1 terminates the whole table.
var invNTTReductions = [79]int16{
	-1,
	-1,
	16, 17, 48, 49, 80, 81, 112, 113, 144, 145, 176, 177, 208, 209, 240, 241, -1,
	0, 1, 32, 33, 34, 35, 64, 65, 96, 97, 98, 99, 128, 129, 160, 161, 162, 163, 192, 193, 224, 225, 226, 227, -1,
	2, 3, 66, 67, 68, 69, 70, 71, 130, 131, 194, 195, 196, 197, 198, 199, -1,
	4, 5, 6, 7, 132, 133, 134, 135, 136, 137, 138, 139, 140, 141, 142, 143, -1,
	-1,
}

// nttPoly computes the in-place Cooley-Tukey radix-2 decimation-in-time
// NTT of a polynomial: inputs in normal order, output in bitreversed
// order. The reduction-state tag is preserved: the transform itself
// neither widens nor narrows the coefficient bound established by the
// caller.
func nttPoly[S reduced](p poly[S]) poly[S] {
	k := 0
	l := n / 2
	for l > 1 {
		offset := 0
		for offset < n-l {
			k++
			zeta := int32(zetas[k])

			for j := offset; j < offset+l; j++ {
				t := montgomeryReduce(zeta * int32(p.coeffs[j+l]))
				p.coeffs[j+l] = p.coeffs[j] - t
				p.coeffs[j] += t
			}
			offset += 2 * l
		}
		l >>= 1
	}
	return p
}

// invNTTPoly computes the in-place inverse NTT: inputs in bitreversed
// order, output in normal order, scaled by Montgomery's R so that the
// result is already canonical Montgomery-domain and does not require a
// separate toMontgomery pass.
func invNTTPoly[S reduced](p poly[S]) poly[S] {
	k := 127
	r := 0
	l := 2
	for l < n {
		for offset := 0; offset < n-1; offset += 2 * l {
			minZeta := int32(zetas[k])
			k--

			for j := offset; j < offset+l; j++ {
				t := p.coeffs[j+l] - p.coeffs[j]
				p.coeffs[j] += p.coeffs[j+l]
				p.coeffs[j+l] = montgomeryReduce(minZeta * int32(t))
			}
		}

		for {
			idx := invNTTReductions[r]
			r++
			if idx < 0 {
				break
			}
			p.coeffs[idx] = barrettReduce(p.coeffs[idx])
		}
		l <<= 1
	}

	for j := range p.coeffs {
		p.coeffs[j] = montgomeryReduce(1441 * int32(p.coeffs[j]))
	}
	return p
}

// pointwiseMul computes the pointwise product of two NTT-domain
// polynomials, interpreting each pair of coefficients as an element of
// Z_q[X]/(X^2-zeta) per the ring decomposition used by the NTT. Inputs
// must be bounded (reduced); the output carries no bound of its own.
func pointwiseMul[S, T reduced](a poly[S], b poly[T]) poly[Unreduced] {
	var r poly[Unreduced]
	for i := 0; i < n/4; i++ {
		zeta := int32(zetas[64+i])

		a0, a1, a2, a3 := a.coeffs[4*i], a.coeffs[4*i+1], a.coeffs[4*i+2], a.coeffs[4*i+3]
		b0, b1, b2, b3 := b.coeffs[4*i], b.coeffs[4*i+1], b.coeffs[4*i+2], b.coeffs[4*i+3]

		r0 := montgomeryReduce(int32(a1) * int32(b1))
		r0 = montgomeryReduce(int32(r0) * zeta)
		r0 += montgomeryReduce(int32(a0) * int32(b0))

		r1 := montgomeryReduce(int32(a0)*int32(b1)) + montgomeryReduce(int32(a1)*int32(b0))

		r2 := montgomeryReduce(int32(a3) * int32(b3))
		r2 = -montgomeryReduce(int32(r2) * zeta)
		r2 += montgomeryReduce(int32(a2) * int32(b2))

		r3 := montgomeryReduce(int32(a2)*int32(b3)) + montgomeryReduce(int32(a3)*int32(b2))

		r.coeffs[4*i], r.coeffs[4*i+1], r.coeffs[4*i+2], r.coeffs[4*i+3] = r0, r1, r2, r3
	}
	return r
}
