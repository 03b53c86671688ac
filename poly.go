// poly.go - ML-KEM polynomial, generic over reduction state.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

// Reduction-state phantom markers. A poly[S] carries one of these as its
// type parameter to record, at compile time, what is known about the
// range of its coefficients. Narrowing (e.g. Unreduced -> Barrett) always
// goes through an explicit reducing function; nothing silently widens the
// guarantee back out.
type (
	// Unreduced tags coefficients with no range guarantee beyond what
	// fits in an int16 (e.g. the raw sum of two already-bounded
	// polynomials).
	Unreduced struct{}

	// Barrett tags coefficients in [0, q], the output range of
	// barrettReduce.
	Barrett struct{}

	// Montgomery tags coefficients that are either the output of
	// toMontgomery or the output of the samplers (deriveNoise*,
	// deriveUniform). The NTT and inverse NTT keep whatever tag their
	// input had; pointwiseMul yields Unreduced.
	Montgomery struct{}

	// Normalised tags coefficients in the canonical range [0, q), the
	// only state from which packing to bytes is permitted.
	Normalised struct{}
)

// reductionState is the full set of reduction-state markers.
type reductionState interface {
	Unreduced | Barrett | Montgomery | Normalised
}

// reduced is the subset of reductionState known to have bounded
// coefficients, a precondition for the NTT, the inverse NTT, and
// pointwiseMul.
type reduced interface {
	Barrett | Montgomery | Normalised
}

// poly is an element of R_q = Z_q[X]/(X^n+1): coeffs[0] + X*coeffs[1] +
// ... + X^(n-1)*coeffs[n-1]. The coefficient array is never exported; all
// observation and construction goes through the functions in this file,
// ntt.go, sampler.go, and vector.go.
type poly[S reductionState] struct {
	coeffs [n]int16
}

// addPoly returns a+b coefficient-wise. The two operands need not share a
// reduction state: addition reads only the coefficient bytes, and the sum
// of two bounded polynomials is not itself bounded to either operand's
// range, so the result is always untagged.
func addPoly[S, T reductionState](a poly[S], b poly[T]) poly[Unreduced] {
	var r poly[Unreduced]
	for i := range r.coeffs {
		r.coeffs[i] = a.coeffs[i] + b.coeffs[i]
	}
	return r
}

// subPoly returns a-b coefficient-wise.
func subPoly[S, T reductionState](a poly[S], b poly[T]) poly[Unreduced] {
	var r poly[Unreduced]
	for i := range r.coeffs {
		r.coeffs[i] = a.coeffs[i] - b.coeffs[i]
	}
	return r
}

// barrettReducePoly Barrett-reduces every coefficient.
func barrettReducePoly[S reductionState](a poly[S]) poly[Barrett] {
	var r poly[Barrett]
	for i := range a.coeffs {
		r.coeffs[i] = barrettReduce(a.coeffs[i])
	}
	return r
}

// normalisePoly reduces every coefficient to its canonical representative
// in [0, q). It accepts any reduction state, not just the bounded ones:
// barrettReduce's fixed-point approximation is valid across the full
// int16 domain.
func normalisePoly[S reductionState](a poly[S]) poly[Normalised] {
	var r poly[Normalised]
	for i := range a.coeffs {
		r.coeffs[i] = condSubQ(barrettReduce(a.coeffs[i]))
	}
	return r
}

// montgomeryFormPoly converts every coefficient into Montgomery form.
func montgomeryFormPoly[S reductionState](a poly[S]) poly[Montgomery] {
	var r poly[Montgomery]
	for i := range a.coeffs {
		r.coeffs[i] = toMontgomery(a.coeffs[i])
	}
	return r
}

// packPoly serializes a Normalised polynomial into a 384-byte (polyBytes)
// buffer, 12 bits per coefficient. Go methods on a generic type cannot
// narrow the receiver to a single instantiation, so this and the other
// Normalised-only operations below are free functions instead of methods.
func packPoly(p poly[Normalised], buf []byte) {
	_ = buf[polyBytes-1]
	for i := 0; i < n/2; i++ {
		t0 := p.coeffs[2*i]
		t1 := p.coeffs[2*i+1]

		buf[3*i] = byte(t0)
		buf[3*i+1] = byte((t0 >> 8) | (t1 << 4))
		buf[3*i+2] = byte(t1 >> 4)
	}
}

// unpackPoly deserializes a 384-byte buffer into a polynomial. Coefficients
// land in [0, 4096) but are not yet known to be canonical mod q, so the
// result is tagged Unreduced; callers normalise before further use.
func unpackPoly(buf []byte) poly[Unreduced] {
	_ = buf[polyBytes-1]
	var p poly[Unreduced]
	for i := 0; i < n/2; i++ {
		p.coeffs[2*i] = int16(buf[3*i]) | ((int16(buf[3*i+1]) << 8) & 0xfff)
		p.coeffs[2*i+1] = int16(buf[3*i+1]>>4) | ((int16(buf[3*i+2]) << 4) & 0xfff)
	}
	return p
}

// writeMsgPoly converts a Normalised polynomial into a SymBytes-byte
// message, the inverse of readMsg.
func writeMsgPoly(p poly[Normalised], buf []byte) {
	_ = buf[SymBytes-1]
	for i := 0; i < n/8; i++ {
		buf[i] = 0
		for j := 0; j < 8; j++ {
			x := p.coeffs[8*i+j]
			x += (x >> 15) & int16(q)
			x = (((x << 1) + int16(q)/2) / int16(q)) & 1
			buf[i] |= byte(x << uint(j))
		}
	}
}

// readMsg converts a SymBytes-byte message into a polynomial whose
// coefficients are 0 or (q+1)/2, tagged Unreduced per convention even
// though both values already lie in [0, q); callers normalise it before
// any operation that takes a Normalised polynomial.
func readMsg(msg []byte) poly[Unreduced] {
	_ = msg[SymBytes-1]
	var p poly[Unreduced]
	for i := 0; i < SymBytes; i++ {
		for j := 0; j < 8; j++ {
			mask := -((int16(msg[i]) >> uint(j)) & 1)
			p.coeffs[8*i+j] = mask & int16((q+1)/2)
		}
	}
	return p
}

// compressPoly compresses a Normalised polynomial to d bits per
// coefficient, for d in {4, 5} (the message-polynomial compression
// widths used by the v component of a ciphertext).
func compressPoly(p poly[Normalised], buf []byte, d int) {
	switch d {
	case 4:
		_ = buf[n/2-1]
		var t [8]byte
		for i := 0; i < n/8; i++ {
			for j := 0; j < 8; j++ {
				u := p.coeffs[8*i+j]
				t[j] = byte((((uint32(u) << 4) + uint32(q)/2) / uint32(q)) & 15)
			}
			buf[4*i] = t[0] | (t[1] << 4)
			buf[4*i+1] = t[2] | (t[3] << 4)
			buf[4*i+2] = t[4] | (t[5] << 4)
			buf[4*i+3] = t[6] | (t[7] << 4)
		}
	case 5:
		_ = buf[n*5/8-1]
		var t [8]byte
		for i := 0; i < n/8; i++ {
			for j := 0; j < 8; j++ {
				u := p.coeffs[8*i+j]
				t[j] = byte((((uint32(u) << 5) + uint32(q)/2) / uint32(q)) & 31)
			}
			k := 5 * i
			buf[k] = t[0] | (t[1] << 5)
			buf[k+1] = (t[1] >> 3) | (t[2] << 2) | (t[3] << 7)
			buf[k+2] = (t[3] >> 1) | (t[4] << 4)
			buf[k+3] = (t[4] >> 4) | (t[5] << 1) | (t[6] << 6)
			buf[k+4] = (t[6] >> 2) | (t[7] << 3)
		}
	default:
		panic("mlkem: unsupported compression width")
	}
}

// decompressPoly is the approximate inverse of compressPoly.
func decompressPoly(buf []byte, d int) poly[Normalised] {
	var p poly[Normalised]
	switch d {
	case 4:
		_ = buf[n/2-1]
		for i, b := range buf[:n/2] {
			p.coeffs[2*i] = int16((uint32(b&15)*uint32(q) + 8) >> 4)
			p.coeffs[2*i+1] = int16((uint32(b>>4)*uint32(q) + 8) >> 4)
		}
	case 5:
		_ = buf[n*5/8-1]
		var t [8]byte
		k := 0
		for i := 0; i < n/8; i++ {
			t[0] = buf[k]
			t[1] = (buf[k] >> 5) | (buf[k+1] << 3)
			t[2] = buf[k+1] >> 2
			t[3] = (buf[k+1] >> 7) | (buf[k+2] << 1)
			t[4] = (buf[k+2] >> 4) | (buf[k+3] << 4)
			t[5] = buf[k+3] >> 1
			t[6] = (buf[k+3] >> 6) | (buf[k+4] << 2)
			t[7] = buf[k+4] >> 3
			k += 5

			for j, tj := range t {
				p.coeffs[8*i+j] = int16((uint32(tj&31)*uint32(q) + 16) >> 5)
			}
		}
	default:
		panic("mlkem: unsupported compression width")
	}
	return p
}
