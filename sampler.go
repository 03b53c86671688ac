// sampler.go - centered binomial and uniform rejection sampling.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// deriveNoise samples a polynomial from the centered binomial distribution
// with parameter eta (2 or 3), hashing seed||nonce with SHAKE-256. The
// result is tagged Montgomery: |coeff| <= eta, well within the Montgomery
// range (-q, q).
func deriveNoise(seed []byte, nonce byte, eta int) poly[Montgomery] {
	switch eta {
	case 2:
		return deriveNoise2(seed, nonce)
	case 3:
		return deriveNoise3(seed, nonce)
	default:
		panic("mlkem: eta must be 2 or 3")
	}
}

// deriveNoise2 implements CBD with eta=2: coefficients in {-2,...,2} with
// probabilities {1/16, 1/4, 3/8, 1/4, 1/16}, consuming 4*SymBytes bytes of
// SHAKE-256 output.
func deriveNoise2(seed []byte, nonce byte) poly[Montgomery] {
	buf := shakeNoiseBytes(seed, nonce, 4*SymBytes)

	var p poly[Montgomery]
	for i := 0; i < len(buf)/8; i++ {
		t := binary.LittleEndian.Uint64(buf[8*i:])

		d := t & 0x5555555555555555
		d += (t >> 1) & 0x5555555555555555

		for j := 0; j < 16; j++ {
			a := int16(d & 0x3)
			d >>= 2
			b := int16(d & 0x3)
			d >>= 2
			p.coeffs[16*i+j] = a - b
		}
	}
	return p
}

// deriveNoise3 implements CBD with eta=3: coefficients in {-3,...,3},
// consuming 6*SymBytes bytes of SHAKE-256 output, 6 bytes per 8
// coefficients. Each 6-byte stride must be read as an 8-byte
// little-endian word with the top two bytes treated as zero.
func deriveNoise3(seed []byte, nonce byte) poly[Montgomery] {
	buf := shakeNoiseBytes(seed, nonce, 6*SymBytes)

	var p poly[Montgomery]
	var window [8]byte
	for i := 0; i < len(buf)/6; i++ {
		copy(window[:6], buf[6*i:6*i+6])
		window[6], window[7] = 0, 0
		t := binary.LittleEndian.Uint64(window[:])

		d := t & 0x249249249249
		d += (t >> 1) & 0x249249249249
		d += (t >> 2) & 0x249249249249

		for j := 0; j < 8; j++ {
			a := int16(d & 0x7)
			d >>= 3
			b := int16(d & 0x7)
			d >>= 3
			p.coeffs[8*i+j] = a - b
		}
	}
	return p
}

func shakeNoiseBytes(seed []byte, nonce byte, nbytes int) []byte {
	h := sha3.NewShake256()
	_, _ = h.Write(seed)
	_, _ = h.Write([]byte{nonce})

	buf := make([]byte, nbytes)
	_, _ = h.Read(buf)
	return buf
}

// deriveUniform samples a polynomial uniformly in R_q by rejection
// sampling SHAKE-128(seed||x||y) output 3 bytes at a time into two 12-bit
// candidates, discarding any candidate >= q. The XOF is squeezed for more
// output on demand rather than restarted, so termination is probabilistic
// but the expected number of squeezes is small and constant. The result
// is tagged Montgomery: its coefficients are canonical representatives in
// [0, q) ready to be combined, via pointwiseMul, with Montgomery-domain
// vector entries during matrix-vector products.
func deriveUniform(seed []byte, x, y byte) poly[Montgomery] {
	h := sha3.NewShake128()
	_, _ = h.Write(seed)
	_, _ = h.Write([]byte{x, y})

	var p poly[Montgomery]
	var buf [168]byte

	i := 0
	for i < n {
		_, _ = h.Read(buf[:])

		for off := 0; off+3 <= len(buf) && i < n; off += 3 {
			t1 := (uint16(buf[off]) | (uint16(buf[off+1]) << 8)) & 0xfff
			t2 := (uint16(buf[off+1]>>4) | (uint16(buf[off+2]) << 4)) & 0xfff

			if t1 < q {
				p.coeffs[i] = int16(t1)
				i++
			}
			if i < n && t2 < q {
				p.coeffs[i] = int16(t2)
				i++
			}
		}
	}
	return p
}
