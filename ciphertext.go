// ciphertext.go - the Ciphertext value type returned by Encapsulate and
// consumed by Decapsulate.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

// Ciphertext is an opaque, fixed-capacity byte container holding
// compress(u) ‖ compress(v) for some ParameterSet: exactly
// ps.CipherTextSize() bytes, never more, never fewer.
type Ciphertext struct {
	ps   *ParameterSet
	data []byte
}

// AsBytes returns a copy of the ciphertext's byte contents. Mutating the
// returned slice does not affect c.
func (c *Ciphertext) AsBytes() []byte {
	b := make([]byte, len(c.data))
	copy(b, c.data)
	return b
}

// ParameterSet returns the parameter set a ciphertext was produced under.
func (c *Ciphertext) ParameterSet() *ParameterSet { return c.ps }

// CiphertextFromBytes wraps b as a Ciphertext under ps, verifying its
// length matches ps.CipherTextSize() exactly.
func CiphertextFromBytes(ps *ParameterSet, b []byte) (*Ciphertext, error) {
	if len(b) != ps.cipherTextBytes {
		return nil, newError(ErrInvalidCiphertextLength, "mlkem: ciphertext must be %d bytes, got %d", ps.cipherTextBytes, len(b))
	}
	data := make([]byte, len(b))
	copy(data, b)
	return &Ciphertext{ps: ps, data: data}, nil
}
