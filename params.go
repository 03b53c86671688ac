// params.go - ML-KEM parameterization.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

const (
	// SymBytes is the size, in bytes, of the shared secret and of the
	// seeds and hashes threaded through key generation and the FO
	// transform.
	SymBytes = 32

	// SharedSecretBytes is the size, in bytes, of the value returned by
	// Encapsulate and Decapsulate.
	SharedSecretBytes = 32

	n = 256
	q = 3329

	// polyBytes is the size, in bytes, of one packed (normalised)
	// polynomial: 256 coefficients at 12 bits each.
	polyBytes = 384
)

// ParameterSet is an ML-KEM parameter set, selected by module rank k.
type ParameterSet struct {
	name string

	k    int
	eta1 int
	eta2 int

	polyCompressedBytes    int
	polyVecCompressedBytes int

	// du and dv are the compression widths, in bits per coefficient, for
	// the u and v components of a ciphertext respectively.
	du int
	dv int

	indcpaMsgBytes       int
	indcpaPublicKeyBytes int
	indcpaSecretKeyBytes int
	indcpaBytes          int

	publicKeyBytes  int
	secretKeyBytes  int
	cipherTextBytes int
}

var (
	// MLKEM512 is the ML-KEM-512 parameter set (NIST security category 1).
	MLKEM512 = newParameterSet("ML-KEM-512", 2)

	// MLKEM768 is the ML-KEM-768 parameter set (NIST security category 3).
	MLKEM768 = newParameterSet("ML-KEM-768", 3)

	// MLKEM1024 is the ML-KEM-1024 parameter set (NIST security category 5).
	MLKEM1024 = newParameterSet("ML-KEM-1024", 4)
)

// ParameterSetForK returns the ParameterSet for the given module rank, or
// an *Error of kind ErrInvalidK if k is not in {2,3,4}.
func ParameterSetForK(k int) (*ParameterSet, error) {
	switch k {
	case 2:
		return MLKEM512, nil
	case 3:
		return MLKEM768, nil
	case 4:
		return MLKEM1024, nil
	default:
		return nil, newError(ErrInvalidK, "mlkem: k must be in {2,3,4}, got %d", k)
	}
}

// Name returns the human readable name of a ParameterSet, e.g. "ML-KEM-768".
func (p *ParameterSet) Name() string { return p.name }

// K returns the module rank of a ParameterSet.
func (p *ParameterSet) K() int { return p.k }

// PublicKeySize returns the size, in bytes, of a packed public key.
func (p *ParameterSet) PublicKeySize() int { return p.publicKeyBytes }

// PrivateKeySize returns the size, in bytes, of a packed private key.
func (p *ParameterSet) PrivateKeySize() int { return p.secretKeyBytes }

// CipherTextSize returns the size, in bytes, of a ciphertext.
func (p *ParameterSet) CipherTextSize() int { return p.cipherTextBytes }

func newParameterSet(name string, k int) *ParameterSet {
	var p ParameterSet

	p.name = name
	p.k = k

	// eta1/eta2 and the d_u/d_v compression widths, per FIPS 203 Table 2.
	// k=4's polyVecCompressedBytes uses 352 bytes/poly (d_u=11), not the
	// 320 that an earlier, incorrect revision of this code used for every
	// k; see SPEC_FULL.md's Open Question resolution.
	var polyVecCompBytesPerPoly int
	switch k {
	case 2:
		p.eta1, p.eta2 = 3, 2
		p.polyCompressedBytes = 128 // d_v = 4
		polyVecCompBytesPerPoly = 320 // d_u = 10
		p.du, p.dv = 10, 4
	case 3:
		p.eta1, p.eta2 = 2, 2
		p.polyCompressedBytes = 128 // d_v = 4
		polyVecCompBytesPerPoly = 320 // d_u = 10
		p.du, p.dv = 10, 4
	case 4:
		p.eta1, p.eta2 = 2, 2
		p.polyCompressedBytes = 160 // d_v = 5
		polyVecCompBytesPerPoly = 352 // d_u = 11
		p.du, p.dv = 11, 5
	default:
		panic("mlkem: k must be in {2,3,4}")
	}
	p.polyVecCompressedBytes = k * polyVecCompBytesPerPoly

	p.indcpaMsgBytes = SymBytes
	p.indcpaPublicKeyBytes = k*polyBytes + SymBytes
	p.indcpaSecretKeyBytes = k * polyBytes
	p.indcpaBytes = p.polyVecCompressedBytes + p.polyCompressedBytes

	p.publicKeyBytes = p.indcpaPublicKeyBytes
	p.secretKeyBytes = p.indcpaSecretKeyBytes + p.indcpaPublicKeyBytes + 2*SymBytes
	p.cipherTextBytes = p.indcpaBytes

	return &p
}
