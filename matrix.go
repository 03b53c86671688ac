// matrix.go - k-by-k matrix of ML-KEM polynomials.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

// matrix is a k rows by k columns holder of polynomials, each row a
// polyVec of length k. Produced only by derivation from a 32-byte seed.
type matrix[S reductionState] struct {
	rows     [4]polyVec[S]
	secLevel int
}

// deriveMatrix derives a k-by-k matrix from a 32-byte seed rho, per
// section 4.4: entry (i, j) is the uniform sampler applied to rho with
// coordinate bytes (i, j) if transpose, else (j, i). The result is
// tagged Montgomery, matching deriveUniform's output tag.
func deriveMatrix(rho []byte, secLevel int, transpose bool) matrix[Montgomery] {
	var m matrix[Montgomery]
	m.secLevel = secLevel

	for i := 0; i < secLevel; i++ {
		m.rows[i].secLevel = secLevel
		for j := 0; j < secLevel; j++ {
			if transpose {
				m.rows[i].polys[j] = deriveUniform(rho, byte(i), byte(j))
			} else {
				m.rows[i].polys[j] = deriveUniform(rho, byte(j), byte(i))
			}
		}
	}
	return m
}

// transposeMatrix returns the transpose of m, swapping entries across the
// main diagonal.
func transposeMatrix[S reductionState](m matrix[S]) matrix[S] {
	t := m
	for i := 0; i < m.secLevel-1; i++ {
		for j := i + 1; j < m.secLevel; j++ {
			t.rows[i].polys[j], t.rows[j].polys[i] = m.rows[j].polys[i], m.rows[i].polys[j]
		}
	}
	return t
}

// row returns the i-th row of the matrix as a polyVec.
func (m matrix[S]) row(i int) polyVec[S] {
	return m.rows[i]
}
