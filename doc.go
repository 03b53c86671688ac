// doc.go - mlkem godoc extras.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package mlkem implements ML-KEM, the module-lattice-based key
// encapsulation mechanism standardized in FIPS 203, also known by its
// submission name Kyber.
//
// The package provides three operations: generate a keypair, encapsulate a
// shared secret against a public key, and decapsulate a ciphertext with a
// private key. Three parameter sets are supported, selected by the module
// rank k: ML-KEM-512 (k=2), ML-KEM-768 (k=3), and ML-KEM-1024 (k=4).
//
// This implementation is a from-scratch realization of the FIPS 203
// algorithms: the ring arithmetic over Z_q[X]/(X^256+1) with q=3329, the
// number-theoretic transform, centered binomial and rejection sampling, the
// IND-CPA public key encryption scheme (K-PKE), and the Fujisaki-Okamoto
// transform that lifts K-PKE into an IND-CCA2-secure KEM with implicit
// rejection.
//
// Reduction state (whether a polynomial's coefficients are normalised,
// Barrett-reduced, in Montgomery form, or unreduced) is tracked with a
// phantom type parameter so that the compiler rejects compositions that
// would violate the algorithm's integer bounds; see poly.go.
package mlkem
