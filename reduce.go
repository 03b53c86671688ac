// reduce.go - Montgomery, Barrett, and conditional-subtract reduction.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

// qInv is q^-1 mod 2^16, used by montgomeryReduce. q=3329.
const qInv = 62209

// rSquaredModQ is R^2 mod q for R=2^16, used by toMontgomery.
const rSquaredModQ = 1353

// barrettApproximation is the fixed-point approximation of 1/q used by
// barrettReduce: 20159/2^26 ~= 1/q.
const barrettApproximation = 20159

// montgomeryReduce computes x*R^-1 mod q, for R=2^16. Given
// -2^15*q <= x < 2^15*q, returns y with -q < y < q and y = x*2^-16 mod q.
func montgomeryReduce(x int32) int16 {
	m := int16(int32(int16(x)) * qInv)
	t := (x - int32(m)*q) >> 16
	return int16(t)
}

// toMontgomery converts x into Montgomery form, returning x*2^16 mod q.
func toMontgomery(x int16) int16 {
	return montgomeryReduce(int32(x) * rSquaredModQ)
}

// barrettReduce computes x mod q for the full int16 domain, returning a
// value in [0, q]. The result is exactly q only when x is a negative
// multiple of q; callers that require a canonical representative in
// [0, q) must follow with condSubQ.
func barrettReduce(x int16) int16 {
	insideFloor := int16((int32(x) * barrettApproximation) >> 26)
	return x - insideFloor*int16(q)
}

// condSubQ conditionally subtracts q from x: given 0 <= x < 2*q (the
// output range of barrettReduce plus its q edge case), returns x-q if
// x >= q, and x otherwise.
func condSubQ(x int16) int16 {
	result := x - int16(q)
	result += (result >> 15) & int16(q)
	return result
}
