package keytab

import "math/big"

// nFold implements the RFC 3961 §5.1 n-fold operation: it expands or
// contracts input to exactly outLen bytes by replicating a 13-bit
// rotation of input up to lcm(len(input), outLen) bits and folding the
// result with ones'-complement addition.
func nFold(input []byte, outLen int) []byte {
	inLenBits := len(input) * 8
	outLenBits := outLen * 8
	l := lcmInt(inLenBits, outLenBits)
	reps := l / inLenBits

	totalBytes := l / 8
	buf := make([]byte, 0, totalBytes)
	rotation := 0
	for i := 0; i < reps; i++ {
		buf = append(buf, rotateRightBits(input, rotation)...)
		rotation = (rotation + 13) % inLenBits
	}

	sum := make([]byte, outLen)
	for i := 0; i < totalBytes; i += outLen {
		onesComplementAddInPlace(sum, buf[i:i+outLen])
	}
	return sum
}

// rotateRightBits rotates the big-endian bit string represented by b
// right by r bits, returning a new slice of the same length.
func rotateRightBits(b []byte, r int) []byte {
	nbits := len(b) * 8
	if nbits == 0 {
		return append([]byte(nil), b...)
	}
	r = r % nbits
	if r == 0 {
		return append([]byte(nil), b...)
	}

	x := new(big.Int).SetBytes(b)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(nbits)), big.NewInt(1))

	right := new(big.Int).Rsh(x, uint(r))
	left := new(big.Int).Lsh(x, uint(nbits-r))
	left.And(left, mask)

	res := new(big.Int).Or(right, left)
	res.And(res, mask)

	out := make([]byte, len(b))
	resBytes := res.Bytes()
	copy(out[len(out)-len(resBytes):], resBytes)
	return out
}

// onesComplementAddInPlace adds block into sum using ones'-complement
// addition with end-around carry, per RFC 3961 §5.1.
func onesComplementAddInPlace(sum, block []byte) {
	n := len(sum)
	carry := 0
	result := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		t := int(sum[i]) + int(block[i]) + carry
		result[i] = byte(t & 0xFF)
		carry = t >> 8
	}
	for carry > 0 {
		c := carry
		carry = 0
		for i := n - 1; i >= 0 && c > 0; i-- {
			t := int(result[i]) + c
			result[i] = byte(t & 0xFF)
			c = t >> 8
		}
		carry = c
	}
	copy(sum, result)
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcmInt(a, b int) int {
	return a / gcdInt(a, b) * b
}
