// Package crypto implements the digest and signature primitives of the
// network: the Keccak sponge hash (original padding, not the standardized
// SHA-3 variant) and recoverable secp256k1 ECDSA signing.
package crypto

import (
	"errors"
	"fmt"
	"hash"
	"math/bits"

	"github.com/tourze/tron-api/common"
)

// DigestLength is the byte length of the digest used for transaction
// identifiers and signing hashes.
const DigestLength = 32

// ErrUnsupportedOutputSize is returned when a digest width other than
// 224, 256, 384 or 512 bits is requested.
var ErrUnsupportedOutputSize = errors.New("unsupported digest output size")

// dsbyteKeccak is the original Keccak domain separator. The network predates
// the FIPS 202 padding change, so 0x06 must never be used here.
const dsbyteKeccak = 0x01

// dsbyteShake is the domain separator of the extendable output variant.
const dsbyteShake = 0x1f

// Keccak computes the outputBits wide Keccak digest over the concatenation
// of data. Supported widths are 224, 256, 384 and 512 bits.
func Keccak(outputBits int, data ...[]byte) ([]byte, error) {
	switch outputBits {
	case 224, 256, 384, 512:
	default:
		return nil, fmt.Errorf("%w: %v bits", ErrUnsupportedOutputSize, outputBits)
	}
	d := newDigest(outputBits, dsbyteKeccak)
	for _, b := range data {
		// Write of a sponge digest never errors
		_, _ = d.Write(b)
	}
	return d.Sum(nil), nil
}

// Keccak256 computes the 256 bit Keccak digest over the concatenation
// of data.
func Keccak256(data ...[]byte) []byte {
	sum, _ := Keccak(256, data...)
	return sum
}

// Keccak256Hash computes the 256 bit Keccak digest as a Hash value.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	copy(h[:], Keccak256(data...))
	return h
}

// NewKeccak returns a new hash.Hash computing the Keccak digest of the
// given width. It fails for widths other than 224, 256, 384 and 512.
func NewKeccak(outputBits int) (hash.Hash, error) {
	switch outputBits {
	case 224, 256, 384, 512:
		return newDigest(outputBits, dsbyteKeccak), nil
	}
	return nil, fmt.Errorf("%w: %v bits", ErrUnsupportedOutputSize, outputBits)
}

// NewShake returns a new extendable output digest at the given security
// level (128 or 256 bits). Read may be called repeatedly to squeeze an
// output of arbitrary length.
func NewShake(securityBits int) (*Shake, error) {
	switch securityBits {
	case 128, 256:
		return &Shake{digest{rate: 200 - securityBits/4, dsbyte: dsbyteShake}}, nil
	}
	return nil, fmt.Errorf("%w: security level %v bits", ErrUnsupportedOutputSize, securityBits)
}

// Shake is an extendable output sponge. It absorbs through Write and
// squeezes through Read; writing after the first Read is not allowed.
type Shake struct {
	digest
}

// Read squeezes len(out) bytes out of the sponge.
func (s *Shake) Read(out []byte) (int, error) {
	if !s.squeezing {
		s.padAndPermute()
	}
	n := len(out)
	for len(out) > 0 {
		if s.n == s.rate {
			keccakF1600(&s.a)
			s.extract()
		}
		c := copy(out, s.buf[s.n:s.rate])
		s.n += c
		out = out[c:]
	}
	return n, nil
}

func newDigest(outputBits int, dsbyte byte) *digest {
	// rate = width - capacity, capacity is twice the output size
	return &digest{rate: 200 - outputBits/4, size: outputBits / 8, dsbyte: dsbyte}
}

// digest is a sponge state absorbing input blocks of rate bytes.
type digest struct {
	a         [25]uint64 // state lanes, a[x+5*y]
	buf       [200]byte
	n         int // bytes buffered (absorbing) or read offset (squeezing)
	rate      int
	size      int
	dsbyte    byte
	squeezing bool
}

func (d *digest) Size() int      { return d.size }
func (d *digest) BlockSize() int { return d.rate }

func (d *digest) Reset() {
	d.a = [25]uint64{}
	d.n = 0
	d.squeezing = false
}

func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		c := copy(d.buf[d.n:d.rate], p)
		d.n += c
		p = p[c:]
		if d.n == d.rate {
			d.absorb()
		}
	}
	return n, nil
}

// Sum appends the digest to b. It does not change the underlying state so
// further writes remain valid.
func (d *digest) Sum(b []byte) []byte {
	dup := *d
	dup.padAndPermute()
	return append(b, dup.buf[:dup.size]...)
}

// absorb xors the buffered block into the state and permutes.
func (d *digest) absorb() {
	for i := 0; i < d.rate/8; i++ {
		d.a[i] ^= le64(d.buf[i*8:])
	}
	keccakF1600(&d.a)
	d.n = 0
}

// padAndPermute applies multi-rate padding with the domain separator and
// switches the sponge into the squeezing phase.
func (d *digest) padAndPermute() {
	d.buf[d.n] = d.dsbyte
	for i := d.n + 1; i < d.rate; i++ {
		d.buf[i] = 0
	}
	d.buf[d.rate-1] |= 0x80
	d.n = d.rate
	d.absorb()
	d.extract()
	d.squeezing = true
}

// extract serializes one rate-sized block of the state into the buffer.
func (d *digest) extract() {
	for i := 0; i < d.rate/8; i++ {
		putLe64(d.buf[i*8:], d.a[i])
	}
	d.n = 0
}

func le64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLe64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// round constants
var keccakRC = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotation offsets, indexed [x][y]
var keccakRot = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// keccakF1600 applies the 24 round Keccak-f permutation to the state.
func keccakF1600(a *[25]uint64) {
	var c, d [5]uint64
	var b [25]uint64
	for r := 0; r < 24; r++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 25; y += 5 {
				a[x+y] ^= d[x]
			}
		}
		// rho and pi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y+5*((2*x+3*y)%5)] = bits.RotateLeft64(a[x+5*y], keccakRot[x][y])
			}
		}
		// chi
		for x := 0; x < 5; x++ {
			for y := 0; y < 25; y += 5 {
				a[x+y] = b[x+y] ^ (^b[(x+1)%5+y] & b[(x+2)%5+y])
			}
		}
		// iota
		a[0] ^= keccakRC[r]
	}
}
