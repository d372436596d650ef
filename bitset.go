package bloom

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidSize is returned when a filter or bit array is constructed
// with a length of zero or beyond 1<<53 bits.
var ErrInvalidSize = errors.New("bloom: invalid bit array length")

// maxBitsetBits caps bit array length at 1 PiB of packed bytes. The cap
// keeps the byte math in bitsetBytes inside uint64 and int range.
const maxBitsetBits = uint64(1) << 53

// Bitset is a fixed-length bit array backed by a packed byte buffer.
// Bit i lives in byte i/8 at position i%8 (LSB first), so the in-memory
// layout matches the serialized form byte for byte.
type Bitset struct {
	data   []byte
	length uint64
}

// NewBitset creates a zeroed bit array of the given length in bits.
// The length must be at least 1 and at most 1<<53.
func NewBitset(length uint64) (*Bitset, error) {
	if err := checkBitsetLength(length); err != nil {
		return nil, err
	}
	return &Bitset{
		data:   make([]byte, bitsetBytes(length)),
		length: length,
	}, nil
}

// BitsetFromBytes reconstructs a bit array from its packed byte form.
// data must hold exactly ceil(length/8) bytes, and length is bounded as
// in NewBitset. Padding bits in the final byte are cleared so popcounts
// and comparisons stay well-defined.
func BitsetFromBytes(data []byte, length uint64) (*Bitset, error) {
	if err := checkBitsetLength(length); err != nil {
		return nil, err
	}
	want := bitsetBytes(length)
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("%w: bit array length mismatch (got %d bytes, expected %d)", ErrCorruptData, len(data), want)
	}
	b := &Bitset{
		data:   make([]byte, want),
		length: length,
	}
	copy(b.data, data)
	if rem := length % 8; rem != 0 {
		b.data[want-1] &= byte(1<<rem) - 1
	}
	return b, nil
}

func checkBitsetLength(length uint64) error {
	if length == 0 {
		return fmt.Errorf("%w: length must be greater than zero", ErrInvalidSize)
	}
	if length > maxBitsetBits {
		return fmt.Errorf("%w: %d bits exceeds the %d bit maximum", ErrInvalidSize, length, maxBitsetBits)
	}
	return nil
}

// bitsetBytes returns the number of bytes needed to hold length bits.
// Callers check the length against maxBitsetBits first so the addition
// cannot wrap.
func bitsetBytes(length uint64) uint64 {
	return (length + 7) / 8
}

// Len returns the length of the bit array in bits.
func (b *Bitset) Len() uint64 {
	return b.length
}

// Set sets bit i. It panics if i is out of range.
func (b *Bitset) Set(i uint64) {
	if i >= b.length {
		panic(fmt.Sprintf("bloom: bit index %d out of range [0, %d)", i, b.length))
	}
	b.data[i>>3] |= 1 << (i & 7)
}

// Get reports whether bit i is set. It panics if i is out of range.
func (b *Bitset) Get(i uint64) bool {
	if i >= b.length {
		panic(fmt.Sprintf("bloom: bit index %d out of range [0, %d)", i, b.length))
	}
	return b.data[i>>3]&(1<<(i&7)) != 0
}

// Bytes returns a copy of the packed byte buffer.
func (b *Bitset) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// OnesCount returns the number of set bits.
func (b *Bitset) OnesCount() uint64 {
	var n uint64
	for _, x := range b.data {
		n += uint64(bits.OnesCount8(x))
	}
	return n
}
