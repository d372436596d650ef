package bloom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Filter is a fixed-size bloom filter. It answers membership queries
// with possible false positives and no false negatives: Test returns
// false only for elements that were never added.
//
// Bit positions are derived with double hashing: a single 128-bit hash
// is split into two 64-bit halves h1 and h2, and round i probes
// position (h1 + i*h2) mod m. This gives k probes from one hash
// computation with accuracy equivalent to k independent hash functions.
//
// Filter is not safe for concurrent use. Callers sharing one across
// goroutines must synchronize.
type Filter struct {
	bits   *Bitset
	m      uint64 // Number of bits
	k      uint64 // Number of hash rounds per element
	seed   uint64 // Hash seed (0 by default)
	scheme HashScheme
	count  uint64 // Number of items added
}

// Option configures optional filter behavior at construction time.
type Option func(*Filter)

// WithSeed sets the hash seed. Two filters produce identical bit
// patterns for the same input only when they share a seed and scheme.
func WithSeed(seed uint64) Option {
	return func(f *Filter) { f.seed = seed }
}

// WithHashScheme selects the hash used to derive bit positions.
// The default is HashSHA256.
func WithHashScheme(scheme HashScheme) Option {
	return func(f *Filter) { f.scheme = scheme }
}

// New creates a bloom filter with m bits and k hash rounds per element.
// m and k must both be greater than zero, and m may not exceed 1<<53
// bits (1 PiB of storage).
func New(m, k uint64, opts ...Option) (*Filter, error) {
	if k == 0 {
		return nil, fmt.Errorf("%w: hash rounds must be greater than zero", ErrInvalidParameter)
	}

	bits, err := NewBitset(m)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		bits:   bits,
		m:      m,
		k:      k,
		scheme: HashSHA256,
	}
	for _, opt := range opts {
		opt(f)
	}
	if !f.scheme.valid() {
		return nil, fmt.Errorf("%w: unknown hash scheme %d", ErrInvalidParameter, uint8(f.scheme))
	}

	return f, nil
}

// NewWithEstimates creates a bloom filter sized for the expected number
// of items and desired false positive rate, using RequiredBits and
// OptimalK.
func NewWithEstimates(n uint64, p float64, opts ...Option) (*Filter, error) {
	m, err := RequiredBits(n, p)
	if err != nil {
		return nil, err
	}
	return New(m, OptimalK(m, n), opts...)
}

// Add adds data to the bloom filter.
func (f *Filter) Add(data []byte) {
	pos, step := f.locations(data)
	for i := uint64(0); i < f.k; i++ {
		f.bits.Set(pos)
		pos = (pos + step) % f.m
	}
	f.count++
}

// AddString adds a string to the bloom filter.
func (f *Filter) AddString(s string) {
	f.Add([]byte(s))
}

// Test checks if data might be in the bloom filter.
// Returns true if the data might be present (with false positive
// probability), or false if the data is definitely not present.
func (f *Filter) Test(data []byte) bool {
	pos, step := f.locations(data)
	for i := uint64(0); i < f.k; i++ {
		if !f.bits.Get(pos) {
			return false
		}
		pos = (pos + step) % f.m
	}
	return true
}

// TestString checks if a string might be in the bloom filter.
func (f *Filter) TestString(s string) bool {
	return f.Test([]byte(s))
}

// locations derives the first probe position and the stride between
// probes for data. h2 is forced odd before reduction, and a stride
// that reduces to zero mod m falls back to 1, so consecutive probes
// always land on distinct bits.
func (f *Filter) locations(data []byte) (pos, step uint64) {
	h1, h2 := hashPair(f.scheme, f.seed, data)
	h2 |= 1

	pos = h1 % f.m
	step = h2 % f.m
	if step == 0 {
		step = 1
	}
	return pos, step
}

// M returns the size of the bit array in bits.
func (f *Filter) M() uint64 {
	return f.m
}

// K returns the number of hash rounds per element.
func (f *Filter) K() uint64 {
	return f.k
}

// Seed returns the hash seed.
func (f *Filter) Seed() uint64 {
	return f.seed
}

// Scheme returns the hash scheme.
func (f *Filter) Scheme() HashScheme {
	return f.scheme
}

// Count returns the number of items added to the filter. The value
// tracks Add calls, so re-adding an element counts again.
func (f *Filter) Count() uint64 {
	return f.count
}

// FillRatio returns the proportion of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.OnesCount()) / float64(f.m)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.m, f.k, f.count)
}

// Serialization constants and errors.
const (
	// serializeVersion is the current serialization format version.
	serializeVersion byte = 1

	// headerSize is the size of the serialization header in bytes.
	// Magic (4) + Version (1) + Scheme (1) + M (8) + K (8) + Seed (8) + Count (8) = 38 bytes
	headerSize = 38
)

// serializeMagic identifies serialized bloom filter data.
var serializeMagic = [4]byte{'B', 'L', 'M', 'F'}

// ErrCorruptData is returned when serialized data is malformed,
// truncated, or fails validation.
var ErrCorruptData = errors.New("bloom: corrupt serialized data")

// MarshalBinary serializes the bloom filter to a byte slice.
// The serialized format is:
//   - Magic (4 bytes): "BLMF"
//   - Version (1 byte): serialization format version
//   - Scheme (1 byte): hash scheme
//   - M (8 bytes): bit array length in bits (little-endian uint64)
//   - K (8 bytes): number of hash rounds (little-endian uint64)
//   - Seed (8 bytes): hash seed (little-endian uint64)
//   - Count (8 bytes): number of items added (little-endian uint64)
//   - Bits (ceil(m/8) bytes): packed bit array, bit i in byte i/8 at position i%8
func (f *Filter) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerSize+bitsetBytes(f.m))

	// Write header
	copy(buf[0:4], serializeMagic[:])
	buf[4] = serializeVersion
	buf[5] = byte(f.scheme)
	binary.LittleEndian.PutUint64(buf[6:14], f.m)
	binary.LittleEndian.PutUint64(buf[14:22], f.k)
	binary.LittleEndian.PutUint64(buf[22:30], f.seed)
	binary.LittleEndian.PutUint64(buf[30:38], f.count)

	// Write bit array
	copy(buf[headerSize:], f.bits.data)

	return buf, nil
}

// UnmarshalBinary deserializes a bloom filter from a byte slice
// produced by MarshalBinary. All failures wrap ErrCorruptData.
func UnmarshalBinary(data []byte) (*Filter, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: data too short (got %d bytes, need at least %d)", ErrCorruptData, len(data), headerSize)
	}

	// Validate magic and version
	if !bytes.Equal(data[0:4], serializeMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptData, data[0:4])
	}
	if version := data[4]; version != serializeVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrCorruptData, version, serializeVersion)
	}
	scheme := HashScheme(data[5])
	if !scheme.valid() {
		return nil, fmt.Errorf("%w: unknown hash scheme %d", ErrCorruptData, uint8(scheme))
	}

	// Read header fields
	m := binary.LittleEndian.Uint64(data[6:14])
	k := binary.LittleEndian.Uint64(data[14:22])
	seed := binary.LittleEndian.Uint64(data[22:30])
	count := binary.LittleEndian.Uint64(data[30:38])

	// Validate dimensions before sizing the allocation. The bound on m
	// matches the construction-time cap in NewBitset.
	if m == 0 {
		return nil, fmt.Errorf("%w: bit array length cannot be zero", ErrCorruptData)
	}
	if m > maxBitsetBits {
		return nil, fmt.Errorf("%w: bit array too large (%d bits)", ErrCorruptData, m)
	}
	if k == 0 {
		return nil, fmt.Errorf("%w: hash rounds cannot be zero", ErrCorruptData)
	}

	// Validate data length
	expectedLen := headerSize + bitsetBytes(m)
	if uint64(len(data)) != expectedLen {
		return nil, fmt.Errorf("%w: data length mismatch (got %d bytes, expected %d)", ErrCorruptData, len(data), expectedLen)
	}

	bits, err := BitsetFromBytes(data[headerSize:], m)
	if err != nil {
		return nil, err
	}

	return &Filter{
		bits:   bits,
		m:      m,
		k:      k,
		seed:   seed,
		scheme: scheme,
		count:  count,
	}, nil
}
