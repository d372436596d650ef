package bloom

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// HashScheme selects the 128-bit hash used to derive bit positions.
// All schemes feed the same double-hashing derivation, so two filters
// agree on membership exactly when they share a scheme, seed, and
// geometry.
type HashScheme uint8

const (
	// HashSHA256 derives positions from a SHA-256 digest. It is the
	// default: slowest of the three, but available everywhere and
	// reproducible byte for byte in other languages.
	HashSHA256 HashScheme = iota

	// HashXXH3 derives positions from the 128-bit XXH3 hash.
	HashXXH3

	// HashMurmur3 derives positions from the 128-bit MurmurHash3 hash.
	HashMurmur3
)

// String returns the scheme name as accepted by ParseHashScheme.
func (s HashScheme) String() string {
	switch s {
	case HashSHA256:
		return "sha256"
	case HashXXH3:
		return "xxh3"
	case HashMurmur3:
		return "murmur3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseHashScheme maps a scheme name to its constant.
func ParseHashScheme(name string) (HashScheme, error) {
	switch name {
	case "sha256":
		return HashSHA256, nil
	case "xxh3":
		return HashXXH3, nil
	case "murmur3":
		return HashMurmur3, nil
	}
	return 0, fmt.Errorf("%w: unknown hash scheme %q", ErrInvalidParameter, name)
}

func (s HashScheme) valid() bool {
	return s <= HashMurmur3
}

// hashPair computes the two 64-bit hash halves for data under the given
// scheme and seed.
func hashPair(scheme HashScheme, seed uint64, data []byte) (h1, h2 uint64) {
	switch scheme {
	case HashXXH3:
		sum := xxh3.Hash128Seed(data, seed)
		return sum.Lo, sum.Hi
	case HashMurmur3:
		// murmur3 takes a 32-bit seed; fold the high half in.
		return murmur3.Sum128WithSeed(data, uint32(seed^seed>>32))
	default:
		return sha256Pair(seed, data)
	}
}

// sha256Pair hashes data with SHA-256 and splits the first 16 digest
// bytes into two little-endian uint64 halves. A non-zero seed is
// prepended as 8 little-endian bytes; a zero seed hashes the element
// alone, so unseeded filters match the plain SHA-256 layout.
func sha256Pair(seed uint64, data []byte) (h1, h2 uint64) {
	var sum [sha256.Size]byte
	if seed == 0 {
		sum = sha256.Sum256(data)
	} else {
		h := sha256.New()
		var sb [8]byte
		binary.LittleEndian.PutUint64(sb[:], seed)
		h.Write(sb[:])
		h.Write(data)
		h.Sum(sum[:0])
	}
	h1 = binary.LittleEndian.Uint64(sum[0:8])
	h2 = binary.LittleEndian.Uint64(sum[8:16])
	return h1, h2
}
