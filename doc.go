// Package bloom provides a portable, deterministic bloom filter for Go.
//
// A bloom filter is a space-efficient probabilistic data structure that
// tests whether an element is a member of a set. False positive matches
// are possible, but false negatives are not: if the filter says an
// element is not present, it definitely is not. If it says an element
// might be present, it could be a false positive.
//
// # Double Hashing
//
// Instead of computing k independent hash functions per element, the
// filter computes a single 128-bit hash, splits it into two 64-bit
// halves h1 and h2, and derives probe i as:
//
//	pos_i = (h1 + i*h2) mod m
//
// This technique, analyzed in "Less Hashing, Same Performance", matches
// the accuracy of k independent hashes at a fraction of the cost. h2 is
// forced odd before reduction and a stride of zero falls back to 1, so
// the k probes never collapse onto a single bit.
//
// # Hash Schemes
//
// Three schemes are available via [WithHashScheme]:
//
// [HashSHA256] (the default) hashes with SHA-256 and reads the two
// halves little-endian from the first 16 digest bytes. It is the
// slowest option but trivially reproducible in any language, which
// makes serialized filters portable across implementations.
//
// [HashXXH3] and [HashMurmur3] use the 128-bit XXH3 and MurmurHash3
// functions. Both are roughly an order of magnitude faster than
// SHA-256 and are the right choice when filters never leave Go.
//
// All schemes accept a seed ([WithSeed]). Two filters agree on bit
// patterns only when they share a scheme, a seed, and a geometry, so
// the three are recorded in the serialized header.
//
// # Choosing Parameters
//
// Use [NewWithEstimates] with your expected number of items and desired
// false positive rate:
//
//	// Filter for 1 million items with 1% false positive rate
//	f, err := bloom.NewWithEstimates(1_000_000, 0.01)
//
// It sizes the bit array with [RequiredBits] and picks the hash round
// count with [OptimalK]:
//
//	m = ceil(-n * ln(p) / ln(2)²)
//	k = round((m/n) * ln(2))
//
// Example: 1 million items at 1% FP rate ≈ 1.2 MB. For explicit control
// over geometry, use [New] with m and k directly.
//
// The false positive rate degrades as items are added beyond the sizing
// estimate. [Filter.EstimatedFalsePositiveRate] reports the expected
// rate for the current insertion count, and [Filter.FillRatio] the
// fraction of bits set (a well-sized filter sits near 0.5 at capacity).
//
// # Serialization
//
// [Filter.MarshalBinary] and [UnmarshalBinary] convert filters to and
// from a self-describing byte format: a fixed header (magic, version,
// scheme, geometry, seed, insertion count) followed by the packed bit
// array. The format is stable across versions and platforms; a filter
// written on one machine answers queries identically on another.
// Malformed input is rejected with an error wrapping [ErrCorruptData],
// never a panic.
//
// # Thread Safety
//
// [Filter] is NOT thread-safe. Guard it with external synchronization
// when sharing one across goroutines. Independent filters need no
// coordination.
//
// # References
//
//   - Space/Time Trade-offs in Hash Coding with Allowable Errors: https://dl.acm.org/doi/10.1145/362686.362692
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
package bloom
