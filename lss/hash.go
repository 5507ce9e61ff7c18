package lss

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"lukechampine.com/blake3"
)

// mixKey derives the bucket hash for a truncated prefix key. HashFast uses
// xxhash, a fast non-cryptographic mix that avoids the arithmetic-progression
// pathology plain multiplicative hashing hits on dense runs of truncated
// prefixes. HashCrypto runs the key through BLAKE3 for callers who need a
// mix an adversary can't target.
func mixKey(key uint64, kind HashKind) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	if kind == HashCrypto {
		sum := blake3.Sum256(buf[:])
		return binary.LittleEndian.Uint64(sum[:8])
	}
	return xxhash.Sum64(buf[:])
}

// levelMap is an open-addressing hash table keyed by a uint64 prefix, used
// for every LSS level (leaf and branch). It exists instead of Go's builtin
// map so the hash mix is an explicit, swappable policy (HashKind) rather
// than the runtime's internal, unobservable seed.
type levelMap[V any] struct {
	kind    HashKind
	keys    []uint64
	vals    []V
	used    []bool
	mask    uint64
	count   int
}

// newLevelMap allocates a table sized for n entries at load factor <=
// maxLoad (e.g. 0.9 per spec §4.2). Capacity is rounded up to a power of two
// so index masking replaces modulo.
func newLevelMap[V any](n int, maxLoad float64, kind HashKind) *levelMap[V] {
	if n < 1 {
		n = 1
	}
	cap := nextPow2(uint64(float64(n)/maxLoad) + 1)
	if cap < 2 {
		cap = 2
	}
	return &levelMap[V]{
		kind: kind,
		keys: make([]uint64, cap),
		vals: make([]V, cap),
		used: make([]bool, cap),
		mask: cap - 1,
	}
}

func nextPow2(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Len reports the number of entries currently stored.
func (m *levelMap[V]) Len() int { return m.count }

// Get returns the value stored for key, and whether it was present.
func (m *levelMap[V]) Get(key uint64) (V, bool) {
	idx := mixKey(key, m.kind) & m.mask
	for {
		if !m.used[idx] {
			var zero V
			return zero, false
		}
		if m.keys[idx] == key {
			return m.vals[idx], true
		}
		idx = (idx + 1) & m.mask
	}
}

// Contains reports whether key is present, without paying for the value copy.
func (m *levelMap[V]) Contains(key uint64) bool {
	idx := mixKey(key, m.kind) & m.mask
	for {
		if !m.used[idx] {
			return false
		}
		if m.keys[idx] == key {
			return true
		}
		idx = (idx + 1) & m.mask
	}
}

// Set inserts or overwrites the value stored for key. Before inserting, Set
// doubles the table once the entry count reaches 90% of capacity, so the
// probe loops always find a free slot.
func (m *levelMap[V]) Set(key uint64, val V) {
	if m.count*10 >= len(m.keys)*9 {
		m.grow()
	}
	m.insert(key, val)
}

func (m *levelMap[V]) insert(key uint64, val V) {
	idx := mixKey(key, m.kind) & m.mask
	for {
		if !m.used[idx] {
			m.used[idx] = true
			m.keys[idx] = key
			m.vals[idx] = val
			m.count++
			return
		}
		if m.keys[idx] == key {
			m.vals[idx] = val
			return
		}
		idx = (idx + 1) & m.mask
	}
}

// Delete removes key if present. Uses backward-shift deletion so later
// lookups along the probe chain remain correct without tombstones.
func (m *levelMap[V]) Delete(key uint64) {
	idx := mixKey(key, m.kind) & m.mask
	for {
		if !m.used[idx] {
			return
		}
		if m.keys[idx] == key {
			m.used[idx] = false
			m.count--
			m.backwardShift(idx)
			return
		}
		idx = (idx + 1) & m.mask
	}
}

func (m *levelMap[V]) backwardShift(hole uint64) {
	idx := (hole + 1) & m.mask
	for m.used[idx] {
		home := mixKey(m.keys[idx], m.kind) & m.mask
		// If the home slot of keys[idx] doesn't lie strictly between hole
		// (exclusive) and idx (inclusive) in probe order, it can move back.
		if probeDistance(home, hole, m.mask) <= probeDistance(home, idx, m.mask) {
			m.keys[hole] = m.keys[idx]
			m.vals[hole] = m.vals[idx]
			m.used[hole] = true
			m.used[idx] = false
			hole = idx
		}
		idx = (idx + 1) & m.mask
	}
}

func probeDistance(home, pos, mask uint64) uint64 {
	return (pos - home) & mask
}

func (m *levelMap[V]) grow() {
	old := *m
	newCap := nextPow2(uint64(len(m.keys)) * 2)
	m.keys = make([]uint64, newCap)
	m.vals = make([]V, newCap)
	m.used = make([]bool, newCap)
	m.mask = newCap - 1
	m.count = 0
	for i := range old.used {
		if old.used[i] {
			m.insert(old.keys[i], old.vals[i])
		}
	}
}
