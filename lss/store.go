package lss

// elementStore holds the sorted input and answers predecessor queries over
// bounded slices of it. It never allocates after construction; both scan
// strategies index directly into the backing slice.
type elementStore struct {
	values    []Value
	linThresh int
}

func newElementStore(values []Value, linThresh int) elementStore {
	return elementStore{values: values, linThresh: linThresh}
}

// index returns the value at position i. i must be in range; callers own
// the bounds check (the LSS layers never hand out an out-of-range index).
func (s *elementStore) index(i uint64) Value {
	return s.values[i]
}

func (s *elementStore) len() uint64 { return uint64(len(s.values)) }

// bsearchPredecessor returns the largest value in [lo, hi) strictly less
// than q. 0 <= lo <= hi <= len(values). lo is only the start of a bounded
// slack window around a leaf bucket (spec §4.2, §4.6), not necessarily the
// start of the whole store: a query can fall below its own bucket's first
// recorded element, with the true predecessor sitting just before lo in a
// distinct, preceding bucket. So when values[lo] >= q, values[lo-1] is
// returned (without comparing it to q), and (0, false) is returned only when
// lo is the first element in the store.
func (s *elementStore) bsearchPredecessor(q Value, lo, hi uint64) (Value, bool) {
	if lo >= hi {
		return 0, false
	}
	if s.values[lo] >= q {
		if lo > 0 {
			return s.values[lo-1], true
		}
		return 0, false
	}
	// Standard lower-bound search for the first index whose value is >= q;
	// the answer is one slot back from it. values[lo] < q is already known,
	// so the result index never underflows below lo.
	l, h := lo, hi
	for l < h {
		mid := l + (h-l)/2
		if s.values[mid] < q {
			l = mid + 1
		} else {
			h = mid
		}
	}
	return s.values[l-1], true
}

// lsearchPredecessor scans forward from start and returns the largest value
// strictly less than q. Preferred over bsearchPredecessor when the slice is
// known to be small (below the tuned linear-scan threshold), since a short
// linear scan avoids the branch mispredictions of binary search.
func (s *elementStore) lsearchPredecessor(q Value, start uint64) (Value, bool) {
	pos := start
	n := uint64(len(s.values))
	for pos < n && s.values[pos] < q {
		pos++
	}
	if pos == 0 {
		return 0, false
	}
	return s.values[pos-1], true
}

// predecessorFrom dispatches between the two scan strategies based on the
// configured linear-scan threshold. The window starts one leaf-bucket span
// before seed and extends one span after it (spec §4.2, §4.6): a query can
// land below its own leaf bucket's first stored element just as easily as
// it can land past it, so the scan widens on both sides of seed rather than
// only scanning forward.
func (s *elementStore) predecessorFrom(q Value, seed uint64, span uint64) (Value, bool) {
	lo := uint64(0)
	if seed > span {
		lo = seed - span
	}
	hi := seed + span
	if hi > s.len() {
		hi = s.len()
	}
	if hi-lo <= uint64(s.linThresh) {
		return s.lsearchPredecessor(q, lo)
	}
	return s.bsearchPredecessor(q, lo, hi)
}
