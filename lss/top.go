package lss

// topTable is the LSS top table (spec §4.4): a dense array of 2^t slots
// indexed by the top t bits of a query, answering predecessor queries whose
// ancestor chain is absent all the way down to the branch level directly
// above it.
type topTable struct {
	topLevel int // t: bits of resolution the table indexes
	width    int
	slots    []Value
	filled   []bool // tracks which slots hold a real predecessor
}

// buildTopTable is grounded on original_source's yft40_split_small.rs: each
// element is the predecessor for its own top slot when it is the left child
// of its enclosing top-bucket pair (nothing finer will beat it for queries
// in that slot), or for the *next* slot when it is the right child (it is
// the rightmost element before that slot's range begins). A forward pass
// then propagates the last known predecessor into any slot no element
// claimed directly. filled tracks "no predecessor" out of band, since every
// value in the universe (including 2^Width-1) may legitimately be stored.
func buildTopTable(values []Value, width, topLevel int) *topTable {
	n := 1 << uint(topLevel)
	slots := make([]Value, n)
	filled := make([]bool, n)
	for _, v := range values {
		topPos := topTablePosition(v, width, topLevel)
		if isLeftChild(topTablePosition(v, width, topLevel+1)) {
			slots[topPos], filled[topPos] = v, true
		} else if topPos+1 < uint64(n) {
			slots[topPos+1], filled[topPos+1] = v, true
		}
	}
	var last Value
	haveLast := false
	for i := range slots {
		if !filled[i] {
			if haveLast {
				slots[i], filled[i] = last, true
			}
		} else {
			last, haveLast = slots[i], true
		}
	}
	return &topTable{topLevel: topLevel, width: width, slots: slots, filled: filled}
}

// topTablePosition computes the top t=resolution bits of v for a universe
// of the given width: v >> (width - resolution).
func topTablePosition(v Value, width, resolution int) uint64 {
	shift := width - resolution
	if shift <= 0 {
		return v
	}
	return v >> uint(shift)
}

// lookup returns the predecessor recorded for the top t bits of q, or
// (0, false) if no element ever claimed that slot.
func (t *topTable) lookup(q Value) (Value, bool) {
	pos := topTablePosition(q, t.width, t.topLevel)
	if !t.filled[pos] {
		return 0, false
	}
	return t.slots[pos], true
}
