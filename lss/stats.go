package lss

import "fmt"

// Stats reports per-level node counts through sink, reproducing the RESULT
// line format of original_source's YFT::print_stats: one line per level
// (leaf=0, branch levels 1..) carrying the level's node count relative to
// the input size and to its level's capacity, plus a level=-1 totals line
// carrying the total node count and the element count.
func (h *Handle) Stats(sink Logger) {
	total := h.leaf.table.Len()
	n := float64(len(h.store.values))
	sink.Result(fmt.Sprintf(
		"level=0\tnodes=%d\trelative_to_input=%g\trelative_to_capacity=%g",
		h.leaf.table.Len(), float64(h.leaf.table.Len())/n, capacityRatio(h.leaf.table.Len(), h.width-h.leafLevel),
	))
	for level := 1; level <= len(h.branch); level++ {
		nodes := h.branch[level-1].Len()
		total += nodes
		sink.Result(fmt.Sprintf(
			"level=%d\tnodes=%d\trelative_to_input=%g\trelative_to_capacity=%g",
			level, nodes, float64(nodes)/n, capacityRatio(nodes, h.width-h.leafLevel-level),
		))
	}
	sink.Result(fmt.Sprintf("level=-1\tnodes=%d\telements=%d", total, len(h.store.values)))
}

// capacityRatio divides nodes by the dense capacity 2^bits a level could
// theoretically hold, guarding against a non-positive exponent.
func capacityRatio(nodes, bits int) float64 {
	if bits <= 0 {
		return 0
	}
	cap := uint64(1) << uint(bits)
	return float64(nodes) / float64(cap)
}
