//go:build debug

package lss

// PredecessorWithStats runs the same search as Predecessor but additionally
// reports the depth the search settled on, how many level probes it took,
// and how many of those probes missed. Built only with -tags debug; it
// exists for the parameter tuner's own diagnostics, not the hot query path.
func (h *Handle) PredecessorWithStats(q Value) (answer Value, found bool, exitDepth int, steps int, misses int) {
	if q <= h.store.index(0) {
		return 0, false, 0, 0, 0
	}

	lo, hi := 0, h.levels
	for lo != hi {
		mid := (lo + hi) / 2
		steps++
		if mid == 0 {
			if entry, ok := h.leaf.get(calcPath(q, h.leafLevel)); ok {
				v, f := h.store.predecessorFrom(q, entry.firstIndex, h.leaf.bucketSpan())
				return v, f, 0, steps, misses
			}
			misses++
			lo = mid + 1
			continue
		}
		if _, ok := h.branch[mid-1].Get(calcPath(q, h.leafLevel+mid)); ok {
			hi = mid
		} else {
			misses++
			lo = mid + 1
		}
	}

	if lo == h.levels {
		v, f := h.predecFromTop(q)
		return v, f, lo, steps, misses
	}
	entry, _ := h.branch[lo-1].Get(calcPath(q, h.leafLevel+lo))
	v, f := h.predecFromBranch(q, entry)
	return v, f, lo, steps, misses
}
