package lss

// leafEntry anchors a non-empty leaf bucket to the first stored element
// whose prefix matches the bucket's key (Invariant 6).
type leafEntry struct {
	firstIndex uint64
}

// leafMap is the LSS leaf level: the hash map keyed by Prefix(v, leafLevel).
type leafMap struct {
	level int // leaf level ℓ: bits ignored below this map
	table *levelMap[leafEntry]
}

func buildLeafMap(values []Value, leafLevel int, hashKind HashKind) *leafMap {
	lm := &leafMap{
		level: leafLevel,
		table: newLevelMap[leafEntry](distinctPrefixCount(values, leafLevel), 0.9, hashKind),
	}
	var prevKey Value
	havePrev := false
	for i, v := range values {
		key := calcPath(v, leafLevel)
		if havePrev && key == prevKey {
			continue
		}
		lm.table.Set(key, leafEntry{firstIndex: uint64(i)})
		prevKey = key
		havePrev = true
	}
	return lm
}

func (lm *leafMap) get(prefix Value) (leafEntry, bool) {
	return lm.table.Get(prefix)
}

// bucketSpan returns the deliberate slack window (spec §4.2): at most
// 2*2^ℓ consecutive elements either side of a leaf's first_index, which
// absorbs a query straddling the leaf's boundary on either side without a
// second map read.
func (lm *leafMap) bucketSpan() uint64 {
	return 2 << uint(lm.level)
}

// calcPath is Prefix(v, k) from spec §3: v with its lowest k bits discarded,
// i.e. v's ancestor key at LSS level k counted up from the leaf level.
func calcPath(v Value, levelsFromLeafBit int) Value {
	return v >> uint(levelsFromLeafBit)
}

// distinctPrefixCount counts distinct Prefix(v, level) values across a
// sorted slice; used to size the leaf map's backing table ahead of fill.
func distinctPrefixCount(values []Value, level int) int {
	if len(values) == 0 {
		return 0
	}
	count := 1
	last := calcPath(values[0], level)
	for _, v := range values[1:] {
		if p := calcPath(v, level); p != last {
			count++
			last = p
		}
	}
	return count
}
