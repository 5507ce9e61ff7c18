package lss

import (
	"fmt"
	"sort"
)

// smallSuffixBits is the width of the suffix a dynamic leaf bucket stores
// per element. Reconstructing a full value needs the query's own high bits
// (see extendSuffix), which only agree with a bucket's stored elements when
// the leaf level truncates no more than this many low bits, so BuildDynamic
// caps ℓ at this value.
const smallSuffixBits = 16

// dynNonePredecessor is Dynamic's internal "no predecessor" marker for its
// branch and leaf levels. It is deliberately width-independent (unlike
// BuildConfig.maxValue, which is the largest value the configured width can
// hold) so that it never collides with a legitimately stored element at
// Width < 64, even one equal to 2^Width-1 (spec §8 case 2). At Width = 64
// the universe already spans the full uint64 range, so a stored value of
// exactly 2^64-1 remains unresolved here, same as original_source's own
// DataType::max_value()-as-sentinel design.
const dynNonePredecessor = ^Value(0)

// dynamicLeaf is a mutable LSS leaf bucket: predecessor is the answer for
// any query whose suffix sorts before every stored element, and suffixes
// holds the low smallSuffixBits bits of every element sharing this bucket's
// prefix, kept sorted ascending.
type dynamicLeaf struct {
	predecessor Value
	suffixes    []uint16
}

// Dynamic is a mutable predecessor dictionary built by BuildDynamic. It is
// not safe for concurrent use: the spec's single-writer/single-reader
// contract means callers must serialize Add/Remove against Predecessor
// themselves.
type Dynamic struct {
	leaf      *levelMap[dynamicLeaf]
	branch    []*levelMap[Value]
	top       *topTable
	leafLevel int
	levels    int
	maxValue  Value
	hashKind  HashKind
	logger    Logger
}

// BuildDynamic lays out a mutable LSS index, grounded on original_source's
// yft40_split_small.rs::YFT::new. Branch and top levels bake the
// predecessor value directly, as in PayloadPredecessorBaked; leaf buckets
// additionally hold per-element suffixes so individual values can be added
// and removed without rebuilding the bucket's ancestor chain.
func BuildDynamic(values []Value, cfg BuildConfig, logger Logger) (*Dynamic, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	if err := validateInput(values, cfg); err != nil {
		return nil, err
	}
	leafLevel, topBound, err := tuneLevels(values, cfg)
	if err != nil {
		return nil, err
	}
	if leafLevel > smallSuffixBits {
		leafLevel = smallSuffixBits
	}
	logger.Time("levels tuned")

	levels := topBound - leafLevel
	topBits := cfg.Width - topBound

	top := buildTopTable(values, cfg.Width, topBits)
	logger.Mem("top table built")

	branch := buildDynamicBranch(values, leafLevel, levels, cfg.HashKind)
	logger.Mem("branch levels built")

	leaf := buildDynamicLeaf(values, leafLevel, cfg.HashKind)
	logger.Mem("leaf level built")
	logger.Time("dynamic index built")

	return &Dynamic{
		leaf:      leaf,
		branch:    branch,
		top:       top,
		leafLevel: leafLevel,
		levels:    levels,
		maxValue:  cfg.maxValue(),
		hashKind:  cfg.HashKind,
		logger:    logger,
	}, nil
}

func buildDynamicBranch(values []Value, leafLevel, levels int, hashKind HashKind) []*levelMap[Value] {
	branch := make([]*levelMap[Value], levels-1)
	for i := range branch {
		branch[i] = newLevelMap[Value](len(values), 0.9, hashKind)
	}
	for idx, v := range values {
		child := calcPath(v, leafLevel)
		for i := 1; i < levels; i++ {
			path := calcPath(v, leafLevel+i)
			if isLeftChild(child) {
				branch[i-1].Set(path, v)
			} else if _, ok := branch[i-1].Get(path); !ok {
				pred := dynNonePredecessor
				if idx > 0 {
					pred = values[idx-1]
				}
				branch[i-1].Set(path, pred)
			}
			child = path
		}
	}
	return branch
}

func buildDynamicLeaf(values []Value, leafLevel int, hashKind HashKind) *levelMap[dynamicLeaf] {
	lm := newLevelMap[dynamicLeaf](distinctPrefixCount(values, leafLevel), 0.9, hashKind)
	var prevKey Value
	havePrev := false
	for idx, v := range values {
		key := calcPath(v, leafLevel)
		if havePrev && key == prevKey {
			entry, _ := lm.Get(key)
			entry.suffixes = append(entry.suffixes, uint16(v))
			lm.Set(key, entry)
		} else {
			pred := dynNonePredecessor
			if idx > 0 {
				pred = values[idx-1]
			}
			lm.Set(key, dynamicLeaf{predecessor: pred, suffixes: []uint16{uint16(v)}})
		}
		prevKey = key
		havePrev = true
	}
	return lm
}

// extendSuffix rebuilds a full value from a query's high bits and a stored
// low-smallSuffixBits-bit suffix; valid only when both share a leaf bucket.
func extendSuffix(prefixSource Value, suffix uint16) Value {
	return Value(suffix) | ((prefixSource >> smallSuffixBits) << smallSuffixBits)
}

// Predecessor mirrors Handle.Predecessor over the mutable layout.
func (d *Dynamic) Predecessor(q Value) (Value, bool) {
	lo, hi := 0, d.levels
	for lo != hi {
		mid := (lo + hi) / 2
		if mid == 0 {
			if entry, ok := d.leaf.Get(calcPath(q, d.leafLevel)); ok {
				return predecessorFromSuffixes(q, entry)
			}
			lo = mid + 1
			continue
		}
		if _, ok := d.branch[mid-1].Get(calcPath(q, d.leafLevel+mid)); ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo == d.levels {
		return d.top.lookup(q)
	}
	v, _ := d.branch[lo-1].Get(calcPath(q, d.leafLevel+lo))
	if v == dynNonePredecessor {
		return 0, false
	}
	return v, true
}

func predecessorFromSuffixes(q Value, entry dynamicLeaf) (Value, bool) {
	suffix := uint16(q)
	pos := sort.Search(len(entry.suffixes), func(i int) bool { return entry.suffixes[i] >= suffix })
	if pos == 0 {
		if entry.predecessor == dynNonePredecessor {
			return 0, false
		}
		return entry.predecessor, true
	}
	return extendSuffix(q, entry.suffixes[pos-1]), true
}

// Contains reports whether v is stored, via Predecessor(v+1) == v.
func (d *Dynamic) Contains(v Value) bool {
	pred, ok := d.Predecessor(v + 1)
	return ok && pred == v
}

// Add inserts element, fixing up predecessors along its leaf bucket and
// ancestor chain. Adding an already-present element is a no-op.
func (d *Dynamic) Add(element Value) {
	leafPath := calcPath(element, d.leafLevel)
	predecessor, found := d.Predecessor(element)
	if !found {
		predecessor = dynNonePredecessor
	}

	addNodes := true
	doNothing := false

	if entry, ok := d.leaf.Get(leafPath); ok {
		suffix := uint16(element)
		pos := sort.Search(len(entry.suffixes), func(i int) bool { return entry.suffixes[i] >= suffix })
		if pos < len(entry.suffixes) && entry.suffixes[pos] == suffix {
			d.logger.Note(fmt.Sprintf("event=already_present element=%d", element))
			return
		}
		entry.suffixes = append(entry.suffixes, 0)
		copy(entry.suffixes[pos+1:], entry.suffixes[pos:])
		entry.suffixes[pos] = suffix
		if pos < len(entry.suffixes)-1 {
			doNothing = true
		}
		addNodes = false
		d.leaf.Set(leafPath, entry)
	} else {
		d.leaf.Set(leafPath, dynamicLeaf{predecessor: predecessor, suffixes: []uint16{uint16(element)}})
	}

	if doNothing {
		return
	}
	d.changePredecessorsAdd(element, addNodes, predecessor, leafPath)
}

// Remove deletes element if present, fixing up predecessors the same way
// Add does. Removing a value that isn't stored is a no-op.
func (d *Dynamic) Remove(element Value) {
	leafPath := calcPath(element, d.leafLevel)
	entry, ok := d.leaf.Get(leafPath)
	if !ok {
		d.logger.Note(fmt.Sprintf("event=not_found element=%d", element))
		return
	}
	suffix := uint16(element)
	pos := sort.Search(len(entry.suffixes), func(i int) bool { return entry.suffixes[i] >= suffix })
	if pos >= len(entry.suffixes) || entry.suffixes[pos] != suffix {
		d.logger.Note(fmt.Sprintf("event=not_found element=%d", element))
		return
	}

	removeNode := false
	newPredecessor := dynNonePredecessor
	doNothing := false

	entry.suffixes = append(entry.suffixes[:pos], entry.suffixes[pos+1:]...)
	switch {
	case len(entry.suffixes) == 0:
		removeNode = true
		newPredecessor = entry.predecessor
	case pos == len(entry.suffixes):
		newPredecessor = extendSuffix(element, entry.suffixes[pos-1])
	default:
		doNothing = true
	}
	d.leaf.Set(leafPath, entry)

	if doNothing {
		return
	}
	d.changePredecessorsRemove(element, removeNode, element, newPredecessor, leafPath)
}

// setLeafPredecessor updates the next leaf bucket's predecessor when
// leafPath is a left child (its right sibling's predecessor is exactly the
// value changing at leafPath); ported from
// original_source's set_leaf_predecessor.
func (d *Dynamic) setLeafPredecessor(changeNodes *bool, oldPredecessor, newPredecessor, leafPath Value, setLeafPredecessor *bool) {
	if isLeftChild(leafPath) {
		if entry, ok := d.leaf.Get(leafPath + 1); ok {
			entry.predecessor = newPredecessor
			d.leaf.Set(leafPath+1, entry)
			*setLeafPredecessor = false
			*changeNodes = false
		}
	} else if d.leaf.Contains(leafPath - 1) {
		*changeNodes = false
	}
}

// changePredecessorsAdd walks the branch levels above leafPath fixing up
// predecessor pointers and inserting nodes where element opened a new
// ancestor chain; ported from original_source's change_predecessors_add.
func (d *Dynamic) changePredecessorsAdd(element Value, addNodes bool, elementPredecessor, leafPath Value) {
	setLeafPredecessor := true
	d.setLeafPredecessor(&addNodes, elementPredecessor, element, leafPath, &setLeafPredecessor)
	hasLeftChild := isLeftChild(leafPath)

	for i := 0; i < len(d.branch); i++ {
		path := calcPath(element, d.leafLevel+i+1)
		if addNodes {
			if hasLeftChild {
				d.branch[i].Set(path, element)
			} else {
				d.branch[i].Set(path, elementPredecessor)
			}
			hasLeftChild = isLeftChild(path)
			if hasLeftChild {
				rightChildPath := path + 1
				childIsThere := false
				if pred, ok := d.branch[i].Get(rightChildPath); ok {
					if pred == elementPredecessor {
						d.branch[i].Set(rightChildPath, element)
					}
					addNodes = false
					childIsThere = true
				}
				if childIsThere {
					d.setNextLeafPathPredecessor(element, &setLeafPredecessor, i, rightChildPath, elementPredecessor)
				}
			} else if d.branch[i].Contains(path - 1) {
				addNodes = false
			}
		} else {
			if pred, ok := d.branch[i].Get(path); ok && hasLeftChild && pred == elementPredecessor {
				d.branch[i].Set(path, element)
			}
			hasLeftChild = isLeftChild(path)
			if hasLeftChild {
				rightChildPath := path + 1
				if pred, ok := d.branch[i].Get(rightChildPath); ok {
					if pred == elementPredecessor {
						d.branch[i].Set(rightChildPath, element)
					}
					d.setNextLeafPathPredecessor(element, &setLeafPredecessor, i, rightChildPath, elementPredecessor)
				}
			}
		}
	}

	d.setLeafPredecessorViaTop(element, elementPredecessor, element, &setLeafPredecessor)
	d.adjustTop(elementPredecessor, element)
}

// changePredecessorsRemove is the Remove-side mirror of
// changePredecessorsAdd, ported from original_source's
// change_predecessors_remove.
func (d *Dynamic) changePredecessorsRemove(element Value, removeNode bool, oldPredecessor, newPredecessor, leafPath Value) {
	setLeafPredecessor := true
	if removeNode {
		d.leaf.Delete(leafPath)
	}
	d.setLeafPredecessor(&removeNode, oldPredecessor, newPredecessor, leafPath, &setLeafPredecessor)

	if isLeftChild(leafPath) {
		if entry, ok := d.leaf.Get(leafPath + 1); ok {
			entry.predecessor = newPredecessor
			d.leaf.Set(leafPath+1, entry)
			setLeafPredecessor = false
			removeNode = false
		}
	} else if d.leaf.Contains(leafPath - 1) {
		removeNode = false
	}

	for i := 0; i < len(d.branch); i++ {
		path := calcPath(element, d.leafLevel+i+1)
		if removeNode {
			d.branch[i].Delete(path)
			if isLeftChild(path) {
				rightChildPath := path + 1
				childIsThere := false
				if pred, ok := d.branch[i].Get(rightChildPath); ok {
					if pred == oldPredecessor {
						d.branch[i].Set(rightChildPath, newPredecessor)
					}
					removeNode = false
					childIsThere = true
				}
				if childIsThere {
					d.setNextLeafPathPredecessor(newPredecessor, &setLeafPredecessor, i, rightChildPath, oldPredecessor)
				}
			} else if d.branch[i].Contains(path - 1) {
				removeNode = false
			}
		} else {
			if isLeftChild(path) {
				rightChildPath := path + 1
				if pred, ok := d.branch[i].Get(rightChildPath); ok {
					if pred == oldPredecessor {
						d.branch[i].Set(rightChildPath, newPredecessor)
					}
					d.setNextLeafPathPredecessor(newPredecessor, &setLeafPredecessor, i, rightChildPath, oldPredecessor)
				}
			}
			if pred, ok := d.branch[i].Get(path); ok && pred == oldPredecessor {
				d.branch[i].Set(path, newPredecessor)
			}
		}
	}

	d.setLeafPredecessorViaTop(element, oldPredecessor, newPredecessor, &setLeafPredecessor)
	d.adjustTop(oldPredecessor, newPredecessor)
}

// setLeafPredecessorViaTop handles the case where element's leaf bucket had
// no right sibling to carry the predecessor update into: it walks forward
// through the last branch level to find the next existing node and
// descends from there. Ported from original_source's
// set_leaf_predecessor_via_top.
func (d *Dynamic) setLeafPredecessorViaTop(element Value, oldPredecessor, newPredecessor Value, setLeafPredecessor *bool) {
	if !*setLeafPredecessor {
		return
	}
	levels := len(d.branch)
	if levels == 0 {
		// No branch levels exist to search; adjustTop covers the
		// top-level case uniformly regardless of how deep the tree is.
		return
	}
	path := calcPath(element, d.leafLevel+levels)
	maxPath := calcPath(d.maxValue, d.leafLevel+levels)
	for path != maxPath {
		path++
		if pred, ok := d.branch[levels-1].Get(path); ok {
			if pred == oldPredecessor {
				d.branch[levels-1].Set(path, newPredecessor)
			}
			d.setNextLeafPathPredecessor(newPredecessor, setLeafPredecessor, levels-1, path, oldPredecessor)
			break
		}
	}
}

// setNextLeafPathPredecessor descends from branchLevel back down to the
// leaf along the existing-child side at each level, updating any node still
// carrying oldPredecessor. Ported from original_source's
// set_next_leaf_xft_path_predecessor.
func (d *Dynamic) setNextLeafPathPredecessor(newPredecessor Value, setLeafPredecessor *bool, branchLevel int, nextLeafPath Value, oldPredecessor Value) {
	if !*setLeafPredecessor {
		return
	}
	for j := branchLevel - 1; j >= 0; j-- {
		if d.branch[j].Contains(nextLeafPath << 1) {
			nextLeafPath = nextLeafPath << 1
		} else {
			nextLeafPath = (nextLeafPath << 1) + 1
		}
		if pred, ok := d.branch[j].Get(nextLeafPath); ok && pred == oldPredecessor {
			d.branch[j].Set(nextLeafPath, newPredecessor)
		}
	}
	var finalPath Value
	if d.leaf.Contains(nextLeafPath << 1) {
		finalPath = nextLeafPath << 1
	} else {
		finalPath = (nextLeafPath << 1) + 1
	}
	if entry, ok := d.leaf.Get(finalPath); ok && entry.predecessor == oldPredecessor {
		entry.predecessor = newPredecessor
		d.leaf.Set(finalPath, entry)
	}
	*setLeafPredecessor = false
}

// topSlotValue reads a top slot the way adjustTop's ported comparisons
// expect: a slot with no recorded predecessor reads as dynNonePredecessor,
// which this function's magnitude comparisons below treat as the largest
// possible value, exactly as original_source's own max-value sentinel did.
func (d *Dynamic) topSlotValue(pos uint64) Value {
	if !d.top.filled[pos] {
		return dynNonePredecessor
	}
	return d.top.slots[pos]
}

func (d *Dynamic) setTopSlot(pos uint64, v Value) {
	d.top.filled[pos] = v != dynNonePredecessor
	d.top.slots[pos] = v
	if !d.top.filled[pos] {
		d.top.slots[pos] = 0
	}
}

// adjustTop propagates a predecessor change into the dense top table,
// ported from original_source's adjust_lss_top: every top slot that used to
// answer oldPredecessor and every slot between there and the next slot
// already holding a larger value gets newPredecessor. Slots read and write
// through topSlotValue/setTopSlot to keep topTable.filled in sync, since the
// table no longer encodes "no predecessor" as an in-band value.
func (d *Dynamic) adjustTop(oldPredecessor, newPredecessor Value) {
	pos := topTablePosition(newPredecessor, d.top.width, d.top.topLevel)
	if !isLeftChild(topTablePosition(newPredecessor, d.top.width, d.top.topLevel+1)) {
		pos++
	}
	if newPredecessor == dynNonePredecessor {
		pos = 0
	}
	for pos < uint64(len(d.top.slots)) {
		cur := d.topSlotValue(pos)
		if cur == oldPredecessor {
			d.setTopSlot(pos, newPredecessor)
		} else if (cur > newPredecessor || newPredecessor == dynNonePredecessor) && cur > oldPredecessor {
			return
		}
		pos++
	}
}
