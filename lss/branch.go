package lss

// childTag records which children of an internal LSS trie node have at
// least one descendant element (Invariant 3).
type childTag uint8

const (
	childLeft  childTag = 1 << 0
	childRight childTag = 1 << 1
	childBoth  childTag = childLeft | childRight
)

func (c childTag) hasLeft() bool  { return c&childLeft != 0 }
func (c childTag) hasRight() bool { return c&childRight != 0 }

// branchEntry is the value type for every LSS branch level. Only the fields
// relevant to the engine's configured PayloadKind are meaningful; the other
// is left zero. Keeping one struct shape (rather than two map types) keeps
// buildBranchMaps/Predecessor simple at the cost of a few unused bytes per
// entry, which is a fair trade at the branch level's node counts.
type branchEntry struct {
	// predecessor-baked payload (PayloadPredecessorBaked)
	predecessor    Value
	hasPredecessor bool

	// child-pointer payload (PayloadChildPointer)
	children   childTag
	descending uint64
}

// isLeftChild reports whether path is the left child of its parent: the bit
// about to be discarded by one more Prefix truncation is 0.
func isLeftChild(path Value) bool {
	return path%2 == 0
}

// buildBranchMaps fills levels branch[0]..branch[levels-2] (branch[0] directly
// above the leaf map, the last branch level directly below the top table)
// bottom-up from the sorted input, per spec §4.3.
func buildBranchMaps(values []Value, leafLevel, levels int, kind PayloadKind, hashKind HashKind) []*levelMap[branchEntry] {
	branch := make([]*levelMap[branchEntry], levels-1)
	for i := range branch {
		branch[i] = newLevelMap[branchEntry](len(values), 0.9, hashKind)
	}
	if levels <= 1 {
		return branch
	}
	if kind == PayloadChildPointer {
		fillBranchChildPointer(values, leafLevel, levels, branch)
	} else {
		fillBranchPredecessorBaked(values, leafLevel, levels, branch)
	}
	return branch
}

// fillBranchPredecessorBaked is grounded on original_source's
// yft40_split_small.rs build loop: a left-child visit unconditionally
// overwrites the node's predecessor with the current (ascending) element,
// so the final write is the largest element in the left subtree; a
// right-child visit sets the predecessor only the first time the node is
// seen, to the element immediately preceding the current one, which is
// exactly the answer for a left-missing node. A node that later gains both
// children keeps the left-subtree value, which is safe: queries that would
// reach a both-children node always resolve one level lower first. A
// right-child node whose element has no predecessor at all (idx == 0) is
// left with hasPredecessor false rather than a reserved value, since any
// element in the universe may legitimately be stored.
func fillBranchPredecessorBaked(values []Value, leafLevel, levels int, branch []*levelMap[branchEntry]) {
	for idx, v := range values {
		child := calcPath(v, leafLevel)
		for i := 1; i < levels; i++ {
			path := calcPath(v, leafLevel+i)
			if isLeftChild(child) {
				branch[i-1].Set(path, branchEntry{predecessor: v, hasPredecessor: true})
			} else if _, ok := branch[i-1].Get(path); !ok {
				if idx > 0 {
					branch[i-1].Set(path, branchEntry{predecessor: values[idx-1], hasPredecessor: true})
				} else {
					branch[i-1].Set(path, branchEntry{})
				}
			}
			child = path
		}
	}
}

// fillBranchChildPointer is grounded on original_source's
// yft40_fx_hash.rs build loop. insert starts true only when this element
// opens a new leaf bucket; it stays true while climbing through levels
// whose entries this value is creating for the first time, and flips false
// the moment the climb merges into an already-built ancestor chain. Once
// merged, further climbing only keeps a left-only node's descending pointer
// current (the rightmost left-subtree element seen so far).
func fillBranchChildPointer(values []Value, leafLevel, levels int, branch []*levelMap[branchEntry]) {
	var prevLeafKey Value
	haveLeaf := false
	for idx, v := range values {
		leafKey := calcPath(v, leafLevel)
		insert := !haveLeaf || leafKey != prevLeafKey
		child := leafKey
		for i := 1; i < levels; i++ {
			path := calcPath(v, leafLevel+i)
			left := isLeftChild(child)
			if cur, ok := branch[i-1].Get(path); ok {
				if insert {
					cur.children = childBoth
					cur.descending = 0
					insert = false
				} else if !cur.children.hasRight() {
					cur.descending = uint64(idx)
				}
				branch[i-1].Set(path, cur)
			} else {
				tag := childRight
				if left {
					tag = childLeft
				}
				branch[i-1].Set(path, branchEntry{children: tag, descending: uint64(idx)})
			}
			child = path
		}
		prevLeafKey = leafKey
		haveLeaf = true
	}
}
