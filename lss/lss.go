package lss

// Handle is a built, immutable predecessor dictionary (spec §2). It is safe
// for concurrent reads; nothing in the static query path mutates state.
type Handle struct {
	store  elementStore
	leaf   *leafMap
	branch []*levelMap[branchEntry]
	top    *topTable

	leafLevel   int // ℓ
	levels      int // number of LSS levels from leaf to the top bound, inclusive
	payloadKind PayloadKind
	maxValue    Value
	width       int
}

// Build lays out the LSS index over values per spec §4.1-4.5: values must be
// sorted strictly ascending and fit within cfg.Width. logger may be nil, in
// which case diagnostics are discarded.
func Build(values []Value, cfg BuildConfig, logger Logger) (*Handle, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	if err := validateInput(values, cfg); err != nil {
		return nil, err
	}
	logger.Time("input validated")

	leafLevel, topBound, err := tuneLevels(values, cfg)
	if err != nil {
		return nil, err
	}
	logger.Time("levels tuned")

	levels := topBound - leafLevel
	topBits := cfg.Width - topBound

	top := buildTopTable(values, cfg.Width, topBits)
	logger.Mem("top table built")
	logger.Time("top table built")

	branch := buildBranchMaps(values, leafLevel, levels, cfg.PayloadKind, cfg.HashKind)
	logger.Mem("branch levels built")
	logger.Time("branch levels built")

	leaf := buildLeafMap(values, leafLevel, cfg.HashKind)
	logger.Mem("leaf level built")
	logger.Time("leaf level built")

	h := &Handle{
		store:       newElementStore(values, cfg.linearScanThreshold()),
		leaf:        leaf,
		branch:      branch,
		top:         top,
		leafLevel:   leafLevel,
		levels:      levels,
		payloadKind: cfg.PayloadKind,
		maxValue:    cfg.maxValue(),
		width:       cfg.Width,
	}
	return h, nil
}

// validateInput enforces the Build preconditions from spec §4.1/§4.5:
// non-empty, strictly ascending, and within width. Every value up to and
// including 2^Width-1 is a valid element (spec §8 case 2 stores it), so
// nothing is reserved here; "no predecessor" is tracked out of band by the
// engine's internal tables instead.
func validateInput(values []Value, cfg BuildConfig) error {
	if len(values) == 0 {
		return buildErr(InputEmpty, "no elements")
	}
	maxValue := cfg.maxValue()
	if uint64(len(values)) > maxValue {
		return buildErr(InputOverflow, "%d elements cannot fit in width %d", len(values), cfg.Width)
	}
	for i, v := range values {
		if v > maxValue {
			return buildErr(InputOverflow, "element %d value %d exceeds width %d", i, v, cfg.Width)
		}
		if i > 0 && v <= values[i-1] {
			return buildErr(InputUnsorted, "element %d (%d) is not strictly greater than element %d (%d)", i, v, i-1, values[i-1])
		}
	}
	return nil
}
