package lss

import "math"

// tuneLevels picks the leaf level ℓ and the top bound (the leaf-relative
// level at which the dense top table takes over) for values, honoring any
// pin in cfg.LeafLevel/cfg.TopLevel. cfg.MaxLSSLevel reserves that many bits
// at the top of the universe exclusively for the top table, so the bound
// handed to both tuners is cfg.Width-cfg.MaxLSSLevel — ported from
// original_source's YFT::new, which computes its equivalent bound as
// BIT_LENGTH - max_lss_level before calling calc_start_level/
// calc_lss_top_level. The returned topBound is in the same leaf-relative
// units as leafLevel (spec's "levels", not top-table resolution bits); the
// caller converts to resolution bits via cfg.Width-topBound.
func tuneLevels(values []Value, cfg BuildConfig) (leafLevel, topBound int, err error) {
	maxBound := cfg.Width - cfg.MaxLSSLevel
	if cfg.LeafLevel != nil {
		leafLevel = *cfg.LeafLevel
	} else {
		if cfg.MinStartLevel > maxBound-1 {
			return 0, 0, buildErr(ConfigInvalid, "min start level %d exceeds the highest tunable leaf level %d", cfg.MinStartLevel, maxBound-1)
		}
		leafLevel = calcStartLevel(values, cfg.MinStartLevel, maxBound, cfg.MinStartLevelLoadFactor)
	}
	if cfg.TopLevel != nil {
		topBound = *cfg.TopLevel
	} else {
		topBound = calcLSSTopLevel(values, leafLevel, maxBound, cfg.MaxLastLevelLoadFactor, cfg.MinLoadFactorDifference, cfg.Width)
	}
	if topBound <= leafLevel {
		return 0, 0, buildErr(ConfigInvalid, "top bound %d must exceed leaf level %d", topBound, leafLevel)
	}
	if leafLevel < 0 || topBound > cfg.Width {
		return 0, 0, buildErr(ConfigInvalid, "leaf level %d / top bound %d out of range for width %d", leafLevel, topBound, cfg.Width)
	}
	return leafLevel, topBound, nil
}

// calcStartLevel binary-searches [minStartLevel, maxLSSLevel-1] for the
// lowest level whose distinct-prefix count is below minLoadFactor percent of
// the element count, and returns maxLSSLevel-1 if no lower level qualifies.
// Levels below the result have too many distinct prefixes per element. Ported
// from original_source's yft40_fx_hash.rs::calc_start_level, generalized
// from the fixed 40-bit universe to an arbitrary width via calcPath.
func calcStartLevel(values []Value, minStartLevel, maxLSSLevel, minLoadFactor int) int {
	lo, hi := minStartLevel, maxLSSLevel-1
	n := float64(len(values))
	for lo < hi {
		candidate := (lo + hi) / 2
		nodes := float64(distinctPrefixCount(values, candidate))
		if nodes/float64(minLoadFactor) >= n/100 {
			lo = candidate + 1
		} else {
			hi = candidate
		}
	}
	return hi
}

// calcLSSTopLevel binary-searches (startLevel, maxLSSLevel] for the lowest
// level whose load factor reaches the ceiling (the load factor at
// maxLSSLevel scaled by minLoadFactorDifference, capped by maxLoadFactor),
// returning maxLSSLevel if none does. The result is the top bound: the dense
// top table takes over at that level, and the hashed branch levels end just
// below it. Load factor only grows with level, so the search is monotone. Ported from
// original_source's yft40_split_small.rs::calc_lss_top_level, the variant
// that actually folds in min_load_factor_difference.
func calcLSSTopLevel(values []Value, startLevel, maxLSSLevel, maxLoadFactor, minLoadFactorDifference, width int) int {
	lo, hi := startLevel+1, maxLSSLevel
	topNodes := float64(distinctPrefixCount(values, maxLSSLevel))
	topLoadFactor := topNodes / math.Pow(2, float64(width-maxLSSLevel)) * float64(minLoadFactorDifference) / 100
	max := topLoadFactor
	if cap := float64(maxLoadFactor) / 100; cap < max {
		max = cap
	}
	for lo < hi {
		candidate := (lo + hi) / 2
		nodes := float64(distinctPrefixCount(values, candidate))
		loadFactor := nodes / math.Pow(2, float64(width-candidate))
		if loadFactor < max {
			lo = candidate + 1
		} else {
			hi = candidate
		}
	}
	return hi
}
