package lss

// Value is the element type stored and queried by the index. Widths of 40
// and 64 bits both fit in a uint64; BuildConfig.Width bounds the admissible
// range. Every value in [0, 2^Width) is a legitimate element, including the
// top one: "no predecessor" is tracked out of band rather than by reserving
// an in-universe value (spec §8 case 2 stores 2^40-1 itself).
type Value = uint64

// PayloadKind selects the branch-level payload shape described in spec §4.3.
// Predecessor-baked is the default: it trades a little build-time arithmetic
// for a smaller entry and one fewer indirection on the query path.
type PayloadKind int

const (
	// PayloadPredecessorBaked stores the answer directly on every branch node.
	PayloadPredecessorBaked PayloadKind = iota
	// PayloadChildPointer stores a (children, descending) pair and derives
	// the answer from the element store at query time.
	PayloadChildPointer
)

// HashKind selects the integer mix used to key the LSS level maps.
type HashKind int

const (
	// HashFast mixes prefixes through xxhash, a fast non-cryptographic hash
	// that avoids arithmetic-progression pathology on truncated prefixes.
	// Default.
	HashFast HashKind = iota
	// HashCrypto runs prefixes through BLAKE3 for a cryptographic-quality
	// mix, at a throughput cost, for callers who distrust adversarial input.
	HashCrypto
)

// BuildConfig controls universe width, parameter tuning bounds, and the two
// engine policy knobs (HashKind, PayloadKind).
type BuildConfig struct {
	// Width is the universe bit-width: 40 or 64.
	Width int

	// LeafLevel, if non-nil, pins ℓ and skips tuner stage 1.
	LeafLevel *int
	// TopLevel, if non-nil, pins the top bound (the level at which the dense
	// top table takes over, so the table indexes Width-TopLevel bits) and
	// skips tuner stage 2.
	TopLevel *int

	// MinStartLevel is the smallest ℓ the tuner will consider.
	MinStartLevel int
	// MaxLSSLevel is the number of high bits the tuner reserves for the dense
	// top table: a tuned top bound never exceeds Width-MaxLSSLevel, so the
	// table indexes at least MaxLSSLevel bits.
	MaxLSSLevel int

	// MinStartLevelLoadFactor is the leaf-level load-factor ceiling, 1..100.
	MinStartLevelLoadFactor int
	// MaxLastLevelLoadFactor is the top-table density ceiling, 1..100.
	MaxLastLevelLoadFactor int
	// MinLoadFactorDifference is the top-table density-vs-maximum margin, 1..100.
	MinLoadFactorDifference int

	// LinearScanThreshold is the slice length below which the element store
	// prefers a linear scan over a binary search. Zero means use the default.
	LinearScanThreshold int

	// HashKind selects the level-map key mix. Zero value is HashFast.
	HashKind HashKind
	// PayloadKind selects the branch payload shape. Zero value is
	// PayloadPredecessorBaked.
	PayloadKind PayloadKind
}

const defaultLinearScanThreshold = 8

// DefaultBuildConfig returns tuning defaults modelled on the reference
// implementation's CLI defaults (min_start_level=10, max_lss_level=8,
// min_start_level_load_factor=50, max_last_level_load_factor=90,
// min_load_factor_difference=90).
func DefaultBuildConfig(width int) BuildConfig {
	return BuildConfig{
		Width:                   width,
		MinStartLevel:           10,
		MaxLSSLevel:             8,
		MinStartLevelLoadFactor: 50,
		MaxLastLevelLoadFactor:  90,
		MinLoadFactorDifference: 90,
		LinearScanThreshold:     defaultLinearScanThreshold,
	}
}

func (c BuildConfig) linearScanThreshold() int {
	if c.LinearScanThreshold > 0 {
		return c.LinearScanThreshold
	}
	return defaultLinearScanThreshold
}

// maxValue returns the largest representable value for the configured
// width: 2^Width - 1. It is a bounds check only; unlike an older revision of
// this engine, it is not reserved as a "no predecessor" marker and may be
// stored like any other element.
func (c BuildConfig) maxValue() uint64 {
	if c.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(c.Width)) - 1
}
