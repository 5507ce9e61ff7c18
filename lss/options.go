package lss

// Option mutates a BuildConfig produced by NewBuildConfig, in the style of
// katalvlaran-lvlath/builder's BuilderOption. Later options win. The
// threshold options (WithLinearScanThreshold, WithTunerBounds) ignore
// non-positive values; the others store their argument as given, and Build
// reports an out-of-range pinned level as ConfigInvalid.
type Option func(*BuildConfig)

// NewBuildConfig returns DefaultBuildConfig(width) with each opt applied in
// order.
func NewBuildConfig(width int, opts ...Option) BuildConfig {
	cfg := DefaultBuildConfig(width)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLeafLevel pins ℓ, skipping the tuner's first binary search.
func WithLeafLevel(level int) Option {
	return func(cfg *BuildConfig) {
		l := level
		cfg.LeafLevel = &l
	}
}

// WithTopLevel pins the tuner's top bound, skipping its second binary search.
func WithTopLevel(level int) Option {
	return func(cfg *BuildConfig) {
		l := level
		cfg.TopLevel = &l
	}
}

// WithHashKind selects the level-map key mix.
func WithHashKind(kind HashKind) Option {
	return func(cfg *BuildConfig) { cfg.HashKind = kind }
}

// WithPayloadKind selects the branch-level payload shape.
func WithPayloadKind(kind PayloadKind) Option {
	return func(cfg *BuildConfig) { cfg.PayloadKind = kind }
}

// WithLinearScanThreshold overrides the element store's linear-vs-binary
// scan cutoff. Values <= 0 are ignored.
func WithLinearScanThreshold(n int) Option {
	return func(cfg *BuildConfig) {
		if n > 0 {
			cfg.LinearScanThreshold = n
		}
	}
}

// WithTunerBounds overrides the tuner's search bounds and load-factor
// ceilings in one call; any zero argument leaves the corresponding default
// untouched.
func WithTunerBounds(minStartLevel, maxLSSLevel, minStartLevelLoadFactor, maxLastLevelLoadFactor, minLoadFactorDifference int) Option {
	return func(cfg *BuildConfig) {
		if minStartLevel > 0 {
			cfg.MinStartLevel = minStartLevel
		}
		if maxLSSLevel > 0 {
			cfg.MaxLSSLevel = maxLSSLevel
		}
		if minStartLevelLoadFactor > 0 {
			cfg.MinStartLevelLoadFactor = minStartLevelLoadFactor
		}
		if maxLastLevelLoadFactor > 0 {
			cfg.MaxLastLevelLoadFactor = maxLastLevelLoadFactor
		}
		if minLoadFactorDifference > 0 {
			cfg.MinLoadFactorDifference = minLoadFactorDifference
		}
	}
}
