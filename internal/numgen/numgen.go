// Package numgen produces sorted test inputs for the lss index, ported from
// original_source's nmbrsrc.rs generator functions. Normal and Poisson
// sampling go through gonum's stat/distuv; uniform and the power-law
// inverse-CDF sampler use math/rand directly, same as the original's
// Uniform distribution and its hand-rolled power-law formula.
package numgen

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal draws length values from a normal distribution with the given mean
// and standard deviation, clamps them into [0, max], and returns them
// sorted ascending.
func Normal(length int, mean, deviation float64, max uint64, rng *rand.Rand) []uint64 {
	dist := distuv.Normal{Mu: mean, Sigma: deviation, Src: rng}
	return sampleSorted(length, func() uint64 {
		return clamp(dist.Rand(), max)
	})
}

// Poisson draws length values from a Poisson distribution with the given
// rate, clamps into [0, max], and returns them sorted ascending.
func Poisson(length int, lambda float64, max uint64, rng *rand.Rand) []uint64 {
	dist := distuv.Poisson{Lambda: lambda, Src: rng}
	return sampleSorted(length, func() uint64 {
		return clamp(dist.Rand(), max)
	})
}

// Uniform draws length values uniformly from [0, max] and returns them
// sorted ascending.
func Uniform(length int, max uint64, rng *rand.Rand) []uint64 {
	return sampleSorted(length, func() uint64 {
		return uint64(rng.Int63n(int64(max) + 1))
	})
}

// PowerLaw draws length values from a power-law distribution with exponent
// n over [0, max] via the inverse-CDF method
// (http://mathworld.wolfram.com/RandomNumber.html), matching
// nmbrsrc.rs's get_power_law_dist, and returns them sorted ascending.
func PowerLaw(length int, n float64, max uint64, rng *rand.Rand) []uint64 {
	x0, x1 := 1.0, float64(max)
	sub0 := math.Pow(x0, n+1)
	sub1 := math.Pow(x1, n+1) - sub0
	sub2 := 1 / (n + 1)
	return sampleSorted(length, func() uint64 {
		y := rng.Float64()
		v := math.Pow(sub1*y+sub0, sub2)
		return clamp(v, max)
	})
}

func sampleSorted(length int, next func() uint64) []uint64 {
	values := make([]uint64, length)
	for i := range values {
		values[i] = next()
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// Dedup collapses consecutive duplicates in a sorted slice in place,
// returning the distinct prefix. Build rejects non-strictly-ascending
// input, and random samplers routinely collide, so callers run generated
// output through this before handing it to lss.Build.
func Dedup(values []uint64) []uint64 {
	if len(values) == 0 {
		return values
	}
	n := 1
	for i := 1; i < len(values); i++ {
		if values[i] != values[n-1] {
			values[n] = values[i]
			n++
		}
	}
	return values[:n]
}

func clamp(v float64, max uint64) uint64 {
	if v < 0 {
		return 0
	}
	if v > float64(max) {
		return max
	}
	return uint64(v)
}
