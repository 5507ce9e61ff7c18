package lss

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// referencePredecessor is the naive O(N) oracle the quantified invariant in
// spec §8 is checked against: the largest v in values strictly less than q.
func referencePredecessor(values []Value, q Value) (Value, bool) {
	best, found := Value(0), false
	for _, v := range values {
		if v < q && (!found || v > best) {
			best, found = v, true
		}
	}
	return best, found
}

func randomSortedValues(t *testing.T, rng *rand.Rand, n int, max Value) []Value {
	t.Helper()
	seen := make(map[Value]bool, n)
	values := make([]Value, 0, n)
	for len(values) < n {
		v := Value(rng.Int63n(int64(max)))
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// TestPredecessorMatchesReferenceAcrossRandomInputs exercises the quantified
// invariant from spec §8: for every sorted input and every query,
// Predecessor equals the naive max{v in V : v < q} oracle, or NONE if that
// set is empty. Run across several seeds, sizes, and hash/payload policy
// combinations so the property holds regardless of engine configuration.
func TestPredecessorMatchesReferenceAcrossRandomInputs(t *testing.T) {
	configs := []struct {
		name        string
		hashKind    HashKind
		payloadKind PayloadKind
	}{
		{"fast-baked", HashFast, PayloadPredecessorBaked},
		{"fast-pointer", HashFast, PayloadChildPointer},
		{"crypto-baked", HashCrypto, PayloadPredecessorBaked},
	}

	for _, cfgCase := range configs {
		cfgCase := cfgCase
		t.Run(cfgCase.name, func(t *testing.T) {
			require := require.New(t)
			rng := rand.New(rand.NewSource(42))
			for seed := 0; seed < 5; seed++ {
				values := randomSortedValues(t, rng, 300, 1<<32)
				cfg := NewBuildConfig(width40,
					WithHashKind(cfgCase.hashKind),
					WithPayloadKind(cfgCase.payloadKind),
				)
				h, err := Build(values, cfg, NopLogger{})
				require.NoError(err, "Build should succeed over random sorted input")

				for i := 0; i < 200; i++ {
					q := Value(rng.Int63n(1 << 33))
					want, wantFound := referencePredecessor(values, q)
					got, found := h.Predecessor(q)
					require.Equal(wantFound, found, "Predecessor(%d) found mismatch", q)
					if wantFound {
						require.Equal(want, got, "Predecessor(%d) value mismatch", q)
					}
				}
			}
		})
	}
}

// TestContainsMatchesMembershipAcrossRandomInputs checks the second
// quantified invariant from spec §8: Contains(v) is true for every stored v
// and false for every v not in the set, for random inputs.
func TestContainsMatchesMembershipAcrossRandomInputs(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(7))
	values := randomSortedValues(t, rng, 500, 1<<20)
	h, err := Build(values, NewBuildConfig(width40), NopLogger{})
	require.NoError(err)

	stored := make(map[Value]bool, len(values))
	for _, v := range values {
		stored[v] = true
		require.True(h.Contains(v), "Contains(%d) should be true for a stored element", v)
	}
	for i := 0; i < 500; i++ {
		v := Value(rng.Int63n(1 << 20))
		require.Equal(stored[v], h.Contains(v), "Contains(%d) membership mismatch", v)
	}
}
