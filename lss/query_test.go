package lss

import "testing"

const width40 = 40

func buildFixture(t *testing.T, values []Value) *Handle {
	t.Helper()
	h, err := Build(values, NewBuildConfig(width40), NopLogger{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return h
}

func expectPredecessor(t *testing.T, h *Handle, q Value, want Value, wantFound bool) {
	t.Helper()
	got, found := h.Predecessor(q)
	if found != wantFound || (found && got != want) {
		t.Errorf("Predecessor(%d) = (%d, %v), want (%d, %v)", q, got, found, want, wantFound)
	}
}

func TestPredecessorCase1(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000, 10000, 100000, 1000000, 10000000, 1099511627774}
	h := buildFixture(t, values)
	expectPredecessor(t, h, 0, 0, false)
	expectPredecessor(t, h, 1, 0, false)
	expectPredecessor(t, h, 2, 1, true)
	expectPredecessor(t, h, 500, 100, true)
	expectPredecessor(t, h, 1099511627775, 1099511627774, true)
}

func TestPredecessorCase2(t *testing.T) {
	values := []Value{1099511627, 1099511627775}
	h := buildFixture(t, values)
	expectPredecessor(t, h, 500, 0, false)
	expectPredecessor(t, h, 1099511627774, 1099511627, true)
}

func TestPredecessorCase3(t *testing.T) {
	values := []Value{1844, 18446744073}
	h := buildFixture(t, values)
	expectPredecessor(t, h, 1000, 0, false)
	expectPredecessor(t, h, 109951162777, 18446744073, true)
}

func TestPredecessorCase4(t *testing.T) {
	values := make([]Value, 0, 40+39)
	for v := Value(0); v <= 39; v++ {
		values = append(values, v)
	}
	for v := Value(701); v <= 739; v++ {
		values = append(values, v)
	}
	h := buildFixture(t, values)
	expectPredecessor(t, h, 40, 39, true)
	expectPredecessor(t, h, 700, 39, true)
	expectPredecessor(t, h, 701, 39, true)
	expectPredecessor(t, h, 702, 701, true)
}

func TestPredecessorCase5(t *testing.T) {
	values := make([]Value, 0)
	for v := Value(0); v <= 39; v++ {
		values = append(values, v)
	}
	for v := Value(701); v <= 739; v++ {
		values = append(values, v)
	}
	for v := Value(8589934593); v <= 8589934671; v += 2 {
		values = append(values, v)
	}
	values = append(values, 1099511627774)
	h := buildFixture(t, values)
	expectPredecessor(t, h, 4294967296, 739, true)
	expectPredecessor(t, h, 8589934594, 8589934593, true)
	expectPredecessor(t, h, 8589934672, 8589934671, true)
	expectPredecessor(t, h, 1099511627775, 1099511627774, true)
}

func TestPredecessorBoundary(t *testing.T) {
	values := []Value{5, 10, 15}
	h := buildFixture(t, values)
	expectPredecessor(t, h, 0, 0, false)
	expectPredecessor(t, h, 5, 0, false)
	expectPredecessor(t, h, 6, 5, true)
	max := h.maxValue
	expectPredecessor(t, h, max, 15, true)
}

// TestPredecessorBelowOwnBucketFirstElement covers the leaf-bucket scan
// window edge case from spec §4.2/§4.6: a query can land inside a non-empty
// leaf bucket's address range yet below every element actually stored
// there, in which case the answer lives in the previous, distinct bucket.
func TestPredecessorBelowOwnBucketFirstElement(t *testing.T) {
	values := []Value{5, 9, 10, 11, 17, 18}
	cfg := NewBuildConfig(16,
		WithLeafLevel(2),
		WithTopLevel(8),
		WithLinearScanThreshold(1),
	)
	h, err := Build(values, cfg, NopLogger{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// q=8 shares bucket 2 (8>>2 == 9>>2 == 2) with 9, 10, and 11, but is
	// smaller than all three; the previous bucket's 5 is the true answer.
	expectPredecessor(t, h, 8, 5, true)
}

// TestPredecessorBelowOwnBucketFirstElementDefaultWidth40 pins a reported
// regression at the default width-40 tuning: q=292077 falls in the same
// leaf bucket as 292078 and 293068 but is smaller than both, so the answer
// comes from the previous bucket's 198874.
func TestPredecessorBelowOwnBucketFirstElementDefaultWidth40(t *testing.T) {
	values := []Value{
		84901, 198874, 292078, 293068, 458107, 542987, 591056,
		636092, 750883, 849208, 882002, 999496, 1019064,
	}
	h := buildFixture(t, values)
	expectPredecessor(t, h, 292077, 198874, true)
}

func TestContains(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000}
	h := buildFixture(t, values)
	for _, v := range values {
		if !h.Contains(v) {
			t.Errorf("Contains(%d) = false, want true", v)
		}
	}
	for _, v := range []Value{0, 4, 99, 101, 999, 1001} {
		if h.Contains(v) {
			t.Errorf("Contains(%d) = true, want false", v)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000, 10000, 100000, 1000000, 10000000, 1099511627774}
	cfg := NewBuildConfig(width40)
	h1, err := Build(values, cfg, NopLogger{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	h2, err := Build(values, cfg, NopLogger{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, q := range []Value{0, 1, 2, 500, 1099511627775} {
		v1, f1 := h1.Predecessor(q)
		v2, f2 := h2.Predecessor(q)
		if v1 != v2 || f1 != f2 {
			t.Errorf("Predecessor(%d) diverged between builds: (%d,%v) vs (%d,%v)", q, v1, f1, v2, f2)
		}
	}
}
