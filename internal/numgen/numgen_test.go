package numgen

import (
	"math/rand"
	"sort"
	"testing"
)

func rng() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestUniformSortedAndInRange(t *testing.T) {
	max := uint64(1000)
	values := Uniform(500, max, rng())
	if !sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }) {
		t.Fatal("Uniform output not sorted")
	}
	for _, v := range values {
		if v > max {
			t.Fatalf("value %d exceeds max %d", v, max)
		}
	}
}

func TestNormalSortedAndClamped(t *testing.T) {
	max := uint64(100)
	values := Normal(500, 50, 10, max, rng())
	if !sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }) {
		t.Fatal("Normal output not sorted")
	}
	for _, v := range values {
		if v > max {
			t.Fatalf("value %d exceeds max %d", v, max)
		}
	}
}

func TestPoissonSortedAndClamped(t *testing.T) {
	max := uint64(50)
	values := Poisson(200, 5, max, rng())
	if !sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }) {
		t.Fatal("Poisson output not sorted")
	}
	for _, v := range values {
		if v > max {
			t.Fatalf("value %d exceeds max %d", v, max)
		}
	}
}

func TestPowerLawSortedAndInRange(t *testing.T) {
	max := uint64(10000)
	values := PowerLaw(300, -2.0, max, rng())
	if !sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }) {
		t.Fatal("PowerLaw output not sorted")
	}
	for _, v := range values {
		if v > max {
			t.Fatalf("value %d exceeds max %d", v, max)
		}
	}
}

func TestDedupCollapsesConsecutiveDuplicates(t *testing.T) {
	values := []uint64{1, 1, 2, 3, 3, 3, 4}
	got := Dedup(values)
	want := []uint64{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Dedup length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dedup = %v, want %v", got, want)
		}
	}
}

func TestDedupEmpty(t *testing.T) {
	if got := Dedup(nil); len(got) != 0 {
		t.Fatalf("Dedup(nil) = %v, want empty", got)
	}
}
