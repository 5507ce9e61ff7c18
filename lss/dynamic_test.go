package lss

import "testing"

func buildDynamicFixture(t *testing.T, values []Value) *Dynamic {
	t.Helper()
	d, err := BuildDynamic(values, NewBuildConfig(width40), NopLogger{})
	if err != nil {
		t.Fatalf("BuildDynamic: %v", err)
	}
	return d
}

func expectDynamicPredecessor(t *testing.T, d *Dynamic, q Value, want Value, wantFound bool) {
	t.Helper()
	got, found := d.Predecessor(q)
	if found != wantFound || (found && got != want) {
		t.Errorf("Predecessor(%d) = (%d,%v), want (%d,%v)", q, got, found, want, wantFound)
	}
}

func TestDynamicCase6(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000, 10000, 100000, 1000000, 10000000, 1099511627774}
	d := buildDynamicFixture(t, values)

	d.Add(4000)
	expectDynamicPredecessor(t, d, 4001, 4000, true)
	expectDynamicPredecessor(t, d, 4000, 1000, true)

	d.Remove(4000)
	expectDynamicPredecessor(t, d, 4001, 1000, true)
}

func TestDynamicAddAlreadyPresentIsNoop(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000}
	d := buildDynamicFixture(t, values)
	d.Add(100)
	if !d.Contains(100) {
		t.Fatal("Contains(100) = false after re-adding an existing element")
	}
	expectDynamicPredecessor(t, d, 101, 100, true)
}

func TestDynamicRemoveMissingIsNoop(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000}
	d := buildDynamicFixture(t, values)
	d.Remove(555)
	expectDynamicPredecessor(t, d, 1000, 100, true)
	expectDynamicPredecessor(t, d, 1001, 1000, true)
}

func TestDynamicContains(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000}
	d := buildDynamicFixture(t, values)
	for _, v := range values {
		if !d.Contains(v) {
			t.Errorf("Contains(%d) = false, want true", v)
		}
	}
	if d.Contains(50) {
		t.Error("Contains(50) = true, want false")
	}
}

func TestDynamicAddThenRemoveManyPreservesPredecessor(t *testing.T) {
	values := []Value{10, 20, 30, 40, 50, 1000, 2000, 3000}
	d := buildDynamicFixture(t, values)

	toAdd := []Value{15, 25, 35, 45, 1500, 2500}
	for _, v := range toAdd {
		d.Add(v)
	}
	for _, v := range toAdd {
		if !d.Contains(v) {
			t.Fatalf("Contains(%d) = false after Add", v)
		}
	}

	expectDynamicPredecessor(t, d, 16, 15, true)
	expectDynamicPredecessor(t, d, 26, 25, true)
	expectDynamicPredecessor(t, d, 1501, 1500, true)

	for _, v := range toAdd {
		d.Remove(v)
	}
	for _, v := range toAdd {
		if d.Contains(v) {
			t.Fatalf("Contains(%d) = true after Remove", v)
		}
	}
	expectDynamicPredecessor(t, d, 16, 10, true)
	expectDynamicPredecessor(t, d, 1501, 1000, true)
}

func TestDynamicBoundaryNoPredecessor(t *testing.T) {
	values := []Value{10, 20, 30}
	d := buildDynamicFixture(t, values)
	expectDynamicPredecessor(t, d, 0, 0, false)
	expectDynamicPredecessor(t, d, 10, 0, false)
}
