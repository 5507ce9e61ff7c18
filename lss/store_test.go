package lss

import "testing"

func TestElementStorePredecessorFrom(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000, 10000}
	cases := []struct {
		q        Value
		seed     uint64
		span     uint64
		want     Value
		wantBool bool
	}{
		{q: 2, seed: 0, span: 6, want: 1, wantBool: true},
		{q: 1, seed: 0, span: 6, want: 0, wantBool: false},
		{q: 500, seed: 3, span: 3, want: 100, wantBool: true},
		{q: 10001, seed: 0, span: 6, want: 10000, wantBool: true},
	}
	for _, tc := range cases {
		store := newElementStore(values, 8)
		got, found := store.predecessorFrom(tc.q, tc.seed, tc.span)
		if found != tc.wantBool || (found && got != tc.want) {
			t.Errorf("predecessorFrom(%d, seed=%d, span=%d) = (%d,%v), want (%d,%v)",
				tc.q, tc.seed, tc.span, got, found, tc.want, tc.wantBool)
		}
	}
}

func TestElementStoreLinearVsBinaryAgree(t *testing.T) {
	values := make([]Value, 0, 50)
	for i := Value(0); i < 50; i++ {
		values = append(values, i*3)
	}
	linear := newElementStore(values, 1000) // always linear
	binary := newElementStore(values, 0)    // always binary

	for q := Value(0); q < 160; q++ {
		lv, lf := linear.lsearchPredecessor(q, 0)
		bv, bf := binary.bsearchPredecessor(q, 0, uint64(len(values)))
		if lv != bv || lf != bf {
			t.Fatalf("q=%d: linear=(%d,%v) binary=(%d,%v)", q, lv, lf, bv, bf)
		}
	}
}

// TestBsearchPredecessorLooksBeforeWindowStart covers a window whose lo
// isn't the true start of the store: the query can fall below values[lo],
// and the answer then sits one slot before lo rather than being "not found".
func TestBsearchPredecessorLooksBeforeWindowStart(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000, 10000}
	store := newElementStore(values, 0)
	got, found := store.bsearchPredecessor(50, 3, 6)
	if !found || got != 3 {
		t.Fatalf("bsearchPredecessor(50, 3, 6) = (%d,%v), want (3,true)", got, found)
	}
	got, found = store.bsearchPredecessor(0, 0, 6)
	if found {
		t.Fatalf("bsearchPredecessor(0, 0, 6) = (%d,%v), want not found", got, found)
	}
}

func TestElementStoreIndexAndLen(t *testing.T) {
	values := []Value{7, 8, 9}
	store := newElementStore(values, 8)
	if store.len() != 3 {
		t.Fatalf("len() = %d, want 3", store.len())
	}
	if store.index(1) != 8 {
		t.Fatalf("index(1) = %d, want 8", store.index(1))
	}
}
