package samplelog

import "testing"

func TestRingAdd(t *testing.T) {
	r := newRing[int](5)
	for i := 0; i < 3; i++ {
		r.Add(i)
	}
	if r.Len() != 3 {
		t.Errorf("expected len 3, got %d", r.Len())
	}
}

func TestRingWrap(t *testing.T) {
	r := newRing[int](3)
	for i := 0; i < 5; i++ {
		r.Add(i)
	}
	if r.Len() != 3 {
		t.Errorf("expected len 3, got %d", r.Len())
	}
	items := r.All()
	if items[0] != 2 {
		t.Errorf("expected oldest item 2, got %d", items[0])
	}
	if items[2] != 4 {
		t.Errorf("expected newest item 4, got %d", items[2])
	}
}

func TestRingEmpty(t *testing.T) {
	r := newRing[string](10)
	if r.Len() != 0 {
		t.Error("new ring should be empty")
	}
	if len(r.All()) != 0 {
		t.Error("All() on empty ring should return empty slice")
	}
}
