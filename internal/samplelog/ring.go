package samplelog

// ring is a fixed-capacity circular buffer that keeps the newest items.
type ring[T any] struct {
	items []T
	head  int
	count int
	cap   int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{
		items: make([]T, capacity),
		cap:   capacity,
	}
}

// Add inserts an item, overwriting the oldest if full.
func (r *ring[T]) Add(item T) {
	r.items[r.head] = item
	r.head = (r.head + 1) % r.cap
	if r.count < r.cap {
		r.count++
	}
}

func (r *ring[T]) Len() int {
	return r.count
}

// All returns the items from oldest to newest.
func (r *ring[T]) All() []T {
	result := make([]T, r.count)
	start := 0
	if r.count == r.cap {
		start = r.head
	}
	for i := 0; i < r.count; i++ {
		result[i] = r.items[(start+i)%r.cap]
	}
	return result
}
