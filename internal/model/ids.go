package model

import "sync/atomic"

// IDAllocator hands out item IDs from a monotonic counter.
// One allocator is shared by everything that builds items for the same host,
// so trees parsed before and after an edit never reuse an ID.
type IDAllocator struct {
	last atomic.Int64
}

// NewIDAllocator creates an allocator whose first ID is 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a fresh ID
func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}
