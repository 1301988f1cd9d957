package sequence

import (
	"context"
	"sync"
)

var _ Counter = (*MemoryCounter)(nil)

// MemoryCounter is an in-process Counter for tests and DSN-less runs.
type MemoryCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{values: map[string]int64{}}
}

func (c *MemoryCounter) Next(_ context.Context, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name]++
	return c.values[name], nil
}
