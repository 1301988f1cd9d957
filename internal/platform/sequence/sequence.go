// Package sequence provides durable, monotonically increasing counters used
// to mint human-readable identifiers such as order and invoice numbers.
package sequence

import "context"

// Counter hands out the next value for a named sequence. The first call for
// an unknown name returns 1; every call increments by exactly 1. Two
// concurrent callers must never observe the same value for the same name.
type Counter interface {
	Next(ctx context.Context, name string) (int64, error)
}
