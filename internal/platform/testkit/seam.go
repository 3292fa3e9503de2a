package testkit

import (
	"sync"
	"testing"
)

var serial sync.Mutex

// Swap replaces *target until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock for the rest of t
// tests that swap package seams take it so parallel tests cannot observe the swap
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
