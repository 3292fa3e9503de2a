package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPanics(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
	if panics(func() {}) {
		t.Fatalf("quiet func reported a panic")
	}
	MustContain(t, "hide replies matching crypto", "crypto")
}

var limit = 3

func TestSwap(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		Swap(t, &limit, 10)
		if limit != 10 {
			t.Fatalf("limit = %d", limit)
		}
	})
	if limit != 3 {
		t.Fatalf("limit not restored: %d", limit)
	}
}

func TestSerial(t *testing.T) {
	var inside, overlap atomic.Int32
	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"a", "b", "c"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				if inside.Add(1) > 1 {
					overlap.Add(1)
				}
				time.Sleep(10 * time.Millisecond)
				inside.Add(-1)
			})
		}
	})
	if overlap.Load() != 0 {
		t.Fatalf("serial tests overlapped")
	}
}
