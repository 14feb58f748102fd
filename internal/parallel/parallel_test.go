package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor_VisitsEveryIndex(t *testing.T) {
	const n = 10000

	visited := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&visited[i], 1)
	}, DefaultConfig())

	for i, count := range visited {
		if count != 1 {
			t.Fatalf("Index %d visited %d times, expected 1", i, count)
		}
	}
}

func TestFor_SmallInputRunsSerial(t *testing.T) {
	cfg := DefaultConfig()

	var total int32
	For(10, func(i int) {
		atomic.AddInt32(&total, int32(i))
	}, cfg)

	if total != 45 {
		t.Errorf("Expected 45, got %d", total)
	}
}

func TestFor_Disabled(t *testing.T) {
	cfg := Config{Enabled: false}

	var total int32
	For(100, func(i int) {
		total++ // no atomics needed when serial
	}, cfg)

	if total != 100 {
		t.Errorf("Expected 100, got %d", total)
	}
}

func TestFor_ZeroItems(t *testing.T) {
	For(0, func(i int) {
		t.Error("Body should not run for zero items")
	}, DefaultConfig())
}
