package testkit

import (
	"sync"
	"testing"
	"time"
)

var clockSeam = func() string { return "real" }

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clockSeam, func() string { return "fake" })
		if got := clockSeam(); got != "fake" {
			t.Fatalf("swap did not take effect, got %q", got)
		}
	})
	if got := clockSeam(); got != "real" {
		t.Fatalf("swap did not restore original, got %q", got)
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seq := make([]string, 0, 4)
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	for _, name := range []string{"A", "B"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			Serial(t)
			record(name + "-start")
			time.Sleep(20 * time.Millisecond)
			record(name + "-end")
		})
	}

	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		if len(seq) != 4 {
			t.Fatalf("sequence length %d, seq=%v", len(seq), seq)
		}
		// whichever subtest started first must also have finished first
		if seq[1] != seq[0][:1]+"-end" {
			t.Fatalf("interleaved execution: %v", seq)
		}
	})
}
