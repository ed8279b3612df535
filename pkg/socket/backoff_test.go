package socket

import (
	"testing"
	"time"
)

func TestBackoff_GrowsAndCaps(t *testing.T) {
	b := Backoff{Min: 100 * time.Millisecond, Max: time.Second}

	want := []time.Duration{100, 200, 400, 800, 1000, 1000}
	for i, w := range want {
		if got := b.Duration(i + 1); got != w*time.Millisecond {
			t.Fatalf("attempt %d: got %v want %v", i+1, got, w*time.Millisecond)
		}
	}
}

func TestBackoff_JitterBounds(t *testing.T) {
	low := Backoff{Min: time.Second, Max: 10 * time.Second, Jitter: 0.2, rand: func() float64 { return 0 }}
	high := Backoff{Min: time.Second, Max: 10 * time.Second, Jitter: 0.2, rand: func() float64 { return 0.999999 }}

	if got := low.Duration(1); got != 800*time.Millisecond {
		t.Fatalf("low = %v", got)
	}
	if got := high.Duration(1); got < 1190*time.Millisecond || got > 1200*time.Millisecond {
		t.Fatalf("high = %v", got)
	}
	if got := high.Duration(10); got > 10*time.Second {
		t.Fatalf("jitter exceeded max: %v", got)
	}
}
