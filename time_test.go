package scte35

import (
	"math"
	"testing"
	"time"
)

func TestMPEGTimeSeconds(t *testing.T) {
	t.Parallel()
	// Ticks across the full 33-bit range, including both fixture values.
	ticks := []uint64{0, 1, 12345, 90000, 756296448, 19125000, 1<<33 - 1}
	for _, n := range ticks {
		mt := MPEGTime(n)
		if got, want := mt.Seconds(), float64(n)/90000.0; got != want {
			t.Errorf("Seconds(%d): got %v, want %v", n, got, want)
		}
		// Round trip through seconds recovers the tick count exactly.
		if back := uint64(math.Round(mt.Seconds() * 90000)); back != n {
			t.Errorf("round trip %d: got %d", n, back)
		}
	}
}

func TestMPEGTimeDuration(t *testing.T) {
	t.Parallel()
	if got := MPEGTime(90000).Duration(); got != time.Second {
		t.Errorf("Duration(90000): got %v, want 1s", got)
	}
	if got := MPEGTime(19125000).Duration(); got != 212500*time.Millisecond {
		t.Errorf("Duration(19125000): got %v, want 3m32.5s", got)
	}
	// Segmentation durations are 40 bits; the biggest one is over 141
	// days and must not wrap negative.
	max40 := MPEGTime(1<<40 - 1)
	want := 12216795*time.Second + 864166666*time.Nanosecond
	if got := max40.Duration(); got != want {
		t.Errorf("Duration(2^40-1): got %v, want %v", got, want)
	}
}

func TestMPEGTimeString(t *testing.T) {
	t.Parallel()
	if got, want := MPEGTime(90000).String(), "90000 (1.000000s)"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}
