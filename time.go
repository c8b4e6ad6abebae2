package scte35

import (
	"fmt"
	"time"
)

// ticksPerSecond is the MPEG system clock rate used by PTS values.
const ticksPerSecond = 90000

// MPEGTime is a tick count on the 90 kHz MPEG clock. PTS fields carry
// 33 bits of it, segmentation durations 40 bits; either way the value is
// immutable and has no identity beyond its tick count.
type MPEGTime uint64

// Ticks returns the raw 90 kHz tick count.
func (t MPEGTime) Ticks() uint64 { return uint64(t) }

// Seconds returns the tick count converted to seconds.
func (t MPEGTime) Seconds() float64 { return float64(t) / ticksPerSecond }

// Duration returns the tick count as a wall-clock duration. Whole seconds
// are split off before scaling so that 40-bit tick counts do not overflow
// the nanosecond representation.
func (t MPEGTime) Duration() time.Duration {
	secs := uint64(t) / ticksPerSecond
	rem := uint64(t) % ticksPerSecond
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/ticksPerSecond
}

func (t MPEGTime) String() string {
	return fmt.Sprintf("%d (%.6fs)", uint64(t), t.Seconds())
}
