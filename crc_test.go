package scte35

import "testing"

func TestCRC32Residue(t *testing.T) {
	t.Parallel()

	// The checksum of a complete section, trailing CRC_32 included, is
	// zero. This is the property the transport-stream side relies on.
	section := mustBase64(t, goldenBase64)
	if got := CRC32(section); got != 0 {
		t.Errorf("CRC32 over full section: got 0x%08X, want 0", got)
	}
	if got := CRC32(section[:len(section)-4]); got == 0 {
		t.Error("CRC32 over body alone should not be zero")
	}

	// Flipping any body bit breaks the residue.
	section[10] ^= 0x01
	if got := CRC32(section); got == 0 {
		t.Error("CRC32 over corrupted section should not be zero")
	}
}
