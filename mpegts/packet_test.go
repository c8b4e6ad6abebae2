package mpegts

import (
	"testing"
)

func makePacket(pid uint16, cc uint8, pusi bool, payload []byte) []byte {
	buf := make([]byte, packetSize)
	buf[0] = syncByte
	buf[1] = byte(pid>>8) & 0x1F
	buf[2] = byte(pid)
	buf[3] = 0x10 | (cc & 0x0F) // payload only
	if pusi {
		buf[1] |= 0x40
	}
	copy(buf[4:], payload)
	return buf
}

func TestParsePacket_Normal(t *testing.T) {
	t.Parallel()
	payload := []byte{0x01, 0x02, 0x03}
	buf := makePacket(0x100, 5, false, payload)

	p, err := parsePacket(buf)
	if err != nil {
		t.Fatal(err)
	}

	if p.Header.PID != 0x100 {
		t.Errorf("PID = %d, want %d", p.Header.PID, 0x100)
	}
	if p.Header.ContinuityCounter != 5 {
		t.Errorf("CC = %d, want 5", p.Header.ContinuityCounter)
	}
	if p.Header.PayloadUnitStartIndicator {
		t.Error("PUSI should be false")
	}
	if !p.Header.HasPayload {
		t.Error("HasPayload should be true")
	}
	if len(p.Payload) != 184 {
		t.Errorf("payload length = %d, want 184", len(p.Payload))
	}
}

func TestParsePacket_PUSI(t *testing.T) {
	t.Parallel()
	buf := makePacket(0x1F4, 0, true, nil)
	p, err := parsePacket(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Header.PayloadUnitStartIndicator {
		t.Error("PUSI should be true")
	}
	if p.Header.PID != 0x1F4 {
		t.Errorf("PID = 0x%X, want 0x1F4", p.Header.PID)
	}
}

func TestParsePacket_AdaptationField(t *testing.T) {
	t.Parallel()
	buf := make([]byte, packetSize)
	buf[0] = syncByte
	buf[2] = 0x64
	buf[3] = 0x30 | 7 // adaptation + payload
	buf[4] = 10       // AF length
	buf[5] = 0x80     // discontinuity indicator
	copy(buf[15:], []byte{0xAA, 0xBB})

	p, err := parsePacket(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Header.HasAdaptationField {
		t.Error("HasAdaptationField should be true")
	}
	if !p.Header.DiscontinuityIndicator {
		t.Error("DiscontinuityIndicator should be true")
	}
	if len(p.Payload) != packetSize-15 {
		t.Errorf("payload length = %d, want %d", len(p.Payload), packetSize-15)
	}
	if p.Payload[0] != 0xAA || p.Payload[1] != 0xBB {
		t.Error("payload content mismatch")
	}
}

func TestParsePacket_BadSync(t *testing.T) {
	t.Parallel()
	buf := make([]byte, packetSize)
	buf[0] = 0x48
	if _, err := parsePacket(buf); err == nil {
		t.Error("expected error for bad sync byte")
	}
}

func TestParsePacket_BadSize(t *testing.T) {
	t.Parallel()
	if _, err := parsePacket(make([]byte, 100)); err == nil {
		t.Error("expected error for short packet")
	}
}
