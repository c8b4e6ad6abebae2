package main

import (
	"bytes"
	"encoding/base64"
	"log/slog"
	"strings"
	"testing"
)

// tsPacket wraps a section in one transport packet on pid: pointer
// field, section bytes, 0xFF stuffing.
func tsPacket(pid uint16, section []byte) []byte {
	buf := make([]byte, 188)
	for i := range buf {
		buf[i] = 0xFF
	}
	buf[0] = 0x47
	buf[1] = 0x40 | byte(pid>>8)&0x1F // PUSI
	buf[2] = byte(pid)
	buf[3] = 0x10 // payload only, continuity 0
	buf[4] = 0x00 // pointer field
	copy(buf[5:], section)
	return buf
}

func TestScanStreamExplicitPIDZero(t *testing.T) {
	t.Parallel()

	cue, err := base64.StdEncoding.DecodeString("/DAlAAAAAAAAAP/wFAUAAAABf+/+LRQrAP4BI9MIAAEBAQAAfxV6SQ==")
	if err != nil {
		t.Fatal(err)
	}
	pkt := tsPacket(0x0000, cue)

	// An explicitly forced PID of 0 must win over PAT handling.
	var logBuf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logBuf, nil))
	pid := uint16(0)
	if err := scanStream(bytes.NewReader(pkt), log, &pid); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logBuf.String(), "SCTE-35 cue") {
		t.Errorf("forced PID 0: no cue logged:\n%s", logBuf.String())
	}

	// Without the flag, PID 0 stays the program association table and
	// the section is not treated as a cue.
	logBuf.Reset()
	if err := scanStream(bytes.NewReader(pkt), log, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(logBuf.String(), "SCTE-35 cue") {
		t.Errorf("unforced PID 0: cue logged unexpectedly:\n%s", logBuf.String())
	}
}
