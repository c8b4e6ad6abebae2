package mpegts

import (
	"bytes"
	"encoding/base64"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zsiec/scte35"
)

const cuePID = 0x1F4

// goldenCue is a well-known splice_insert marker (see the scte35 package
// golden tests).
const goldenCue = "/DAlAAAAAAAAAP/wFAUAAAABf+/+LRQrAP4BI9MIAAEBAQAAfxV6SQ=="

func goldenCueSection(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(goldenCue)
	require.NoError(t, err)
	return data
}

// withCRC appends the MPEG-2 CRC32 over section to section.
func withCRC(section []byte) []byte {
	crc := scte35.CRC32(section)
	return append(section, byte(crc>>24), byte(crc>>16), byte(crc>>8), byte(crc))
}

func patSection() []byte {
	// One program: program_number 1, PMT PID 0x100.
	return withCRC([]byte{
		0x00, 0xB0, 0x0D, // table_id, syntax+length
		0x00, 0x01, 0xC1, 0x00, 0x00, // tsid, version, section numbers
		0x00, 0x01, 0xE1, 0x00, // program 1 -> PID 0x100
	})
}

func pmtSection() []byte {
	// One elementary stream: stream_type 0x86 (SCTE-35) on PID 0x1F4.
	return withCRC([]byte{
		0x02, 0xB0, 0x12, // table_id, syntax+length
		0x00, 0x01, 0xC1, 0x00, 0x00, // program 1, version, section numbers
		0xE1, 0xFF, 0xF0, 0x00, // PCR PID, program_info_length 0
		0x86, 0xE1, 0xF4, 0xF0, 0x00, // SCTE-35 stream on 0x1F4
	})
}

// sectionPacket wraps a section in a single TS packet: pointer field,
// section bytes, 0xFF stuffing.
func sectionPacket(pid uint16, cc uint8, section []byte) []byte {
	payload := make([]byte, packetSize-4)
	for i := range payload {
		payload[i] = 0xFF
	}
	payload[0] = 0x00 // pointer field
	copy(payload[1:], section)
	return makePacket(pid, cc, true, payload)
}

// afPacket builds a packet whose adaptation field shrinks the payload to
// exactly len(payload) bytes.
func afPacket(pid uint16, cc uint8, pusi bool, payload []byte) []byte {
	buf := make([]byte, packetSize)
	buf[0] = syncByte
	buf[1] = byte(pid>>8) & 0x1F
	if pusi {
		buf[1] |= 0x40
	}
	buf[2] = byte(pid)
	buf[3] = 0x30 | (cc & 0x0F)
	afLen := packetSize - 5 - len(payload)
	buf[4] = byte(afLen)
	copy(buf[5+afLen:], payload)
	return buf
}

func TestExtractorPMTDiscovery(t *testing.T) {
	t.Parallel()
	cue := goldenCueSection(t)

	var stream bytes.Buffer
	stream.Write(sectionPacket(0x0000, 0, patSection()))
	stream.Write(sectionPacket(0x0100, 0, pmtSection()))
	stream.Write(sectionPacket(cuePID, 0, cue))

	e := NewExtractor(&stream)

	s, err := e.Next()
	require.NoError(t, err)
	require.Equal(t, uint16(cuePID), s.PID)
	require.Equal(t, cue, s.Data)

	sis, err := scte35.Decode(s.Data, scte35.DecodeOptVerifyCRC())
	require.NoError(t, err)
	require.Equal(t, scte35.SpliceInsertType, sis.SpliceCommandType)

	_, err = e.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestExtractorSkipsBadPSIChecksum(t *testing.T) {
	t.Parallel()
	cue := goldenCueSection(t)

	// Corrupt the PMT checksum: the cue PID never gets registered, so
	// the cue section must not come out the other side.
	pmt := pmtSection()
	pmt[len(pmt)-1] ^= 0xFF

	var stream bytes.Buffer
	stream.Write(sectionPacket(0x0000, 0, patSection()))
	stream.Write(sectionPacket(0x0100, 0, pmt))
	stream.Write(sectionPacket(cuePID, 0, cue))

	e := NewExtractor(&stream)
	_, err := e.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestExtractorExplicitPID(t *testing.T) {
	t.Parallel()
	cue := goldenCueSection(t)

	// No PAT/PMT in the stream at all.
	var stream bytes.Buffer
	stream.Write(sectionPacket(cuePID, 0, cue))

	e := NewExtractor(&stream, ExtractorOptPID(cuePID))

	s, err := e.Next()
	require.NoError(t, err)
	require.Equal(t, cue, s.Data)

	_, err = e.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestExtractorSplitSection(t *testing.T) {
	t.Parallel()
	cue := goldenCueSection(t)

	// Section split across two packets via adaptation-field padding.
	first := append([]byte{0x00}, cue[:29]...)
	rest := append([]byte(nil), cue[29:]...)
	rest = append(rest, 0xFF, 0xFF, 0xFF)

	var stream bytes.Buffer
	stream.Write(afPacket(cuePID, 0, true, first))
	stream.Write(afPacket(cuePID, 1, false, rest))

	e := NewExtractor(&stream, ExtractorOptPID(cuePID))

	s, err := e.Next()
	require.NoError(t, err)
	require.Equal(t, cue, s.Data)

	_, err = e.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestExtractorIgnoresOtherPIDs(t *testing.T) {
	t.Parallel()
	var stream bytes.Buffer
	// Random payload PID with no PMT registration.
	stream.Write(makePacket(0x0200, 0, true, []byte{0xDE, 0xAD}))
	stream.Write(makePacket(0x0200, 1, false, []byte{0xBE, 0xEF}))

	e := NewExtractor(&stream)
	_, err := e.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestExtractorMultipleCues(t *testing.T) {
	t.Parallel()
	cue := goldenCueSection(t)

	var stream bytes.Buffer
	stream.Write(sectionPacket(0x0000, 0, patSection()))
	stream.Write(sectionPacket(0x0100, 0, pmtSection()))
	stream.Write(sectionPacket(cuePID, 0, cue))
	stream.Write(sectionPacket(cuePID, 1, cue))

	e := NewExtractor(&stream)

	var sections []Section
	for {
		s, err := e.Next()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		sections = append(sections, s)
	}
	require.Len(t, sections, 2)
}
