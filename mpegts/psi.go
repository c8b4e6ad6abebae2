package mpegts

import (
	"errors"
	"fmt"

	"github.com/zsiec/scte35"
)

const (
	tableIDPAT = 0x00
	tableIDPMT = 0x02

	// streamTypeSCTE35 is the registration stream_type for SCTE-35
	// splice information sections carried in a program.
	streamTypeSCTE35 = 0x86
)

// errPSIChecksum marks a PAT/PMT section whose CRC_32 does not verify.
// The extractor logs and skips these rather than failing the stream.
var errPSIChecksum = errors.New("mpegts: PSI checksum failed")

type psiData struct {
	pat *PATData
	pmt *PMTData
}

// parsePSI walks a reassembled PSI payload, pointer_field first, and
// parses each PAT/PMT section it contains. Other table types and 0xFF
// stuffing end the walk; this package only ever needs the program tables
// for cue PID discovery.
func parsePSI(payload []byte) ([]psiData, error) {
	if len(payload) == 0 {
		return nil, errors.New("mpegts: empty PSI payload")
	}
	pos := 1 + int(payload[0])
	if pos >= len(payload) {
		return nil, fmt.Errorf("mpegts: pointer_field %d past payload end", payload[0])
	}

	var out []psiData
	for pos < len(payload) {
		if payload[pos] == 0xFF { // stuffing
			break
		}
		if pos+3 > len(payload) {
			break
		}
		// PAT/PMT always set section_syntax_indicator; zero padding
		// does not.
		if payload[pos+1]&0x80 == 0 {
			break
		}

		length := int(payload[pos+1]&0x0F)<<8 | int(payload[pos+2])
		next := pos + 3 + length
		if next > len(payload) {
			break
		}
		sec := payload[pos:next]

		switch payload[pos] {
		case tableIDPAT:
			pat, err := parsePATSection(sec)
			if err != nil {
				return out, err
			}
			out = append(out, psiData{pat: pat})
		case tableIDPMT:
			pmt, err := parsePMTSection(sec)
			if err != nil {
				return out, err
			}
			out = append(out, psiData{pmt: pmt})
		}

		pos = next
	}
	return out, nil
}

// parsePATSection pulls the program_number to PMT PID associations out of
// a program association section. The table header (transport_stream_id,
// version, section numbering) is irrelevant to cue discovery and skipped.
func parsePATSection(sec []byte) (*PATData, error) {
	const patHeader = 8 // through last_section_number
	if len(sec) < patHeader+4 {
		return nil, fmt.Errorf("mpegts: PAT section of %d bytes", len(sec))
	}
	if scte35.CRC32(sec) != 0 {
		return nil, fmt.Errorf("%w: PAT", errPSIChecksum)
	}

	pat := &PATData{}
	// Program entries are 4 bytes each, up to the trailing CRC_32. The
	// caller already sliced sec to the declared section length.
	for pos := patHeader; pos+4 <= len(sec)-4; pos += 4 {
		num := uint16(sec[pos])<<8 | uint16(sec[pos+1])
		if num == 0 {
			continue // network PID entry, not a program
		}
		pat.Programs = append(pat.Programs, &PATProgram{
			ProgramNumber: num,
			ProgramMapID:  uint16(sec[pos+2]&0x1F)<<8 | uint16(sec[pos+3]),
		})
	}
	return pat, nil
}

// parsePMTSection pulls the stream_type / elementary_PID pairs out of a
// program map section. Descriptor bytes are skipped, not decoded: the
// SCTE-35 registration this package looks for is stream_type 0x86 itself.
func parsePMTSection(sec []byte) (*PMTData, error) {
	const pmtHeader = 12 // through program_info_length
	if len(sec) < pmtHeader+4 {
		return nil, fmt.Errorf("mpegts: PMT section of %d bytes", len(sec))
	}
	if scte35.CRC32(sec) != 0 {
		return nil, fmt.Errorf("%w: PMT", errPSIChecksum)
	}

	infoLen := int(sec[10]&0x0F)<<8 | int(sec[11])

	pmt := &PMTData{}
	for pos := pmtHeader + infoLen; pos+5 <= len(sec)-4; {
		esInfoLen := int(sec[pos+3]&0x0F)<<8 | int(sec[pos+4])
		pmt.ElementaryStreams = append(pmt.ElementaryStreams, &PMTElementaryStream{
			StreamType:    sec[pos],
			ElementaryPID: uint16(sec[pos+1]&0x1F)<<8 | uint16(sec[pos+2]),
		})
		pos += 5 + esInfoLen
	}
	return pmt, nil
}
