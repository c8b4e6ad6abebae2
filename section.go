// Package scte35 decodes SCTE-35 splice information sections per the
// ANSI/SCTE 35 specification. Only the command types and descriptor types
// needed for ad-insertion signaling are supported: SpliceInsert, TimeSignal,
// and SegmentationDescriptor. Everything else fails with a typed error
// rather than being silently skipped or guessed.
package scte35

import "fmt"

const (
	tableID = 0xFC

	// SpliceInsertType is the splice_command_type for splice_insert.
	SpliceInsertType uint32 = 0x05
	// TimeSignalType is the splice_command_type for time_signal.
	TimeSignalType uint32 = 0x06
)

// SpliceCommand is implemented by the supported splice command payloads.
// The set is closed: decode dispatches only to the concrete types in this
// package and rejects every other splice_command_type.
type SpliceCommand interface {
	Type() uint32
	decode(r *bitReader) error
}

// SpliceTime carries an optional 33-bit PTS time.
type SpliceTime struct {
	TimeSpecifiedFlag bool
	PTSTime           *MPEGTime
}

// BreakDuration specifies the duration of a commercial break.
type BreakDuration struct {
	AutoReturn bool
	Duration   MPEGTime
}

// SpliceInfoSection is the top-level SCTE-35 structure. All fields are
// populated exactly as read off the wire; nothing is normalized.
type SpliceInfoSection struct {
	TableID                uint32
	SectionSyntaxIndicator bool
	PrivateIndicator       bool
	SectionLength          uint32
	ProtocolVersion        uint32
	EncryptedPacket        bool
	EncryptionAlgorithm    uint32
	PTSAdjustment          MPEGTime
	CWIndex                uint32
	Tier                   uint32
	SpliceCommandLength    uint32
	SpliceCommandType      uint32
	SpliceCommand          SpliceCommand
	DescriptorLoopLength   uint32
	SpliceDescriptors      SpliceDescriptors
}

type decodeConfig struct {
	strictLengths bool
	verifyCRC     bool
}

// DecodeOption configures optional validation performed by Decode.
type DecodeOption func(*decodeConfig)

// DecodeOptStrictLengths makes Decode cross-check section_length and
// splice_command_length against the bytes actually consumed, rejecting
// corrupt input that a lenient parse would read straight through.
func DecodeOptStrictLengths() DecodeOption {
	return func(c *decodeConfig) {
		c.strictLengths = true
	}
}

// DecodeOptVerifyCRC makes Decode verify the trailing MPEG-2 CRC_32
// before parsing.
func DecodeOptVerifyCRC() DecodeOption {
	return func(c *decodeConfig) {
		c.verifyCRC = true
	}
}

// Decode parses a single binary splice_info_section. The input must be
// exactly one complete message; outer framing (base64, TS packetization)
// is the caller's concern. Decode never mutates data and returns either a
// fully populated section or a typed error, never both.
func Decode(data []byte, opts ...DecodeOption) (*SpliceInfoSection, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.verifyCRC {
		if err := verifyCRC32(data); err != nil {
			return nil, err
		}
	}

	sis := &SpliceInfoSection{}
	if err := sis.decode(newBitReader(data), cfg); err != nil {
		return nil, err
	}
	return sis, nil
}

func (sis *SpliceInfoSection) decode(r *bitReader, cfg decodeConfig) error {
	sis.TableID = r.readUint32(8)
	if r.truncated {
		return ErrTruncatedInput
	}
	if sis.TableID != tableID {
		return fmt.Errorf("%w: 0x%02X, want 0xFC", ErrInvalidTableID, sis.TableID)
	}

	sis.SectionSyntaxIndicator = r.readBit()
	sis.PrivateIndicator = r.readBit()
	r.skip(2) // reserved
	sis.SectionLength = r.readUint32(12)
	sis.ProtocolVersion = r.readUint32(8)
	sis.EncryptedPacket = r.readBit()
	sis.EncryptionAlgorithm = r.readUint32(6)
	sis.PTSAdjustment = MPEGTime(r.readUint64(33))
	sis.CWIndex = r.readUint32(8)
	sis.Tier = r.readUint32(12)
	sis.SpliceCommandLength = r.readUint32(12)
	sis.SpliceCommandType = r.readUint32(8)
	if r.truncated {
		return ErrTruncatedInput
	}

	// splice_command_length is captured but never bounds the parse; the
	// command's own field widths are the source of truth.
	var cmd SpliceCommand
	switch sis.SpliceCommandType {
	case SpliceInsertType:
		cmd = &SpliceInsert{}
	case TimeSignalType:
		cmd = &TimeSignal{}
	default:
		return fmt.Errorf("%w: 0x%02X", ErrUnsupportedCommandType, sis.SpliceCommandType)
	}
	cmdStart := r.bytesConsumed()
	if err := cmd.decode(r); err != nil {
		return fmt.Errorf("scte35: decoding command type 0x%02X: %w", sis.SpliceCommandType, err)
	}
	sis.SpliceCommand = cmd
	cmdConsumed := r.bytesConsumed() - cmdStart

	sis.DescriptorLoopLength = r.readUint32(16)
	if r.truncated {
		return ErrTruncatedInput
	}
	descs, err := decodeSpliceDescriptors(r, int(sis.DescriptorLoopLength))
	if err != nil {
		return err
	}
	sis.SpliceDescriptors = descs

	if cfg.strictLengths {
		return sis.checkLengths(r, cmdConsumed)
	}
	return nil
}

// checkLengths validates the declared lengths against bytes consumed.
// 0xFFF is the legacy "length not specified" sentinel and is not checked.
func (sis *SpliceInfoSection) checkLengths(r *bitReader, cmdConsumed int) error {
	if sis.SpliceCommandLength != 0xFFF && int(sis.SpliceCommandLength) != cmdConsumed {
		return fmt.Errorf("%w: splice_command_length %d, consumed %d",
			ErrLengthMismatch, sis.SpliceCommandLength, cmdConsumed)
	}
	// section_length counts everything after itself, including the 4-byte
	// CRC_32 that the parser leaves unread.
	declared := 3 + int(sis.SectionLength)
	consumed := r.bytesConsumed() + 4
	if declared != consumed {
		return fmt.Errorf("%w: section_length %d, section is %d bytes",
			ErrLengthMismatch, declared, consumed)
	}
	return nil
}

// decodeSpliceDescriptors parses descriptor records until the declared
// byte budget is exhausted. The budget is decremented by cursor deltas per
// record and must land on exactly zero.
func decodeSpliceDescriptors(r *bitReader, loopLength int) (SpliceDescriptors, error) {
	var descs SpliceDescriptors
	remaining := loopLength
	for remaining > 0 {
		start := r.bytesConsumed()
		d, err := decodeSpliceDescriptor(r)
		if err != nil {
			return nil, err
		}
		remaining -= r.bytesConsumed() - start
		if remaining < 0 {
			return nil, fmt.Errorf("%w: loop overran by %d bytes",
				ErrDescriptorLengthMismatch, -remaining)
		}
		descs = append(descs, d)
	}
	return descs, nil
}
