package scte35

import "errors"

// Decode failures are fatal to the whole call: a malformed message cannot
// become well-formed by retrying, and no partial section is ever returned.
// Errors are wrapped with context; match them with errors.Is.
var (
	// ErrInvalidTableID is returned when the first byte of the section is
	// not the splice_info_section table_id (0xFC).
	ErrInvalidTableID = errors.New("scte35: invalid table_id")

	// ErrUnsupportedCommandType is returned for splice_command_type values
	// outside the supported set {splice_insert, time_signal}.
	ErrUnsupportedCommandType = errors.New("scte35: unsupported splice_command_type")

	// ErrUnsupportedDescriptorTag is returned for descriptor tags the
	// grammar defines but this decoder does not implement
	// (avail_descriptor, DTMF_descriptor, time_descriptor).
	ErrUnsupportedDescriptorTag = errors.New("scte35: unsupported splice_descriptor_tag")

	// ErrUnknownDescriptorTag is returned for descriptor tags outside the
	// set the grammar defines.
	ErrUnknownDescriptorTag = errors.New("scte35: unknown splice_descriptor_tag")

	// ErrTruncatedInput is returned when a field read would run past the
	// end of the input buffer.
	ErrTruncatedInput = errors.New("scte35: truncated input")

	// ErrDescriptorLengthMismatch is returned when the descriptor loop's
	// remaining-byte budget goes negative or does not land on exactly zero.
	ErrDescriptorLengthMismatch = errors.New("scte35: splice_descriptor_loop_length mismatch")

	// ErrLengthMismatch is returned in strict mode when section_length or
	// splice_command_length disagrees with the bytes actually consumed.
	ErrLengthMismatch = errors.New("scte35: declared length mismatch")

	// ErrCRCMismatch is returned when CRC verification is enabled and the
	// trailing CRC_32 does not match the section contents.
	ErrCRCMismatch = errors.New("scte35: CRC32 mismatch")
)
