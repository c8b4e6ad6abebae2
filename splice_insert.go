package scte35

// SpliceInsert signals a splice point in the stream.
//
// When SpliceEventCancelIndicator is set, parsing stops after the cancel
// byte and the flag fields, component list, break duration, and the
// UniqueProgramID/AvailNum/AvailsExpected trailer are all left at their
// zero values. Strict-length mode will reject cancelled messages whose
// encoder counted the trailer into splice_command_length.
type SpliceInsert struct {
	SpliceEventID              uint32
	SpliceEventCancelIndicator bool
	OutOfNetworkIndicator      bool
	ProgramSpliceFlag          bool
	DurationFlag               bool
	SpliceImmediateFlag        bool
	SpliceTime                 *SpliceTime
	Components                 []SpliceInsertComponent
	BreakDuration              *BreakDuration
	UniqueProgramID            uint32
	AvailNum                   uint32
	AvailsExpected             uint32
}

// SpliceInsertComponent identifies an elementary stream the splice applies
// to when the splice is component-level rather than program-level.
type SpliceInsertComponent struct {
	Tag        uint32
	SpliceTime *SpliceTime
}

// Type returns SpliceInsertType.
func (cmd *SpliceInsert) Type() uint32 { return SpliceInsertType }

func (cmd *SpliceInsert) decode(r *bitReader) error {
	cmd.SpliceEventID = r.readUint32(32)
	cmd.SpliceEventCancelIndicator = r.readBit()
	r.skip(7) // reserved
	if r.truncated {
		return ErrTruncatedInput
	}

	if cmd.SpliceEventCancelIndicator {
		// Cancelled events carry no further fields, including the trailer.
		return nil
	}

	cmd.OutOfNetworkIndicator = r.readBit()
	cmd.ProgramSpliceFlag = r.readBit()
	cmd.DurationFlag = r.readBit()
	cmd.SpliceImmediateFlag = r.readBit()
	r.skip(4) // reserved

	if cmd.ProgramSpliceFlag && !cmd.SpliceImmediateFlag {
		st := decodeSpliceTime(r)
		cmd.SpliceTime = &st
	}

	if !cmd.ProgramSpliceFlag {
		componentCount := int(r.readUint32(8))
		if r.truncated {
			return ErrTruncatedInput
		}
		for i := 0; i < componentCount; i++ {
			c := SpliceInsertComponent{Tag: r.readUint32(8)}
			if cmd.SpliceImmediateFlag {
				st := decodeSpliceTime(r)
				c.SpliceTime = &st
			}
			if r.truncated {
				return ErrTruncatedInput
			}
			cmd.Components = append(cmd.Components, c)
		}
	}

	if cmd.DurationFlag {
		bd := BreakDuration{AutoReturn: r.readBit()}
		r.skip(6) // reserved
		bd.Duration = MPEGTime(r.readUint64(33))
		cmd.BreakDuration = &bd
	}

	cmd.UniqueProgramID = r.readUint32(16)
	cmd.AvailNum = r.readUint32(8)
	cmd.AvailsExpected = r.readUint32(8)
	if r.truncated {
		return ErrTruncatedInput
	}
	return nil
}

// decodeSpliceTime reads the shared splice_time() structure. Total width
// is a deterministic function of the flag alone: 1+7 bits when no time is
// specified, 1+6+33 bits when one is.
func decodeSpliceTime(r *bitReader) SpliceTime {
	var st SpliceTime
	st.TimeSpecifiedFlag = r.readBit()
	if st.TimeSpecifiedFlag {
		r.skip(6) // reserved
		pts := MPEGTime(r.readUint64(33))
		st.PTSTime = &pts
	} else {
		r.skip(7) // reserved
	}
	return st
}
