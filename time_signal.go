package scte35

// TimeSignal couples a presentation time to out-of-band signaling, usually
// the segmentation descriptors in the same section.
type TimeSignal struct {
	SpliceTime SpliceTime
}

// Type returns TimeSignalType.
func (cmd *TimeSignal) Type() uint32 { return TimeSignalType }

func (cmd *TimeSignal) decode(r *bitReader) error {
	cmd.SpliceTime = decodeSpliceTime(r)
	if r.truncated {
		return ErrTruncatedInput
	}
	return nil
}
