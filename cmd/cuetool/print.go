package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zsiec/scte35"
)

// formatSection renders a decoded splice_info_section as an indented,
// human-readable dump.
func formatSection(sis *scte35.SpliceInfoSection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "splice_info_section table_id=0x%02X section_length=%d\n", sis.TableID, sis.SectionLength)
	fmt.Fprintf(&b, "  protocol_version=%d encrypted=%t tier=0x%03X\n", sis.ProtocolVersion, sis.EncryptedPacket, sis.Tier)
	fmt.Fprintf(&b, "  pts_adjustment=%s\n", sis.PTSAdjustment)

	switch cmd := sis.SpliceCommand.(type) {
	case *scte35.SpliceInsert:
		fmt.Fprintf(&b, "  splice_insert event_id=%d\n", cmd.SpliceEventID)
		if cmd.SpliceEventCancelIndicator {
			b.WriteString("    cancelled\n")
			break
		}
		direction := "IN (return to network)"
		if cmd.OutOfNetworkIndicator {
			direction = "OUT (leave network)"
		}
		fmt.Fprintf(&b, "    direction=%s immediate=%t\n", direction, cmd.SpliceImmediateFlag)
		if cmd.SpliceTime != nil && cmd.SpliceTime.PTSTime != nil {
			fmt.Fprintf(&b, "    splice_time=%s\n", *cmd.SpliceTime.PTSTime)
		}
		for _, c := range cmd.Components {
			if c.SpliceTime != nil && c.SpliceTime.PTSTime != nil {
				fmt.Fprintf(&b, "    component tag=0x%02X splice_time=%s\n", c.Tag, *c.SpliceTime.PTSTime)
			} else {
				fmt.Fprintf(&b, "    component tag=0x%02X\n", c.Tag)
			}
		}
		if cmd.BreakDuration != nil {
			fmt.Fprintf(&b, "    break_duration=%s auto_return=%t\n", cmd.BreakDuration.Duration, cmd.BreakDuration.AutoReturn)
		}
		fmt.Fprintf(&b, "    unique_program_id=%d avail=%d/%d\n", cmd.UniqueProgramID, cmd.AvailNum, cmd.AvailsExpected)

	case *scte35.TimeSignal:
		if cmd.SpliceTime.PTSTime != nil {
			fmt.Fprintf(&b, "  time_signal pts=%s\n", *cmd.SpliceTime.PTSTime)
		} else {
			b.WriteString("  time_signal (no time specified)\n")
		}
	}

	for _, d := range sis.SpliceDescriptors {
		sd, ok := d.(*scte35.SegmentationDescriptor)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  segmentation_descriptor event_id=%d\n", sd.SegmentationEventID)
		if sd.SegmentationEventCancelIndicator {
			b.WriteString("    cancelled\n")
			continue
		}
		fmt.Fprintf(&b, "    type=0x%02X (%s) segment=%d/%d\n", sd.SegmentationTypeID, sd.Name(), sd.SegmentNum, sd.SegmentsExpected)
		if sd.SegmentationDuration != nil {
			fmt.Fprintf(&b, "    duration=%s\n", *sd.SegmentationDuration)
		}
		if len(sd.SegmentationUPID) > 0 {
			fmt.Fprintf(&b, "    upid type=0x%02X %s\n", sd.SegmentationUPIDType, hex.EncodeToString(sd.SegmentationUPID))
		}
		if sd.SubSegmentNum != nil && sd.SubSegmentsExpected != nil {
			fmt.Fprintf(&b, "    sub_segment=%d/%d\n", *sd.SubSegmentNum, *sd.SubSegmentsExpected)
		}
	}

	return b.String()
}

// logCue emits a one-line summary of a decoded cue, used by the scan and
// listen commands where cues arrive as a stream.
func logCue(log *slog.Logger, pid uint16, sis *scte35.SpliceInfoSection) {
	attrs := []any{slog.Int("pid", int(pid))}

	switch cmd := sis.SpliceCommand.(type) {
	case *scte35.SpliceInsert:
		attrs = append(attrs,
			slog.String("command", "splice_insert"),
			slog.Uint64("event_id", uint64(cmd.SpliceEventID)))
		if cmd.SpliceEventCancelIndicator {
			attrs = append(attrs, slog.Bool("cancelled", true))
			break
		}
		attrs = append(attrs, slog.Bool("out_of_network", cmd.OutOfNetworkIndicator))
		if cmd.SpliceTime != nil && cmd.SpliceTime.PTSTime != nil {
			attrs = append(attrs, slog.Float64("splice_time_s", cmd.SpliceTime.PTSTime.Seconds()))
		}
		if cmd.BreakDuration != nil {
			attrs = append(attrs, slog.Float64("duration_s", cmd.BreakDuration.Duration.Seconds()))
		}

	case *scte35.TimeSignal:
		attrs = append(attrs, slog.String("command", "time_signal"))
		if cmd.SpliceTime.PTSTime != nil {
			attrs = append(attrs, slog.Float64("splice_time_s", cmd.SpliceTime.PTSTime.Seconds()))
		}
	}

	for _, d := range sis.SpliceDescriptors {
		if sd, ok := d.(*scte35.SegmentationDescriptor); ok {
			attrs = append(attrs, slog.String("segmentation", sd.Name()))
			break
		}
	}

	log.Info("SCTE-35 cue", attrs...)
}
