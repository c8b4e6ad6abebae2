package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zsiec/scte35"
	"github.com/zsiec/scte35/mpegts"
)

var scanPID uint16

var scanCmd = &cobra.Command{
	Use:   "scan <file.ts>",
	Short: "Scan an MPEG-TS file for SCTE-35 cues",
	Long: `Scan reads an MPEG transport stream and prints every SCTE-35 cue it
carries. Cue PIDs are discovered from the PAT/PMT (stream_type 0x86);
use --pid when the stream has no program tables. Pass "-" to read from
stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var pid *uint16
		if cmd.Flags().Changed("pid") {
			pid = &scanPID
		}
		return scanStream(in, slog.Default(), pid)
	},
}

func init() {
	scanCmd.Flags().Uint16Var(&scanPID, "pid", 0, "decode this PID as SCTE-35 instead of discovering it from the PMT")
}

// scanStream runs the section extractor over a transport stream and logs
// each cue that decodes cleanly. A non-nil pid forces that PID to be
// treated as a cue carrier; nil leaves discovery to the PMT. Sections
// that fail to decode are logged and skipped rather than aborting the
// scan.
func scanStream(in io.Reader, log *slog.Logger, pid *uint16) error {
	opts := []func(*mpegts.Extractor){mpegts.ExtractorOptLogger(log)}
	if pid != nil {
		opts = append(opts, mpegts.ExtractorOptPID(*pid))
	}
	ex := mpegts.NewExtractor(in, opts...)

	for {
		section, err := ex.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		sis, err := scte35.Decode(section.Data)
		if err != nil {
			log.Warn("undecodable cue section", "pid", section.PID, "error", err)
			continue
		}
		logCue(log, section.PID, sis)
	}
}
