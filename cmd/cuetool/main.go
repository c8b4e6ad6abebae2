// Package main is the cuetool command: decode SCTE-35 markers from base64,
// scan transport stream files for cues, or listen for live SRT publishes
// and monitor cues as they arrive.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:           "cuetool",
	Short:         "SCTE-35 splice information toolkit",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debugFlag || os.Getenv("DEBUG") != "" {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.AddCommand(decodeCmd, scanCmd, listenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
