package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zsiec/scte35"
)

var (
	decodeStrict bool
	decodeCRC    bool
	decodeJSON   bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <base64>",
	Short: "Decode a base64-encoded splice_info_section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := base64.StdEncoding.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid base64: %w", err)
		}

		var opts []scte35.DecodeOption
		if decodeStrict {
			opts = append(opts, scte35.DecodeOptStrictLengths())
		}
		if decodeCRC {
			opts = append(opts, scte35.DecodeOptVerifyCRC())
		}

		sis, err := scte35.Decode(data, opts...)
		if err != nil {
			return err
		}

		if decodeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sis)
		}

		fmt.Print(formatSection(sis))
		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "reject declared lengths that disagree with the bytes consumed")
	decodeCmd.Flags().BoolVar(&decodeCRC, "crc", false, "verify the trailing CRC_32")
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "print the decoded section as JSON")
}
