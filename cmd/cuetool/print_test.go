package main

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/zsiec/scte35"
)

func TestFormatSectionSpliceInsert(t *testing.T) {
	t.Parallel()

	data, err := base64.StdEncoding.DecodeString("/DAlAAAAAAAAAP/wFAUAAAABf+/+LRQrAP4BI9MIAAEBAQAAfxV6SQ==")
	if err != nil {
		t.Fatal(err)
	}
	sis, err := scte35.Decode(data, scte35.DecodeOptVerifyCRC())
	if err != nil {
		t.Fatal(err)
	}

	out := formatSection(sis)
	for _, want := range []string{
		"table_id=0xFC",
		"splice_insert event_id=1",
		"direction=OUT (leave network)",
		"splice_time=756296448",
		"break_duration=19125000",
		"unique_program_id=1 avail=1/1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExtractStreamKey(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"live/demo": "demo",
		"/demo":     "demo",
		"demo":      "demo",
		"":          "default",
	}
	for in, want := range cases {
		if got := extractStreamKey(in); got != want {
			t.Errorf("extractStreamKey(%q) = %q, want %q", in, got, want)
		}
	}
}
