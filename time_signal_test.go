package scte35

import "testing"

func TestTimeSignalWithPTS(t *testing.T) {
	t.Parallel()
	sis, err := Decode(mustHex(t, goldenVectors["TimeSignalPTS"]))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cmd, ok := sis.SpliceCommand.(*TimeSignal)
	if !ok {
		t.Fatalf("SpliceCommand: got %T, want *TimeSignal", sis.SpliceCommand)
	}
	if !cmd.SpliceTime.TimeSpecifiedFlag {
		t.Fatal("TimeSpecifiedFlag: got false, want true")
	}
	if cmd.SpliceTime.PTSTime == nil {
		t.Fatal("PTSTime: missing")
	}
	if got := cmd.SpliceTime.PTSTime.Ticks(); got != 12345 {
		t.Errorf("PTSTime: got %d, want 12345", got)
	}
	if got, want := cmd.SpliceTime.PTSTime.Seconds(), 12345/90000.0; got != want {
		t.Errorf("Seconds: got %v, want %v", got, want)
	}
}

func TestTimeSignalNoTime(t *testing.T) {
	t.Parallel()
	sis, err := Decode(mustHex(t, goldenVectors["TimeSignalNoTime"]))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cmd := sis.SpliceCommand.(*TimeSignal)
	if cmd.SpliceTime.TimeSpecifiedFlag {
		t.Error("TimeSpecifiedFlag: got true, want false")
	}
	if cmd.SpliceTime.PTSTime != nil {
		t.Errorf("PTSTime: got %v, want nil", cmd.SpliceTime.PTSTime)
	}
}
