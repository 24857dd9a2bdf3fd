package catalog

import (
	"errors"
	"testing"
)

func TestBuildPowerSupplySetVoltage(t *testing.T) {
	params := map[string]string{
		"Voltage (V)": "12.5",
		"Channel":     "1",
	}
	got, err := Build("Power Supply", "Set Voltage", params)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := "PS:Set Voltage 12.5 1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	params := map[string]string{
		"Current (A)":     "2.0",
		"Mode (CC/CR/CP)": "CC",
	}
	first, err := Build("Chroma DC Load", "Set Current", params)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := Build("Chroma DC Load", "Set Current", params)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if first != second {
		t.Fatalf("same selection produced %q then %q", first, second)
	}
	if first != "LOAD:Set Current 2.0 CC" {
		t.Fatalf("got %q", first)
	}
}

func TestBuildParameterless(t *testing.T) {
	got, err := Build("HP 3478A Multimeter", "Measure DC Voltage", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got != "H1" {
		t.Fatalf("got %q, want %q", got, "H1")
	}
}

func TestBuildWriteToDisplay(t *testing.T) {
	got, err := Build("HP 3478A Multimeter", "Write to Display",
		map[string]string{"Display Text": "HELLO"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got != "wrt 723 D2HELLO" {
		t.Fatalf("got %q, want %q", got, "wrt 723 D2HELLO")
	}
}

func TestBuildDisplayTextLimits(t *testing.T) {
	_, err := Build("HP 3478A Multimeter", "Write to Display",
		map[string]string{"Display Text": "THIRTEEN CHRS"})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("want ErrInvalidParameter for oversized text, got %v", err)
	}

	_, err = Build("HP 3478A Multimeter", "Write to Display",
		map[string]string{"Display Text": "  "})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("want ErrInvalidParameter for blank text, got %v", err)
	}
}

func TestBuildSRQMask(t *testing.T) {
	got, err := Build("HP 3478A Multimeter", "Set SRQ Mask",
		map[string]string{"Mask (2 hex digits)": "0f"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got != "M0F" {
		t.Fatalf("got %q, want %q", got, "M0F")
	}

	for _, bad := range []string{"f", "abc", "zz", ""} {
		_, err := Build("HP 3478A Multimeter", "Set SRQ Mask",
			map[string]string{"Mask (2 hex digits)": bad})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("mask %q: want ErrInvalidParameter, got %v", bad, err)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build("Spectrum Analyzer", "Sweep", nil)
	if !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("want ErrUnknownInstrument, got %v", err)
	}

	_, err = Build("Power Supply", "Self Destruct", nil)
	if !errors.Is(err, ErrUnknownSubcommand) {
		t.Fatalf("want ErrUnknownSubcommand, got %v", err)
	}

	_, err = Build("Power Supply", "Set Voltage", map[string]string{"Voltage (V)": "5"})
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("want ErrMissingParameter, got %v", err)
	}

	_, err = Build("Power Supply", "Set Voltage",
		map[string]string{"Voltage (V)": "twelve", "Channel": "1"})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("want ErrInvalidParameter, got %v", err)
	}
}

func TestMeasurementKinds(t *testing.T) {
	inst, err := Find("HP 3478A Multimeter")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	wants := map[string]Kind{
		"Measure DC Voltage":  KindDCVolts,
		"Measure AC Volts":    KindACVolts,
		"Measure DC Current":  KindDCCurrent,
		"Measure AC Current":  KindACCurrent,
		"Measure 2-Wire Ohms": KindNone,
		"HOME Command":        KindNone,
	}
	for name, want := range wants {
		sub, err := inst.Find(name)
		if err != nil {
			t.Fatalf("Find(%q) failed: %v", name, err)
		}
		if sub.Kind != want {
			t.Fatalf("%s: kind %v, want %v", name, sub.Kind, want)
		}
	}
}

func TestInstrumentNamesOrder(t *testing.T) {
	names := InstrumentNames()
	want := []string{"Power Supply", "Chroma DC Load", "HP 3478A Multimeter"}
	if len(names) != len(want) {
		t.Fatalf("got %d instruments, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("instrument %d: got %q, want %q", i, names[i], want[i])
		}
	}
}
