package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Serial.Baud = 9600
	cfg.Selection.Instrument = "HP 3478A Multimeter"
	cfg.Selection.Subcommand = "Set SRQ Mask"
	cfg.Selection.Params = map[string]string{"Mask (2 hex digits)": "0F"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.Serial != cfg.Serial {
		t.Fatalf("serial settings %+v, want %+v", got.Serial, cfg.Serial)
	}
	if got.Selection.Instrument != cfg.Selection.Instrument ||
		got.Selection.Subcommand != cfg.Selection.Subcommand {
		t.Fatalf("selection %+v, want %+v", got.Selection, cfg.Selection)
	}
	if got.Selection.Params["Mask (2 hex digits)"] != "0F" {
		t.Fatalf("params %v", got.Selection.Params)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoadNilParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := &Config{Serial: SerialConfig{Baud: 115200}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.Selection.Params == nil {
		t.Fatal("params map not initialized on load")
	}
}
