package measure

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want float64
	}{
		{"+1.234560E+00", 1.23456},
		{"DCV +1.234560E+00", 1.23456},
		{"  +2.500000E-03 \r", 0.0025},
		{"-1.5", -1.5},
		{"ACI -4.700000E-01", -0.47},
		{"12", 12},
	}
	for _, c := range cases {
		got, err := Parse(c.line)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", c.line, err)
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("Parse(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, line := range []string{"", "   ", "garbage", "OVLD", "++1.0"} {
		_, err := Parse(line)
		if !errors.Is(err, ErrUnparseableLine) {
			t.Fatalf("Parse(%q): want ErrUnparseableLine, got %v", line, err)
		}
	}
}
