package measure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnparseableLine = errors.New("unparseable line")

// Parse extracts the numeric reading from one instrument response line.
// Surrounding whitespace and any leading status framing (e.g. "DCV ") are
// stripped; the remainder is parsed as a float in the instrument's native
// notation, sign and exponent included ("+1.23456E+00"). Unit and scale are
// implied by the armed measurement kind, not computed here.
func Parse(line string) (float64, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, fmt.Errorf("%w: empty line", ErrUnparseableLine)
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	// Drop a non-numeric prefix and retry from the first character that can
	// start a number.
	i := strings.IndexFunc(s, func(r rune) bool {
		return r == '+' || r == '-' || r == '.' || (r >= '0' && r <= '9')
	})
	if i > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s[i:]), 64); err == nil {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnparseableLine, line)
}
