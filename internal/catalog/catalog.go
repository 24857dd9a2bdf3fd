package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a subcommand's reply for plotting. A subcommand tagged with
// a measurement kind routes parsed replies into that kind's plot series;
// KindNone subcommands never touch the plot.
type Kind int

const (
	KindNone Kind = iota
	KindDCVolts
	KindACVolts
	KindDCCurrent
	KindACCurrent
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindDCVolts:
		return "DC Volts"
	case KindACVolts:
		return "AC Volts"
	case KindDCCurrent:
		return "DC Current"
	case KindACCurrent:
		return "AC Current"
	default:
		return "Unknown"
	}
}

// ParamKind is the primitive kind a parameter value must coerce to.
type ParamKind int

const (
	Numeric ParamKind = iota
	HexCode
	FreeText
)

func (pk ParamKind) String() string {
	switch pk {
	case Numeric:
		return "Numeric"
	case HexCode:
		return "Hex Code"
	case FreeText:
		return "Free Text"
	default:
		return "Unknown"
	}
}

// Parameter is one typed slot in a subcommand's wire template. Lead is the
// literal emitted before the coerced value (usually " " or nothing). Width
// constrains HexCode slots to an exact digit count and FreeText slots to a
// maximum length; zero means unconstrained.
type Parameter struct {
	Name  string
	Kind  ParamKind
	Width int
	Lead  string
}

// Subcommand is one device operation: a fixed wire prefix plus zero or more
// parameter slots, and the measurement classification of its reply.
type Subcommand struct {
	Name   string
	Prefix string
	Params []Parameter
	Kind   Kind
}

// Instrument is a catalog entry describing one device type's subcommands,
// in menu order.
type Instrument struct {
	Name        string
	Subcommands []Subcommand
}

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	ErrMissingParameter  = errors.New("missing parameter")
	ErrInvalidParameter  = errors.New("invalid parameter format")
)

// Build serializes the given selection into the exact wire string to send:
// the subcommand's fixed prefix followed by each coerced parameter value in
// template order. Pure lookup and formatting, no I/O; safe to call
// concurrently.
func Build(instrument, subcommand string, params map[string]string) (string, error) {
	inst, err := Find(instrument)
	if err != nil {
		return "", err
	}
	sub, err := inst.Find(subcommand)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(sub.Prefix)
	for _, p := range sub.Params {
		raw, ok := params[p.Name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingParameter, p.Name)
		}
		value, err := coerce(p, raw)
		if err != nil {
			return "", err
		}
		sb.WriteString(p.Lead)
		sb.WriteString(value)
	}
	return sb.String(), nil
}

// coerce validates a raw parameter value against its declared kind and
// returns the form that goes on the wire.
func coerce(p Parameter, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	switch p.Kind {
	case Numeric:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", fmt.Errorf("%w: %q is not numeric", ErrInvalidParameter, raw)
		}
		return value, nil
	case HexCode:
		if p.Width > 0 && len(value) != p.Width {
			return "", fmt.Errorf("%w: %q must be exactly %d hex digits", ErrInvalidParameter, raw, p.Width)
		}
		for _, r := range value {
			if !isHexDigit(r) {
				return "", fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidParameter, raw)
			}
		}
		return strings.ToUpper(value), nil
	case FreeText:
		if value == "" {
			return "", fmt.Errorf("%w: %q must not be empty", ErrInvalidParameter, p.Name)
		}
		if p.Width > 0 && len(value) > p.Width {
			return "", fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidParameter, raw, p.Width)
		}
		return value, nil
	default:
		return "", fmt.Errorf("%w: unsupported parameter kind %v", ErrInvalidParameter, p.Kind)
	}
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
