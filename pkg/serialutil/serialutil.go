package serialutil

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortInfo describes one discovered serial port.
type PortInfo struct {
	Name        string
	Description string
	VID         string
	PID         string
}

// Label renders the port name with its USB descriptor details, for the
// rescan log.
func (p PortInfo) Label() string {
	switch {
	case p.Description != "" && p.VID != "":
		return fmt.Sprintf("%s (%s, %s:%s)", p.Name, p.Description, p.VID, p.PID)
	case p.VID != "":
		return fmt.Sprintf("%s (%s:%s)", p.Name, p.VID, p.PID)
	default:
		return p.Name
	}
}

// Ports lists the port names a user can connect to. On macOS/Linux the
// /dev/tty.* aliases are dropped in favour of their /dev/cu.* twins.
func Ports() ([]string, error) {
	all, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, p := range all {
		if strings.HasPrefix(p, "/dev/tty.") {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// DetailedPorts lists discovered ports with USB descriptor details.
func DetailedPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	var out []PortInfo
	for _, p := range ports {
		info := PortInfo{Name: p.Name}
		if p.IsUSB {
			info.Description = p.Product
			info.VID = p.VID
			info.PID = p.PID
		}
		out = append(out, info)
	}
	return out, nil
}

// DefaultPort picks the port to preselect from a list: the first USB
// adapter if present, otherwise the first entry.
func DefaultPort(ports []string) string {
	if len(ports) == 0 {
		return ""
	}
	for _, p := range ports {
		if strings.Contains(p, "usbmodem") || strings.Contains(p, "usbserial") || strings.Contains(p, "ttyUSB") || strings.Contains(p, "ttyACM") {
			return p
		}
	}
	return ports[0]
}

// Validate reports whether the named port is currently present.
func Validate(name string) bool {
	ports, err := serial.GetPortsList()
	if err != nil {
		return false
	}
	for _, p := range ports {
		if p == name {
			return true
		}
	}
	return false
}
