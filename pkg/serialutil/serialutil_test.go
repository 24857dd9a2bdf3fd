package serialutil

import "testing"

func TestPortInfoLabel(t *testing.T) {
	cases := []struct {
		info PortInfo
		want string
	}{
		{PortInfo{Name: "/dev/ttyS0"}, "/dev/ttyS0"},
		{
			PortInfo{Name: "/dev/ttyUSB0", VID: "0403", PID: "6001"},
			"/dev/ttyUSB0 (0403:6001)",
		},
		{
			PortInfo{Name: "/dev/cu.usbserial-1420", Description: "FT232R USB UART", VID: "0403", PID: "6001"},
			"/dev/cu.usbserial-1420 (FT232R USB UART, 0403:6001)",
		},
	}
	for _, c := range cases {
		if got := c.info.Label(); got != c.want {
			t.Fatalf("Label(%+v) = %q, want %q", c.info, got, c.want)
		}
	}
}

func TestDefaultPortPrefersUSBAdapters(t *testing.T) {
	cases := []struct {
		ports []string
		want  string
	}{
		{nil, ""},
		{[]string{"/dev/cu.Bluetooth-Incoming-Port"}, "/dev/cu.Bluetooth-Incoming-Port"},
		{[]string{"/dev/cu.Bluetooth-Incoming-Port", "/dev/cu.usbserial-1420"}, "/dev/cu.usbserial-1420"},
		{[]string{"/dev/ttyS0", "/dev/ttyUSB0"}, "/dev/ttyUSB0"},
		{[]string{"/dev/ttyS0", "/dev/ttyACM1"}, "/dev/ttyACM1"},
		{[]string{"COM1", "COM3"}, "COM1"},
	}
	for _, c := range cases {
		if got := DefaultPort(c.ports); got != c.want {
			t.Fatalf("DefaultPort(%v) = %q, want %q", c.ports, got, c.want)
		}
	}
}
