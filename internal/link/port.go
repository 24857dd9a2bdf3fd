package link

import (
	"time"

	"go.bug.st/serial"
)

// Port is the slice of a serial port the manager needs. go.bug.st's
// serial.Port satisfies it; tests substitute an in-memory fake.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// OpenFunc opens a named port at the given baud rate. The manager's
// default uses go.bug.st/serial with 8 data bits, no parity, one stop bit.
type OpenFunc func(name string, baud int) (Port, error)

func openSerial(name string, baud int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	return serial.Open(name, mode)
}
