package link

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gund999/TestMeasurementController/internal/logger"
)

// State is the serial link's lifecycle position.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Disconnecting:
		return "Disconnecting"
	}
	return "Unknown"
}

var (
	ErrAlreadyConnected = errors.New("link already connected")
	ErrNotConnected     = errors.New("link not connected")
)

// LineSink receives complete response lines from the reader goroutine, in
// the order they arrived on the wire.
type LineSink interface {
	HandleLine(line string)
}

const readTimeout = 100 * time.Millisecond

// Manager owns one serial connection and the goroutine that reads it.
// All methods are safe for concurrent use. Lines are delivered to the sink
// one at a time from a single goroutine; after Disconnect returns, no
// further lines are delivered.
type Manager struct {
	mu     sync.Mutex
	state  State
	port   Port
	stopCh chan struct{}
	doneCh chan struct{}

	sink   LineSink
	open   OpenFunc
	onDown func(error)
}

func NewManager(sink LineSink) *Manager {
	return &Manager{sink: sink, open: openSerial}
}

// SetOpenFunc swaps the port opener. Call before Connect; tests use it to
// inject a fake port.
func (m *Manager) SetOpenFunc(fn OpenFunc) {
	m.mu.Lock()
	m.open = fn
	m.mu.Unlock()
}

// OnDown registers a callback invoked when the link drops on its own,
// i.e. a read error rather than a Disconnect call.
func (m *Manager) OnDown(fn func(error)) {
	m.mu.Lock()
	m.onDown = fn
	m.mu.Unlock()
}

// State returns the current lifecycle position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect opens the named port at the given baud rate and starts the
// reader goroutine. Only valid from Disconnected.
func (m *Manager) Connect(name string, baud int) error {
	m.mu.Lock()
	if m.state != Disconnected {
		m.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrAlreadyConnected, m.state)
	}
	m.state = Connecting
	open := m.open
	m.mu.Unlock()

	port, err := open(name, baud)
	if err != nil {
		m.mu.Lock()
		m.state = Disconnected
		m.mu.Unlock()
		return fmt.Errorf("open %s: %w", name, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		m.mu.Lock()
		m.state = Disconnected
		m.mu.Unlock()
		return fmt.Errorf("configure %s: %w", name, err)
	}

	m.mu.Lock()
	m.port = port
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.state = Connected
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	logger.Info(fmt.Sprintf("Link up on %s at %d baud", name, baud))
	go m.readLoop(port, stopCh, doneCh)
	return nil
}

// Disconnect stops the reader goroutine, waits for it to finish, and then
// closes the port. Calling it while already Disconnected or Disconnecting
// is a no-op.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	if m.state == Disconnected || m.state == Disconnecting {
		m.mu.Unlock()
		return nil
	}
	if m.state != Connected {
		m.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrNotConnected, m.state)
	}
	m.state = Disconnecting
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	close(stopCh)
	<-doneCh

	m.mu.Lock()
	if m.port != nil {
		m.port.Close()
		m.port = nil
	}
	m.state = Disconnected
	m.mu.Unlock()

	logger.Info("Link closed")
	return nil
}

// Send writes one command to the port, appending the line terminator if
// the caller left it off.
func (m *Manager) Send(cmd string) error {
	m.mu.Lock()
	if m.state != Connected {
		m.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrNotConnected, m.state)
	}
	port := m.port
	m.mu.Unlock()

	if !strings.HasSuffix(cmd, "\n") {
		cmd += "\n"
	}
	if _, err := port.Write([]byte(cmd)); err != nil {
		// A failed write means the device or adapter is gone.
		m.Disconnect()
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// readLoop polls the port, reassembles newline-terminated lines from the
// byte stream, and hands each complete line to the sink. A read error that
// is not a shutdown takes the link down.
func (m *Manager) readLoop(port Port, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	buf := make([]byte, 256)
	var pending []byte
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		n, err := port.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				i := bytes.IndexByte(pending, '\n')
				if i < 0 {
					break
				}
				line := strings.TrimRight(string(pending[:i]), "\r")
				pending = pending[i+1:]
				select {
				case <-stopCh:
					return
				default:
				}
				m.sink.HandleLine(line)
			}
		}
		if err != nil {
			select {
			case <-stopCh:
			default:
				m.fail(err)
			}
			return
		}
	}
}

// fail tears the link down from inside the reader goroutine after a read
// error. A Disconnect already in progress owns the teardown instead.
func (m *Manager) fail(err error) {
	m.mu.Lock()
	if m.state != Connected {
		m.mu.Unlock()
		return
	}
	if m.port != nil {
		m.port.Close()
		m.port = nil
	}
	m.state = Disconnected
	fn := m.onDown
	m.mu.Unlock()

	logger.Error(fmt.Sprintf("Link read failed: %v", err))
	if fn != nil {
		fn(err)
	}
}
