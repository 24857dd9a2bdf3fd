package session

import (
	"fmt"
	"sync"

	"github.com/gund999/TestMeasurementController/internal/catalog"
	"github.com/gund999/TestMeasurementController/internal/link"
	"github.com/gund999/TestMeasurementController/internal/logbook"
	"github.com/gund999/TestMeasurementController/internal/measure"
)

// Session is the glue between the serial link and everything that consumes
// it. It owns the traffic and debug logbooks and the sample buffer, builds
// catalog commands, and routes incoming lines: every line lands in the
// traffic log, and while a measurement subcommand is armed, parseable lines
// also become plot samples.
type Session struct {
	Traffic *logbook.Log
	Debug   *logbook.Log
	Samples *measure.Buffer

	lnk *link.Manager

	mu       sync.Mutex
	armed    catalog.Kind
	onSample func(catalog.Kind, measure.Sample)

	selInstrument string
	selSubcommand string
	selParams     map[string]string
}

func New() *Session {
	s := &Session{
		Traffic: logbook.New(),
		Debug:   logbook.New(),
		Samples: measure.NewBuffer(),
	}
	s.lnk = link.NewManager(s)
	return s
}

// Link exposes the underlying connection manager.
func (s *Session) Link() *link.Manager {
	return s.lnk
}

// OnSample registers a callback invoked for every sample appended to the
// buffer. The callback runs on the reader goroutine.
func (s *Session) OnSample(fn func(catalog.Kind, measure.Sample)) {
	s.mu.Lock()
	s.onSample = fn
	s.mu.Unlock()
}

// Connect opens the link and notes it in the debug log.
func (s *Session) Connect(port string, baud int) error {
	if err := s.lnk.Connect(port, baud); err != nil {
		s.Debug.Append(logbook.Debug, fmt.Sprintf("connect failed: %v", err))
		return err
	}
	s.Debug.Append(logbook.Debug, fmt.Sprintf("connected to %s at %d baud", port, baud))
	return nil
}

// SetSelection records the current instrument, subcommand and parameter
// values, so they can be persisted across runs.
func (s *Session) SetSelection(instrument, subcommand string, params map[string]string) {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	s.mu.Lock()
	s.selInstrument = instrument
	s.selSubcommand = subcommand
	s.selParams = copied
	s.mu.Unlock()
}

// Selection returns the last recorded instrument, subcommand and parameter
// values.
func (s *Session) Selection() (instrument, subcommand string, params map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	params = make(map[string]string, len(s.selParams))
	for k, v := range s.selParams {
		params[k] = v
	}
	return s.selInstrument, s.selSubcommand, params
}

// Disconnect closes the link and disarms measurement routing. A no-op when
// the link is already down.
func (s *Session) Disconnect() error {
	if s.lnk.State() == link.Disconnected {
		return nil
	}
	if err := s.lnk.Disconnect(); err != nil {
		return err
	}
	s.setArmed(catalog.KindNone)
	s.Debug.Append(logbook.Debug, "disconnected")
	return nil
}

// Send builds the catalog command for the selected instrument and
// subcommand, writes it to the link, and logs it. On success the
// subcommand's measurement kind becomes the armed kind, so responses are
// routed to its plot series. The built command is returned even when the
// write fails, so callers can show what was attempted.
func (s *Session) Send(instrument, subcommand string, params map[string]string) (string, error) {
	cmd, err := catalog.Build(instrument, subcommand, params)
	if err != nil {
		s.Debug.Append(logbook.Debug, fmt.Sprintf("build failed: %v", err))
		return "", err
	}
	if err := s.lnk.Send(cmd); err != nil {
		s.Debug.Append(logbook.Debug, fmt.Sprintf("send failed: %v", err))
		return cmd, err
	}
	s.Traffic.Append(logbook.Sent, cmd)

	kind := catalog.KindNone
	if inst, err := catalog.Find(instrument); err == nil {
		if sub, err := inst.Find(subcommand); err == nil {
			kind = sub.Kind
		}
	}
	s.setArmed(kind)
	return cmd, nil
}

// SendRaw writes a hand-typed command to the link. Raw traffic has no
// catalog entry to interpret the response, so routing is disarmed.
func (s *Session) SendRaw(cmd string) error {
	if err := s.lnk.Send(cmd); err != nil {
		s.Debug.Append(logbook.Debug, fmt.Sprintf("send failed: %v", err))
		return err
	}
	s.Traffic.Append(logbook.Sent, cmd)
	s.setArmed(catalog.KindNone)
	return nil
}

// HandleLine receives one response line from the reader goroutine.
func (s *Session) HandleLine(line string) {
	s.Traffic.Append(logbook.Received, line)

	s.mu.Lock()
	kind := s.armed
	fn := s.onSample
	s.mu.Unlock()
	if kind == catalog.KindNone {
		return
	}

	v, err := measure.Parse(line)
	if err != nil {
		s.Debug.Append(logbook.Debug, fmt.Sprintf("unreadable %s response: %q", kind, line))
		return
	}
	sample := s.Samples.Append(kind, v)
	if fn != nil {
		fn(kind, sample)
	}
}

// Armed reports which measurement kind incoming lines are routed to.
func (s *Session) Armed() catalog.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

func (s *Session) setArmed(kind catalog.Kind) {
	s.mu.Lock()
	s.armed = kind
	s.mu.Unlock()
}

// ClearPlot drops all recorded samples and restarts the plot time origin.
func (s *Session) ClearPlot() {
	s.Samples.Clear()
	s.Debug.Append(logbook.Debug, "plot cleared")
}
