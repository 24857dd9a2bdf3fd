package logger

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LineFormatter implements logrus.Formatter to produce one
// "timestamp | message" line per entry, matching the timestamp style of the
// on-screen logbooks.
type LineFormatter struct{}

// Format renders a single log entry.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02T15:04:05.000-07:00")
	b.WriteString(fmt.Sprintf("%s | %s\n", timestamp, entry.Message))

	return b.Bytes(), nil
}
