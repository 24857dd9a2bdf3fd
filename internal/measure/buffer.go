package measure

import (
	"sync"
	"time"

	"github.com/gund999/TestMeasurementController/internal/catalog"
)

// Sample is one plotted point: seconds since the buffer origin, and the
// parsed instrument reading.
type Sample struct {
	Elapsed float64
	Value   float64
}

// Buffer accumulates samples per measurement kind against a shared time
// origin, so different kinds plotted together line up on the same axis.
// Safe for concurrent use; the reader goroutine appends while the GUI reads.
type Buffer struct {
	mu     sync.Mutex
	origin time.Time
	series map[catalog.Kind][]Sample
}

func NewBuffer() *Buffer {
	return &Buffer{
		origin: time.Now(),
		series: make(map[catalog.Kind][]Sample),
	}
}

// Append records a reading for kind and returns the stored sample.
func (b *Buffer) Append(kind catalog.Kind, value float64) Sample {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := Sample{
		Elapsed: time.Since(b.origin).Seconds(),
		Value:   value,
	}
	b.series[kind] = append(b.series[kind], s)
	return s
}

// Series returns a copy of the samples recorded for kind, in append order.
func (b *Buffer) Series(kind catalog.Kind) []Sample {
	b.mu.Lock()
	defer b.mu.Unlock()
	src := b.series[kind]
	if len(src) == 0 {
		return nil
	}
	out := make([]Sample, len(src))
	copy(out, src)
	return out
}

// Len reports how many samples are stored for kind.
func (b *Buffer) Len(kind catalog.Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.series[kind])
}

// Kinds lists the kinds that currently hold at least one sample.
func (b *Buffer) Kinds() []catalog.Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]catalog.Kind, 0, len(b.series))
	for k, s := range b.series {
		if len(s) > 0 {
			out = append(out, k)
		}
	}
	return out
}

// Clear drops every series and restarts the time origin, so the next
// sample's elapsed time is measured from the clear.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.series = make(map[catalog.Kind][]Sample)
	b.origin = time.Now()
}
