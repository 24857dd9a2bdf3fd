package measure

import (
	"testing"
	"time"

	"github.com/gund999/TestMeasurementController/internal/catalog"
)

func TestBufferAppendOrder(t *testing.T) {
	b := NewBuffer()
	b.Append(catalog.KindDCVolts, 1.0)
	b.Append(catalog.KindDCVolts, 2.0)
	b.Append(catalog.KindDCCurrent, 0.5)

	volts := b.Series(catalog.KindDCVolts)
	if len(volts) != 2 {
		t.Fatalf("got %d volt samples, want 2", len(volts))
	}
	if volts[0].Value != 1.0 || volts[1].Value != 2.0 {
		t.Fatalf("samples out of order: %+v", volts)
	}
	if volts[1].Elapsed < volts[0].Elapsed {
		t.Fatalf("elapsed went backwards: %+v", volts)
	}
	if b.Len(catalog.KindDCCurrent) != 1 {
		t.Fatalf("got %d current samples, want 1", b.Len(catalog.KindDCCurrent))
	}
	if b.Len(catalog.KindACVolts) != 0 {
		t.Fatalf("unexpected AC volt samples")
	}
}

func TestBufferSeriesIsACopy(t *testing.T) {
	b := NewBuffer()
	b.Append(catalog.KindDCVolts, 1.0)

	got := b.Series(catalog.KindDCVolts)
	got[0].Value = 99

	if b.Series(catalog.KindDCVolts)[0].Value != 1.0 {
		t.Fatal("mutating the returned slice changed the buffer")
	}
}

func TestBufferSharedOrigin(t *testing.T) {
	b := NewBuffer()
	a := b.Append(catalog.KindDCVolts, 1.0)
	c := b.Append(catalog.KindDCCurrent, 2.0)
	if c.Elapsed < a.Elapsed {
		t.Fatalf("kinds measure from different origins: %v then %v", a.Elapsed, c.Elapsed)
	}
}

func TestClearResetsOrigin(t *testing.T) {
	b := NewBuffer()
	b.Append(catalog.KindDCVolts, 1.0)
	time.Sleep(200 * time.Millisecond)

	b.Clear()
	if len(b.Kinds()) != 0 {
		t.Fatalf("clear left series behind: %v", b.Kinds())
	}

	s := b.Append(catalog.KindDCVolts, 2.0)
	if s.Elapsed > 0.15 {
		t.Fatalf("elapsed %v not measured from the clear", s.Elapsed)
	}
	if b.Len(catalog.KindDCVolts) != 1 {
		t.Fatalf("got %d samples after clear, want 1", b.Len(catalog.KindDCVolts))
	}
}
