package gui

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/gund999/TestMeasurementController/internal/catalog"
	"github.com/gund999/TestMeasurementController/internal/measure"
)

var seriesColors = map[catalog.Kind]color.NRGBA{
	catalog.KindDCVolts:   {R: 0x2e, G: 0xb8, B: 0x5c, A: 0xff},
	catalog.KindACVolts:   {R: 0x3a, G: 0x7b, B: 0xd5, A: 0xff},
	catalog.KindDCCurrent: {R: 0xd5, G: 0x3a, B: 0x3a, A: 0xff},
	catalog.KindACCurrent: {R: 0xe8, G: 0x9b, B: 0x2c, A: 0xff},
}

// Chart plots measurement samples as value against elapsed seconds, one
// polyline per measurement kind, with axes autoscaled to the data.
type Chart struct {
	widget.BaseWidget

	mu     sync.Mutex
	series map[catalog.Kind][]measure.Sample
}

func NewChart() *Chart {
	c := &Chart{series: make(map[catalog.Kind][]measure.Sample)}
	c.ExtendBaseWidget(c)
	return c
}

// SetSeries replaces the plotted samples for one kind and redraws.
func (c *Chart) SetSeries(kind catalog.Kind, samples []measure.Sample) {
	c.mu.Lock()
	c.series[kind] = samples
	c.mu.Unlock()
	c.Refresh()
}

// Clear drops every plotted series and redraws an empty chart.
func (c *Chart) Clear() {
	c.mu.Lock()
	c.series = make(map[catalog.Kind][]measure.Sample)
	c.mu.Unlock()
	c.Refresh()
}

func (c *Chart) snapshot() map[catalog.Kind][]measure.Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[catalog.Kind][]measure.Sample, len(c.series))
	for k, s := range c.series {
		out[k] = s
	}
	return out
}

func (c *Chart) CreateRenderer() fyne.WidgetRenderer {
	r := &chartRenderer{
		chart:  c,
		bg:     canvas.NewRectangle(color.NRGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff}),
		border: canvas.NewRectangle(color.Transparent),
		status: canvas.NewText("", theme.Color(theme.ColorNameForeground)),
	}
	r.border.StrokeColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x5c, A: 0xff}
	r.border.StrokeWidth = 1
	r.status.TextSize = 11
	return r
}

type chartRenderer struct {
	chart   *Chart
	bg      *canvas.Rectangle
	border  *canvas.Rectangle
	status  *canvas.Text
	objects []fyne.CanvasObject
}

func (r *chartRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 180)
}

func (r *chartRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *chartRenderer) Refresh() {
	r.rebuild(r.chart.Size())
	canvas.Refresh(r.chart)
}

func (r *chartRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *chartRenderer) Destroy() {}

const chartPad float32 = 8

// rebuild regenerates the line segments for the current size and data.
func (r *chartRenderer) rebuild(size fyne.Size) {
	r.bg.Resize(size)
	r.border.Resize(size)

	series := r.chart.snapshot()

	minX, maxX, minY, maxY, n := bounds(series)
	r.objects = []fyne.CanvasObject{r.bg, r.border}
	if n == 0 {
		r.status.Text = "no samples"
		r.status.Move(fyne.NewPos(chartPad, chartPad))
		r.objects = append(r.objects, r.status)
		return
	}
	if maxX-minX < 1e-9 {
		maxX = minX + 1
	}
	if maxY-minY < 1e-12 {
		maxY = minY + 1
		minY -= 1
	}

	w := size.Width - 2*chartPad
	h := size.Height - 2*chartPad
	toPos := func(s measure.Sample) fyne.Position {
		x := chartPad + float32((s.Elapsed-minX)/(maxX-minX))*w
		y := chartPad + h - float32((s.Value-minY)/(maxY-minY))*h
		return fyne.NewPos(x, y)
	}

	for kind, samples := range series {
		col, ok := seriesColors[kind]
		if !ok || len(samples) == 0 {
			continue
		}
		if len(samples) == 1 {
			dot := canvas.NewCircle(col)
			p := toPos(samples[0])
			dot.Resize(fyne.NewSize(4, 4))
			dot.Move(fyne.NewPos(p.X-2, p.Y-2))
			r.objects = append(r.objects, dot)
			continue
		}
		for i := 1; i < len(samples); i++ {
			line := canvas.NewLine(col)
			line.StrokeWidth = 1.5
			line.Position1 = toPos(samples[i-1])
			line.Position2 = toPos(samples[i])
			r.objects = append(r.objects, line)
		}
	}

	r.status.Text = fmt.Sprintf("%.3g .. %.3g over %.1fs", minY, maxY, maxX-minX)
	r.status.Move(fyne.NewPos(chartPad, size.Height-chartPad-14))
	r.objects = append(r.objects, r.status)
}

func bounds(series map[catalog.Kind][]measure.Sample) (minX, maxX, minY, maxY float64, n int) {
	for _, samples := range series {
		for _, s := range samples {
			if n == 0 {
				minX, maxX = s.Elapsed, s.Elapsed
				minY, maxY = s.Value, s.Value
			} else {
				if s.Elapsed < minX {
					minX = s.Elapsed
				}
				if s.Elapsed > maxX {
					maxX = s.Elapsed
				}
				if s.Value < minY {
					minY = s.Value
				}
				if s.Value > maxY {
					maxY = s.Value
				}
			}
			n++
		}
	}
	return
}
