package view

// Slider placement defaults, in CSS pixels.
const (
	SliderGap          = 10   // Vertical gap between the plot area and the slider
	DefaultHostWidth   = 1100 // Width of the chart container
	DefaultSliderWidth = 897  // Slider width before the first render completes
	DefaultSliderLeft  = 50   // Slider left offset before the first render completes
)

// Rect is a rendered box in page coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// SliderGeometry is the placement of the slider relative to the chart container.
type SliderGeometry struct {
	Left  float64 `json:"left"`
	Top   float64 `json:"top"`
	Width float64 `json:"width"`
}

// AlignSlider places the slider so it spans exactly the plotted x-range.
// plot is the measured plot background box, host the chart container box.
func AlignSlider(plot, host Rect) SliderGeometry {
	return SliderGeometry{
		Left:  plot.Left - host.Left,
		Top:   plot.Bottom() - host.Top + SliderGap,
		Width: plot.Width,
	}
}

// LayoutSync tracks slider alignment across renders and resizes.
// Measurements taken before the renderer reports ready are ignored.
type LayoutSync struct {
	ready    bool
	geometry SliderGeometry
}

// NewLayoutSync starts with the default slider placement.
func NewLayoutSync() *LayoutSync {
	return &LayoutSync{geometry: SliderGeometry{Left: DefaultSliderLeft, Width: DefaultSliderWidth}}
}

// RenderReady marks the chart as rendered and aligns the slider to the first measurement.
func (l *LayoutSync) RenderReady(plot, host Rect) SliderGeometry {
	l.ready = true
	l.geometry = AlignSlider(plot, host)
	return l.geometry
}

// Relayout realigns after a resize or chart relayout. It reports false, leaving the
// geometry untouched, when the chart has not finished rendering.
func (l *LayoutSync) Relayout(plot, host Rect) (SliderGeometry, bool) {
	if !l.ready {
		return l.geometry, false
	}
	l.geometry = AlignSlider(plot, host)
	return l.geometry, true
}

// Ready reports whether the chart has rendered.
func (l *LayoutSync) Ready() bool {
	return l.ready
}

// Geometry returns the last computed placement.
func (l *LayoutSync) Geometry() SliderGeometry {
	return l.geometry
}
