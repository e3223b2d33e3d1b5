package schema

// Figure is a chart description in the shape the browser chart library consumes.
type Figure struct {
	Data   []Trace      `json:"data"`
	Layout Layout       `json:"layout"`
	Config FigureConfig `json:"config"`
}

// Trace is one data series of a figure.
type Trace struct {
	Name       string    `json:"name,omitempty"`
	X          []string  `json:"x"`
	Y          []float64 `json:"y"`
	Mode       string    `json:"mode"`
	Line       Line      `json:"line"`
	HoverInfo  string    `json:"hoverinfo,omitempty"`
	ShowLegend bool      `json:"showlegend"`
}

// Line is a stroke style.
type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Dash  string  `json:"dash,omitempty"`
}

// Margin is the figure margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// AxisTitle wraps an axis title.
type AxisTitle struct {
	Text string `json:"text"`
}

// Axis is one axis of a figure layout.
type Axis struct {
	Title    AxisTitle `json:"title"`
	TickMode string    `json:"tickmode,omitempty"`
	TickVals []string  `json:"tickvals,omitempty"`
	TickText []string  `json:"ticktext,omitempty"`
	Range    []float64 `json:"range,omitempty"`
	ShowLine bool      `json:"showline"`
	ShowGrid bool      `json:"showgrid"`
	Ticks    string    `json:"ticks,omitempty"`
}

// Shape is a static layout shape such as a reference line.
type Shape struct {
	Type string  `json:"type"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Line Line    `json:"line"`
}

// Layout is the figure layout.
type Layout struct {
	Margin       Margin  `json:"margin"`
	Height       int     `json:"height"`
	XAxis        Axis    `json:"xaxis"`
	YAxis        Axis    `json:"yaxis"`
	Shapes       []Shape `json:"shapes"`
	Template     string  `json:"template,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor"`
	PlotBGColor  string  `json:"plot_bgcolor"`
	ShowLegend   bool    `json:"showlegend"`
}

// FigureConfig carries renderer options.
type FigureConfig struct {
	Responsive bool `json:"responsive"`
}

// MarkerUpdate is the data-only patch applied to the marker trace.
type MarkerUpdate struct {
	X [][]string  `json:"x"`
	Y [][]float64 `json:"y"`
}

// MarkerPatch targets MarkerUpdate at specific trace indices.
type MarkerPatch struct {
	Update MarkerUpdate `json:"update"`
	Traces []int        `json:"traces"`
}
