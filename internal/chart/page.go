package chart

import (
	"fmt"
	"html/template"
	"io"

	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
)

// HTMLRenderer writes a self-contained page with the chart, the slider and the summary panel.
type HTMLRenderer struct {
	HostWidth int  // Chart container width in CSS pixels
	Height    int  // Chart height in CSS pixels
	Nav       bool // Show links to the other indices (served pages only)
}

var _ contract.ChartRenderer = HTMLRenderer{} // Compile-time check

// NewHTMLRenderer builds a renderer from the validated config.
func NewHTMLRenderer(cfg *contract.Config) HTMLRenderer {
	return HTMLRenderer{HostWidth: cfg.ChartWidth, Height: cfg.ChartHeight}
}

type pageData struct {
	Index       string
	Title       string
	Figure      schema.Figure
	Dates       []string
	ValueTexts  []string
	Labels      []string
	Colors      []string
	YMin        float64
	YMax        float64
	Selected    int
	Max         int
	MarkerTrace int
	HostWidth   int
	Height      int
	SliderWidth int
	SliderLeft  int
	SliderGap   int
	Nav         []string
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Render implements contract.ChartRenderer.
func (r HTMLRenderer) Render(w io.Writer, series *schema.Series, selected int) error {
	if series == nil || series.Len() == 0 {
		return emptySeries(series)
	}

	fig := BuildFigure(series, selected)
	if r.Height > 0 {
		fig.Layout.Height = r.Height
	}
	hostWidth := r.HostWidth
	if hostWidth <= 0 {
		hostWidth = view.DefaultHostWidth
	}
	initial := view.NewLayoutSync().Geometry()

	data := pageData{
		Index:       string(series.Index),
		Title:       series.Title,
		Figure:      fig,
		Dates:       fig.Data[0].X,
		ValueTexts:  make([]string, series.Len()),
		Labels:      make([]string, series.Len()),
		Colors:      make([]string, series.Len()),
		YMin:        series.Axis.YMin,
		YMax:        series.Axis.YMax,
		Selected:    view.Clamp(selected, series.Len()),
		Max:         series.Last(),
		MarkerTrace: view.MarkerTrace,
		HostWidth:   hostWidth,
		Height:      fig.Layout.Height,
		SliderWidth: int(initial.Width) * hostWidth / view.DefaultHostWidth,
		SliderLeft:  int(initial.Left),
		SliderGap:   view.SliderGap,
	}
	for i, p := range series.Points {
		data.Labels[i] = p.Label
		data.ValueTexts[i] = view.FormatSigned(p.Value, 2)
		data.Colors[i] = string(p.Color)
	}
	if r.Nav {
		data.Nav = schema.KnownIndexNames()
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

func emptySeries(series *schema.Series) error {
	var kind schema.IndexKind
	if series != nil {
		kind = series.Index
	}
	return &schema.EmptySeriesError{Index: kind}
}

const pageHTML = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body style="font-family:sans-serif; margin:16px;">
{{- if .Nav}}
<nav style="margin-bottom:8px;">
{{- range .Nav}}
  <a href="/chart/{{.}}" style="margin-right:12px;">{{.}}</a>
{{- end}}
</nav>
{{- end}}
<div id="chartWrap" style="width:{{.HostWidth}}px; margin:0; position:relative;">
  <div id="chart" style="width:{{.HostWidth}}px; height:{{.Height}}px;"></div>
  <div id="sliderWrap" style="position:relative; height:56px; margin-top:0;">
    <input type="range" id="monthSlider" min="0" max="{{.Max}}" value="{{.Selected}}"
      style="position:absolute; width:{{.SliderWidth}}px; left:{{.SliderLeft}}px;">
  </div>
  <div id="info" style="text-align:left; font-size:18px; margin-top:8px;"></div>
</div>
<script>
  const title = {{.Title}};
  const figure = {{.Figure}};
  const dates = {{.Dates}};
  const valueTexts = {{.ValueTexts}};
  const labels = {{.Labels}};
  const colors = {{.Colors}};
  const yMin = {{.YMin}};
  const yMax = {{.YMax}};
  const markerTrace = {{.MarkerTrace}};
  const sliderGap = {{.SliderGap}};

  const slider = document.getElementById('monthSlider');
  const info = document.getElementById('info');

  function colored(text, color) {
    const span = document.createElement('span');
    span.style.color = color;
    const b = document.createElement('b');
    b.textContent = text;
    span.appendChild(b);
    return span;
  }

  function update(idx) {
    const date = dates[idx];
    Plotly.restyle('chart', {x: [[date, date]], y: [[yMin, yMax]]}, [markerTrace]);

    const parts = date.split('-');
    info.replaceChildren(
      '📅 ' + parts[0] + '년 ' + String(parseInt(parts[1], 10)) + '월 ' + title + ': ',
      colored(valueTexts[idx], colors[idx]),
      ' ⇒ ',
      colored(labels[idx], colors[idx])
    );
  }

  function syncSliderToPlot() {
    const chart = document.getElementById('chart');
    const host = document.getElementById('sliderWrap');
    const bg = chart.querySelector('.cartesianlayer .bg');
    if (!bg) return;

    const plot = bg.getBoundingClientRect();
    const hostBox = host.getBoundingClientRect();
    slider.style.width = plot.width + 'px';
    slider.style.left = (plot.left - hostBox.left) + 'px';
    slider.style.top = (plot.bottom - hostBox.top + sliderGap) + 'px';
  }

  Plotly.newPlot('chart', figure.data, figure.layout, figure.config).then(() => {
    syncSliderToPlot();
    document.getElementById('chart').on('plotly_relayout', syncSliderToPlot);
    window.addEventListener('resize', syncSliderToPlot);
    slider.addEventListener('input', e => update(+e.target.value));
    update(+slider.value);
  });
</script>
</body>
</html>
`
