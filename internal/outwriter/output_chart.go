package outwriter

import (
	"io"

	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
)

// WriteChart renders series with the marker at selected into the configured output file.
func WriteChart(series *schema.Series, selected int, renderer contract.ChartRenderer, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return renderer.Render(w, series, selected)
	}, "Wrote chart")
}
