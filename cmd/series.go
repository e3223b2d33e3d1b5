package cmd

import (
	"github.com/huangsam/ensoview/core"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/sourcedb"
	"github.com/spf13/cobra"
)

// indicesCmd lists the supported indices.
var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "List the supported climate indices and their thresholds.",
	Long: `Show every supported index with its phase thresholds, sign convention,
phase labels and the source files searched for it.

Thresholds reflect any override from --thresholds-override or the
thresholds section of the config file.

Examples:
  # Show the registry
  ensoview indices

  # Inspect the effect of a threshold override
  ensoview indices --thresholds-override "oni:1.0:-1.0"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIndices(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list indices", err)
		}
	},
}

// seriesCmd prints the classified series of one index.
var seriesCmd = &cobra.Command{
	Use:   "series [index]",
	Short: "Show the classified monthly series of an index.",
	Long: `Load an index source, normalize it into one value per month and
classify every month into its phase.

Rows with an unparseable period or value are skipped and counted. When two
rows share a month, the one appearing last in the source wins.

Examples:
  # Show the ONI series from data/elnino_data.csv
  ensoview series oni

  # Read SOI from an explicit file and export it
  ensoview series soi --source ./soi.parquet --output csv --output-file soi.csv

  # Write a Parquet file for downstream analysis
  ensoview series olr --output parquet --output-file olr.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, currentSource()); err != nil {
			contract.LogFatal("Cannot build series", err)
		}
	},
}

// selectCmd prints the marker and summary of one month.
var selectCmd = &cobra.Command{
	Use:   "select [index]",
	Short: "Select one month and show its marker and summary.",
	Long: `Move the month selector of an index to a position and print what the
chart would show: the marker position and the summary line.

Positions are zero-based. Negative positions count from the end, and
positions outside the series are clamped to its bounds.

Examples:
  # Latest month of ONI
  ensoview select oni

  # Third month of SOI as JSON
  ensoview select soi --at 2 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSelect(rootCtx, cfg, currentSource()); err != nil {
			contract.LogFatal("Cannot select month", err)
		}
	},
}

// renderCmd writes a chart of one index.
var renderCmd = &cobra.Command{
	Use:   "render [index]",
	Short: "Render an index as an interactive HTML page or a PNG image.",
	Long: `Render the chart of an index with the selection marker.

The HTML page carries a slider aligned under the plot area; dragging it
moves the marker and updates the summary panel. The PNG image is a static
snapshot at the selected month.

Examples:
  # Interactive page on stdout
  ensoview render oni > oni.html

  # Static image of the latest SOI month
  ensoview render soi --format png --output-file soi.png`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg, currentSource()); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}

// currentSource picks the tabular source for the validated config.
func currentSource() contract.TabularSource {
	return core.SourceFor(cfg, sourcedb.Manager.GetStore())
}
