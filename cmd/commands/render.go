package commands

import (
	"fmt"

	"accuracy-chart/internal/config"
	"accuracy-chart/internal/features/report"
	logging "accuracy-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the accuracy chart to PNG",
	Long:  `Render the accuracy bar chart to a PNG file, and to an interactive HTML page when --html is set.`,
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	res, err := report.Generate(cmd.Context(), cfg)
	if err != nil {
		logging.LogError("Failed to render chart", zap.Error(err))
		return fmt.Errorf("failed to render chart: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bar chart created successfully with Marathi text as %s\n", res.PNGPath)
	if res.HTMLPath != "" {
		fmt.Fprintf(out, "Interactive chart written to %s\n", res.HTMLPath)
	}
	if len(res.MissingGlyphs) > 0 {
		fmt.Fprintf(out, "Warning: %d glyphs have no font coverage, install Noto Sans Devanagari or pass --font\n", len(res.MissingGlyphs))
	}
	return nil
}
