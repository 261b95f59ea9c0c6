package commands

import (
	"fmt"

	"accuracy-chart/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Print the effective dataset as YAML",
	Long:  `Print the dataset the chart is rendered from, ready to paste under "dataset:" in config.yaml.`,
	RunE:  runDataset,
}

func runDataset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ds := cfg.DatasetOrDefault().Normalize()
	if err := ds.Validate(); err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(map[string]interface{}{"dataset": ds})
}
