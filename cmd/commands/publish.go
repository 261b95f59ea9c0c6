package commands

import (
	"fmt"

	"accuracy-chart/internal/clients_api/telegram"
	"accuracy-chart/internal/config"
	"accuracy-chart/internal/features/report"
	logging "accuracy-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the chart and send it to Telegram",
	Long: `Render the accuracy chart and send it as a photo to telegram.chat_id using telegram.bot_token.
Pass --chart to send an already rendered PNG instead.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("chart", "", "Send this PNG instead of rendering a new one")
	publishCmd.Flags().String("caption", "", "Photo caption (env: TELEGRAM_CAPTION, default: title and values)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	publisher, err := telegram.NewPublisher(cfg.Telegram)
	if err != nil {
		logging.LogError("Failed to initialize Telegram publisher", zap.Error(err))
		return err
	}

	chartPath, _ := cmd.Flags().GetString("chart")
	if chartPath == "" {
		res, err := report.Generate(cmd.Context(), cfg)
		if err != nil {
			logging.LogError("Failed to render chart", zap.Error(err))
			return fmt.Errorf("failed to render chart: %w", err)
		}
		chartPath = res.PNGPath
	}

	caption, _ := cmd.Flags().GetString("caption")
	if caption == "" {
		caption = cfg.Telegram.Caption
	}
	if caption == "" {
		caption = report.Caption(cfg.DatasetOrDefault().Normalize())
	}

	if err := publisher.PublishChart(cmd.Context(), chartPath, caption); err != nil {
		logging.LogError("Failed to publish chart", zap.String("chartPath", chartPath), zap.Error(err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Chart %s sent to %s\n", chartPath, cfg.Telegram.ChatID)
	return nil
}
