package commands

// Root command for the Cobra CLI
// Chart flags are persistent so every subcommand shares one config layer
// Running the binary without a subcommand renders the chart

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"accuracy-chart/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "accuracy-chart",
	Short: "Render the message-type classification accuracy bar chart",
	Long: `accuracy-chart renders the classification accuracy of Banking SMS, Phishing, OTP
and Normal SMS messages as a bar chart with Marathi labels and saves it as PNG.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRender,
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(datasetCmd)
}
