package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"hibid-backend/internal/components/telemetry"
	"hibid-backend/internal/config"
	"hibid-backend/internal/service"
)

var (
	configPath *string
	verbose    *bool
	asJson     *bool
)

var rootCmd = &cobra.Command{
	Use:          "hibid-cli",
	Short:        "hibid-cli runs the company endpoints locally and prints their results.",
	SilenceUsage: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "Path to the config file, a missing file means defaults.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging.")
	asJson = rootCmd.PersistentFlags().Bool("json", false, "Print the raw response envelope instead of a table.")
}

func loadService(ctx context.Context) (service.Service, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return service.Service{}, fmt.Errorf("read config: %w", err)
	}
	telemetry.InitSlog(cfg.Verbose || *verbose)

	tel, err := telemetry.Setup(ctx, "hibid-cli", cfg.Telemetry)
	if err != nil {
		return service.Service{}, fmt.Errorf("setup telemetry: %w", err)
	}
	cobra.OnFinalize(func() {
		tel.Shutdown(context.Background())
	})

	return service.FromConfig(cfg, telemetry.SlogAPI{})
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
