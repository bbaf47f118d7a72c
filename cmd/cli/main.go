package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/alerting"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/config"
)

var (
	bucket     string
	key        string
	eventsFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "compliance-alerting",
		Short: "Analyse one audit report or event batch and deliver the alerts",
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&bucket, "bucket", "", "Bucket holding the audit report")
	rootCmd.Flags().StringVar(&key, "key", "", "Key of the audit report")
	rootCmd.Flags().StringVar(&eventsFile, "events-file", "", "Path to an event batch to process instead of an audit")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(cfg.Level())
	ctx := logger.WithContext(cmd.Context())

	orchestrator, err := alerting.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}

	if eventsFile != "" {
		raw, err := os.ReadFile(eventsFile)
		if err != nil {
			return fmt.Errorf("failed to read events file: %w", err)
		}
		return orchestrator.ProcessEvents(ctx, raw)
	}

	if bucket == "" || key == "" {
		return fmt.Errorf("either --events-file or both --bucket and --key are required")
	}
	return orchestrator.ProcessAudits(ctx, []alerting.TriggerRecord{{Bucket: bucket, Key: key}})
}
