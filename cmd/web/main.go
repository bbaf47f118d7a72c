package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/server"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/alerting"
	"github.com/hmrc/platsec-compliance-alerting-sub000/pkg/services/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the compliance alerting web server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
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

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Dependencies: server.Dependencies{
			Processor: orchestrator,
		},
	})
	return api.Start()
}
