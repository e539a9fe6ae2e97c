package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	channelanalyzer "channelscope/agents/channel-analyzer"
	"channelscope/shared/config"
	"channelscope/shared/scheduler"
)

func main() {
	root := &cobra.Command{
		Use:           "channelscope",
		Short:         "YouTube channel analytics and growth advice",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var once bool
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the analyzer on the configured schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			agent := channelanalyzer.NewChannelAgent(cfg)
			s := scheduler.New(cfg, agent)

			if once {
				if err := agent.Initialize(); err != nil {
					return fmt.Errorf("failed to initialize agent: %w", err)
				}
				return s.RunOnce(ctx)
			}
			return s.Start(ctx)
		},
	}
	runCmd.Flags().BoolVar(&once, "once", false, "run a single watchlist pass and exit")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <channel-id>",
		Short: "Analyze one channel and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			agent := channelanalyzer.NewChannelAgent(cfg)
			if err := agent.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize agent: %w", err)
			}

			result, err := agent.AnalyzeChannel(ctx, args[0])
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}

	root.AddCommand(runCmd, analyzeCmd)

	if err := root.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
