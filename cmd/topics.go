package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hscprep/hscprep/internal/gateway"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics that currently have questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := gateway.NewHTTPClient(cfg.GatewayURL, cfg.Timeout)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		topics, err := client.Topics(ctx)
		if err != nil {
			return fmt.Errorf("fetch topics: %w", err)
		}
		if len(topics) == 0 {
			fmt.Println("No topics available yet.")
			return nil
		}
		for _, topic := range topics {
			fmt.Println(topic)
		}
		return nil
	},
}
