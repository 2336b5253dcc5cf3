package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hscprep/hscprep/internal/gateway"
	"github.com/hscprep/hscprep/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print study statistics and the AI analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := gateway.NewHTTPClient(cfg.GatewayURL, cfg.Timeout)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		attempts, err := client.Attempts(ctx)
		if err != nil {
			return fmt.Errorf("fetch attempts: %w", err)
		}
		summary := report.Build(attempts)

		// The analysis is best effort. Statistics print either way.
		analysis := ""
		skipAI, _ := cmd.Flags().GetBool("skip-ai")
		if !skipAI && summary.TotalQuestions > 0 {
			text, err := client.GenerateReport(ctx, attempts)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Analysis unavailable:", err)
			} else {
				analysis = text
			}
		}

		now := time.Now()
		fmt.Print(report.Render(summary, analysis, now))

		if save, _ := cmd.Flags().GetBool("save"); save {
			dir, _ := cmd.Flags().GetString("out")
			path, err := report.Save(dir, summary, analysis, now)
			if err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			fmt.Println("Saved", path)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("save", false, "Write the report to a dated text file")
	reportCmd.Flags().Bool("skip-ai", false, "Skip the AI analysis and print statistics only")
	reportCmd.Flags().String("out", ".", "Directory for the saved report file")
}
