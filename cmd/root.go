package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hscprep/hscprep/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "hscprep",
	Short: "Terminal study app for HSC maths practice",
	Long:  "HSC Prep is a terminal app for working through past HSC maths questions topic by topic, recording your mistakes and turning them into a study report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("gateway", "", "Backend gateway URL (overrides HSCPREP_GATEWAY_URL)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Disable file logging")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration from the environment and applies the
// persistent flags on top: --gateway overrides the backend URL and
// --quiet turns file logging off.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	if u, _ := cmd.Flags().GetString("gateway"); u != "" {
		cfg.GatewayURL = u
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.LogFile = ""
	}
	return cfg, cfg.Validate()
}
