package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hscprep/hscprep/internal/app"
	"github.com/hscprep/hscprep/internal/assets"
	"github.com/hscprep/hscprep/internal/gateway"
	"github.com/hscprep/hscprep/internal/logging"
)

// runApp builds the dependencies from configuration and launches the
// TUI. The terminal belongs to Bubble Tea from here on, so all logging
// goes to the configured file.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logging.Discard()
	if cfg.LogFile != "" {
		var closer io.Closer
		log, closer, err = logging.Open(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer closer.Close()
	}

	client := gateway.WithLogging(gateway.NewHTTPClient(cfg.GatewayURL, cfg.Timeout), log)

	return app.Run(app.Options{
		Client: client,
		Assets: assets.NewLibrary(cfg.QuestionsDir, cfg.AnswersDir),
		Logger: log,
	})
}
