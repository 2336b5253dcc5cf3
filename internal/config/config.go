package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// GatewayURL is the base URL of the backend service that owns
	// questions, attempts and report generation.
	GatewayURL string

	// QuestionsDir and AnswersDir are the local directories holding
	// the question and answer image files referenced by the backend.
	QuestionsDir string
	AnswersDir   string

	// Timeout is the maximum duration for a single gateway request.
	// Report generation is the slow call. Default: 30s.
	Timeout time.Duration

	// LogFile is the path of the JSON log file. Empty disables
	// logging entirely.
	LogFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GatewayURL:   "http://localhost:8000",
		QuestionsDir: "questions",
		AnswersDir:   "answers",
		Timeout:      30 * time.Second,
		LogFile:      defaultLogPath(),
	}
}

// Load builds a Config from a .env file (if present) and environment
// variables, falling back to defaults for unset values.
func Load() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if u := os.Getenv("HSCPREP_GATEWAY_URL"); u != "" {
		cfg.GatewayURL = u
	}
	if d := os.Getenv("HSCPREP_QUESTIONS_DIR"); d != "" {
		cfg.QuestionsDir = d
	}
	if d := os.Getenv("HSCPREP_ANSWERS_DIR"); d != "" {
		cfg.AnswersDir = d
	}
	if s := os.Getenv("HSCPREP_TIMEOUT_SECONDS"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if f, ok := os.LookupEnv("HSCPREP_LOG_FILE"); ok {
		cfg.LogFile = f
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.GatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid gateway URL: %q", c.GatewayURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.QuestionsDir == "" || c.AnswersDir == "" {
		return fmt.Errorf("questions and answers directories must be set")
	}
	return nil
}

// defaultLogPath resolves the log file path in priority order:
// 1. $XDG_STATE_HOME/hscprep/hscprep.log
// 2. ~/.local/state/hscprep/hscprep.log
// Returns "" (logging disabled) when no home directory is resolvable.
func defaultLogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "hscprep", "hscprep.log")
}
