// Package report shows statistics over the full attempt history next to
// an AI analysis fetched from the gateway. Statistics are computed
// locally the moment the history arrives; the analysis loads separately
// and can fail or be regenerated without touching them.
package report

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/hscprep/hscprep/internal/gateway"
	rpt "github.com/hscprep/hscprep/internal/report"
	"github.com/hscprep/hscprep/internal/router"
	"github.com/hscprep/hscprep/internal/screen"
	"github.com/hscprep/hscprep/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// attemptsMsg carries the attempt-history fetch result.
type attemptsMsg struct {
	Attempts []gateway.Attempt
	Err      error
}

// analysisMsg carries the AI analysis result.
type analysisMsg struct {
	Report string
	Err    error
}

// spinnerTickMsg animates the loading gate.
type spinnerTickMsg time.Time

// ReportScreen implements screen.Screen for the study report view.
type ReportScreen struct {
	client  gateway.Client
	log     logrus.FieldLogger
	saveDir string

	loading    bool
	loadErr    bool
	attempts   []gateway.Attempt
	summary    rpt.Summary
	generating bool
	analysis   string
	aiFailed   bool
	frame      int
	flash      string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates the report screen. The history fetch starts on Init.
func New(client gateway.Client, log logrus.FieldLogger) *ReportScreen {
	return &ReportScreen{
		client:  client,
		log:     log,
		saveDir: ".",
		loading: true,
	}
}

func (r *ReportScreen) Init() tea.Cmd {
	return tea.Batch(r.fetchAttempts(), spinnerCmd())
}

func (r *ReportScreen) Title() string {
	return "Study report"
}

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	if r.loading {
		return nil
	}
	if r.loadErr {
		return []layout.KeyHint{{Key: "any key", Description: "Home"}}
	}
	hints := []layout.KeyHint{}
	if len(r.attempts) > 0 && !r.generating {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Regenerate"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "S", Description: "Save report"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
	return hints
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !r.loading && !r.generating {
			return r, nil
		}
		r.frame++
		return r, spinnerCmd()

	case attemptsMsg:
		return r.handleAttempts(msg)

	case analysisMsg:
		return r.handleAnalysis(msg)

	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ReportScreen) handleAttempts(msg attemptsMsg) (screen.Screen, tea.Cmd) {
	if !r.loading {
		return r, nil
	}
	r.loading = false

	if msg.Err != nil {
		r.loadErr = true
		r.log.WithError(msg.Err).Warn("attempt history fetch failed")
		return r, nil
	}

	r.attempts = msg.Attempts
	r.summary = rpt.Build(msg.Attempts)

	// Nothing to analyze without history; the stats still render.
	if len(msg.Attempts) == 0 {
		return r, nil
	}
	r.generating = true
	return r, r.generateAnalysis()
}

func (r *ReportScreen) handleAnalysis(msg analysisMsg) (screen.Screen, tea.Cmd) {
	if !r.generating {
		return r, nil
	}
	r.generating = false

	if msg.Err != nil {
		r.aiFailed = true
		r.log.WithError(msg.Err).Warn("report generation failed")
		return r, nil
	}
	r.aiFailed = false
	r.analysis = msg.Report
	return r, nil
}

func (r *ReportScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if r.loading {
		if msg.String() == "esc" {
			return r, goHome()
		}
		return r, nil
	}
	if r.loadErr {
		return r, goHome()
	}

	r.flash = ""
	switch msg.String() {
	case "esc":
		return r, goHome()

	case "r":
		if r.generating || len(r.attempts) == 0 {
			return r, nil
		}
		r.generating = true
		r.aiFailed = false
		r.analysis = ""
		return r, tea.Batch(spinnerCmd(), r.generateAnalysis())

	case "s":
		path, err := rpt.Save(r.saveDir, r.summary, r.analysis, time.Now())
		if err != nil {
			r.flash = "Couldn't save the report."
			r.log.WithError(err).Warn("report save failed")
			return r, nil
		}
		r.flash = "Saved " + path
		r.log.WithField("path", path).Info("report saved")
		return r, nil
	}
	return r, nil
}

func (r *ReportScreen) fetchAttempts() tea.Cmd {
	client := r.client
	return func() tea.Msg {
		attempts, err := client.Attempts(context.Background())
		return attemptsMsg{Attempts: attempts, Err: err}
	}
}

func (r *ReportScreen) generateAnalysis() tea.Cmd {
	client, attempts := r.client, r.attempts
	return func() tea.Msg {
		text, err := client.GenerateReport(context.Background(), attempts)
		return analysisMsg{Report: text, Err: err}
	}
}

func goHome() tea.Cmd {
	return func() tea.Msg { return router.HomeScreenMsg{} }
}

func spinnerCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
