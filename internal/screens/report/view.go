package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hscprep/hscprep/internal/ui/components"
	"github.com/hscprep/hscprep/internal/ui/theme"
)

func (r *ReportScreen) View(width, height int) string {
	if r.loading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n\n  %s Loading your attempt history...", r.spinnerFrame()))
	}
	if r.loadErr {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n\n  Couldn't load your attempt history.\n\n  Press any key to go home.")
	}

	panelWidth := min(width-4, 76)

	var sections []string
	sections = append(sections, r.renderStats(panelWidth))
	sections = append(sections, r.renderAnalysisPanel(panelWidth))
	if r.flash != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Accent).Render(r.flash))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (r *ReportScreen) renderStats(width int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var b strings.Builder
	b.WriteString(theme.PanelTitle.Render("Your statistics"))
	b.WriteString("\n\n")

	if r.summary.TotalQuestions == 0 {
		b.WriteString(label.Render("No attempts recorded yet. Finish a study session first."))
		return theme.Panel.Width(width).Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%s %s    %s %s    %s %s\n",
		label.Render("Attempts:"), value.Render(fmt.Sprintf("%d", r.summary.TotalQuestions)),
		label.Render("Correct:"), value.Render(fmt.Sprintf("%d", r.summary.TotalCorrect)),
		label.Render("Accuracy:"), value.Render(fmt.Sprintf("%d%%", r.summary.Accuracy)),
	))
	b.WriteString(fmt.Sprintf("%s %s    %s %s\n",
		label.Render("Silly mistakes:"), value.Render(fmt.Sprintf("%d", r.summary.SillyMistakes)),
		label.Render("Concept errors:"), value.Render(fmt.Sprintf("%d", r.summary.ConceptErrors)),
	))

	b.WriteString("\n")
	bar := components.NewProgressBar("Accuracy", float64(r.summary.Accuracy)/100, true, width-4)
	b.WriteString(bar.View())
	b.WriteString("\n")

	if len(r.summary.Topics) > 0 {
		b.WriteString("\n")
		header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		b.WriteString(header.Render(fmt.Sprintf("%-22s %9s %7s %9s", "Topic", "Attempted", "Correct", "Accuracy")))
		b.WriteString("\n")
		for _, row := range r.summary.Topics {
			b.WriteString(fmt.Sprintf("%-22s %9d %7d %8d%%\n", row.Topic, row.Attempted, row.Correct, row.Accuracy))
		}
	}

	return theme.Panel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (r *ReportScreen) renderAnalysisPanel(width int) string {
	var b strings.Builder
	b.WriteString(theme.PanelTitle.Render("AI analysis"))
	b.WriteString("\n\n")

	switch {
	case r.generating:
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(r.spinnerFrame() + " Generating your analysis..."))
	case r.aiFailed:
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("Analysis unavailable right now. Press r to try again."))
	case r.analysis == "":
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Nothing to analyze yet."))
	default:
		b.WriteString(renderAnalysis(r.analysis, width-4))
	}

	return theme.Panel.Width(width).Render(b.String())
}

func (r *ReportScreen) spinnerFrame() string {
	return spinnerFrames[r.frame%len(spinnerFrames)]
}

// renderAnalysis lays out the gateway's free text, honoring markdown
// headings and bullets and nothing more.
func renderAnalysis(text string, width int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			b.WriteString(heading.Render(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			b.WriteString("  • " + strings.ReplaceAll(trimmed[2:], "**", ""))
		default:
			b.WriteString(strings.ReplaceAll(line, "**", ""))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Render(strings.TrimRight(b.String(), "\n"))
}
