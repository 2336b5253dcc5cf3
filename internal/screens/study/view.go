package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hscprep/hscprep/internal/practice"
	"github.com/hscprep/hscprep/internal/ui/components"
	"github.com/hscprep/hscprep/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.loading {
		return renderLoading(width, s.topic)
	}
	if s.loadErr != "" {
		return renderLoadError(width, s.loadErr)
	}
	if s.sess == nil || s.sess.Phase == practice.PhaseCompleted {
		return ""
	}
	return s.renderActive(width)
}

func (s *StudyScreen) renderActive(width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.sess.Topic)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.sess.Position(), s.sess.Total()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n\n")

	panelWidth := min(width-4, 76)
	q := s.sess.Current()

	b.WriteString(s.imagePanel("Question", q.QuestionImage, true, panelWidth, width))
	b.WriteString("\n")

	if s.sess.Phase == practice.PhaseRevealed {
		b.WriteString("\n")
		b.WriteString(s.imagePanel("Answer", q.AnswerImage, false, panelWidth, width))
		b.WriteString("\n\n")
		b.WriteString(s.renderGrading(width))
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		notice := theme.Notice.Render(s.notice + " Press enter to retry.")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, notice))
	}

	return b.String()
}

func (s *StudyScreen) imagePanel(title, ref string, question bool, panelWidth, width int) string {
	box := components.ImageBox{Title: title, Ref: ref}
	var err error
	if question {
		box.Path, err = s.lib.QuestionPath(ref)
	} else {
		box.Path, err = s.lib.AnswerPath(ref)
	}
	if err != nil {
		box.Path = ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box.View(panelWidth))
}

func (s *StudyScreen) renderGrading(width int) string {
	if s.sess.Submitting {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("Saving attempt...")
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if s.noteActive() {
		var b strings.Builder
		b.WriteString(center(prompt.Render("What went wrong?")))
		b.WriteString("\n")
		b.WriteString(center(s.note.View()))
		return b.String()
	}

	switch s.sess.Step() {
	case practice.StepUngraded:
		var b strings.Builder
		b.WriteString(center(prompt.Render("Did you get it right?")))
		b.WriteString("\n")
		yes := lipgloss.NewStyle().Foreground(theme.Success).Render("[y] yes")
		no := lipgloss.NewStyle().Foreground(theme.Error).Render("[n] no")
		b.WriteString(center(yes + "   " + no))
		return b.String()

	case practice.StepPickKind:
		var b strings.Builder
		b.WriteString(center(prompt.Render("What kind of mistake was it?")))
		b.WriteString("\n")
		b.WriteString(center(s.kindRow.View()))
		return b.String()

	case practice.StepSubmitReady:
		var b strings.Builder
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Marked correct")))
		b.WriteString("\n")
		b.WriteString(center(dim.Render("Enter for the next question")))
		return b.String()
	}
	return ""
}

func renderLoading(width int, topic string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  Loading %s questions...", topic))
}

func renderLoadError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go home.", msg))
}
