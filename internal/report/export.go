package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName returns the export artifact name for the given day, e.g.
// study_report_2026-08-25.txt.
func FileName(now time.Time) string {
	return fmt.Sprintf("study_report_%s.txt", now.Format("2006-01-02"))
}

// Render formats the summary and the AI analysis as a plain-text
// artifact. The analysis may be empty when the user skipped it or the
// gateway failed; the statistics block stands on its own.
func Render(s Summary, analysis string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "HSC Prep study report — %s\n", now.Format("2 January 2006"))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "Questions attempted:  %d\n", s.TotalQuestions)
	fmt.Fprintf(&b, "Correct:              %d\n", s.TotalCorrect)
	fmt.Fprintf(&b, "Accuracy:             %d%%\n", s.Accuracy)
	fmt.Fprintf(&b, "Silly mistakes:       %d\n", s.SillyMistakes)
	fmt.Fprintf(&b, "Concept errors:       %d\n", s.ConceptErrors)

	if len(s.Topics) > 0 {
		b.WriteString("\nBy topic\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, row := range s.Topics {
			fmt.Fprintf(&b, "%-24s %3d attempted  %3d correct  %3d%%\n",
				row.Topic, row.Attempted, row.Correct, row.Accuracy)
		}
	}

	if analysis != "" {
		b.WriteString("\nAnalysis\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		b.WriteString(strings.TrimSpace(analysis) + "\n")
	}

	return b.String()
}

// Save writes the rendered artifact into dir, named after the current
// date, and returns the written path.
func Save(dir string, s Summary, analysis string, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, []byte(Render(s, analysis, now)), 0644); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
