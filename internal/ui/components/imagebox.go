package components

import (
	"charm.land/lipgloss/v2"

	"github.com/hscprep/hscprep/internal/ui/theme"
)

// ImageBox is a framed panel pointing at a question or answer image
// file. Terminals cannot draw the image itself, so the panel shows the
// resolved path for the student to open, or a placeholder when the
// file is missing.
type ImageBox struct {
	Title string
	Ref   string
	Path  string // resolved absolute path, empty when missing
}

// View renders the panel at the given width.
func (b ImageBox) View(width int) string {
	title := theme.PanelTitle.Render(b.Title)

	var body string
	if b.Path == "" {
		body = theme.Hint.Render("image not available: " + b.Ref)
	} else {
		body = lipgloss.NewStyle().Foreground(theme.Text).Render(b.Path)
	}

	inner := title + "\n" + body

	boxWidth := width - 2
	if boxWidth < 20 {
		boxWidth = 20
	}

	return theme.Panel.Width(boxWidth).Render(inner)
}
