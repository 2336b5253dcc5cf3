package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/hscprep/hscprep/internal/ui/theme"
)

// ChoiceRow is a horizontal two-or-more option picker. Selection moves
// with left/right; the parent reads Selected when the user confirms.
type ChoiceRow struct {
	Options  []string
	Selected int
}

// NewChoiceRow creates a choice row with the first option selected.
func NewChoiceRow(options ...string) ChoiceRow {
	return ChoiceRow{Options: options}
}

// Init returns nil.
func (c ChoiceRow) Init() tea.Cmd {
	return nil
}

// Update handles left/right navigation.
func (c ChoiceRow) Update(msg tea.Msg) (ChoiceRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "l", "tab":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	}

	return c, nil
}

// View renders the options side by side.
func (c ChoiceRow) View() string {
	parts := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		if i == c.Selected {
			parts = append(parts, theme.ChoiceActive.Render(opt))
		} else {
			parts = append(parts, theme.ChoiceInactive.Render(opt))
		}
	}
	return strings.Join(parts, "  ")
}
