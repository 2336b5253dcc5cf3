// Package home is the landing screen: pick a topic to study, open the
// study report, or quit.
package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/hscprep/hscprep/internal/assets"
	"github.com/hscprep/hscprep/internal/gateway"
	"github.com/hscprep/hscprep/internal/router"
	"github.com/hscprep/hscprep/internal/screen"
	reportscreen "github.com/hscprep/hscprep/internal/screens/report"
	"github.com/hscprep/hscprep/internal/screens/study"
	"github.com/hscprep/hscprep/internal/ui/components"
	"github.com/hscprep/hscprep/internal/ui/layout"
	"github.com/hscprep/hscprep/internal/ui/theme"
)

// seededTopics mirrors the backend's seed data. Shown when the topic
// fetch fails so the screen stays usable against a cold backend.
var seededTopics = []string{"Trigonometry", "Algebra", "Geometry", "Linear graphs", "Fractions"}

// topicsMsg carries the result of the topic list fetch.
type topicsMsg struct {
	Topics []string
	Err    error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	client gateway.Client
	lib    *assets.Library
	log    logrus.FieldLogger

	menu     components.Menu
	loading  bool
	fallback bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. Topics load asynchronously on Init.
func New(client gateway.Client, lib *assets.Library, log logrus.FieldLogger) *HomeScreen {
	h := &HomeScreen{
		client:  client,
		lib:     lib,
		log:     log,
		loading: true,
	}
	h.menu = h.buildMenu(nil)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.fetchTopics()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if h.fallback && !h.loading {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry topics"})
	}
	return hints
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsMsg:
		return h.handleTopics(msg)
	case tea.KeyMsg:
		if msg.String() == "r" && h.fallback && !h.loading {
			h.loading = true
			h.menu = h.buildMenu(nil)
			return h, h.fetchTopics()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleTopics(msg topicsMsg) (screen.Screen, tea.Cmd) {
	if !h.loading {
		return h, nil
	}
	h.loading = false

	if msg.Err != nil {
		h.fallback = true
		h.menu = h.buildMenu(seededTopics)
		h.log.WithError(msg.Err).Warn("topic fetch failed, using seeded list")
		return h, nil
	}

	h.fallback = false
	h.menu = h.buildMenu(msg.Topics)
	return h, nil
}

func (h *HomeScreen) buildMenu(topics []string) components.Menu {
	items := make([]components.MenuItem, 0, len(topics)+3)

	if h.loading {
		items = append(items, components.MenuItem{Label: "Loading topics...", Disabled: true})
	}
	for _, topic := range topics {
		topic := topic
		items = append(items, components.MenuItem{
			Label: topic,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: study.New(h.client, h.lib, h.log, topic),
					}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "Study report", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: reportscreen.New(h.client, h.log),
				}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return components.NewMenu(items)
}

func (h *HomeScreen) fetchTopics() tea.Cmd {
	client := h.client
	return func() tea.Msg {
		topics, err := client.Topics(context.Background())
		return topicsMsg{Topics: topics, Err: err}
	}
}

func (h *HomeScreen) View(width, height int) string {
	banner := RenderBanner(width)
	subtitle := theme.Subtitle.Render("Work through past questions, one topic at a time.")

	sections := []string{banner, subtitle, "", h.menu.View()}

	if h.fallback && !h.loading {
		notice := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Couldn't reach the backend. Showing the standard topics.")
		sections = append(sections, "", notice)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
