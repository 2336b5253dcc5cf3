// Package app assembles the screens into the root Bubble Tea program.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/hscprep/hscprep/internal/assets"
	"github.com/hscprep/hscprep/internal/gateway"
	"github.com/hscprep/hscprep/internal/router"
	"github.com/hscprep/hscprep/internal/screen"
	"github.com/hscprep/hscprep/internal/screens/home"
	"github.com/hscprep/hscprep/internal/ui/layout"
)

// Options carries the dependencies the screens draw from.
type Options struct {
	Client gateway.Client
	Assets *assets.Library
	Logger logrus.FieldLogger
}

// AppModel is the root Bubble Tea model: the screen stack plus the
// shared header and footer chrome. Navigation keys belong to the
// screens; the root only handles ctrl+c and the terminal size.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model with the home screen at the
// bottom of the stack.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Client, opts.Assets, opts.Logger)),
	}
}

func (m AppModel) Init() tea.Cmd {
	// The router only Inits pushed screens; the base screen's Init
	// (the topic fetch) has to be kicked off here.
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	title := ""
	if active != nil {
		title = active.Title()
	}
	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	return err
}
