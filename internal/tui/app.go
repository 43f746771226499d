// Package tui is the interactive terminal frontend for the daemon. It talks
// to the daemon exclusively over IPC, so it can be started and stopped at
// any time without affecting playback.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

// refreshedMsg carries a full snapshot of daemon state.
type refreshedMsg struct {
	status  *ipc.StatusData
	library *ipc.LibraryData
	screens *ipc.ScreensData
	err     error
}

// actionDoneMsg reports the outcome of a mutation; a refresh follows.
type actionDoneMsg struct {
	err error
}

// refreshCmd fetches a fresh snapshot from the daemon.
func refreshCmd(client *ipc.Client) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		if err != nil {
			return refreshedMsg{err: err}
		}
		library, err := client.ListLibrary()
		if err != nil {
			return refreshedMsg{err: err}
		}
		screens, err := client.ListScreens()
		if err != nil {
			return refreshedMsg{err: err}
		}
		return refreshedMsg{status: status, library: library, screens: screens}
	}
}

// model is the root bubbletea model for the TUI.
type model struct {
	client *ipc.Client

	// Tab navigation
	activeTab Tab

	// Sub-models
	libraryTab LibraryTab
	screensTab ScreensTab

	// Daemon state
	daemonConnected bool
	playingCount    int
	volume          float64
	lastError       string

	// Terminal dimensions
	width  int
	height int
}

func newModel() model {
	client := ipc.NewClient()
	return model{
		client:     client,
		activeTab:  TabLibrary,
		libraryTab: NewLibraryTab(client),
		screensTab: NewScreensTab(client),
	}
}

// Run starts the TUI, blocking until the user quits.
func Run() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return refreshCmd(m.client)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		if msg.err != nil {
			m.daemonConnected = false
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.daemonConnected = true
		m.lastError = ""
		m.playingCount = msg.status.PlayingCount
		m.volume = msg.status.Volume
		m.libraryTab = m.libraryTab.SetData(msg.library)
		m.screensTab = m.screensTab.SetData(msg.screens, msg.library)
		m.screensTab = m.screensTab.SetVolume(msg.status.Volume)
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
		}
		return m, refreshCmd(m.client)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.libraryTab, _ = m.libraryTab.Update(subMsg)
		m.screensTab, _ = m.screensTab.Update(subMsg)
		return m, nil

	case tea.KeyMsg:
		// The add-video input captures everything except ctrl+c.
		if m.activeTab == TabLibrary && m.libraryTab.adding {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.libraryTab, cmd = m.libraryTab.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabLibrary
			return m, nil
		case "2":
			m.activeTab = TabScreens
			return m, nil
		case "r":
			return m, refreshCmd(m.client)
		}
	}

	// Delegate to active tab's sub-model
	var cmd tea.Cmd
	switch m.activeTab {
	case TabLibrary:
		m.libraryTab, cmd = m.libraryTab.Update(msg)
	case TabScreens:
		m.screensTab, cmd = m.screensTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, m.playingCount, m.volume, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.activeTab, m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabLibrary:
		content = m.libraryTab.View()
	case TabScreens:
		content = m.screensTab.View()
	}

	if m.lastError != "" {
		errLine := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Width(m.width).
			Padding(0, 1).
			Render(fmt.Sprintf("error: %s", m.lastError))
		content = lipgloss.JoinVertical(lipgloss.Left, errLine, content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
