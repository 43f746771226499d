package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

// screenItem adapts an ipc.ScreenInfo for the bubbles list.
type screenItem struct {
	screen    ipc.ScreenInfo
	videoName string
}

func (i screenItem) Title() string {
	title := i.screen.Key
	if i.screen.Primary {
		title += " (primary)"
	}
	return title
}

func (i screenItem) Description() string {
	state := "disabled"
	if i.screen.Enabled {
		state = "enabled"
	}
	if i.screen.Playing {
		state += " [playing]"
	}
	video := "no video"
	if i.videoName != "" {
		video = i.videoName
	}
	return fmt.Sprintf("%dx%d+%d+%d  %s  %s",
		i.screen.Width, i.screen.Height, i.screen.X, i.screen.Y, state, video)
}

func (i screenItem) FilterValue() string { return i.screen.Key }

// ScreensTab shows connected screens and controls per-screen playback.
type ScreensTab struct {
	client *ipc.Client
	list   list.Model

	// library snapshot, used to cycle video assignments
	videos []ipc.VideoInfo
	volume float64

	width  int
	height int
}

func NewScreensTab(client *ipc.Client) ScreensTab {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Screens"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return ScreensTab{
		client: client,
		list:   l,
	}
}

// SetData replaces the tab's contents with fresh screen and library snapshots.
func (t ScreensTab) SetData(screens *ipc.ScreensData, library *ipc.LibraryData) ScreensTab {
	t.videos = library.Videos

	names := make(map[string]string, len(library.Videos))
	for _, v := range library.Videos {
		names[v.ID] = v.Name
	}

	items := make([]list.Item, 0, len(screens.Screens))
	for _, s := range screens.Screens {
		items = append(items, screenItem{
			screen:    s,
			videoName: names[s.VideoID],
		})
	}
	t.list.SetItems(items)
	return t
}

// SetVolume records the daemon's current volume for +/- adjustments.
func (t ScreensTab) SetVolume(volume float64) ScreensTab {
	t.volume = volume
	return t
}

func (t ScreensTab) selectedScreen() (ipc.ScreenInfo, bool) {
	item, ok := t.list.SelectedItem().(screenItem)
	if !ok {
		return ipc.ScreenInfo{}, false
	}
	return item.screen, true
}

// nextVideoID returns the video after current in library order, wrapping
// around and passing through "" (no video) at the end of the cycle.
func (t ScreensTab) nextVideoID(current string) string {
	if len(t.videos) == 0 {
		return ""
	}
	if current == "" {
		return t.videos[0].ID
	}
	for i, v := range t.videos {
		if v.ID == current {
			if i+1 < len(t.videos) {
				return t.videos[i+1].ID
			}
			return ""
		}
	}
	return t.videos[0].ID
}

func (t ScreensTab) toggleCmd(s ipc.ScreenInfo) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: t.client.SetScreenEnabled(s.Key, !s.Enabled)}
	}
}

func (t ScreensTab) cycleVideoCmd(s ipc.ScreenInfo) tea.Cmd {
	next := t.nextVideoID(s.VideoID)
	return func() tea.Msg {
		return actionDoneMsg{err: t.client.SetScreenVideo(s.Key, next)}
	}
}

func (t ScreensTab) adjustVolumeCmd(delta float64) tea.Cmd {
	target := t.volume + delta
	if target < 0 {
		target = 0
	}
	if target > 1 {
		target = 1
	}
	return func() tea.Msg {
		return actionDoneMsg{err: t.client.SetVolume(target)}
	}
}

func (t ScreensTab) Update(msg tea.Msg) (ScreensTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.list.SetSize(msg.Width, msg.Height-1)
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space":
			if s, ok := t.selectedScreen(); ok {
				return t, t.toggleCmd(s)
			}
			return t, nil
		case "v":
			if s, ok := t.selectedScreen(); ok {
				return t, t.cycleVideoCmd(s)
			}
			return t, nil
		case "+", "=":
			return t, t.adjustVolumeCmd(0.05)
		case "-":
			return t, t.adjustVolumeCmd(-0.05)
		}
	}

	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return t, cmd
}

func (t ScreensTab) View() string {
	if len(t.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(1, 2).
			Render("No screens detected. Is the daemon running?")
	}
	return t.list.View()
}
