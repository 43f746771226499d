package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

// videoItem adapts an ipc.VideoInfo for the bubbles list.
type videoItem struct {
	video ipc.VideoInfo
}

func (i videoItem) Title() string { return i.video.Name }
func (i videoItem) Description() string {
	if i.video.ThumbnailPath != "" {
		return i.video.Path + "  [thumb]"
	}
	return i.video.Path
}
func (i videoItem) FilterValue() string { return i.video.Name }

// LibraryTab shows the video library and lets the user add or remove entries.
type LibraryTab struct {
	client *ipc.Client
	list   list.Model

	adding bool
	input  textinput.Model

	width  int
	height int
}

func NewLibraryTab(client *ipc.Client) LibraryTab {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Video Library"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	input := textinput.New()
	input.Placeholder = "/path/to/video.mp4"
	input.Prompt = "add video: "
	input.CharLimit = 512

	return LibraryTab{
		client: client,
		list:   l,
		input:  input,
	}
}

// SetData replaces the tab's contents with a fresh library snapshot.
func (t LibraryTab) SetData(library *ipc.LibraryData) LibraryTab {
	items := make([]list.Item, 0, len(library.Videos))
	for _, v := range library.Videos {
		items = append(items, videoItem{video: v})
	}
	t.list.SetItems(items)
	return t
}

// SelectedVideo returns the highlighted video, if any.
func (t LibraryTab) SelectedVideo() (ipc.VideoInfo, bool) {
	item, ok := t.list.SelectedItem().(videoItem)
	if !ok {
		return ipc.VideoInfo{}, false
	}
	return item.video, true
}

func (t LibraryTab) addVideoCmd(path string) tea.Cmd {
	return func() tea.Msg {
		abs, err := filepath.Abs(path)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		_, err = t.client.AddVideo(abs)
		return actionDoneMsg{err: err}
	}
}

func (t LibraryTab) removeVideoCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: t.client.RemoveVideo(id)}
	}
}

func (t LibraryTab) Update(msg tea.Msg) (LibraryTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.list.SetSize(msg.Width, msg.Height-1)
		return t, nil

	case tea.KeyMsg:
		if t.adding {
			switch msg.String() {
			case "esc":
				t.adding = false
				t.input.Blur()
				t.input.SetValue("")
				return t, nil
			case "enter":
				path := t.input.Value()
				t.adding = false
				t.input.Blur()
				t.input.SetValue("")
				if path == "" {
					return t, nil
				}
				return t, t.addVideoCmd(path)
			}
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return t, cmd
		}

		if t.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "a":
			t.adding = true
			t.input.Focus()
			return t, textinput.Blink
		case "x":
			if v, ok := t.SelectedVideo(); ok {
				return t, t.removeVideoCmd(v.ID)
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return t, cmd
}

func (t LibraryTab) View() string {
	if t.adding {
		prompt := lipgloss.NewStyle().
			Padding(0, 1).
			Render(t.input.View() + "\n" + "enter: confirm  esc: cancel")
		return lipgloss.JoinVertical(lipgloss.Left, prompt, t.list.View())
	}
	if len(t.list.Items()) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(1, 2).
			Render("No videos yet. Press 'a' to add one.")
		return empty
	}
	return t.list.View()
}
