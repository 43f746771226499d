// Package mcp exposes the daemon's operations as MCP tools over stdio.
// Every tool is a thin wrapper around the IPC client, so the MCP process
// stays stateless and the daemon remains the single source of truth.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

const (
	ServerName    = "wallpaperfree"
	ServerVersion = "0.1.0"
)

// Client is the IPC surface the MCP tools need. Tests substitute a fake.
type Client interface {
	GetStatus() (*ipc.StatusData, error)
	ListLibrary() (*ipc.LibraryData, error)
	AddVideo(path string) (*ipc.VideoInfo, error)
	RemoveVideo(id string) error
	ListScreens() (*ipc.ScreensData, error)
	SetScreenVideo(screenKey, videoID string) error
	SetScreenEnabled(screenKey string, enabled bool) error
	SetVolume(volume float64) error
}

// Server is the MCP server for wallpaper control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    Client
}

// NewServer creates an MCP server talking to the daemon over IPC.
func NewServer(client Client) *Server {
	if client == nil {
		client = ipc.NewClient()
	}

	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status: connected screens, how many wallpapers are playing, library size and global volume.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_videos",
		Description: "List the videos in the wallpaper library with their ids, names and file paths.",
	}, s.handleListVideos)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_video",
		Description: "Add a video file to the wallpaper library. The file must exist on disk. Returns the new library id.",
	}, s.handleAddVideo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_video",
		Description: "Remove a video from the library by id. Screens currently using the video are disabled.",
	}, s.handleRemoveVideo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List connected screens with their geometry, stored settings and whether a wallpaper is currently playing.",
	}, s.handleListScreens)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_wallpaper",
		Description: "Assign a library video to a screen and start playing it. Use list_screens and list_videos to discover keys and ids.",
	}, s.handleSetWallpaper)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_screen_enabled",
		Description: "Enable or disable wallpaper playback on a screen without changing its assigned video.",
	}, s.handleSetScreenEnabled)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_volume",
		Description: "Set the global playback volume for all wallpapers (0.0 mute to 1.0 full).",
	}, s.handleSetVolume)
}
