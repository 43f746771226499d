package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		DaemonRunning: status.DaemonRunning,
		UptimeSeconds: status.UptimeSeconds,
		ScreenCount:   status.ScreenCount,
		PlayingCount:  status.PlayingCount,
		LibraryCount:  status.LibraryCount,
		Volume:        status.Volume,
	}, nil
}

func (s *Server) handleListVideos(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListVideosInput) (*mcpsdk.CallToolResult, ListVideosOutput, error) {
	data, err := s.client.ListLibrary()
	if err != nil {
		return nil, ListVideosOutput{}, err
	}

	out := ListVideosOutput{Videos: make([]VideoEntry, len(data.Videos))}
	for i, v := range data.Videos {
		out.Videos[i] = VideoEntry{
			ID:            v.ID,
			Name:          v.Name,
			Path:          v.Path,
			ThumbnailPath: v.ThumbnailPath,
		}
	}
	return nil, out, nil
}

func (s *Server) handleAddVideo(_ context.Context, _ *mcpsdk.CallToolRequest, args AddVideoInput) (*mcpsdk.CallToolResult, AddVideoOutput, error) {
	if args.Path == "" {
		return nil, AddVideoOutput{}, fmt.Errorf("path is required")
	}

	info, err := s.client.AddVideo(args.Path)
	if err != nil {
		return nil, AddVideoOutput{}, err
	}

	return nil, AddVideoOutput{ID: info.ID, Name: info.Name, Path: info.Path}, nil
}

func (s *Server) handleRemoveVideo(_ context.Context, _ *mcpsdk.CallToolRequest, args RemoveVideoInput) (*mcpsdk.CallToolResult, RemoveVideoOutput, error) {
	if args.ID == "" {
		return nil, RemoveVideoOutput{}, fmt.Errorf("id is required")
	}

	if err := s.client.RemoveVideo(args.ID); err != nil {
		return nil, RemoveVideoOutput{}, err
	}
	return nil, RemoveVideoOutput{Removed: true}, nil
}

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	data, err := s.client.ListScreens()
	if err != nil {
		return nil, ListScreensOutput{}, err
	}

	out := ListScreensOutput{Screens: make([]ScreenEntry, len(data.Screens))}
	for i, sc := range data.Screens {
		out.Screens[i] = ScreenEntry{
			Key:       sc.Key,
			Output:    sc.Output,
			Primary:   sc.Primary,
			Width:     sc.Width,
			Height:    sc.Height,
			X:         sc.X,
			Y:         sc.Y,
			Enabled:   sc.Enabled,
			VideoID:   sc.VideoID,
			VideoName: sc.VideoName,
			Playing:   sc.Playing,
		}
	}
	return nil, out, nil
}

func (s *Server) handleSetWallpaper(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWallpaperInput) (*mcpsdk.CallToolResult, SetWallpaperOutput, error) {
	if args.ScreenKey == "" {
		return nil, SetWallpaperOutput{}, fmt.Errorf("screen_key is required")
	}
	if args.VideoID == "" {
		return nil, SetWallpaperOutput{}, fmt.Errorf("video_id is required")
	}

	if err := s.client.SetScreenVideo(args.ScreenKey, args.VideoID); err != nil {
		return nil, SetWallpaperOutput{}, err
	}

	enable := true
	if args.Enable != nil {
		enable = *args.Enable
	}
	if err := s.client.SetScreenEnabled(args.ScreenKey, enable); err != nil {
		return nil, SetWallpaperOutput{}, err
	}

	return nil, SetWallpaperOutput{
		ScreenKey: args.ScreenKey,
		VideoID:   args.VideoID,
		Enabled:   enable,
	}, nil
}

func (s *Server) handleSetScreenEnabled(_ context.Context, _ *mcpsdk.CallToolRequest, args SetScreenEnabledInput) (*mcpsdk.CallToolResult, SetScreenEnabledOutput, error) {
	if args.ScreenKey == "" {
		return nil, SetScreenEnabledOutput{}, fmt.Errorf("screen_key is required")
	}

	if err := s.client.SetScreenEnabled(args.ScreenKey, args.Enabled); err != nil {
		return nil, SetScreenEnabledOutput{}, err
	}
	return nil, SetScreenEnabledOutput{ScreenKey: args.ScreenKey, Enabled: args.Enabled}, nil
}

func (s *Server) handleSetVolume(_ context.Context, _ *mcpsdk.CallToolRequest, args SetVolumeInput) (*mcpsdk.CallToolResult, SetVolumeOutput, error) {
	if args.Volume < 0 || args.Volume > 1 {
		return nil, SetVolumeOutput{}, fmt.Errorf("volume must be between 0.0 and 1.0")
	}

	if err := s.client.SetVolume(args.Volume); err != nil {
		return nil, SetVolumeOutput{}, err
	}
	return nil, SetVolumeOutput{Volume: args.Volume}, nil
}
