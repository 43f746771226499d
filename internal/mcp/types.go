package mcp

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning bool    `json:"daemon_running"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	ScreenCount   int     `json:"screen_count"`
	PlayingCount  int     `json:"playing_count"`
	LibraryCount  int     `json:"library_count"`
	Volume        float64 `json:"volume"`
}

// ListVideosInput is the input for the list_videos tool.
type ListVideosInput struct{}

// VideoEntry describes a single library entry.
type VideoEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}

// ListVideosOutput is the output for the list_videos tool.
type ListVideosOutput struct {
	Videos []VideoEntry `json:"videos"`
}

// AddVideoInput is the input for the add_video tool.
type AddVideoInput struct {
	Path string `json:"path" jsonschema:"required,Absolute path of the video file to add"`
}

// AddVideoOutput is the output for the add_video tool.
type AddVideoOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// RemoveVideoInput is the input for the remove_video tool.
type RemoveVideoInput struct {
	ID string `json:"id" jsonschema:"required,Library id of the video to remove"`
}

// RemoveVideoOutput is the output for the remove_video tool.
type RemoveVideoOutput struct {
	Removed bool `json:"removed"`
}

// ListScreensInput is the input for the list_screens tool.
type ListScreensInput struct{}

// ScreenEntry describes one connected screen and its settings.
type ScreenEntry struct {
	Key       string `json:"key"`
	Output    string `json:"output,omitempty"`
	Primary   bool   `json:"primary"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Enabled   bool   `json:"enabled"`
	VideoID   string `json:"video_id,omitempty"`
	VideoName string `json:"video_name,omitempty"`
	Playing   bool   `json:"playing"`
}

// ListScreensOutput is the output for the list_screens tool.
type ListScreensOutput struct {
	Screens []ScreenEntry `json:"screens"`
}

// SetWallpaperInput is the input for the set_wallpaper tool.
type SetWallpaperInput struct {
	ScreenKey string `json:"screen_key" jsonschema:"required,Screen key from list_screens"`
	VideoID   string `json:"video_id" jsonschema:"required,Library id of the video to play on the screen"`
	Enable    *bool  `json:"enable,omitempty" jsonschema:"When set, also enable or disable the screen (default: enable)"`
}

// SetWallpaperOutput is the output for the set_wallpaper tool.
type SetWallpaperOutput struct {
	ScreenKey string `json:"screen_key"`
	VideoID   string `json:"video_id"`
	Enabled   bool   `json:"enabled"`
}

// SetScreenEnabledInput is the input for the set_screen_enabled tool.
type SetScreenEnabledInput struct {
	ScreenKey string `json:"screen_key" jsonschema:"required,Screen key from list_screens"`
	Enabled   bool   `json:"enabled" jsonschema:"required,Whether wallpaper playback is enabled on the screen"`
}

// SetScreenEnabledOutput is the output for the set_screen_enabled tool.
type SetScreenEnabledOutput struct {
	ScreenKey string `json:"screen_key"`
	Enabled   bool   `json:"enabled"`
}

// SetVolumeInput is the input for the set_volume tool.
type SetVolumeInput struct {
	Volume float64 `json:"volume" jsonschema:"required,Global playback volume between 0.0 and 1.0"`
}

// SetVolumeOutput is the output for the set_volume tool.
type SetVolumeOutput struct {
	Volume float64 `json:"volume"`
}
