package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload           CommandType = "RELOAD"
	CommandGetStatus        CommandType = "GET_STATUS"
	CommandListLibrary      CommandType = "LIST_LIBRARY"
	CommandAddVideo         CommandType = "ADD_VIDEO"
	CommandRemoveVideo      CommandType = "REMOVE_VIDEO"
	CommandListScreens      CommandType = "LIST_SCREENS"
	CommandSetScreenVideo   CommandType = "SET_SCREEN_VIDEO"
	CommandSetScreenEnabled CommandType = "SET_SCREEN_ENABLED"
	CommandSetVolume        CommandType = "SET_VOLUME"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool    `json:"daemon_running"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	ScreenCount   int     `json:"screen_count"`
	PlayingCount  int     `json:"playing_count"`
	LibraryCount  int     `json:"library_count"`
	Volume        float64 `json:"volume"`
	PlayerBinary  string  `json:"player_binary,omitempty"`
}

// VideoInfo represents a single library entry
type VideoInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}

// LibraryData represents the data returned by LIST_LIBRARY
type LibraryData struct {
	Videos []VideoInfo `json:"videos"`
}

// ScreenInfo represents one connected screen and its settings
type ScreenInfo struct {
	Key       string `json:"key"`
	Output    string `json:"output,omitempty"`
	Primary   bool   `json:"primary"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Enabled   bool   `json:"enabled"`
	VideoID   string `json:"video_id,omitempty"`
	VideoName string `json:"video_name,omitempty"`
	Playing   bool   `json:"playing"`
}

// ScreensData represents the data returned by LIST_SCREENS
type ScreensData struct {
	Screens []ScreenInfo `json:"screens"`
}

type AddVideoPayload struct {
	Path string `json:"path"`
}

type RemoveVideoPayload struct {
	ID string `json:"id"`
}

type SetScreenVideoPayload struct {
	ScreenKey string `json:"screen_key"`
	VideoID   string `json:"video_id"`
}

type SetScreenEnabledPayload struct {
	ScreenKey string `json:"screen_key"`
	Enabled   bool   `json:"enabled"`
}

type SetVolumePayload struct {
	Volume float64 `json:"volume"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
