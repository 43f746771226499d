package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/aggressorcorp/WallpaperFree/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListLibrary retrieves the video library
func (c *Client) ListLibrary() (*LibraryData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListLibrary})
	if err != nil {
		return nil, err
	}

	var data LibraryData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse library data: %w", err)
	}

	return &data, nil
}

// AddVideo adds a video file to the library and returns the new entry
func (c *Client) AddVideo(path string) (*VideoInfo, error) {
	payload, err := json.Marshal(AddVideoPayload{Path: path})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal add payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandAddVideo, Payload: payload})
	if err != nil {
		return nil, err
	}

	var info VideoInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse video data: %w", err)
	}

	return &info, nil
}

// RemoveVideo removes a library entry by id
func (c *Client) RemoveVideo(id string) error {
	payload, err := json.Marshal(RemoveVideoPayload{ID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal remove payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandRemoveVideo, Payload: payload})
	return err
}

// ListScreens retrieves connected screens and their settings
func (c *Client) ListScreens() (*ScreensData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListScreens})
	if err != nil {
		return nil, err
	}

	var data ScreensData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse screens data: %w", err)
	}

	return &data, nil
}

// SetScreenVideo assigns a library entry to a screen. An empty videoID
// clears the assignment and disables the screen.
func (c *Client) SetScreenVideo(screenKey, videoID string) error {
	payload, err := json.Marshal(SetScreenVideoPayload{ScreenKey: screenKey, VideoID: videoID})
	if err != nil {
		return fmt.Errorf("failed to marshal set-video payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetScreenVideo, Payload: payload})
	return err
}

// SetScreenEnabled toggles playback for a screen
func (c *Client) SetScreenEnabled(screenKey string, enabled bool) error {
	payload, err := json.Marshal(SetScreenEnabledPayload{ScreenKey: screenKey, Enabled: enabled})
	if err != nil {
		return fmt.Errorf("failed to marshal set-enabled payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetScreenEnabled, Payload: payload})
	return err
}

// SetVolume sets the global playback volume (0.0 to 1.0)
func (c *Client) SetVolume(volume float64) error {
	payload, err := json.Marshal(SetVolumePayload{Volume: volume})
	if err != nil {
		return fmt.Errorf("failed to marshal set-volume payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetVolume, Payload: payload})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
