package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/aggressorcorp/WallpaperFree/internal/config"
	"github.com/aggressorcorp/WallpaperFree/internal/engine"
	"github.com/aggressorcorp/WallpaperFree/internal/library"
	"github.com/aggressorcorp/WallpaperFree/internal/platform"
	"github.com/aggressorcorp/WallpaperFree/internal/runtimepath"
	"github.com/aggressorcorp/WallpaperFree/internal/screen"
	"github.com/aggressorcorp/WallpaperFree/internal/store"
)

// Thumbnailer provides preview images for library entries.
type Thumbnailer interface {
	// Generate renders a thumbnail for the video. Failures are internal.
	Generate(v library.VideoFile)
	// PathFor returns the thumbnail path, or "" if none exists yet.
	PathFor(id string) string
	// Remove deletes the cached thumbnail for a video, if any.
	Remove(id string)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	store        *store.Store
	engine       *engine.Engine
	backend      platform.Backend
	thumbs       Thumbnailer
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, st *store.Store, eng *engine.Engine, backend platform.Backend, thumbs Thumbnailer, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		store:      st,
		engine:     eng,
		backend:    backend,
		thumbs:     thumbs,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListLibrary:
		return s.handleListLibrary()
	case CommandAddVideo:
		return s.handleAddVideo(req.Payload)
	case CommandRemoveVideo:
		return s.handleRemoveVideo(req.Payload)
	case CommandListScreens:
		return s.handleListScreens()
	case CommandSetScreenVideo:
		return s.handleSetScreenVideo(req.Payload)
	case CommandSetScreenEnabled:
		return s.handleSetScreenEnabled(req.Payload)
	case CommandSetVolume:
		return s.handleSetVolume(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	screenCount := 0
	if displays, err := s.backend.Displays(); err == nil {
		screenCount = len(displays)
	}

	s.cfgMu.RLock()
	playerBinary := s.cfg.PlayerBinary
	s.cfgMu.RUnlock()

	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		ScreenCount:   screenCount,
		PlayingCount:  len(s.engine.ActiveSources()),
		LibraryCount:  len(s.store.Videos()),
		Volume:        s.store.Volume(),
		PlayerBinary:  playerBinary,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleListLibrary returns the video library
func (s *Server) handleListLibrary() *Response {
	videos := s.store.Videos()
	infos := make([]VideoInfo, len(videos))
	for i, v := range videos {
		infos[i] = VideoInfo{
			ID:   v.ID,
			Name: v.Name,
			Path: v.Path,
		}
		if s.thumbs != nil {
			infos[i].ThumbnailPath = s.thumbs.PathFor(v.ID)
		}
	}

	resp, _ := NewOKResponse(LibraryData{Videos: infos})
	return resp
}

// handleAddVideo adds a video file to the library
func (s *Server) handleAddVideo(payload json.RawMessage) *Response {
	var req AddVideoPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid add payload: %v", err))
	}
	if req.Path == "" {
		return NewErrorResponse("path is required")
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Cannot access video file: %v", err))
	}
	if info.IsDir() {
		return NewErrorResponse(fmt.Sprintf("Not a video file: %s", req.Path))
	}

	v := s.store.AddVideo(req.Path)
	log.Printf("IPC: Added video %q (%s)", v.Name, v.ID)

	if s.thumbs != nil {
		go s.thumbs.Generate(v)
	}

	resp, _ := NewOKResponse(VideoInfo{ID: v.ID, Name: v.Name, Path: v.Path})
	return resp
}

// handleRemoveVideo removes a library entry and clears screens that used it
func (s *Server) handleRemoveVideo(payload json.RawMessage) *Response {
	var req RemoveVideoPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid remove payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}

	s.store.RemoveVideo(req.ID)
	if s.thumbs != nil {
		s.thumbs.Remove(req.ID)
	}
	log.Printf("IPC: Removed video %s", req.ID)

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleListScreens returns connected screens with their stored settings
func (s *Server) handleListScreens() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get screens: %v", err))
	}

	infos := make([]ScreenInfo, len(displays))
	for i, d := range displays {
		key := screen.Key(d)
		settings := s.store.GetSettings(key)

		info := ScreenInfo{
			Key:     key,
			Output:  d.Output,
			Primary: d.Primary,
			X:       d.Frame.X,
			Y:       d.Frame.Y,
			Width:   d.Frame.Width,
			Height:  d.Frame.Height,
			Enabled: settings.Enabled,
			VideoID: settings.VideoFileID,
			Playing: s.engine.IsRunning(key),
		}
		if v, ok := s.store.Video(settings.VideoFileID); ok {
			info.VideoName = v.Name
		}
		infos[i] = info
	}

	resp, _ := NewOKResponse(ScreensData{Screens: infos})
	return resp
}

// handleSetScreenVideo assigns a library entry to a screen
func (s *Server) handleSetScreenVideo(payload json.RawMessage) *Response {
	var req SetScreenVideoPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set-video payload: %v", err))
	}
	if req.ScreenKey == "" {
		return NewErrorResponse("screen_key is required")
	}
	// An empty video_id clears the assignment.
	if req.VideoID != "" {
		if _, ok := s.store.Video(req.VideoID); !ok {
			return NewErrorResponse(fmt.Sprintf("Unknown video: %s", req.VideoID))
		}
	}

	settings := s.store.GetSettings(req.ScreenKey)
	settings.VideoFileID = req.VideoID
	if req.VideoID == "" {
		settings.Enabled = false
	}
	s.store.UpdateSettings(req.ScreenKey, settings)

	log.Printf("IPC: Screen %s video set to %q", req.ScreenKey, req.VideoID)

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleSetScreenEnabled toggles playback for a screen
func (s *Server) handleSetScreenEnabled(payload json.RawMessage) *Response {
	var req SetScreenEnabledPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set-enabled payload: %v", err))
	}
	if req.ScreenKey == "" {
		return NewErrorResponse("screen_key is required")
	}

	settings := s.store.GetSettings(req.ScreenKey)
	settings.Enabled = req.Enabled
	s.store.UpdateSettings(req.ScreenKey, settings)

	log.Printf("IPC: Screen %s enabled=%v", req.ScreenKey, req.Enabled)

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleSetVolume sets the global playback volume
func (s *Server) handleSetVolume(payload json.RawMessage) *Response {
	var req SetVolumePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set-volume payload: %v", err))
	}

	s.store.SetVolume(req.Volume)

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
