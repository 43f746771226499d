package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const socketTimeout = 2 * time.Second

// ipcCommand is the request envelope of mpv's JSON IPC protocol.
type ipcCommand struct {
	Command []any `json:"command"`
}

// ipcReply is the response envelope. mpv answers every request with an
// "error" field that reads "success" on the happy path.
type ipcReply struct {
	Error string `json:"error"`
}

// setVolumeOverSocket sets the volume property of a running player via its
// control socket. Volume is 0.0–1.0 and maps to mpv's 0–100 scale.
func setVolumeOverSocket(socketPath string, v float64) error {
	conn, err := net.DialTimeout("unix", socketPath, socketTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to player socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(socketTimeout))

	cmd := ipcCommand{Command: []any{"set_property", "volume", v * 100}}
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal player command: %w", err)
	}

	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send player command: %w", err)
	}

	// mpv may interleave event messages; scan until the command reply.
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return fmt.Errorf("failed to read player reply: %w", err)
		}
		var reply ipcReply
		if err := json.Unmarshal(line, &reply); err != nil {
			continue
		}
		if reply.Error == "" {
			// Asynchronous event, not a command reply.
			continue
		}
		if reply.Error != "success" {
			return fmt.Errorf("player rejected volume change: %s", reply.Error)
		}
		return nil
	}
}
