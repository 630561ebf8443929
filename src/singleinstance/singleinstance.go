// Package singleinstance keeps a second launch of the resident app from
// starting: the first instance holds a loopback listener whose port is
// recorded in a runtime file, and later launches probe it.
package singleinstance

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrAlreadyRunning reports that a live instance holds the guard.
var ErrAlreadyRunning = errors.New("another instance is already running")

const probeTimeout = 250 * time.Millisecond

// DefaultPortFile returns the per-user location of the port record.
func DefaultPortFile() string {
	return filepath.Join(os.TempDir(), "snip-ocr.port")
}

// Acquire takes the single-instance guard. On success it returns a
// release function; when a live instance is detected it returns
// ErrAlreadyRunning. A stale port file (previous crash) is overwritten.
func Acquire(portFile string) (func(), error) {
	if port, ok := readPortFile(portFile); ok && alive(port) {
		return nil, ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to bind instance guard: %w", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	if err := os.WriteFile(portFile, []byte(strconv.Itoa(port)), 0600); err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("failed to write port file: %w", err)
	}

	// Liveness is the accept loop itself; probes connect and are closed.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	release := func() {
		_ = ln.Close()
		_ = os.Remove(portFile)
	}
	return release, nil
}

func readPortFile(portFile string) (int, bool) {
	data, err := os.ReadFile(portFile)
	if err != nil {
		return 0, false
	}
	port, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || port <= 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

func alive(port int) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), probeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
