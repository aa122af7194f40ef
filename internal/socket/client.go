package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoInstance is returned when no socket of a running instance exists
var ErrNoInstance = errors.New("no running instance found")

const (
	socketPrefix = "tuo-"
	socketSuffix = ".sock"
)

func socketName(pid int) string {
	return socketPrefix + strconv.Itoa(pid) + socketSuffix
}

// pidOf returns the pid encoded in a socket file name
func pidOf(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, socketPrefix)
	if !ok {
		return 0, false
	}
	digits, ok = strings.CutSuffix(digits, socketSuffix)
	if !ok {
		return 0, false
	}
	pid, err := strconv.Atoi(digits)
	return pid, err == nil
}

// FindRunningInstance returns the newest instance socket in dir and the pid
// of the process that owns it
func FindRunningInstance(dir string) (string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var (
		path   string
		pid    int
		newest time.Time
	)
	for _, e := range entries {
		p, ok := pidOf(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if path == "" || info.ModTime().After(newest) {
			path, pid, newest = filepath.Join(dir, e.Name()), p, info.ModTime()
		}
	}
	if path == "" {
		return "", 0, ErrNoInstance
	}
	return path, pid, nil
}

// Client sends messages to one running instance
type Client struct {
	path    string
	timeout time.Duration
}

// NewClient returns a client for the socket at path
func NewClient(path string) (*Client, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{path: path, timeout: replyTimeout + 5*time.Second}, nil
}

// Send writes msg and waits for the instance to answer it
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.path, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return &resp, nil
}

// SendAddItem asks the instance to add text to its inbox
func (c *Client) SendAddItem(text string) (*Response, error) {
	return c.Send(Message{Command: CommandAddItem, Text: text, Target: "inbox"})
}

// SendRun asks the instance to run an outliner command at its cursor
func (c *Client) SendRun(command string) (*Response, error) {
	return c.Send(Message{Command: CommandRun, Text: command})
}
