package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const replyTimeout = 10 * time.Second

// Dir returns the directory sockets are created in
func Dir() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, "outline-engine")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "outline-engine")
}

// Server accepts messages from other processes on a Unix socket and hands
// them to a single consumer
type Server struct {
	path     string
	listener net.Listener
	messages chan Message
	done     chan struct{}
	stopOnce sync.Once
}

// NewServer listens on the socket of process pid in dir
func NewServer(dir string, pid int) (*Server, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	path := filepath.Join(dir, socketName(pid))
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	log.Printf("Socket server listening on: %s", path)

	return &Server{
		path:     path,
		listener: listener,
		messages: make(chan Message, 10),
		done:     make(chan struct{}),
	}, nil
}

// Start accepts connections in the background until Stop
func (s *Server) Start() {
	go func() {
		for {
			conn, err := s.listener.Accept()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if err != nil {
				log.Printf("Error accepting connection: %v", err)
				continue
			}
			go s.serve(conn)
		}
	}()
}

// serve handles a single request on conn
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	enc := json.NewEncoder(conn)
	fail := func(format string, args ...any) {
		enc.Encode(Response{Message: fmt.Sprintf(format, args...)})
	}

	var msg Message
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		if err != io.EOF {
			log.Printf("Error decoding message: %v", err)
		}
		fail("Invalid message format: %v", err)
		return
	}
	if msg.Command == "" {
		fail("Missing command field")
		return
	}

	msg.reply = make(chan Response, 1)
	select {
	case s.messages <- msg:
	case <-s.done:
		fail("Server is shutting down")
		return
	}

	timer := time.NewTimer(replyTimeout)
	defer timer.Stop()
	select {
	case resp := <-msg.reply:
		enc.Encode(resp)
	case <-timer.C:
		fail("Command timed out")
	case <-s.done:
		fail("Server is shutting down")
	}
}

// Messages delivers received messages. Every message must be answered with Reply.
func (s *Server) Messages() <-chan Message {
	return s.messages
}

// SocketPath returns the path of the listening socket
func (s *Server) SocketPath() string {
	return s.path
}

// Stop closes the listener and removes the socket file. It is safe to call twice.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.listener.Close()
		os.Remove(s.path)
		log.Printf("Socket server stopped")
	})
}
