package socket

import (
	"errors"
	"os"
	"testing"
	"time"
)

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	// Unix socket paths are short, t.TempDir can exceed the limit
	dir, err := os.MkdirTemp("", "oe")
	if err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	server, err := NewServer(dir, os.Getpid())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	t.Cleanup(server.Stop)
	server.Start()
	return server, dir
}

// answer replies to the next message with resp and returns it
func answer(t *testing.T, server *Server, resp Response) <-chan Message {
	t.Helper()
	got := make(chan Message, 1)
	go func() {
		select {
		case msg := <-server.Messages():
			msg.Reply(resp)
			got <- msg
		case <-time.After(2 * time.Second):
			close(got)
		}
	}()
	return got
}

func TestServerClient(t *testing.T) {
	server, _ := startServer(t)

	client, err := NewClient(server.SocketPath())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	received := answer(t, server, Response{Success: true, Message: "Added to inbox"})

	response, err := client.SendAddItem("Test item")
	if err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}
	if !response.Success {
		t.Errorf("Expected success=true, got success=false: %s", response.Message)
	}
	if response.Message != "Added to inbox" {
		t.Errorf("Expected reply from consumer, got %q", response.Message)
	}

	msg, ok := <-received
	if !ok {
		t.Fatal("Timeout waiting for message")
	}
	if msg.Command != CommandAddItem {
		t.Errorf("Expected command=%s, got command=%s", CommandAddItem, msg.Command)
	}
	if msg.Text != "Test item" {
		t.Errorf("Expected text='Test item', got text='%s'", msg.Text)
	}
	if msg.Target != "inbox" {
		t.Errorf("Expected target='inbox', got target='%s'", msg.Target)
	}
}

func TestSendRun(t *testing.T) {
	server, _ := startServer(t)

	client, err := NewClient(server.SocketPath())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	received := answer(t, server, Response{Message: "indent: not in a list"})

	response, err := client.SendRun("indent")
	if err != nil {
		t.Fatalf("Failed to send run: %v", err)
	}
	if response.Success {
		t.Errorf("Expected success=false")
	}

	msg, ok := <-received
	if !ok {
		t.Fatal("Timeout waiting for message")
	}
	if msg.Command != CommandRun || msg.Text != "indent" {
		t.Errorf("Unexpected message: %+v", msg)
	}
}

func TestMissingCommand(t *testing.T) {
	server, _ := startServer(t)

	client, err := NewClient(server.SocketPath())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	response, err := client.Send(Message{Text: "no command"})
	if err != nil {
		t.Fatalf("Failed to send: %v", err)
	}
	if response.Success || response.Message != "Missing command field" {
		t.Errorf("Unexpected response: %+v", response)
	}
}

func TestFindRunningInstance(t *testing.T) {
	server, dir := startServer(t)

	socketPath, foundPid, err := FindRunningInstance(dir)
	if err != nil {
		t.Fatalf("Failed to find running instance: %v", err)
	}

	if socketPath != server.SocketPath() {
		t.Errorf("Expected socketPath=%s, got socketPath=%s", server.SocketPath(), socketPath)
	}

	if foundPid != os.Getpid() {
		t.Errorf("Expected pid=%d, got pid=%d", os.Getpid(), foundPid)
	}
}

func TestFindRunningInstanceNone(t *testing.T) {
	if _, _, err := FindRunningInstance(t.TempDir()); !errors.Is(err, ErrNoInstance) {
		t.Errorf("Expected ErrNoInstance for empty directory, got %v", err)
	}
}

func TestPidOf(t *testing.T) {
	tests := []struct {
		name string
		pid  int
		ok   bool
	}{
		{socketName(42), 42, true},
		{"tuo-abc.sock", 0, false},
		{"tuo-7.log", 0, false},
		{"other-7.sock", 0, false},
	}
	for _, tt := range tests {
		pid, ok := pidOf(tt.name)
		if pid != tt.pid || ok != tt.ok {
			t.Errorf("pidOf(%q) = %d, %v, expected %d, %v", tt.name, pid, ok, tt.pid, tt.ok)
		}
	}
}

func TestStopTwice(t *testing.T) {
	server, _ := startServer(t)
	server.Stop()
	server.Stop()
	if _, err := os.Stat(server.SocketPath()); !os.IsNotExist(err) {
		t.Errorf("Expected socket file to be removed, got %v", err)
	}
}

func TestReplyWithoutConnection(t *testing.T) {
	// Must not block or panic
	Message{Command: CommandRun}.Reply(Response{Success: true})
}
