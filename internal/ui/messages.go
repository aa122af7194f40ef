package ui

import (
	"sync"
	"time"
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Timestamp time.Time
}

// StatusLine shows the latest message for a while and keeps the last N
type StatusLine struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
}

// NewStatusLine creates a status line keeping maxSize messages, each shown for ttl
func NewStatusLine(maxSize int, ttl time.Duration) *StatusLine {
	return &StatusLine{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Set shows text and adds it to the history
func (s *StatusLine) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" {
		return
	}

	s.messages = append(s.messages, Message{Text: text, Timestamp: s.now()})
	if len(s.messages) > s.maxSize {
		s.messages = s.messages[len(s.messages)-s.maxSize:]
	}
}

// Current returns the latest message, empty once it is older than the ttl
func (s *StatusLine) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return ""
	}
	last := s.messages[len(s.messages)-1]
	if s.now().Sub(last.Timestamp) > s.ttl {
		return ""
	}
	return last.Text
}

// Messages returns a copy of all messages, newest first
func (s *StatusLine) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Message, len(s.messages))
	for i, msg := range s.messages {
		result[len(s.messages)-1-i] = msg
	}
	return result
}

// Render draws mode, file name, modified flag and the current message on row y
func (s *StatusLine) Render(screen *Screen, y int, mode, fileName string, modified bool) {
	x := screen.DrawString(0, y, " "+mode+" ", screen.StatusModeStyle())
	x = screen.DrawString(x+1, y, fileName, screen.HeaderStyle())
	if modified {
		x = screen.DrawString(x, y, " [+]", screen.StatusModifiedStyle())
	}
	if msg := s.Current(); msg != "" {
		x = screen.DrawStringLimited(x+2, y, msg, screen.GetWidth()-x-2, screen.StatusMessageStyle())
	}
	screen.FillLine(x, y, screen.StatusMessageStyle())
}
