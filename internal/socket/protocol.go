package socket

// Message is a request sent to a running outline-engine instance
type Message struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
	Target  string `json:"target,omitempty"` // Default: "inbox"

	reply chan Response
}

// Reply answers the client that sent m. It does nothing for messages
// that did not come from a connection.
func (m Message) Reply(resp Response) {
	if m.reply == nil {
		return
	}
	select {
	case m.reply <- resp:
	default:
	}
}

// Response is the answer to a Message
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command types
const (
	// CommandAddItem appends Text as an item under the inbox
	CommandAddItem = "add_item"
	// CommandRun runs the outliner command named by Text at the cursor
	CommandRun = "run"
)
