package app

import (
	"log"

	"github.com/pstuifzand/outline-engine/internal/commands"
	"github.com/pstuifzand/outline-engine/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, text=%s, target=%s", msg.Command, msg.Text, msg.Target)

	switch msg.Command {
	case socket.CommandAddItem:
		msg.Reply(a.handleAddItemCommand(msg))
	case socket.CommandRun:
		msg.Reply(a.handleRunCommand(msg))
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
		msg.Reply(socket.Response{Message: "Unknown command: " + msg.Command})
	}
}

func (a *App) handleAddItemCommand(msg socket.Message) socket.Response {
	target := msg.Target
	if target == "" {
		target = "inbox"
	}
	if target != "inbox" {
		log.Printf("Unsupported target: %s (only 'inbox' is supported)", target)
		return socket.Response{Message: "Only 'inbox' target is supported"}
	}

	created, err := a.addToInbox(msg.Text)
	if err != nil {
		log.Printf("Failed to add item to inbox: %v", err)
		a.SetStatus("Error adding item to inbox")
		return socket.Response{Message: err.Error()}
	}

	status := "Added to inbox"
	if created {
		status = "Added to new inbox item"
	}
	a.SetStatus(status)
	return socket.Response{Success: true, Message: status}
}

func (a *App) handleRunCommand(msg socket.Message) socket.Response {
	cmd, ok := commands.Resolve(msg.Text)
	if !ok {
		return socket.Response{Message: "Unknown command: " + msg.Text}
	}
	handled := a.runCommand(cmd.Name)
	a.guardCursor()
	a.scheduleDrain()
	if !handled {
		return socket.Response{Message: cmd.Name + ": nothing to do at the cursor"}
	}
	return socket.Response{Success: true, Message: cmd.Name}
}
