package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/app"
	"github.com/pstuifzand/outline-engine/internal/socket"
)

func main() {
	logFile, err := os.Create("tuo.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (engine diagnostics in tuo.log, key events in status)")
	readOnly := flag.Bool("readonly", false, "Open the file without allowing edits")
	noSocket := flag.Bool("nosocket", false, "Do not accept items from other processes")
	addItem := flag.String("add", "", "Add an item to the inbox of a running tuo instance")
	runOp := flag.String("run", "", "Run an outliner command at the cursor of a running tuo instance")
	flag.Parse()

	if *addItem != "" || *runOp != "" {
		if err := sendToRunning(*addItem, *runOp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] FILE\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	application, err := app.NewApp(app.Options{
		FilePath: args[0],
		Logger:   log.Default(),
		ReadOnly: *readOnly,
		Socket:   !*noSocket,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// sendToRunning sends an add_item or run request to a running tuo instance
func sendToRunning(text, command string) error {
	socketPath, pid, err := socket.FindRunningInstance(socket.Dir())
	if err != nil {
		return fmt.Errorf("no running tuo instance found: %w", err)
	}

	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	var response *socket.Response
	if command != "" {
		response, err = client.SendRun(command)
	} else {
		text = strings.TrimSpace(text)
		if text == "" {
			return fmt.Errorf("item text cannot be empty")
		}
		response, err = client.SendAddItem(text)
	}
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	fmt.Println(response.Message)
	return nil
}
