package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	afterCommand(ctx context.Context)

	Open(ctx context.Context, path string) error
	Back(ctx context.Context) error
	History(ctx context.Context) error

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Score(ctx context.Context) error
	Suggest(ctx context.Context) error
	NewContact(ctx context.Context) error
	EditContact(ctx context.Context) error
	DeleteContact(ctx context.Context) error
	AddPolicy(ctx context.Context) error

	NewTask(ctx context.Context) error
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// routeCommands are shortcuts for "go <path>".
var routeCommands = map[string]string{
	"dashboard": "/",
	"home":      "/",
	"contacts":  "/contacts",
	"tasks":     "/tasks",
	"pipelines": "/pipelines",
	"team":      "/team",
	"profile":   "/profile",
}

// runREPL starts a simple read–eval–print loop for the CRM client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("crm %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if path, ok := routeCommands[cmd]; ok {
			_ = a.Open(ctx, path)
			a.afterCommand(ctx)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, contacts, contact <id>, tasks, pipelines, team, profile, go <path>, back, history,")
				printlnFn("  newcontact, edit, delete, addpolicy, score, suggest, newtask, complete <id>, deltask <id>, logout, exit")
			} else {
				printlnFn("Available commands: login, register, exit")
			}

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "contact":
			if len(args) == 0 {
				printlnFn("Usage: contact <id>")
				continue
			}
			_ = a.Open(ctx, "/contacts/"+args[0])

		case "back":
			_ = a.Back(ctx)

		case "history":
			_ = a.History(ctx)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "score":
			if errors.Is(a.Score(ctx), errNotHere) {
				printlnFn("Open a contact first (premium only).")
			}

		case "suggest":
			if errors.Is(a.Suggest(ctx), errNotHere) {
				printlnFn("Open a contact first (premium only).")
			}

		case "newcontact":
			_ = a.NewContact(ctx)

		case "edit":
			_ = a.EditContact(ctx)

		case "delete":
			_ = a.DeleteContact(ctx)

		case "addpolicy":
			_ = a.AddPolicy(ctx)

		case "newtask":
			_ = a.NewTask(ctx)

		case "complete", "deltask":
			if len(args) == 0 {
				printlnFn("Usage: " + cmd + " <id>")
				continue
			}
			if cmd == "complete" {
				_ = a.CompleteTask(ctx, args[0])
			} else {
				_ = a.DeleteTask(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
		a.afterCommand(ctx)

		if err != nil {
			return
		}
	}
}
