package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Credits(ctx context.Context, args []string) error
	Grant(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Device(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: login, device, exit"
	helpSignedIn  = "Available commands: (g)enerate <prompt>, (e)dit [@id] <prompt>, open [id], (l)ist, show [generated|edited|@id] [--consume], credits [refresh], grant <screens> [revisions], export [file|s3], history [n], device [profile], logout, exit"
)

// runREPL reads commands line by line and dispatches them to a.
//
// The first token is the command, the rest are its arguments. The loop exits
// on scanner EOF or when the user types "exit" or "quit". Handler errors are
// ignored here; handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn(helpSignedOut)
				continue
			case "login", "device", "exit", "quit":
			default:
				printlnFn("Please log in first.")
				continue
			}
		}

		switch cmd {
		case "help":
			printlnFn(helpSignedIn)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "credits":
			_ = a.Credits(ctx, args)

		case "grant":
			_ = a.Grant(ctx, args)

		case "g", "generate":
			_ = a.Generate(ctx, args)

		case "e", "edit":
			_ = a.Edit(ctx, args)

		case "open":
			_ = a.Open(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "history":
			_ = a.History(ctx, args)

		case "device":
			_ = a.Device(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
