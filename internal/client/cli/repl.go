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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context, token string) error
	Notices(ctx context.Context) error
	Read(ctx context.Context, sno string) error
	Save(ctx context.Context, sno, dir string) error
	Filter(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ne %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (n)otices, read <sno>, save <sno> [dir], filter, refresh, status, logout, exit")
			} else {
				printlnFn("Available commands: register, verify <token>, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "verify":
			if len(args) == 0 {
				printlnFn("Usage: verify <token>")
				continue
			}
			_ = a.Verify(ctx, args[0])

		case "n", "notices":
			_ = a.Notices(ctx)

		case "read":
			if len(args) == 0 {
				printlnFn("Usage: read <sno>")
				continue
			}
			_ = a.Read(ctx, args[0])

		case "save":
			if len(args) == 0 {
				printlnFn("Usage: save <sno> [dir]")
				continue
			}
			dir := "."
			if len(args) > 1 {
				dir = args[1]
			}
			_ = a.Save(ctx, args[0], dir)

		case "filter":
			_ = a.Filter(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
