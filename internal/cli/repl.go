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
	List(ctx context.Context, args []string) error
	AddUser(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// loggedInOnly names the commands that require an authenticated session.
// Anything not listed here is reachable while logged out.
var loggedInOnly = map[string]bool{
	"l":       true,
	"list":    true,
	"adduser": true,
	"logout":  true,
}

// runREPL starts a read–eval–print loop for the admin console.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Commands that operate
// on accounts are refused until the operator logs in; the attempt is
// reported and the loop continues. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - whoami         — show session state
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help                    — show available commands
//	  - (l)ist [filter] [query] — list accounts (filter: all|active|expired)
//	  - adduser                 — provision an account
//	  - whoami                  — show session state
//	  - logout                  — log out
//	  - exit | quit             — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mp> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if loggedInOnly[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [all|active|expired] [query], adduser, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, whoami, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx, parts[1:])

		case "adduser":
			_ = a.AddUser(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
