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
	submit(ctx context.Context)
	list(ctx context.Context, args []string)
	refresh(ctx context.Context)
	decrypt(ctx context.Context, args []string)
	exportRecords(ctx context.Context)
	level(ctx context.Context)
	networks(ctx context.Context)
	status(ctx context.Context)
}

// runREPL starts a simple read-eval-print loop for the donation log CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//   - help             show available commands
//   - submit           record a new encrypted donation
//   - list | l [filter] [asc|desc]
//     show the record view, optionally filtered by id substring,
//     newest first unless "asc" is given
//   - refresh          reload records from the contract
//   - decrypt <id> [amount|timestamp]
//     reveal a record, or a single field of it
//   - export           write the current view to a JSON document
//   - level            show the cumulative donation tier
//   - networks         list supported networks
//   - status           show connection and relayer state
//   - exit | quit      leave the program
//
// Command handlers report their own errors; the loop stays resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("dlog %s> ", statusFn())
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
			printlnFn("Available commands: submit, (l)ist [filter] [asc|desc], refresh, decrypt <id> [amount|timestamp], export, level, networks, status, exit")

		case "submit":
			a.submit(ctx)

		case "l", "list":
			a.list(ctx, args)

		case "refresh":
			a.refresh(ctx)

		case "decrypt":
			a.decrypt(ctx, args)

		case "export":
			a.exportRecords(ctx)

		case "level":
			a.level(ctx)

		case "networks":
			a.networks(ctx)

		case "status":
			a.status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
