package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The first word is the command, the rest are its arguments. The loop ends
// on EOF, on "exit"/"quit", or when ctx is cancelled.
//
//	Not logged in:
//	  help, signup, login, exit
//
//	Logged in:
//	  help, me, add, list [page] [limit], search [name=..] [email=..] [phone=..],
//	  logout, exit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ck %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, add, (l)ist [page] [limit], (s)earch [name=..] [email=..] [phone=..], logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "me", "whoami":
			cmdErr = requireLogin(a, func() error { return a.Me(ctx) })

		case "add":
			cmdErr = requireLogin(a, func() error { return a.Add(ctx) })

		case "l", "list":
			cmdErr = requireLogin(a, func() error { return a.List(ctx, args) })

		case "s", "search":
			cmdErr = requireLogin(a, func() error { return a.Search(ctx, args) })

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}

var errLoginRequired = errors.New("please log in first (type 'login' or 'signup')")

func requireLogin(a execIface, fn func() error) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	return fn()
}

func describe(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable, try again later"
	}
	return err.Error()
}
