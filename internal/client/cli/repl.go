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
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ShowFeed(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	ListCreators(ctx context.Context) error
	FindCreators(ctx context.Context, args []string) error
	OpenCreator(ctx context.Context, args []string) error
	ToggleSubscription(ctx context.Context) error
	OpenPost(ctx context.Context, args []string) error
	ShowSubscriptions(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the OnlyVentilateur CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Anonymous:
//	  - help            — show available commands
//	  - signup          — create an account
//	  - login           — authenticate
//	  - feed | next | prev — browse the post feed
//	  - creators        — list all creators
//	  - find <text>     — search creators by name or handle
//	  - creator <id>    — open a creator profile
//	  - post <id>       — open a single post
//	  - exit | quit     — leave the program
//
//	Logged in, additionally:
//	  - like <post-id>  — toggle a like
//	  - sub             — toggle subscription to the open creator
//	  - subs            — list subscribed creators
//	  - profile         — edit the caller's profile
//	  - whoami          — show the current identity
//	  - logout          — log out
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ov %s> ", statusFn()))
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
				printlnFn("Available commands: feed, next, prev, like <post-id>, creators, find <text>, creator <id>, sub, post <id>, subs, profile, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, feed, next, prev, creators, find <text>, creator <id>, post <id>, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "f", "feed":
			_ = a.ShowFeed(ctx)

		case "n", "next":
			_ = a.NextPage(ctx)

		case "p", "prev":
			_ = a.PrevPage(ctx)

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <post-id>")
				continue
			}
			_ = a.Like(ctx, args)

		case "creators":
			_ = a.ListCreators(ctx)

		case "find":
			if len(args) == 0 {
				printlnFn("Usage: find <text>")
				continue
			}
			_ = a.FindCreators(ctx, args)

		case "creator":
			if len(args) == 0 {
				printlnFn("Usage: creator <id>")
				continue
			}
			_ = a.OpenCreator(ctx, args)

		case "sub":
			_ = a.ToggleSubscription(ctx)

		case "post":
			if len(args) == 0 {
				printlnFn("Usage: post <id>")
				continue
			}
			_ = a.OpenPost(ctx, args)

		case "subs":
			_ = a.ShowSubscriptions(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
