package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// helpText lists the commands available in the current auth state. Browsing
// commands work logged out; posting, RSVP and profile commands need a session.
func helpText(authenticated bool) string {
	if authenticated {
		return "Available commands: whoami, profile, threads, thread, post, comment, events, event, rsvp, projects, project, submit, resources, resource, tokens, logout, exit (or quit)"
	}
	return "Available commands: register, login, tokens, threads, thread, events, event, projects, project, resources, resource, exit (or quit)"
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to CommHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		a.handleExpiredSession(ctx)

		fmt.Printf("commhub %s> ", a.getStatus())
		if !scanner.Scan() {
			break
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
			fmt.Println(helpText(a.session.IsAuthenticated()))

		case "register":
			a.runCommand(ctx, func() error { return a.Register(ctx) })
		case "login":
			a.runCommand(ctx, func() error { return a.Login(ctx) })
		case "logout":
			a.runCommand(ctx, func() error { return a.Logout(ctx) })
		case "tokens":
			a.runCommand(ctx, func() error { return a.InjectTokens(ctx) })
		case "whoami":
			a.whoami()
		case "profile":
			a.runCommand(ctx, func() error { return a.showProfile(ctx) })
		case "threads":
			a.runCommand(ctx, func() error { return a.listThreads(ctx) })
		case "thread":
			a.runCommand(ctx, func() error { return a.showThread(ctx, args) })
		case "post":
			a.runCommand(ctx, func() error { return a.createThread(ctx) })
		case "comment":
			a.runCommand(ctx, func() error { return a.addComment(ctx, args) })
		case "events":
			a.runCommand(ctx, func() error { return a.listEvents(ctx, args) })
		case "event":
			a.runCommand(ctx, func() error { return a.showEvent(ctx, args) })
		case "rsvp":
			a.runCommand(ctx, func() error { return a.registerForEvent(ctx, args) })
		case "projects":
			a.runCommand(ctx, func() error { return a.listProjects(ctx) })
		case "project":
			a.runCommand(ctx, func() error { return a.showProject(ctx, args) })
		case "submit":
			a.runCommand(ctx, func() error { return a.submitProject(ctx) })
		case "resources":
			a.runCommand(ctx, func() error { return a.listResources(ctx) })
		case "resource":
			a.runCommand(ctx, func() error { return a.showResource(ctx, args) })
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

func (a *App) runCommand(ctx context.Context, fn func() error) {
	if err := fn(); err != nil {
		fmt.Println("Error:", err)
	}
}

func (a *App) whoami() {
	u := a.session.User()
	if u == nil {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s <%s> (%s, role: %s)\n", u.Username, u.Email, u.PublicID, u.Role)
}
