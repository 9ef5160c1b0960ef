// Copyright (c) 2026 Authapp. All rights reserved.

// Command cli is an interactive console client for the Authapp API.
//
// It resumes the persisted session on startup, then accepts commands:
//
//	register   create an account and sign in
//	login      sign in with email/password
//	whoami     show the current user's profile
//	logout     revoke the session
//	ping       check API connectivity
//	quit       exit
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/dkovacev/authapp/internal/client"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the Authapp API")
	statePath := flag.String("state", defaultStatePath(), "path to the session state file")
	flag.Parse()

	api := client.NewAPIClient(*addr)
	store := client.NewStateStore(*statePath)
	session := client.NewSession(api, store)

	ctx := context.Background()

	if session.Resume(ctx) {
		fmt.Printf("Signed in as %s <%s>\n", session.User().Name, session.User().Email)
	} else {
		fmt.Println("Not signed in. Use 'register' or 'login'.")
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("authapp> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			fmt.Fprintln(os.Stderr, "read error:", err)
			return
		}

		switch command := strings.TrimSpace(line); command {
		case "":
			continue
		case "register":
			runRegister(ctx, session, reader)
		case "login":
			runLogin(ctx, session, reader)
		case "whoami":
			runWhoAmI(ctx, session)
		case "logout":
			runLogout(ctx, session)
		case "ping":
			runPing(ctx, api)
		case "quit", "exit":
			return
		case "help":
			fmt.Println("commands: register, login, whoami, logout, ping, quit")
		default:
			fmt.Printf("unknown command %q (try 'help')\n", command)
		}
	}
}

// defaultStatePath places the session file under the user's home directory.
func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".authapp-session.json"
	}
	return filepath.Join(home, ".authapp", "session.json")
}

func runRegister(ctx context.Context, session *client.Session, reader *bufio.Reader) {
	name := promptLine(reader, "Name")
	email := promptLine(reader, "Email")
	password := promptPassword("Password")
	confirmation := promptPassword("Confirm password")

	user, err := session.Register(ctx, name, email, password, confirmation)
	if err != nil {
		printFailure(err)
		return
	}
	fmt.Printf("Registered and signed in as %s <%s>\n", user.Name, user.Email)
}

func runLogin(ctx context.Context, session *client.Session, reader *bufio.Reader) {
	email := promptLine(reader, "Email")
	password := promptPassword("Password")

	user, err := session.Login(ctx, email, password)
	if err != nil {
		printFailure(err)
		return
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
}

func runWhoAmI(ctx context.Context, session *client.Session) {
	user, err := session.Current(ctx)
	if err != nil {
		if errors.Is(err, client.ErrNotAuthenticated) {
			fmt.Println("Not signed in.")
			return
		}
		printFailure(err)
		fmt.Println("Session dropped; sign in again.")
		return
	}

	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Name:     %s\n", user.Name)
	fmt.Printf("Email:    %s\n", user.Email)
	if user.EmailVerifiedAt != nil {
		fmt.Printf("Verified: %s\n", *user.EmailVerifiedAt)
	} else {
		fmt.Println("Verified: no")
	}
	fmt.Printf("Joined:   %s\n", user.CreatedAt)
}

func runLogout(ctx context.Context, session *client.Session) {
	if !session.IsAuthenticated() {
		fmt.Println("Not signed in.")
		return
	}
	if err := session.Logout(ctx); err != nil {
		// Local state is already gone; the server-side token dies on its own
		// at expiry.
		fmt.Println("Signed out locally (server revocation failed).")
		return
	}
	fmt.Println("Signed out.")
}

func runPing(ctx context.Context, api *client.APIClient) {
	if err := api.Ping(ctx); err != nil {
		printFailure(err)
		return
	}
	fmt.Println("API is reachable.")
}

// promptLine reads one trimmed line of input.
func promptLine(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptPassword reads a password without echo.
func promptPassword(label string) string {
	fmt.Printf("%s: ", label)
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}

// printFailure renders an API error, including field-level validation
// messages when present.
func printFailure(err error) {
	var apiError *client.APIError
	if errors.As(err, &apiError) {
		if len(apiError.Fields) > 0 {
			for field, messages := range apiError.Fields {
				for _, message := range messages {
					fmt.Printf("  %s: %s\n", field, message)
				}
			}
			return
		}
		fmt.Println(apiError.Message)
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
}
