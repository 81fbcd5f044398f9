package commands

import (
	"fmt"
	"strings"
)

func Register(args []string) {
	var username, email, password string

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--username:"):
			username = strings.TrimPrefix(arg, "--username:")
		case strings.HasPrefix(arg, "--email:"):
			email = strings.TrimPrefix(arg, "--email:")
		case strings.HasPrefix(arg, "--password:"):
			password = strings.TrimPrefix(arg, "--password:")
		}
	}

	if username == "" {
		username = promptLine("Enter username: ")
	}
	if email == "" {
		email = promptLine("Enter email: ")
	}
	if password == "" {
		password = promptLine("Enter password (min 8 chars): ")
	}

	user, err := API.Register(username, email, password)

	if err != nil {
		fmt.Println("Registration failed:", err)
		return
	}

	CurrentUserID = user.ID
	fmt.Printf("Welcome, %s! Your account is ready.\n", user.Username)
	fmt.Println("Use 'invite' to generate a code for your partner, or 'join <code>' to pair.")
}
