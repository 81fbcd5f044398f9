package commands

import (
	"fmt"
	"strings"
)

func Login(args []string) {
	var email, password string

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--email:"):
			email = strings.TrimPrefix(arg, "--email:")
		case strings.HasPrefix(arg, "--password:"):
			password = strings.TrimPrefix(arg, "--password:")
		}
	}

	if email == "" {
		email = promptLine("Enter email: ")
	}
	if password == "" {
		password = promptLine("Enter password: ")
	}

	user, err := API.Login(email, password)

	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}

	CurrentUserID = user.ID
	fmt.Printf("Login successful! Welcome back, %s.\n", user.Username)

	profile, err := API.Profile()

	if err != nil {
		return
	}

	if profile.RelationshipID == nil {
		fmt.Println("You are not paired yet. Use 'invite' or 'join <code>' to connect with your partner.")
	}
}

func Logout() {
	if API == nil || !API.LoggedIn() {
		fmt.Println("You are not logged in.")
		return
	}

	API.Logout()
	CurrentUserID = 0
	fmt.Println("Logged out.")
}

func Me() {
	if !requireLogin() {
		return
	}

	user, err := API.Me()

	if err != nil {
		fmt.Println("Failed to fetch account:", err)
		return
	}

	profile, err := API.Profile()

	if err != nil {
		fmt.Println("Failed to fetch profile:", err)
		return
	}

	fmt.Printf("Account: %s <%s>\n", user.Username, user.Email)

	if profile.RelationshipID != nil {
		fmt.Printf("Paired (relationship %d)\n", *profile.RelationshipID)
	} else if profile.InviteCode != nil {
		fmt.Printf("Not paired. Your invite code: %s\n", *profile.InviteCode)
	} else {
		fmt.Println("Not paired. Use 'invite' to generate a code.")
	}
}
