package commands

import (
	"fmt"
	"strings"
)

func Invite() {
	if !requireLogin() {
		return
	}

	code, err := API.GenerateInviteCode()

	if err != nil {
		fmt.Println("Failed to generate invite code:", err)
		return
	}

	fmt.Printf("Your invite code: %s\n", code)
	fmt.Println("Share it with your partner; they can pair with 'join " + code + "'.")
}

func Join(args []string) {
	if !requireLogin() {
		return
	}

	var code string

	if len(args) > 0 {
		code = strings.TrimSpace(args[0])
	} else {
		code = promptLine("Enter your partner's invite code: ")
	}

	if code == "" {
		fmt.Println("Usage: join <code>")
		return
	}

	relationshipID, err := API.Join(code)

	if err != nil {
		fmt.Println("Join failed:", err)
		return
	}

	fmt.Printf("Paired! Relationship %d is active. Your shared diary starts now.\n", relationshipID)
}
