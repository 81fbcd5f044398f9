package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/duet-dev/duet/internal/client/commands"
	"github.com/joho/godotenv"
)

func executor(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	args := strings.Split(input, " ")
	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "register":
		commands.Register(cmdArgs)
	case "login":
		commands.Login(cmdArgs)
	case "logout":
		commands.Logout()
	case "me":
		commands.Me()
	case "invite":
		commands.Invite()
	case "join":
		commands.Join(cmdArgs)
	case "entries", "list":
		commands.ListEntries()
	case "new":
		commands.NewEntry()
	case "open":
		commands.OpenEntry(cmdArgs)
	case "delete":
		commands.DeleteEntry(cmdArgs)
	case "guest":
		commands.Guest()
	case "claim":
		commands.Claim()
	case "theme":
		commands.Theme(cmdArgs)
	case "help":
		fmt.Println("\n=== Duet Shared Diary CLI ===")
		fmt.Println("\nAccount:")
		fmt.Printf("%-10s : %s\n", "register", "Create an account (register --username:x --email:y --password:z)")
		fmt.Printf("%-10s : %s\n", "login", "Log in (login --email:y --password:z)")
		fmt.Printf("%-10s : %s\n", "logout", "Log out of this session")
		fmt.Printf("%-10s : %s\n", "me", "Show account and pairing status")
		fmt.Println("\nPairing:")
		fmt.Printf("%-10s : %s\n", "invite", "Generate an invite code for your partner")
		fmt.Printf("%-10s : %s\n", "join", "Pair using your partner's code (join ABC123)")
		fmt.Println("\nDiary:")
		fmt.Printf("%-10s : %s\n", "entries", "List entries visible to you")
		fmt.Printf("%-10s : %s\n", "new", "Start a new entry in the editor")
		fmt.Printf("%-10s : %s\n", "open", "Open an entry (open 12)")
		fmt.Printf("%-10s : %s\n", "delete", "Delete one of your entries (delete 12)")
		fmt.Printf("%-10s : %s\n", "theme", "Save display preferences")
		fmt.Println("\nGuest mode:")
		fmt.Printf("%-10s : %s\n", "guest", "Write a local-only draft without an account")
		fmt.Printf("%-10s : %s\n", "claim", "Turn the guest draft into a diary entry after login")
		fmt.Println("\nSystem:")
		fmt.Printf("%-10s : %s\n", "exit", "Leave the application")
	case "exit":
		os.Exit(0)
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "register", Description: "Create an account"},
		{Text: "login", Description: "Log in"},
		{Text: "logout", Description: "Log out"},
		{Text: "me", Description: "Account and pairing status"},
		{Text: "invite", Description: "Generate an invite code"},
		{Text: "join", Description: "Pair with a partner's code"},
		{Text: "entries", Description: "List diary entries"},
		{Text: "new", Description: "Write a new entry"},
		{Text: "open", Description: "Open an entry"},
		{Text: "delete", Description: "Delete an entry"},
		{Text: "theme", Description: "Save display preferences"},
		{Text: "guest", Description: "Local-only draft mode"},
		{Text: "claim", Description: "Claim the guest draft"},
		{Text: "help", Description: "Show help"},
		{Text: "exit", Description: "Leave"},
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}

func main() {
	godotenv.Load()

	serverURL := os.Getenv("DUET_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:3000"
	}

	commands.Init(serverURL)

	fmt.Println("Welcome to Duet, the shared diary for two.")
	fmt.Println("Type 'help' to see available commands, or 'guest' to just start writing.")

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix("duet> "),
		prompt.OptionTitle("Duet CLI"),
	)
	p.Run()
}
