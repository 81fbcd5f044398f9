package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/duet-dev/duet/internal/client"
)

// Session state for the REPL: the API handle and the logged-in user's id,
// used to mark partner entries in listings.
var (
	API           *client.API
	CurrentUserID uint
)

func Init(baseURL string) {
	API = client.NewAPI(baseURL)
}

func requireLogin() bool {
	if API == nil || !API.LoggedIn() {
		fmt.Println("You need to log in first. Use the 'login' command.")
		return false
	}
	return true
}

func promptLine(label string) string {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
