package commands

import (
	"fmt"
	"strings"
)

// Theme saves display preferences server-side so both devices of a user
// render the same palette. The server stores the blob as-is.
func Theme(args []string) {
	if !requireLogin() {
		return
	}

	theme := make(map[string]any)

	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 2)
		if len(parts) == 2 && strings.HasPrefix(parts[0], "--") {
			theme[strings.TrimPrefix(parts[0], "--")] = parts[1]
		}
	}

	if len(theme) == 0 {
		fmt.Println("Usage: theme --primary:#7c3aed --mode:dark --radius:0.5")
		return
	}

	if err := API.SaveTheme(theme); err != nil {
		fmt.Println("Failed to save theme:", err)
		return
	}

	fmt.Println("Theme saved.")
}
