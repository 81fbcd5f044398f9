package commands

import (
	"fmt"
	"strconv"
	"strings"
)

func ListEntries() {
	if !requireLogin() {
		return
	}

	list, err := API.ListEntries()

	if err != nil {
		fmt.Println("Failed to list entries:", err)
		return
	}

	if len(list) == 0 {
		fmt.Println("No entries yet. Use 'new' to write your first one.")
		return
	}

	fmt.Printf("%-6s %-12s %-8s %-8s %-7s %s\n", "ID", "Date", "Author", "Privacy", "Words", "Preview")

	for _, entry := range list {
		author := "you"
		if entry.UserID != CurrentUserID {
			author = "partner"
		}

		privacy := "shared"
		if entry.IsPrivate {
			privacy = "private"
		}

		preview := strings.ReplaceAll(entry.Content, "\n", " ")
		if len(preview) > 40 {
			preview = preview[:40] + "..."
		}

		fmt.Printf("%-6d %-12s %-8s %-8s %-7d %s\n",
			entry.ID,
			entry.CreatedAt.Format("2006-01-02"),
			author,
			privacy,
			entry.WordCount,
			preview,
		)
	}
}

func DeleteEntry(args []string) {
	if !requireLogin() {
		return
	}

	if len(args) == 0 {
		fmt.Println("Usage: delete <entry-id>")
		return
	}

	id, err := strconv.ParseUint(args[0], 10, 32)

	if err != nil {
		fmt.Println("Invalid entry id:", args[0])
		return
	}

	confirm := promptLine("Delete this entry for good? (y/N): ")

	if !strings.EqualFold(confirm, "y") {
		fmt.Println("Cancelled.")
		return
	}

	if err := API.DeleteEntry(uint(id)); err != nil {
		fmt.Println("Delete failed:", err)
		return
	}

	fmt.Println("Entry deleted.")
}
