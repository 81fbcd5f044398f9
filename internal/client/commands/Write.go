package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/duet-dev/duet/internal/autosave"
	"github.com/duet-dev/duet/internal/client"
	"github.com/duet-dev/duet/internal/entries"
)

const autosaveQuiet = time.Second

// NewEntry creates an empty entry and drops into the editor.
func NewEntry() {
	if !requireLogin() {
		return
	}

	entry, err := API.CreateEntry("")

	if err != nil {
		fmt.Println("Failed to create entry:", err)
		return
	}

	fmt.Printf("Created entry %d.\n", entry.ID)
	editEntry(entry.ID, entry.Content, entry.IsPrivate)
}

// OpenEntry loads an existing entry into the editor. Partner entries open
// read-only; only the author may edit.
func OpenEntry(args []string) {
	if !requireLogin() {
		return
	}

	if len(args) == 0 {
		fmt.Println("Usage: open <entry-id>")
		return
	}

	id, err := strconv.ParseUint(args[0], 10, 32)

	if err != nil {
		fmt.Println("Invalid entry id:", args[0])
		return
	}

	entry, err := API.GetEntry(uint(id))

	if err != nil {
		fmt.Println("Failed to open entry:", err)
		return
	}

	if entry.UserID != CurrentUserID {
		fmt.Printf("--- Partner's entry from %s ---\n", entry.CreatedAt.Format("2006-01-02"))
		fmt.Println(entry.Content)
		fmt.Printf("--- %d words, %d characters ---\n", entry.WordCount, entry.CharCount)
		return
	}

	editEntry(entry.ID, entry.Content, entry.IsPrivate)
}

func editEntry(entryID uint, content string, isPrivate bool) {
	saver := autosave.New(client.NewEntryFlusher(API, entryID), autosaveQuiet)
	saver.Reset(content, isPrivate)

	fmt.Println("Editor: type to append lines. Changes save automatically once you pause.")
	fmt.Println("Commands: :private :shared :stats :save :help :done")

	runEditor(saver, true)

	if err := saver.Close(); err != nil {
		fmt.Println("Final save failed:", err)
		return
	}

	fmt.Println("Entry saved.")
}

// runEditor is the shared line-based editing loop, used both for real
// entries and the guest draft.
func runEditor(saver *autosave.Synchronizer, allowPrivacy bool) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("| ")
		line, err := reader.ReadString('\n')

		if err != nil {
			return
		}

		trimmed := strings.TrimSpace(line)

		switch trimmed {
		case ":done", ":quit", ":q":
			return
		case ":help":
			fmt.Println(":private  hide this entry from your partner")
			fmt.Println(":shared   make this entry visible to your partner")
			fmt.Println(":stats    show word and character counts")
			fmt.Println(":save     save immediately")
			fmt.Println(":done     save and leave the editor")
			continue
		case ":private":
			if !allowPrivacy {
				fmt.Println("Privacy has no meaning for a local draft.")
				continue
			}
			saver.SetPrivate(true)
			fmt.Println("Entry is now private.")
			continue
		case ":shared":
			if !allowPrivacy {
				fmt.Println("Privacy has no meaning for a local draft.")
				continue
			}
			saver.SetPrivate(false)
			fmt.Println("Entry is now shared with your partner.")
			continue
		case ":stats":
			content := saver.Content()
			fmt.Printf("%d words, %d characters\n", entries.WordCount(content), entries.CharCount(content))
			continue
		case ":save":
			if err := saver.Flush(); err != nil {
				fmt.Println("Save failed:", err)
			} else {
				fmt.Println("Saved.")
			}
			continue
		}

		saver.SetContent(saver.Content() + line)
	}
}
