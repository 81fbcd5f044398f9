package commands

import (
	"fmt"
	"strings"

	"github.com/duet-dev/duet/internal/autosave"
)

func guestDraftStore() *autosave.DraftStore {
	path, err := autosave.DefaultDraftPath()

	if err != nil {
		fmt.Println("Cannot locate a config directory for the draft:", err)
		return nil
	}

	return autosave.NewDraftStore(path)
}

// Guest opens the local-only draft editor. Nothing written here reaches the
// server until the draft is claimed after logging in.
func Guest() {
	draft := guestDraftStore()

	if draft == nil {
		return
	}

	content, err := draft.Load()

	if err != nil {
		fmt.Println("Failed to load draft:", err)
		return
	}

	saver := autosave.New(draft, autosaveQuiet)
	saver.Reset(content, true)

	if content != "" {
		fmt.Println("Picking up your saved draft.")
	}

	fmt.Println("Guest editor: your writing stays on this machine.")
	fmt.Println("Register or log in later and use 'claim' to turn the draft into a diary entry.")

	runEditor(saver, false)

	if err := saver.Close(); err != nil {
		fmt.Println("Failed to save draft:", err)
		return
	}

	fmt.Println("Draft saved locally.")
}

// Claim turns the guest draft into a real entry for the logged-in user.
func Claim() {
	if !requireLogin() {
		return
	}

	draft := guestDraftStore()

	if draft == nil {
		return
	}

	content, err := draft.Load()

	if err != nil {
		fmt.Println("Failed to load draft:", err)
		return
	}

	if strings.TrimSpace(content) == "" {
		fmt.Println("No guest draft to claim.")
		return
	}

	entry, err := API.CreateEntry(content)

	if err != nil {
		fmt.Println("Failed to create entry from draft:", err)
		return
	}

	if err := draft.Clear(); err != nil {
		fmt.Println("Entry created, but the local draft could not be removed:", err)
	}

	fmt.Printf("Draft claimed as entry %d (%d words).\n", entry.ID, entry.WordCount)
}
