package autosave

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DraftStore is the guest-mode sink: a single local draft slot on disk,
// never touching the server. Its content can later seed an authenticated
// create call, which is how a guest draft gets claimed.
type DraftStore struct {
	path string
}

func NewDraftStore(path string) *DraftStore {
	return &DraftStore{path: path}
}

// DefaultDraftPath places the draft under the user's config directory.
func DefaultDraftPath() (string, error) {
	dir, err := os.UserConfigDir()

	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "duet", "draft.txt"), nil
}

func (d *DraftStore) Save(content string) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(d.path, []byte(content), 0o600)
}

// Load returns the draft content, or empty when no draft exists.
func (d *DraftStore) Load() (string, error) {
	data, err := os.ReadFile(d.path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	return string(data), nil
}

func (d *DraftStore) Clear() error {
	err := os.Remove(d.path)

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Flush makes DraftStore a guest-mode Flusher. The privacy flag has no
// meaning for a local draft, there is no one else to hide it from.
func (d *DraftStore) Flush(content string, _ bool) error {
	return d.Save(content)
}
