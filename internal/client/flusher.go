package client

// EntryFlusher adapts the entries API to the autosave synchronizer: each
// flush is one PATCH against the entry being edited.
type EntryFlusher struct {
	api     *API
	entryID uint
}

func NewEntryFlusher(api *API, entryID uint) *EntryFlusher {
	return &EntryFlusher{api: api, entryID: entryID}
}

func (f *EntryFlusher) Flush(content string, isPrivate bool) error {
	_, err := f.api.UpdateEntry(f.entryID, &content, &isPrivate)
	return err
}
