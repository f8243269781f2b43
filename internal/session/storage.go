package session

import (
	"os"
	"path/filepath"
)

// Slot names of the two persisted pieces of session state. Absence or
// corruption of either invalidates the whole session.
const (
	SlotToken = "token"
	SlotUser  = "user"
)

// SlotStorage is the durable key-value store behind the session. Get reports
// ok=false for a missing or unreadable slot; Delete on an absent slot is a
// no-op.
type SlotStorage interface {
	Get(slot string) (value string, ok bool)
	Set(slot, value string) error
	Delete(slot string)
}

// FileStorage keeps each slot as a plain file under a state directory, the
// durable-storage analogue of a browser's local storage.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the state directory if needed and returns a
// FileStorage rooted there.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Get(slot string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(f.dir, slot))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (f *FileStorage) Set(slot, value string) error {
	return os.WriteFile(filepath.Join(f.dir, slot), []byte(value), 0o600)
}

func (f *FileStorage) Delete(slot string) {
	_ = os.Remove(filepath.Join(f.dir, slot))
}
