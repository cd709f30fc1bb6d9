package client

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DeviceStore persists the anonymous device identifier across sessions. It
// is a soft anti-abuse signal, never an authentication credential.
type DeviceStore interface {
	Load() (string, error)
	Save(id string) error
}

// FileDeviceStore keeps the identifier in a file under the user config dir.
type FileDeviceStore struct {
	Path string
}

func NewFileDeviceStore() (*FileDeviceStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &FileDeviceStore{Path: filepath.Join(dir, "espresso", "device_id")}, nil
}

func (s *FileDeviceStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileDeviceStore) Save(id string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(id+"\n"), 0o600)
}

// GetOrCreateDeviceID returns the persisted identifier, generating and
// persisting a fresh UUID when none exists. When storage is unavailable it
// returns "" rather than failing: callers treat an empty id as "unknown
// device" and send the request anyway.
func GetOrCreateDeviceID(store DeviceStore) string {
	if store == nil {
		return ""
	}
	id, err := store.Load()
	if err != nil {
		return ""
	}
	if id != "" {
		return id
	}
	id = uuid.NewString()
	if err := store.Save(id); err != nil {
		return ""
	}
	return id
}
