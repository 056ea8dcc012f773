package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage persists the cart between sessions. Implementations only need to
// round-trip the line slice; the store decides when to save.
type Storage interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStorage keeps the cart as a JSON snapshot under a fixed name, the
// server-side analogue of a browser's durable local storage.
type FileStorage struct {
	Path string
}

func NewFileStorage(dir, name string) *FileStorage {
	return &FileStorage{Path: filepath.Join(dir, name+".json")}
}

func (f *FileStorage) Load() ([]Line, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (f *FileStorage) Save(lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}
