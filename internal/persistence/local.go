package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"survey-engine/internal/models"
)

// LocalStore keeps one snapshot file per questionnaire folder under a base
// directory. It is the Go counterpart of the browser's durable local slot.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (l *LocalStore) path(folder string) string {
	return filepath.Join(l.dir, folder+".json")
}

// Save writes the snapshot, replacing any previous one for the folder.
// The write goes through a temp file so a crash cannot leave a truncated
// snapshot behind.
func (l *LocalStore) Save(folder string, answers models.AnswerSet) error {
	snap := models.Snapshot{Answers: answers, Timestamp: time.Now().UTC()}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := l.path(folder) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, l.path(folder)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or (nil, nil) when none exists.
func (l *LocalStore) Load(folder string) (*models.Snapshot, error) {
	data, err := os.ReadFile(l.path(folder))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Clear removes the snapshot. A missing file is already cleared.
func (l *LocalStore) Clear(folder string) error {
	err := os.Remove(l.path(folder))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
