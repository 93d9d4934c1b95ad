package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
)

const settingsFileName = "settings.json"

// FileSettingsStore keeps one JSON document with the full settings object.
// Read never fails: anything unreadable degrades to the built-in defaults.
type FileSettingsStore struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewFileSettingsStore(dataDir string, log *zap.Logger) (*FileSettingsStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileSettingsStore{
		path: filepath.Join(dataDir, settingsFileName),
		log:  log,
	}, nil
}

func (s *FileSettingsStore) Read() entity.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read settings file", zap.Error(err))
		}
		return entity.DefaultSettings()
	}

	var settings entity.Settings
	if err := json.Unmarshal(b, &settings); err != nil {
		s.log.Warn("settings file is corrupt, using defaults", zap.Error(err))
		return entity.DefaultSettings()
	}
	return settings
}

// Write replaces the persisted settings wholesale, no partial merge.
func (s *FileSettingsStore) Write(settings entity.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		s.log.Error("failed to write settings file", zap.Error(err))
		return err
	}
	return nil
}
