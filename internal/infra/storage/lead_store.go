package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
)

const leadsFileName = "leads.json"

// FileLeadStore persists the whole lead collection as one JSON document.
// The mutex is held across the full load-mutate-persist cycle, so
// concurrent mutations serialize instead of overwriting each other.
type FileLeadStore struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewFileLeadStore(dataDir string, log *zap.Logger) (*FileLeadStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileLeadStore{
		path: filepath.Join(dataDir, leadsFileName),
		log:  log,
	}, nil
}

// load returns the persisted collection. Missing or unreadable data
// degrades to an empty collection; the caller never sees a read error.
func (s *FileLeadStore) load() []entity.Lead {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read leads file", zap.Error(err))
		}
		return []entity.Lead{}
	}

	var leads []entity.Lead
	if err := json.Unmarshal(b, &leads); err != nil {
		s.log.Warn("leads file is corrupt, treating as empty", zap.Error(err))
		return []entity.Lead{}
	}
	return leads
}

func (s *FileLeadStore) persist(leads []entity.Lead) error {
	b, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileLeadStore) All(ctx context.Context) ([]entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileLeadStore) Append(ctx context.Context, lead entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := append(s.load(), lead)
	if err := s.persist(leads); err != nil {
		s.log.Error("failed to write leads file", zap.Error(err))
		return err
	}
	return nil
}

func (s *FileLeadStore) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := s.load()
	for i := range leads {
		if leads[i].ID != id {
			continue
		}
		patch.ApplyTo(&leads[i])
		if err := s.persist(leads); err != nil {
			s.log.Error("failed to write leads file", zap.Error(err))
			return nil, err
		}
		updated := leads[i]
		return &updated, nil
	}
	return nil, entity.ErrLeadNotFound
}

func (s *FileLeadStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := s.load()
	for i := range leads {
		if leads[i].ID != id {
			continue
		}
		leads = append(leads[:i], leads[i+1:]...)
		if err := s.persist(leads); err != nil {
			s.log.Error("failed to write leads file", zap.Error(err))
			return err
		}
		return nil
	}
	return entity.ErrLeadNotFound
}
