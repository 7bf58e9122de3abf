package service

import (
	"sync"

	"github.com/mindseye-dev/portfolio/internal/domain"
)

// BackupRegistry remembers finished backups so they can be downloaded later.
type BackupRegistry interface {
	Put(artifact *domain.BackupArtifact)
	Get(id string) (*domain.BackupArtifact, bool)
	// FindByFilename returns the most recently registered artifact with that name.
	FindByFilename(filename string) (*domain.BackupArtifact, bool)
	List() []*domain.BackupArtifact
}

// MemoryRegistry keeps artifacts for the lifetime of the process.
type MemoryRegistry struct {
	mu    sync.RWMutex
	byId  map[string]*domain.BackupArtifact
	order []*domain.BackupArtifact
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{byId: make(map[string]*domain.BackupArtifact)}
}

func (r *MemoryRegistry) Put(artifact *domain.BackupArtifact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byId[artifact.Id]; !ok {
		r.order = append(r.order, artifact)
	}
	r.byId[artifact.Id] = artifact
}

func (r *MemoryRegistry) Get(id string) (*domain.BackupArtifact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byId[id]
	return a, ok
}

func (r *MemoryRegistry) FindByFilename(filename string) (*domain.BackupArtifact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.order[i].Filename == filename {
			return r.order[i], true
		}
	}
	return nil, false
}

// List returns artifacts newest first.
func (r *MemoryRegistry) List() []*domain.BackupArtifact {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.BackupArtifact, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.order[i])
	}
	return out
}
