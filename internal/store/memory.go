// Package store provides in-process implementations of the external
// collaborators the engine consumes through narrow interfaces: brand lookup
// and content persistence. A real deployment swaps these for database-backed
// implementations behind the same interfaces.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/infoxgentech/AIadcreative/internal/domain"
)

// Memory implements domain.BrandDirectory and domain.ContentStore with maps
// under a read-write mutex. Stored records are treated as read-only once
// inserted.
type Memory struct {
	mu        sync.RWMutex
	brands    map[string]*domain.BrandRecord
	materials map[string][]domain.ReferenceMaterialRecord
	content   map[string]*domain.GenerationResult
	scores    map[string]*domain.ConsistencyScore
}

// NewMemory creates an empty in-memory store (DI constructor).
func NewMemory() *Memory {
	return &Memory{
		brands:    make(map[string]*domain.BrandRecord),
		materials: make(map[string][]domain.ReferenceMaterialRecord),
		content:   make(map[string]*domain.GenerationResult),
		scores:    make(map[string]*domain.ConsistencyScore),
	}
}

// seedFile is the on-disk shape for brand seeding.
type seedFile struct {
	Brands             []*domain.BrandRecord            `json:"brands"`
	ReferenceMaterials []domain.ReferenceMaterialRecord `json:"reference_materials"`
}

// SeedFromFile loads brand records and reference materials from a JSON file.
func (m *Memory) SeedFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read brand seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse brand seed file: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, brand := range seed.Brands {
		m.brands[brand.ID] = brand
	}
	for _, material := range seed.ReferenceMaterials {
		m.materials[material.BrandID] = append(m.materials[material.BrandID], material)
	}
	return nil
}

// AddBrand registers a brand record.
func (m *Memory) AddBrand(record *domain.BrandRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brands[record.ID] = record
}

// AddReferenceMaterial attaches a reference material to its brand.
func (m *Memory) AddReferenceMaterial(material domain.ReferenceMaterialRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials[material.BrandID] = append(m.materials[material.BrandID], material)
}

// GetBrand implements domain.BrandDirectory.
func (m *Memory) GetBrand(_ context.Context, brandID string) (*domain.BrandRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	brand, exists := m.brands[brandID]
	if !exists {
		return nil, domain.ErrBrandNotFound
	}
	return brand, nil
}

// GetReferenceMaterials implements domain.BrandDirectory.
func (m *Memory) GetReferenceMaterials(_ context.Context, brandID string) ([]domain.ReferenceMaterialRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.materials[brandID], nil
}

// SaveGenerationResult implements domain.ContentStore.
func (m *Memory) SaveGenerationResult(_ context.Context, result *domain.GenerationResult) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[result.ID] = result
	return result.ID, nil
}

// GetGenerationResult implements domain.ContentStore.
func (m *Memory) GetGenerationResult(_ context.Context, contentID string) (*domain.GenerationResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	piece, exists := m.content[contentID]
	if !exists {
		return nil, domain.ErrContentNotFound
	}
	return piece, nil
}

// SaveConsistencyScore implements domain.ContentStore.
func (m *Memory) SaveConsistencyScore(_ context.Context, contentID string, score *domain.ConsistencyScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.content[contentID]; !exists {
		return domain.ErrContentNotFound
	}
	m.scores[contentID] = score
	return nil
}

// GetConsistencyScore returns a stored score, if any.
func (m *Memory) GetConsistencyScore(contentID string) (*domain.ConsistencyScore, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	score, exists := m.scores[contentID]
	return score, exists
}
