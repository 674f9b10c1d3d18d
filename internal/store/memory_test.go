package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/store"
)

func TestMemory_BrandDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("should return a registered brand with its materials", func(t *testing.T) {
		m := store.NewMemory()
		m.AddBrand(&domain.BrandRecord{ID: "brand-1", Name: "Acme Coffee", Voice: "friendly"})
		m.AddReferenceMaterial(domain.ReferenceMaterialRecord{ID: "ref-1", BrandID: "brand-1", Kind: "image", Name: "store.jpg"})

		record, err := m.GetBrand(ctx, "brand-1")
		require.NoError(t, err)
		require.Equal(t, "Acme Coffee", record.Name)

		materials, err := m.GetReferenceMaterials(ctx, "brand-1")
		require.NoError(t, err)
		require.Len(t, materials, 1)
	})

	t.Run("should return ErrBrandNotFound for unknown brands", func(t *testing.T) {
		m := store.NewMemory()

		_, err := m.GetBrand(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrBrandNotFound)
	})
}

func TestMemory_ContentStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should round-trip a generation result and its score", func(t *testing.T) {
		m := store.NewMemory()
		result := &domain.GenerationResult{ID: "content-1", BrandID: "brand-1", Content: "hello"}

		id, err := m.SaveGenerationResult(ctx, result)
		require.NoError(t, err)
		require.Equal(t, "content-1", id)

		loaded, err := m.GetGenerationResult(ctx, "content-1")
		require.NoError(t, err)
		require.Equal(t, result, loaded)

		score := &domain.ConsistencyScore{Score: 85, Rationale: "on brand"}
		require.NoError(t, m.SaveConsistencyScore(ctx, "content-1", score))

		stored, ok := m.GetConsistencyScore("content-1")
		require.True(t, ok)
		require.Equal(t, score, stored)
	})

	t.Run("should return ErrContentNotFound for unknown content", func(t *testing.T) {
		m := store.NewMemory()

		_, err := m.GetGenerationResult(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrContentNotFound)

		err = m.SaveConsistencyScore(ctx, "missing", &domain.ConsistencyScore{Score: 1, Rationale: "x"})
		require.ErrorIs(t, err, domain.ErrContentNotFound)
	})
}

func TestMemory_SeedFromFile(t *testing.T) {
	t.Run("should load brands and reference materials from JSON", func(t *testing.T) {
		seed := `{
  "brands": [
    {"id": "brand-1", "name": "Acme Coffee", "voice": "friendly"}
  ],
  "reference_materials": [
    {"id": "ref-1", "brand_id": "brand-1", "kind": "image", "name": "store.jpg"}
  ]
}`
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

		m := store.NewMemory()
		require.NoError(t, m.SeedFromFile(path))

		record, err := m.GetBrand(context.Background(), "brand-1")
		require.NoError(t, err)
		require.Equal(t, "Acme Coffee", record.Name)

		materials, err := m.GetReferenceMaterials(context.Background(), "brand-1")
		require.NoError(t, err)
		require.Len(t, materials, 1)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		m := store.NewMemory()
		require.Error(t, m.SeedFromFile("/nonexistent/seed.json"))
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		m := store.NewMemory()
		require.Error(t, m.SeedFromFile(path))
	})
}
