package brand_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infoxgentech/AIadcreative/internal/brand"
	"github.com/infoxgentech/AIadcreative/internal/domain"
)

func testRecord() *domain.BrandRecord {
	return &domain.BrandRecord{
		ID:     "brand-1",
		Name:   "Acme Coffee",
		Voice:  "Professional, friendly",
		Values: []string{"sustainability", "quality"},
		ContentGuidelines: map[string]string{
			"tone": "warm but concise",
		},
	}
}

func TestAssembler_Build(t *testing.T) {
	assembler := brand.NewAssembler()

	t.Run("should copy brand fields verbatim", func(t *testing.T) {
		bc, err := assembler.Build(testRecord(), nil)
		require.NoError(t, err)

		require.Equal(t, "brand-1", bc.BrandID)
		require.Equal(t, "Acme Coffee", bc.Name)
		require.Equal(t, "Professional, friendly", bc.Voice)
		require.Equal(t, []string{"sustainability", "quality"}, bc.Values)
		require.Equal(t, map[string]string{"tone": "warm but concise"}, bc.ContentGuidelines)
	})

	t.Run("should fail when required fields are missing", func(t *testing.T) {
		record := testRecord()
		record.Voice = ""

		bc, err := assembler.Build(record, nil)
		require.Nil(t, bc)

		var brandErr *domain.InvalidBrandError
		require.ErrorAs(t, err, &brandErr)
		require.Equal(t, []string{"voice"}, brandErr.Missing)
	})

	t.Run("should list every missing required field", func(t *testing.T) {
		record := testRecord()
		record.Name = ""
		record.Voice = ""

		_, err := assembler.Build(record, nil)

		var brandErr *domain.InvalidBrandError
		require.ErrorAs(t, err, &brandErr)
		require.Equal(t, []string{"name", "voice"}, brandErr.Missing)
	})

	t.Run("should fail on a nil record", func(t *testing.T) {
		_, err := assembler.Build(nil, nil)

		var brandErr *domain.InvalidBrandError
		require.ErrorAs(t, err, &brandErr)
	})

	t.Run("should condense reference materials into summaries", func(t *testing.T) {
		materials := []domain.ReferenceMaterialRecord{
			{
				ID:          "ref-1",
				BrandID:     "brand-1",
				Kind:        "image",
				Name:        "store.jpg",
				Description: "flagship store interior",
				Attributes:  map[string]string{"dominant_colors": "brown, cream"},
			},
			{
				ID:      "ref-2",
				BrandID: "brand-1",
				Kind:    "document",
				Name:    "voice-guide.pdf",
			},
		}

		bc, err := assembler.Build(testRecord(), materials)
		require.NoError(t, err)
		require.Equal(t, []domain.ReferenceSummary{
			{Kind: "image", Description: "flagship store interior", Attributes: map[string]string{"dominant_colors": "brown, cream"}},
			{Kind: "document", Description: "voice-guide.pdf"},
		}, bc.References)
	})

	t.Run("should stay immutable when the source record changes afterwards", func(t *testing.T) {
		record := testRecord()
		materials := []domain.ReferenceMaterialRecord{
			{Kind: "image", Name: "store.jpg", Attributes: map[string]string{"tags": "interior"}},
		}

		bc, err := assembler.Build(record, materials)
		require.NoError(t, err)

		record.Values[0] = "mutated"
		record.ContentGuidelines["tone"] = "mutated"
		materials[0].Attributes["tags"] = "mutated"

		require.Equal(t, "sustainability", bc.Values[0])
		require.Equal(t, "warm but concise", bc.ContentGuidelines["tone"])
		require.Equal(t, "interior", bc.References[0].Attributes["tags"])
	})
}
