// Package brand builds immutable brand-context snapshots from externally
// supplied brand records and precomputed reference-material summaries.
package brand

import "github.com/infoxgentech/AIadcreative/internal/domain"

// Assembler implements domain.ContextAssembler as a pure transformation: it
// copies brand fields verbatim and condenses reference materials into short
// descriptors. Raw file analysis happens at upload time, never here.
type Assembler struct{}

// NewAssembler creates a new context assembler (DI constructor).
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Build produces a BrandContext owned exclusively by the request that asked
// for it. Fails with InvalidBrandError when required fields are missing.
func (a *Assembler) Build(record *domain.BrandRecord, materials []domain.ReferenceMaterialRecord) (*domain.BrandContext, error) {
	if record == nil {
		return nil, &domain.InvalidBrandError{Missing: []string{"record"}}
	}

	var missing []string
	if record.Name == "" {
		missing = append(missing, "name")
	}
	if record.Voice == "" {
		missing = append(missing, "voice")
	}
	if len(missing) > 0 {
		return nil, &domain.InvalidBrandError{Missing: missing}
	}

	return &domain.BrandContext{
		BrandID:           record.ID,
		Name:              record.Name,
		Industry:          record.Industry,
		Description:       record.Description,
		Voice:             record.Voice,
		TargetAudience:    record.TargetAudience,
		Values:            cloneSlice(record.Values),
		MessagingPillars:  cloneSlice(record.MessagingPillars),
		ContentGuidelines: cloneMap(record.ContentGuidelines),
		ApprovedHashtags:  cloneSlice(record.ApprovedHashtags),
		BannedWords:       cloneSlice(record.BannedWords),
		ImageryStyle:      record.ImageryStyle,
		ColorPalette:      cloneMap(record.ColorPalette),
		Typography:        cloneMap(record.Typography),
		References:        condense(materials),
	}, nil
}

// condense reduces each reference material to kind + description + any
// precomputed attributes (dominant colors, tags, ...).
func condense(materials []domain.ReferenceMaterialRecord) []domain.ReferenceSummary {
	if len(materials) == 0 {
		return nil
	}

	summaries := make([]domain.ReferenceSummary, 0, len(materials))
	for _, m := range materials {
		description := m.Description
		if description == "" {
			description = m.Name
		}
		summaries = append(summaries, domain.ReferenceSummary{
			Kind:        m.Kind,
			Description: description,
			Attributes:  cloneMap(m.Attributes),
		})
	}
	return summaries
}

// Copies keep the snapshot immutable even if the caller mutates the source
// record afterwards.
func cloneSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
