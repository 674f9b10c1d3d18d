package echo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infoxgentech/AIadcreative/internal/domain"
	"github.com/infoxgentech/AIadcreative/internal/provider/echo"
)

func TestAdapter_Generate(t *testing.T) {
	ctx := context.Background()
	adapter := echo.NewAdapter()

	t.Run("should echo the brief back as a parseable JSON payload", func(t *testing.T) {
		spec := &domain.PromptSpec{
			System: "You are an expert brand content creator.",
			User:   "--- CALLER BRIEF ---\nAnnounce our new loyalty dashboard\n",
		}

		result, err := adapter.Generate(ctx, spec)

		require.NoError(t, err)
		require.Equal(t, "echo", result.Provider)
		require.Equal(t, "echo-1", result.Model)
		require.Equal(t, "Announce our new loyalty dashboard", result.Payload["main_text"])
		require.Equal(t, "Learn more", result.Payload["call_to_action"])
		require.Positive(t, result.Usage.TotalTokens)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		spec := &domain.PromptSpec{System: "system", User: "a short brief"}

		first, err := adapter.Generate(ctx, spec)
		require.NoError(t, err)
		second, err := adapter.Generate(ctx, spec)
		require.NoError(t, err)
		require.Equal(t, first.Content, second.Content)
		require.Equal(t, first.Usage, second.Usage)
	})

	t.Run("should reject a nil spec", func(t *testing.T) {
		_, err := adapter.Generate(ctx, nil)
		require.Error(t, err)
	})
}

func TestAdapter_ScoreConsistency(t *testing.T) {
	ctx := context.Background()
	adapter := echo.NewAdapter()

	t.Run("should return a fixed passing score", func(t *testing.T) {
		score, err := adapter.ScoreConsistency(ctx, &domain.PromptSpec{User: "CONTENT TO EVALUATE:\nhello"})

		require.NoError(t, err)
		require.Equal(t, 80, score.Score)
		require.NotEmpty(t, score.Rationale)
	})

	t.Run("should reject a nil spec", func(t *testing.T) {
		_, err := adapter.ScoreConsistency(ctx, nil)
		require.Error(t, err)
	})
}
