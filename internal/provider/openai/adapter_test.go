package openai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infoxgentech/AIadcreative/internal/provider/openai"
)

func TestNewAdapter_Success(t *testing.T) {
	config := openai.Config{
		APIKey:  "test-api-key",
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o",
		Timeout: 60,
	}

	adapter, err := openai.NewAdapter(config)

	require.NoError(t, err)
	require.NotNil(t, adapter)
	require.Equal(t, "openai", adapter.Name())
}

func TestNewAdapter_MissingAPIKey(t *testing.T) {
	config := openai.Config{
		APIKey:  "",
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o",
		Timeout: 60,
	}

	adapter, err := openai.NewAdapter(config)

	require.Error(t, err)
	require.Nil(t, adapter)
	require.Contains(t, err.Error(), "OpenAI API key is required")
}

func TestAdapter_Generate_NilSpec(t *testing.T) {
	adapter, err := openai.NewAdapter(openai.Config{APIKey: "test-key"})
	require.NoError(t, err)

	ctx := context.Background()
	result, err := adapter.Generate(ctx, nil)

	require.Error(t, err)
	require.Nil(t, result)
	require.Contains(t, err.Error(), "prompt spec cannot be nil")
}

func TestAdapter_ScoreConsistency_NilSpec(t *testing.T) {
	adapter, err := openai.NewAdapter(openai.Config{APIKey: "test-key"})
	require.NoError(t, err)

	ctx := context.Background()
	score, err := adapter.ScoreConsistency(ctx, nil)

	require.Error(t, err)
	require.Nil(t, score)
}
