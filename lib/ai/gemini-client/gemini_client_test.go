package geminiclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("empty api key check", func(t *testing.T) {
		_, err := NewClient(context.Background(), "  ", "gemini-2.0-flash-exp")
		require.Error(t, err)
		require.Contains(t, err.Error(), "API ключ Gemini")
	})
}
