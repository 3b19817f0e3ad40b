package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/gulftrading/gtg-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"DEBUG", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 5000, LogLevel: tt.level, Env: "development"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	base := slog.Default().With("component", "test")
	ctx := WithContext(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
	assert.Same(t, base, FromContextOrDefault(ctx, nil))

	// Without a logger in context, fall back appropriately.
	empty := context.Background()
	assert.Same(t, slog.Default(), FromContext(empty))
	assert.Same(t, base, FromContextOrDefault(empty, base))
	assert.Same(t, slog.Default(), FromContextOrDefault(empty, nil))
}
