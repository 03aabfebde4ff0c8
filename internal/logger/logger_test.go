package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New(config.LogConfig{Level: "debug", Format: "json", Output: "file", Path: path, MaxSize: 1})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("order_id", 7).Info("order created")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"order created"`)
	assert.Contains(t, string(raw), `"order_id":7`)
}

func TestNew_FileOutputNeedsPath(t *testing.T) {
	_, err := New(config.LogConfig{Output: "file"})
	assert.Error(t, err)
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	l, err := New(config.LogConfig{Level: "chatty", Output: "stdout"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestInit_ReplacesDefault(t *testing.T) {
	before := L()
	t.Cleanup(func() {
		mu.Lock()
		std = before
		mu.Unlock()
	})

	l, err := Init(config.LogConfig{Level: "warn", Output: "stdout"})
	require.NoError(t, err)
	assert.Same(t, l, L())
}
