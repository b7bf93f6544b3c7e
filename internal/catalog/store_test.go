package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"steuer-chat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefault(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.yaml"))

	cat, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.AllStatuses(), cat.Statuses())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `flows:
  full-time-employee:
    - id: commute
      prompt: "Did you commute to work?"
      category: Werbungskosten
      max_amount: 4500`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := NewStore(path).Load()
	require.NoError(t, err)

	flow, ok := cat.Questions(models.StatusFullTimeEmployee)
	require.True(t, ok)
	assert.Len(t, flow, 1)
	assert.Equal(t, "commute", flow[0].ID)
}

func TestLoadInvalidFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`flows: {}`), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
