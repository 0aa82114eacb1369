package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/raykavin/technicals/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterJSON(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	zl, err := NewWithWriter(buffer, "info", "2006-01-02", false, true)
	require.NoError(t, err)

	log := NewAdapter(zl)
	assert.Equal(t, logger.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	log.WithFields(map[string]any{"pair": "BTCUSDT", "columns": 3}).
		WithError(errors.New("boom")).
		Infof("computed %d columns", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "computed 3 columns", entry["message"])
	assert.Equal(t, "BTCUSDT", entry["pair"])
	assert.Equal(t, "boom", entry["error"])
}

func TestAdapterSetLevel(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	zl, err := NewWithWriter(buffer, "info", "", false, true)
	require.NoError(t, err)

	log := NewAdapter(zl)
	log.SetLevel(logger.WarnLevel)
	assert.Equal(t, logger.WarnLevel, log.GetLevel())

	log.Info("hidden")
	assert.Zero(t, buffer.Len())

	log.Warn("shown")
	assert.Contains(t, buffer.String(), "shown")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New("loud", "", false, false)
	assert.Error(t, err)
}
