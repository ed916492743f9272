package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.ServerEndpointAddr)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "saferide.db", c.TokenStorePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000", cfg.ServerEndpointAddr)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestJsonConfig_DurationFormats(t *testing.T) {
	var jc JsonConfig
	require.NoError(t, json.Unmarshal([]byte(`{"request_timeout": "30s"}`), &jc))
	assert.Equal(t, 30*time.Second, jc.RequestTimeout.Duration)

	jc = JsonConfig{}
	require.NoError(t, json.Unmarshal([]byte(`{"request_timeout": 15000000000}`), &jc))
	assert.Equal(t, 15*time.Second, jc.RequestTimeout.Duration)
}
