package stream

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:1883", c.Mqtt.URL)
	assert.Equal(t, byte(2), c.Mqtt.Qos)
	assert.Equal(t, DefaultPixels, c.Pixels)
	assert.Equal(t, 10*time.Second, c.TimelineLength)
	assert.True(t, c.Loop)
	assert.Equal(t, time.Second/30, c.FrameInterval())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mqtt:
  url: tcp://broker:1883
  qos: 1
  topics:
    stream: tree/stream
frameRate: 60
pixels: 150
timelineLength: 30s
`), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "tcp://broker:1883", c.Mqtt.URL)
	assert.Equal(t, byte(1), c.Mqtt.Qos)
	assert.Equal(t, "tree/stream", c.Mqtt.Topics.Stream)
	assert.Equal(t, "home/xmastree/data", c.Mqtt.Topics.Data)
	assert.Equal(t, 150, c.Pixels)
	assert.Equal(t, 30*time.Second, c.TimelineLength)
}

func TestConfig_Validate(t *testing.T) {
	var c Config
	c.Mqtt.Qos = 3
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frameRate")
	assert.Contains(t, err.Error(), "pixels")
	assert.Contains(t, err.Error(), "qos")
	assert.Contains(t, err.Error(), "profile")
}

func TestConfig_ValidateFrameRate(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		valid bool
	}{
		{"default", 30, true},
		{"slow", 0.5, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"interval truncates to zero", 2e9, false},
		{"infinite", math.Inf(1), false},
		{"not a number", math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{FrameRate: tt.rate, Pixels: 10, Profile: "p.yaml"}
			err := c.Validate()
			if tt.valid {
				require.NoError(t, err)
				assert.Positive(t, c.FrameInterval())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "frameRate")
		})
	}
}
