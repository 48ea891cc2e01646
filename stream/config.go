package stream

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings of the streamer.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url" mapstructure:"url"`
		Username string `yaml:"username" mapstructure:"username"`
		Password string `yaml:"password" mapstructure:"password"`
		ClientID string `yaml:"clientId" mapstructure:"clientId"`
		Qos      byte   `yaml:"qos" mapstructure:"qos"`
		Topics   struct {
			Stream string `yaml:"stream" mapstructure:"stream"`
			Data   string `yaml:"data" mapstructure:"data"`
		} `yaml:"topics" mapstructure:"topics"`
	} `yaml:"mqtt" mapstructure:"mqtt"`

	FrameRate      float64       `yaml:"frameRate" mapstructure:"frameRate"`
	Pixels         int           `yaml:"pixels" mapstructure:"pixels"`
	ProfileDir     string        `yaml:"profileDir" mapstructure:"profileDir"`
	Profile        string        `yaml:"profile" mapstructure:"profile"`
	TimelineLength time.Duration `yaml:"timelineLength" mapstructure:"timelineLength"`
	Loop           bool          `yaml:"loop" mapstructure:"loop"`
}

// SetDefaults registers the default configuration with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mqtt.url", "tcp://localhost:1883")
	v.SetDefault("mqtt.clientId", "ledtx")
	v.SetDefault("mqtt.qos", 2)
	v.SetDefault("mqtt.topics.stream", "home/xmastree/stream")
	v.SetDefault("mqtt.topics.data", "home/xmastree/data")
	v.SetDefault("frameRate", 30.0)
	v.SetDefault("pixels", DefaultPixels)
	v.SetDefault("profileDir", "profiles")
	v.SetDefault("profile", "default.yaml")
	v.SetDefault("timelineLength", 10*time.Second)
	v.SetDefault("loop", true)
}

// LoadConfig reads the configuration held by v.
func LoadConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the configuration can drive a streamer.
func (c Config) Validate() error {
	var errs []error
	if !(c.FrameRate > 0) || c.FrameInterval() <= 0 {
		errs = append(errs, fmt.Errorf("frameRate must give a positive frame interval, got %v", c.FrameRate))
	}
	if c.Pixels <= 0 || c.Pixels > 0xffff {
		errs = append(errs, fmt.Errorf("pixels must be between 1 and 65535, got %d", c.Pixels))
	}
	if c.Mqtt.Qos > 2 {
		errs = append(errs, fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.Mqtt.Qos))
	}
	if c.Profile == "" {
		errs = append(errs, errors.New("profile is required"))
	}
	return errors.Join(errs...)
}

// FrameInterval returns the time between two frames.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}
