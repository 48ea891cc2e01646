package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/matt-g-everett/ledtx/datamodel"
)

const publishTimeout = 5 * time.Second

// Client is the part of mqtt.Client used by a Streamer.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Streamer streams RGB data frames to an ledrx device and feeds the data
// model from incoming data messages.
type Streamer struct {
	client Client
	config Config
	model  *datamodel.Model
	logger *slog.Logger
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Client, model *datamodel.Model, logger *slog.Logger) *Streamer {
	if logger == nil {
		logger = slog.Default()
	}

	s := new(Streamer)
	s.client = client
	s.config = config
	s.model = model
	s.logger = logger
	return s
}

// ClientOptions builds the MQTT options of config. The client id gets a
// random suffix so several streamers can share a broker.
func ClientOptions(config Config, onConnect mqtt.OnConnectHandler) *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(config.Mqtt.URL).
		SetClientID(config.Mqtt.ClientID + "-" + uuid.NewString()[:8]).
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(onConnect)
}

// Publish sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) Publish(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	token := s.client.Publish(s.config.Mqtt.Topics.Stream, s.config.Mqtt.Qos, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", s.config.Mqtt.Topics.Stream)
	}
	return token.Error()
}

// Subscribe starts feeding the data model from the data topic. It must be
// called again after a reconnect.
func (s *Streamer) Subscribe() error {
	topic := s.config.Mqtt.Topics.Data
	if topic == "" {
		return nil
	}
	token := s.client.Subscribe(topic, s.config.Mqtt.Qos, s.handleData)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	s.logger.Info("subscribed to data", "topic", topic)
	return nil
}

// handleData merges a JSON object of named values into the data model.
func (s *Streamer) handleData(_ mqtt.Client, msg mqtt.Message) {
	var values map[string]interface{}
	if err := json.Unmarshal(msg.Payload(), &values); err != nil {
		s.logger.Warn("ignored malformed data message", "topic", msg.Topic(), "error", err)
		return
	}
	s.model.SetAll(values)
	s.logger.Debug("data model updated", "topic", msg.Topic(), "values", len(values))
}
