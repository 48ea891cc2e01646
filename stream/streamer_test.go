package stream

import (
	"errors"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtx/datamodel"
)

type fakeToken struct {
	err     error
	timeout bool
}

func (t fakeToken) Wait() bool                     { return true }
func (t fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t fakeToken) Error() error                   { return t.err }

func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type published struct {
	topic   string
	qos     byte
	payload interface{}
}

type fakeClient struct {
	token     fakeToken
	published []published
	handlers  map[string]mqtt.MessageHandler
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.published = append(c.published, published{topic: topic, qos: qos, payload: payload})
	return c.token
}

func (c *fakeClient) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	if c.handlers == nil {
		c.handlers = make(map[string]mqtt.MessageHandler)
	}
	c.handlers[topic] = callback
	return c.token
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func testConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledtx"
	c.Mqtt.Qos = 1
	c.Mqtt.Topics.Stream = "tree/stream"
	c.Mqtt.Topics.Data = "tree/data"
	return c
}

func TestStreamer_Publish(t *testing.T) {
	client := &fakeClient{}
	s := NewStreamer(testConfig(), client, datamodel.New(), nil)

	require.NoError(t, s.Publish(NewFrame(2)))
	require.Len(t, client.published, 1)
	assert.Equal(t, "tree/stream", client.published[0].topic)
	assert.Equal(t, byte(1), client.published[0].qos)
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, client.published[0].payload)

	client.token = fakeToken{err: errors.New("not connected")}
	assert.EqualError(t, s.Publish(NewFrame(2)), "not connected")

	client.token = fakeToken{timeout: true}
	assert.ErrorContains(t, s.Publish(NewFrame(2)), "timed out")
}

func TestStreamer_Subscribe(t *testing.T) {
	client := &fakeClient{}
	model := datamodel.New()
	s := NewStreamer(testConfig(), client, model, nil)

	require.NoError(t, s.Subscribe())
	handler, ok := client.handlers["tree/data"]
	require.True(t, ok)

	handler(nil, fakeMessage{topic: "tree/data", payload: []byte(`{"volume": 0.5, "mode": "party"}`)})
	v, ok := model.Get("volume")
	require.True(t, ok)
	assert.Equal(t, 0.5, v)

	handler(nil, fakeMessage{topic: "tree/data", payload: []byte(`[1, 2`)})
	assert.Equal(t, []string{"mode", "volume"}, model.Names())

	client.token = fakeToken{err: errors.New("denied")}
	assert.ErrorContains(t, s.Subscribe(), "denied")
}

func TestClientOptions(t *testing.T) {
	c := testConfig()
	c.Mqtt.URL = "tcp://broker:1883"
	a := ClientOptions(c, nil)
	b := ClientOptions(c, nil)

	assert.True(t, strings.HasPrefix(a.ClientID, "ledtx-"))
	assert.NotEqual(t, a.ClientID, b.ClientID)
	require.Len(t, a.Servers, 1)
	assert.Equal(t, "broker:1883", a.Servers[0].Host)
}
