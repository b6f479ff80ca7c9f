// Package remote lets pages be navigated over MQTT.
//
// Any message on the configured topic is a command: "next" or "advance", "previous" or
// "retreat", either as the plain payload or as {"command": "..."} JSON.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const subscribeTimeout = 5 * time.Second

// connectTimeout bounds how long Connect waits for the first connection before leaving the
// retries to the background.
var connectTimeout = 5 * time.Second

// Errors
var (
	ErrTimeout = errors.New("remote: timeout")
	ErrCommand = errors.New("remote: unknown command")
)

// Navigator is what remote commands act on; [pager.Controller] implements it.
type Navigator interface {
	Advance()
	Retreat()
}

// Config of the MQTT connection.
type Config struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
	QoS      byte
}

// Command is the JSON form of a message.
type Command struct {
	Command string `json:"command"`
}

// Parse returns the navigation a payload asks for.
func Parse(payload []byte) (advance bool, err error) {
	text := strings.TrimSpace(string(payload))
	if strings.HasPrefix(text, "{") {
		var cmd Command
		if err = json.Unmarshal([]byte(text), &cmd); err != nil {
			return false, fmt.Errorf("remote: invalid JSON: %w", err)
		}
		text = cmd.Command
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "next", "advance":
		return true, nil
	case "previous", "prev", "retreat", "back":
		return false, nil
	default:
		return false, fmt.Errorf("%w %q", ErrCommand, text)
	}
}

// Handler forwards MQTT messages to a [Navigator].
type Handler struct {
	nav Navigator
	log *slog.Logger
}

// NewHandler returns a handler acting on nav.
func NewHandler(nav Navigator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{nav: nav, log: logger}
}

// Handle is an [mqtt.MessageHandler].
func (h *Handler) Handle(_ mqtt.Client, msg mqtt.Message) {
	advance, err := Parse(msg.Payload())
	if err != nil {
		h.log.Warn("remote: ignoring message", "topic", msg.Topic(), "error", err)
		return
	}
	h.log.Debug("remote: command received", "topic", msg.Topic(), "advance", advance)
	if advance {
		h.nav.Advance()
	} else {
		h.nav.Retreat()
	}
}

// Client is a connected MQTT subscription.
type Client struct {
	client mqtt.Client
	config Config
	log    *slog.Logger
}

// brokerURL adds the tcp scheme to bare host:port brokers.
func brokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}

// Connect connects to the broker and subscribes nav to the command topic. The subscription is
// renewed whenever the connection comes back. A broker that cannot be reached within a few
// seconds is not an error: the client keeps retrying in the background.
func Connect(config Config, nav Navigator, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ClientID == "" {
		config.ClientID = "pager-" + uuid.NewString()
	}

	var (
		handler = NewHandler(nav, logger)
		opts    = mqtt.NewClientOptions()
	)
	opts.AddBroker(brokerURL(config.Broker))
	opts.SetClientID(config.ClientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.OnConnect = func(c mqtt.Client) {
		logger.Info("remote: connected", "broker", config.Broker, "client_id", config.ClientID)
		if err := subscribed(c.Subscribe(config.Topic, config.QoS, handler.Handle), config.Topic, subscribeTimeout); err != nil {
			logger.Error("remote: subscribe failed, remote navigation is disabled until the next reconnect", "topic", config.Topic, "error", err)
		}
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("remote: connection lost, reconnecting", "broker", config.Broker, "error", err)
	}

	c := &Client{
		client: mqtt.NewClient(opts),
		config: config,
		log:    logger,
	}
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		logger.Warn("remote: broker not reachable yet, retrying in the background", "broker", config.Broker, "timeout", connectTimeout)
		return c, nil
	}
	if err := token.Error(); err != nil {
		c.client.Disconnect(0)
		return nil, fmt.Errorf("remote: connect to %s: %w", config.Broker, err)
	}
	return c, nil
}

// subscribed waits up to timeout for a subscription to be acknowledged.
func subscribed(token mqtt.Token, topic string, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w subscribing to %s", ErrTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("remote: subscribe to %s: %w", topic, err)
	}
	return nil
}

// Run keeps the subscription until ctx is done, then disconnects.
func (c *Client) Run(ctx context.Context) error {
	<-ctx.Done()
	c.Close()
	return nil
}

// Close unsubscribes and disconnects.
func (c *Client) Close() {
	if c.client.IsConnected() {
		c.client.Unsubscribe(c.config.Topic).WaitTimeout(subscribeTimeout)
	}
	c.client.Disconnect(250)
	c.log.Info("remote: disconnected", "broker", c.config.Broker)
}
