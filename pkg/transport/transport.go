// Package transport carries live-view messages between browser and server.
// Messages are JSON text frames over a WebSocket.
package transport

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
)

// Transport errors.
var (
	ErrNotConnected     = errors.New("transport not connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendTimeout      = errors.New("send timeout")
	ErrInvalidMessage   = errors.New("invalid message format")
	ErrOriginNotAllowed = errors.New("origin not allowed")
)

// Message is one frame of the live protocol. Ref correlates a reply with
// the request that caused it.
type Message struct {
	Ref     string         `json:"ref,omitempty"`
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Marshal encodes m as JSON.
func (m Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal decodes a JSON frame. Frames without an event are rejected.
func Unmarshal(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return m, errors.Join(ErrInvalidMessage, err)
	}
	if m.Event == "" {
		return m, ErrInvalidMessage
	}
	return m, nil
}

// Config holds connection limits and origin policy.
type Config struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PingInterval      time.Duration
	MaxMessageSize    int64
	SendBufferSize    int
	ReceiveBufferSize int

	// AllowedOrigins lists cross-origin pages allowed to connect. "*" allows
	// any. Same-origin requests and requests without Origin are always allowed.
	AllowedOrigins []string

	// InsecureDevMode skips origin checks entirely.
	InsecureDevMode bool

	Logger logging.Logger
}

// DefaultConfig returns conservative limits with same-origin policy.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      30 * time.Second,
		MaxMessageSize:    64 * 1024,
		SendBufferSize:    64,
		ReceiveBufferSize: 64,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = d.SendBufferSize
	}
	if c.ReceiveBufferSize <= 0 {
		c.ReceiveBufferSize = d.ReceiveBufferSize
	}
	if c.Logger == nil {
		c.Logger = logging.NopLogger{}
	}
	return c
}
