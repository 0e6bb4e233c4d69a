package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
)

// WebSocket is one live connection. Incoming frames are decoded and queued
// on Receive; outgoing messages are queued by Send and written by a single
// writer goroutine.
type WebSocket struct {
	cfg       Config
	conn      *websocket.Conn
	connected atomic.Bool

	sendCh    chan Message
	recvCh    chan Message
	closeCh   chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func newWebSocket(conn *websocket.Conn, cfg Config) *WebSocket {
	ws := &WebSocket{
		cfg:     cfg,
		conn:    conn,
		sendCh:  make(chan Message, cfg.SendBufferSize),
		recvCh:  make(chan Message, cfg.ReceiveBufferSize),
		closeCh: make(chan struct{}),
	}
	ws.connected.Store(true)
	conn.SetReadLimit(cfg.MaxMessageSize)

	go ws.readLoop()
	go ws.writeLoop()
	go ws.pingLoop()
	return ws
}

// Accept upgrades an HTTP request after checking its Origin header.
// On rejection it writes 403 and returns ErrOriginNotAllowed.
func Accept(w http.ResponseWriter, r *http.Request, cfg Config) (*WebSocket, error) {
	cfg = cfg.withDefaults()

	if !originAllowed(cfg, r.Header.Get("Origin"), r.Host) {
		cfg.Logger.Warn("websocket origin rejected",
			logging.String("origin", r.Header.Get("Origin")),
			logging.String("host", r.Host),
		)
		http.Error(w, "Forbidden: origin not allowed", http.StatusForbidden)
		return nil, ErrOriginNotAllowed
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: cfg.InsecureDevMode,
		OriginPatterns:     originPatterns(cfg.AllowedOrigins),
	})
	if err != nil {
		return nil, fmt.Errorf("accept websocket: %w", err)
	}
	return newWebSocket(conn, cfg), nil
}

// Dial opens a client connection to rawURL.
func Dial(ctx context.Context, rawURL string, header http.Header, cfg Config) (*WebSocket, error) {
	cfg = cfg.withDefaults()

	conn, _, err := websocket.Dial(ctx, rawURL, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	return newWebSocket(conn, cfg), nil
}

// Send queues msg for writing.
func (ws *WebSocket) Send(msg Message) error {
	if !ws.IsConnected() {
		return ErrNotConnected
	}

	timer := time.NewTimer(ws.cfg.WriteTimeout)
	defer timer.Stop()

	select {
	case ws.sendCh <- msg:
		return nil
	case <-ws.closeCh:
		return ErrConnectionClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}

// Receive returns decoded incoming messages. It is closed when the read
// side ends.
func (ws *WebSocket) Receive() <-chan Message {
	return ws.recvCh
}

// CloseChan is closed once the connection is shut down.
func (ws *WebSocket) CloseChan() <-chan struct{} {
	return ws.closeCh
}

// IsConnected reports whether Close has not yet been called.
func (ws *WebSocket) IsConnected() bool {
	return ws.connected.Load()
}

// Close sends a normal closure and stops the background loops. Safe to
// call more than once.
func (ws *WebSocket) Close() error {
	ws.closeOnce.Do(func() {
		ws.connected.Store(false)
		close(ws.closeCh)
		ws.closeErr = ws.conn.Close(websocket.StatusNormalClosure, "closing")
	})
	return ws.closeErr
}

func (ws *WebSocket) readLoop() {
	defer close(ws.recvCh)
	defer ws.Close()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), ws.cfg.ReadTimeout)
		_, data, err := ws.conn.Read(ctx)
		cancel()

		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && ws.IsConnected() {
				ws.cfg.Logger.Debug("websocket read ended", logging.Err(err))
			}
			return
		}

		msg, err := Unmarshal(data)
		if err != nil {
			ws.cfg.Logger.Warn("dropping malformed frame", logging.Err(err), logging.Int("bytes", len(data)))
			continue
		}

		select {
		case ws.recvCh <- msg:
		case <-ws.closeCh:
			return
		default:
			ws.cfg.Logger.Warn("receive buffer full, dropping message", logging.String("event", msg.Event))
		}
	}
}

func (ws *WebSocket) writeLoop() {
	for {
		select {
		case msg := <-ws.sendCh:
			data, err := msg.Marshal()
			if err != nil {
				ws.cfg.Logger.Error("encode message", logging.Err(err), logging.String("event", msg.Event))
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), ws.cfg.WriteTimeout)
			err = ws.conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				ws.Close()
				return
			}

		case <-ws.closeCh:
			return
		}
	}
}

func (ws *WebSocket) pingLoop() {
	ticker := time.NewTicker(ws.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), ws.cfg.WriteTimeout)
			err := ws.conn.Ping(ctx)
			cancel()
			if err != nil {
				ws.Close()
				return
			}
		case <-ws.closeCh:
			return
		}
	}
}

func originAllowed(cfg Config, origin, host string) bool {
	if cfg.InsecureDevMode || origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Host == host {
		return true
	}

	for _, allowed := range cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if au, err := url.Parse(allowed); err == nil && au.Host == u.Host {
			return true
		}
	}
	return false
}

// originPatterns turns allowed origins into host patterns for the
// websocket library's own origin check.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}
	return patterns
}
