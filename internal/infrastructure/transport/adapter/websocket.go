package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/transport/port"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// ErrNotConnected is returned by emit operations before Connect succeeds.
var ErrNotConnected = errors.New("transport: not connected")

// frame is the wire envelope exchanged with the realtime gateway.
type frame struct {
	Type    string             `json:"type"`
	RoomID  string             `json:"roomId,omitempty"`
	Message *messaging.Message `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

const (
	frameJoinRoom       = "joinRoom"
	frameSendMessage    = "sendMessage"
	frameReceiveMessage = "receiveMessage"
	frameError          = "error"
)

// SocketTransport implements port.Transport over a websocket connection to
// the realtime gateway.
type SocketTransport struct {
	url    string
	dialer *websocket.Dialer

	mu      sync.Mutex
	ws      *websocket.Conn
	done    chan struct{}
	receive port.ReceiveHandler
	onClose func(error)
	closed  bool
}

// NewSocketTransport constructs a transport that dials url (ws:// or wss://).
func NewSocketTransport(url string) *SocketTransport {
	return &SocketTransport{
		url:    url,
		dialer: websocket.DefaultDialer,
	}
}

var _ port.Transport = (*SocketTransport)(nil)

// Connect dials the gateway and starts the read and keepalive loops.
func (t *SocketTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ws != nil {
		return nil
	}

	ws, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return fmt.Errorf("transport: dial %s: %w", t.url, err)
	}

	ws.SetReadLimit(1 << 20)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	t.ws = ws
	t.done = make(chan struct{})
	t.closed = false

	go t.readLoop(ws, t.done)
	go t.pingLoop(ws, t.done)
	return nil
}

// Disconnect closes the connection. Safe to call when never connected.
func (t *SocketTransport) Disconnect() error {
	t.mu.Lock()
	ws := t.ws
	done := t.done
	t.ws = nil
	t.closed = true
	t.mu.Unlock()

	if ws == nil {
		return nil
	}
	if done != nil {
		close(done)
	}
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "leaving"),
		time.Now().Add(writeWait))
	return ws.Close()
}

// JoinRoom emits a joinRoom frame for roomID.
func (t *SocketTransport) JoinRoom(ctx context.Context, roomID string) error {
	return t.write(ctx, frame{Type: frameJoinRoom, RoomID: roomID})
}

// SendMessage emits a sendMessage frame carrying m to roomID.
func (t *SocketTransport) SendMessage(ctx context.Context, roomID string, m messaging.Message) error {
	return t.write(ctx, frame{Type: frameSendMessage, RoomID: roomID, Message: &m})
}

// OnReceive registers the inbound message handler.
func (t *SocketTransport) OnReceive(h port.ReceiveHandler) {
	t.mu.Lock()
	t.receive = h
	t.mu.Unlock()
}

// OffReceive unregisters the inbound message handler.
func (t *SocketTransport) OffReceive() {
	t.mu.Lock()
	t.receive = nil
	t.mu.Unlock()
}

// OnClose registers the connection-terminated handler.
func (t *SocketTransport) OnClose(h func(err error)) {
	t.mu.Lock()
	t.onClose = h
	t.mu.Unlock()
}

func (t *SocketTransport) write(ctx context.Context, f frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("transport: encode frame: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ws == nil {
		return ErrNotConnected
	}
	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := t.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return t.ws.WriteMessage(websocket.TextMessage, payload)
}

func (t *SocketTransport) readLoop(ws *websocket.Conn, done chan struct{}) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.terminate(ws, err)
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		if f.Type != frameReceiveMessage || f.Message == nil {
			continue
		}

		t.mu.Lock()
		h := t.receive
		t.mu.Unlock()
		if h != nil {
			h(*f.Message)
		}

		select {
		case <-done:
			return
		default:
		}
	}
}

func (t *SocketTransport) pingLoop(ws *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.ws != ws {
				t.mu.Unlock()
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := ws.WriteMessage(websocket.PingMessage, nil)
			t.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// terminate fires the close handler exactly once for a read failure. A
// deliberate Disconnect swallows the resulting read error.
func (t *SocketTransport) terminate(ws *websocket.Conn, err error) {
	t.mu.Lock()
	deliberate := t.closed || t.ws != ws
	if t.ws == ws {
		t.ws = nil
		if t.done != nil {
			close(t.done)
			t.done = nil
		}
	}
	h := t.onClose
	t.mu.Unlock()

	_ = ws.Close()
	if h == nil {
		return
	}
	if deliberate || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h(nil)
		return
	}
	h(err)
}
