package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/realtime"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dev relay; plug a proper checker when the gateway grows auth.
		return true
	},
}

const socketReadTimeout = 60 * time.Second

// socketFrame is the wire envelope. Clients emit joinRoom and sendMessage;
// the gateway fans sendMessage back out to the room as receiveMessage.
type socketFrame struct {
	Type    string             `json:"type"`
	RoomID  string             `json:"roomId,omitempty"`
	Message *messaging.Message `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// handleSocket upgrades the request and relays frames until the client
// disconnects. The relay does not persist: clients store via REST first and
// broadcast the server-confirmed copy, so everything on the wire is already
// durable.
func (s *Server) handleSocket(c *gin.Context) {
	ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the response; nothing more to say.
		return
	}

	conn := realtime.NewConnection(ws)
	s.router.Attach(conn)
	defer func() {
		s.router.Detach(conn)
		conn.Close(websocket.CloseNormalClosure, "session closed")
	}()

	ws.SetReadLimit(1 << 20)
	_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
				errors.Is(err, websocket.ErrCloseSent) {
				return
			}
			s.logger.Debug("socket read ended", "conn", conn.ID, "error", err)
			return
		}

		var frame socketFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.replyError(conn, "invalid payload")
			continue
		}

		switch frame.Type {
		case "joinRoom":
			s.handleJoinRoom(conn, frame)
		case "sendMessage":
			s.handleSendMessage(conn, frame)
		default:
			s.replyError(conn, "unknown frame type")
		}
	}
}

func (s *Server) handleJoinRoom(conn *realtime.Connection, frame socketFrame) {
	if frame.RoomID == "" {
		s.replyError(conn, "roomId is required")
		return
	}
	s.router.Join(frame.RoomID, conn)
	s.logger.Debug("room joined", "conn", conn.ID, "room", frame.RoomID)
}

func (s *Server) handleSendMessage(conn *realtime.Connection, frame socketFrame) {
	if frame.RoomID == "" || frame.Message == nil {
		s.replyError(conn, "roomId and message are required")
		return
	}

	out := socketFrame{Type: "receiveMessage", RoomID: frame.RoomID, Message: frame.Message}
	payload, err := json.Marshal(out)
	if err != nil {
		s.replyError(conn, "failed to encode message")
		return
	}

	delivered := s.router.Broadcast(frame.RoomID, payload)
	s.logger.Debug("message relayed", "room", frame.RoomID, "delivered", delivered)
}

func (s *Server) replyError(conn *realtime.Connection, message string) {
	frame := socketFrame{Type: "error", Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
