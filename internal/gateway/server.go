package gateway

import (
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/realtime"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
)

// Server is the reference realtime gateway: the REST surface the messaging
// core consumes plus the websocket relay it rides on. The message log and
// profile directory are in memory — this is a development relay, not a
// persistence engine.
type Server struct {
	router *realtime.Router
	logger *slog.Logger

	mu       sync.Mutex
	messages []messaging.Message
	students map[string]DirectoryEntry
	alumni   map[string]DirectoryEntry
}

// DirectoryEntry is a seeded profile. Company is set for alumni, Course for
// students, matching the platform payloads.
type DirectoryEntry struct {
	Name    string `json:"name"`
	Img     string `json:"img"`
	Company string `json:"company,omitempty"`
	Course  string `json:"course,omitempty"`
}

// NewServer constructs an empty gateway.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		router:   realtime.NewRouter(),
		logger:   logger,
		students: make(map[string]DirectoryEntry),
		alumni:   make(map[string]DirectoryEntry),
	}
}

// AddStudent seeds a student profile into the directory.
func (s *Server) AddStudent(id string, e DirectoryEntry) {
	s.mu.Lock()
	s.students[id] = e
	s.mu.Unlock()
}

// AddAlumni seeds an alumni profile into the directory.
func (s *Server) AddAlumni(id string, e DirectoryEntry) {
	s.mu.Lock()
	s.alumni[id] = e
	s.mu.Unlock()
}

// Close tears down all live websocket connections.
func (s *Server) Close() {
	s.router.Close()
}

// Routes mounts the REST endpoints and the websocket relay.
func (s *Server) Routes(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/messages/conversation/:idA/:idB", s.handleConversation)
	api.POST("/messages/send", s.handleSend)
	api.GET("/students/:id", s.handleProfile(func() map[string]DirectoryEntry { return s.students }))
	api.GET("/alumni/:id", s.handleProfile(func() map[string]DirectoryEntry { return s.alumni }))
	r.GET("/ws", s.handleSocket)
}

func (s *Server) handleConversation(c *gin.Context) {
	if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	idA := strings.ToLower(c.Param("idA"))
	idB := strings.ToLower(c.Param("idB"))
	if !messaging.IsValidParticipantID(idA) || !messaging.IsValidParticipantID(idB) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	s.mu.Lock()
	out := make([]messaging.Message, 0)
	for _, m := range s.messages {
		if (m.FromUser == idA && m.ToUser == idB) || (m.FromUser == idB && m.ToUser == idA) {
			out = append(out, m)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) handleSend(c *gin.Context) {
	var req messaging.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := messaging.NewMessage(req.FromUser, req.ToUser, req.Content, req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved.ClientKey = req.ClientKey
	saved.ID = newMessageID()

	s.mu.Lock()
	s.messages = append(s.messages, saved)
	s.mu.Unlock()

	s.logger.Debug("message stored", "id", saved.ID, "from", saved.FromUser, "to", saved.ToUser)
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleProfile(directory func() map[string]DirectoryEntry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.ToLower(c.Param("id"))
		if !messaging.IsValidParticipantID(id) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
			return
		}

		s.mu.Lock()
		entry, ok := directory()[id]
		s.mu.Unlock()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

// newMessageID mints a storage-shaped id: 12 bytes rendered as 24 hex chars.
func newMessageID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}
