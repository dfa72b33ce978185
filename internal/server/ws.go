package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/session"
)

// one chat turn can cover routing, scraping and several LLM calls
const wsTurnTimeout = 3 * time.Minute

type wsFrame struct {
	Type        string `json:"type"`
	Message     string `json:"message,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	TargetRole  string `json:"target_role,omitempty"`
	CareerGoals string `json:"career_goals,omitempty"`
	CustomJD    string `json:"custom_jd,omitempty"`
	Location    string `json:"location,omitempty"`
}

type wsReply struct {
	Type      string   `json:"type"`
	Branch    string   `json:"branch,omitempty"`
	Content   string   `json:"content,omitempty"`
	FollowUps []string `json:"followups,omitempty"`
}

// wsConn wraps a connection with a write lock so the ping ticker and
// the frame handler never interleave writes
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	logger  *zap.Logger
}

func newWSConn(conn *websocket.Conn, logger *zap.Logger) *wsConn {
	return &wsConn{conn: conn, logger: logger}
}

func (c *wsConn) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(constants.WebSocketConfig.WriteTimeout)
	return c.conn.WriteControl(websocket.PingMessage, nil, deadline)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id query parameter is required", http.StatusBadRequest)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(s.cfg.Server.AllowedOrigins) == 0 {
				return true
			}
			return s.originAllowed(origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.logger.Info("WebSocket connected", zap.String("session", sessionID))

	ws := newWSConn(conn, s.logger)

	conn.SetReadLimit(constants.WebSocketConfig.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(constants.WebSocketConfig.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ws.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("WebSocket read error", zap.String("session", sessionID), zap.Error(err))
			} else {
				s.logger.Info("WebSocket disconnected", zap.String("session", sessionID))
			}
			return
		}

		var frame wsFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			ws.writeJSON(wsReply{Type: "error", Content: "invalid frame"})
			continue
		}

		// frames are handled in order so replies cannot cross
		s.handleFrame(ws, sessionID, &frame)
	}
}

func (s *Server) handleFrame(ws *wsConn, sessionID string, frame *wsFrame) {
	ctx, cancel := context.WithTimeout(context.Background(), wsTurnTimeout)
	defer cancel()

	switch frame.Type {
	case "message":
		if strings.TrimSpace(frame.Message) == "" {
			ws.writeJSON(wsReply{Type: "error", Content: "message is empty"})
			return
		}

		ws.writeJSON(wsReply{Type: "status", Content: "Thinking..."})
		reply, err := s.chat.HandleMessage(ctx, sessionID, frame.Message)
		if err != nil {
			ws.writeJSON(wsReply{Type: "error", Content: err.Error()})
			return
		}
		ws.writeJSON(wsReply{
			Type:      "reply",
			Branch:    reply.Branch.String(),
			Content:   reply.Reply,
			FollowUps: reply.FollowUps,
		})

	case "scrape":
		if strings.TrimSpace(frame.LinkedInURL) == "" {
			ws.writeJSON(wsReply{Type: "error", Content: "linkedin_url is empty"})
			return
		}

		ws.writeJSON(wsReply{Type: "status", Content: "Fetching your profile, this can take a minute..."})
		welcome, err := s.chat.LoadProfileFromURL(ctx, sessionID, frame.LinkedInURL)
		if err != nil {
			ws.writeJSON(wsReply{Type: "error", Content: err.Error()})
			return
		}
		ws.writeJSON(wsReply{Type: "reply", Content: welcome})

	case "targeting":
		sess, err := s.chat.SetTargeting(sessionID, session.Targeting{
			TargetRole:  frame.TargetRole,
			CareerGoals: frame.CareerGoals,
			CustomJD:    frame.CustomJD,
			Location:    frame.Location,
		})
		if err != nil {
			ws.writeJSON(wsReply{Type: "error", Content: err.Error()})
			return
		}
		content := "Targeting saved."
		if sess.TargetRole != "" {
			content = "Targeting saved: " + sess.TargetRole
		}
		ws.writeJSON(wsReply{Type: "status", Content: content})

	default:
		ws.writeJSON(wsReply{Type: "error", Content: "unknown frame type: " + frame.Type})
	}
}
