// Package server exposes intake sessions over a websocket.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/intake"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/metrics"
)

// Session results reported to metrics.
const (
	ResultExited       = "exited"
	ResultDisconnected = "disconnected"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 8 << 10
)

type inboundMessage struct {
	Text string `json:"text"`
}

type outboundMessage struct {
	SessionID string `json:"sessionId"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Step      string `json:"step"`
	Outcome   string `json:"outcome,omitempty"`
	Ended     bool   `json:"ended"`
}

// Server serves one intake session per websocket connection. Sessions are
// not stored anywhere and end with their connection.
type Server struct {
	machine  *intake.Machine
	recorder metrics.Recorder
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a Server. gatherer may be nil to disable /metrics.
func New(machine *intake.Machine, recorder metrics.Recorder, gatherer prometheus.Gatherer, log *zap.Logger) *Server {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		machine:  machine,
		recorder: recorder,
		gatherer: gatherer,
		logger:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Router wires the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/ws", s.handleChat)

	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	session := intake.NewSession()
	log := logger.WithSession(s.logger, session.ID).With(zap.String("request_id", middleware.GetReqID(r.Context())))
	log.Info("session started", zap.String("remote", r.RemoteAddr))

	if err := s.send(conn, session, session.LastReply(), ""); err != nil {
		log.Warn("sending greeting", zap.Error(err))
		s.recorder.ObserveSession(ResultDisconnected)
		return
	}

	for !session.Ended {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("reading frame", zap.Error(err))
			}
			log.Info("session disconnected", zap.String(logger.FieldStep, session.Current.String()))
			s.recorder.ObserveSession(ResultDisconnected)
			return
		}

		var in inboundMessage
		if err := json.Unmarshal(data, &in); err != nil {
			log.Debug("ignoring malformed frame", zap.Error(err))
			continue
		}

		reply := s.machine.Advance(r.Context(), session, in.Text)
		s.recorder.ObserveTurn(reply.Step.String(), string(reply.Outcome))

		if err := s.send(conn, session, reply.Text, reply.Outcome); err != nil {
			log.Warn("sending reply", zap.Error(err))
			s.recorder.ObserveSession(ResultDisconnected)
			return
		}
	}

	log.Info("session finished", zap.Int("fields", session.Fields.Len()))
	s.recorder.ObserveSession(ResultExited)

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
		time.Now().Add(writeTimeout),
	)
}

func (s *Server) send(conn *websocket.Conn, session *intake.Session, text string, outcome intake.Outcome) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return conn.WriteJSON(outboundMessage{
		SessionID: session.ID,
		Role:      string(intake.RoleAssistant),
		Text:      text,
		Step:      session.Current.String(),
		Outcome:   string(outcome),
		Ended:     session.Ended,
	})
}
