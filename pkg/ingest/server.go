// Package ingest exposes the demo HTTP/websocket surface that feeds the
// collectors and runs the engine. It is a thin shell: all semantics live
// in the library packages.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mertakman/go-sessionsense/pkg/collect"
	"github.com/mertakman/go-sessionsense/pkg/engine"
	"github.com/mertakman/go-sessionsense/pkg/storage"
)

// Server wires the ingest API to the engine and the per-session collectors.
type Server struct {
	engine *engine.Engine
	store  storage.SessionStore
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*collect.Session

	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// NewServer creates the ingest server. The engine and store must be
// non-nil; logger may be nil for a no-op default.
func NewServer(eng *engine.Engine, store storage.SessionStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:   eng,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*collect.Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Loopback demo; the page is served from the same origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealthz)

	api := router.Group("/api/v1")
	api.POST("/sessions", s.handleOpenSession)
	api.POST("/sessions/:id/events", s.handleEvents)
	api.GET("/sessions/:id/stream", s.handleStream)
	api.POST("/sessions/:id/analyze", s.handleAnalyze)

	return router
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// handleOpenSession issues a fresh session ID and registers its collector.
func (s *Server) handleOpenSession(c *gin.Context) {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = collect.NewSession(id)
	s.mu.Unlock()

	s.logger.Info("session opened", "session_id", id)
	c.JSON(http.StatusCreated, sessionResponse{SessionID: id})
}

// handleEvents appends a batch of events to the session's buffers.
func (s *Server) handleEvents(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}

	var batch Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, ev := range batch.Events {
		s.applyEvent(sess, ev)
	}
	c.Status(http.StatusNoContent)
}

// handleStream upgrades to a websocket and appends events as they arrive.
// The connection stays open until the page closes it.
func (s *Server) handleStream(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("stream closed", "session_id", sess.ID(), "error", err)
			}
			return
		}
		if !validEventType(ev.Type) || ev.TimestampMs <= 0 {
			_ = conn.WriteJSON(gin.H{"error": fmt.Sprintf("invalid event type %q", ev.Type)})
			continue
		}
		s.applyEvent(sess, ev)
	}
}

// handleAnalyze snapshots the session, runs the engine and stores the
// privacy-safe record for subsequent stateful comparisons.
func (s *Server) handleAnalyze(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}

	report, record, err := s.engine.Analyze(engine.Input{
		SessionID:      sess.ID(),
		Snapshot:       sess.Snapshot(),
		IPAddress:      c.ClientIP(),
		UserAgent:      c.GetHeader("User-Agent"),
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})
	if err != nil {
		s.logger.Error("analysis failed", "session_id", sess.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	if err := s.store.SaveRecord(record); err != nil {
		s.logger.Warn("failed to keep session record", "session_id", sess.ID(), "error", err)
	}

	c.JSON(http.StatusOK, report)
}

// applyEvent dispatches one event to the right collector method.
func (s *Server) applyEvent(sess *collect.Session, ev Event) {
	switch ev.Type {
	case "keydown":
		sess.AddKeystroke(ev.Key, ev.TimestampMs)
	case "pointermove":
		sess.AddPointer(ev.X, ev.Y, ev.TimestampMs)
	case "scroll":
		sess.AddScroll(ev.Offset, ev.TimestampMs)
	case "device":
		if ev.Signals != nil {
			sess.SetDeviceSignals(*ev.Signals)
		}
	}
}

func (s *Server) session(id string) (*collect.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func validEventType(t string) bool {
	switch t {
	case "keydown", "pointermove", "scroll", "device":
		return true
	}
	return false
}

// Start serves the API until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(address string) error {
	s.httpServer = &http.Server{
		Addr:         address,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)

	errChannel := make(chan error, 1)
	go func() {
		s.logger.Info("sessionsense agent listening", "address", address)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChannel <- err
		}
	}()

	select {
	case err := <-errChannel:
		return fmt.Errorf("server failed: %w", err)
	case <-shutdownChannel:
	}

	s.logger.Info("shutting down")
	shutdownContext, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownContext); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
