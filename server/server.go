// Package server exposes the engine's control and telemetry surfaces
// over HTTP for the GUI collaborator. It never touches the Q-table
// directly; everything goes through the engine's tick-boundary control
// queue.
package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/dojoenv/dojo-rl/config"
	"github.com/dojoenv/dojo-rl/engine"
)

type Server struct {
	engine *engine.Engine
	pub    *Publisher

	mu     sync.Mutex
	latest *engine.Telemetry

	httpServer *http.Server
}

func New(addr string, eng *engine.Engine, pub *Publisher) *Server {
	s := &Server{
		engine: eng,
		pub:    pub,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/control/start", s.handleControl(eng.Start))
	router.POST("/control/stop", s.handleControl(eng.Stop))
	router.POST("/control/pause", s.handleControl(eng.Pause))
	router.POST("/control/step", s.handleControl(eng.StepOnce))
	router.PUT("/hyperparams", s.handleHyperparams)
	router.GET("/status", s.handleStatus)
	router.GET("/telemetry/latest", s.handleTelemetryLatest)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return s
}

// Start serves HTTP and pumps the engine's telemetry stream. Blocks
// until the HTTP server exits.
func (s *Server) Start() error {
	go s.pump()
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}

// pump mirrors telemetry events into the latest slot and, when
// configured, onto the redis channel for external plotters.
func (s *Server) pump() {
	for t := range s.engine.Telemetry() {
		t := t
		s.mu.Lock()
		s.latest = &t
		s.mu.Unlock()
		if s.pub != nil {
			s.pub.Publish(t)
		}
	}
}

func (s *Server) handleControl(control func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := control(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"phase": s.engine.Phase().String()})
	}
}

func (s *Server) handleHyperparams(c *gin.Context) {
	h := config.Hyperparams{}
	if err := c.ShouldBindJSON(&h); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.UpdateHyperparams(h); err != nil {
		// out of range: previous values stay in effect
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": "next tick"})
}

func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{
		"phase":         s.engine.Phase().String(),
		"episode":       s.engine.Episode(),
		"tick":          s.engine.Tick(),
		"unique_states": s.engine.UniqueStates(),
	}
	if err := s.engine.Err(); err != nil {
		status["error"] = err.Error()
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleTelemetryLatest(c *gin.Context) {
	s.mu.Lock()
	latest := s.latest
	s.mu.Unlock()
	if latest == nil {
		c.JSON(http.StatusNoContent, nil)
		return
	}
	c.JSON(http.StatusOK, latest)
}
