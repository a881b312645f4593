package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const serviceName = "Discord Shop & Ticket System"
const serviceVersion = "3.0.0"

// BotStatus is the gateway snapshot exposed on /status. A nil status
// means the bot is not connected.
type BotStatus struct {
	Tag           string
	ID            string
	Guilds        int
	ActiveTickets int
	ClosedTickets int
}

// Server is the health and status HTTP API.
type Server struct {
	router    *gin.Engine
	server    *http.Server
	statusFn  func() *BotStatus
	startedAt time.Time
}

// NewServer builds the API. statusFn may return nil when no bot is
// running; the endpoints stay available regardless.
func NewServer(port string, statusFn func() *BotStatus) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:    router,
		statusFn:  statusFn,
		startedAt: time.Now(),
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/status", s.handleStatus)
	s.router.GET("/uptime", s.handleUptime)
	s.router.NoRoute(s.handleNotFound)
}

// Start serves until Stop is called. Blocks.
func (s *Server) Start() error {
	log.WithField("addr", s.server.Addr).Info("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) uptime() time.Duration {
	return time.Since(s.startedAt)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"uptime":    int64(s.uptime().Seconds()),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	response := gin.H{
		"bot":           nil,
		"guilds":        0,
		"activeTickets": 0,
		"closedTickets": 0,
		"uptime":        int64(s.uptime().Seconds()),
		"timestamp":     time.Now().Format(time.RFC3339),
	}
	if status := s.statusFn(); status != nil {
		response["bot"] = gin.H{"tag": status.Tag, "id": status.ID}
		response["guilds"] = status.Guilds
		response["activeTickets"] = status.ActiveTickets
		response["closedTickets"] = status.ClosedTickets
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleUptime(c *gin.Context) {
	uptime := s.uptime()
	c.JSON(http.StatusOK, gin.H{
		"uptime":    int64(uptime.Seconds()),
		"formatted": formatUptime(uptime),
	})
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":     "Endpoint not found",
		"available": []string{"/", "/health", "/status", "/uptime"},
	})
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd%dh%dm%ds", days, hours, minutes, seconds)
}
