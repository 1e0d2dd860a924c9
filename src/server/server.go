package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"game-data-server/src/codec"
	"game-data-server/src/executor"
	"game-data-server/src/interfaces"
	"game-data-server/src/logger"
	"game-data-server/src/models"
	"game-data-server/src/snapshot"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// GameDataServer
// -----------------------------------------------------------------------------

type GameDataServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Thread   *executor.GameThread
	Session  models.MSession
	Store    interfaces.IConfigStore
	Registry *codec.Registry

	engine     *gin.Engine
	assembler  *snapshot.Assembler
	httpServer *http.Server
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewGameDataServer(
	cfg *models.MConfig,
	logger *logger.Logger,
	thread *executor.GameThread,
	session models.MSession,
	store interfaces.IConfigStore,
	registry *codec.Registry,
) *GameDataServer {
	// Set Gin mode
	if !strings.EqualFold(cfg.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &GameDataServer{
		Config:    cfg,
		Logger:    logger,
		Thread:    thread,
		Session:   session,
		Store:     store,
		Registry:  registry,
		engine:    gin.New(),
		assembler: snapshot.NewAssembler(session),
	}

	s.engine.HandleMethodNotAllowed = true
	s.engine.Use(gin.Recovery(), s.accessLog())

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Cache-Control")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *GameDataServer) setupRoutes() {
	s.engine.GET("/health", s.getHealth)
	s.engine.GET("/snapshot", s.getSnapshot)
	s.engine.GET("/session", s.getSession)
	s.engine.GET("/membership", s.getMembership)
	s.engine.GET("/exchange", s.getExchange)
	s.engine.GET("/inventory", s.getInventory)
	s.engine.GET("/player", s.getPlayer)
	s.engine.GET("/chat", s.getChat)
	s.engine.GET("/config", s.getConfig)
}

// Handler exposes the router, mainly for httptest.
func (s *GameDataServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks until the server fails or Stop is called. A clean stop
// returns nil.
func (s *GameDataServer) Start() error {
	s.Logger.Info("Starting server on %s", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// -----------------------------------------------------------------------------

func (s *GameDataServer) Stop(ctx context.Context) error {
	s.Logger.Info("Stopping server")
	return s.httpServer.Shutdown(ctx)
}
