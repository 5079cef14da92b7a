// Package server exposes the tracker operations as a JSON HTTP API. Requests
// are authenticated with HS256 bearer tokens that carry the user id.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ctdp-app/ctdp/internal/config"
	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/stats"
)

const (
	userIDKey       = "user_id"
	shutdownTimeout = 5 * time.Second
)

// Service is the tracker surface served over HTTP.
type Service interface {
	Bootstrap(ctx context.Context, userID string) (*models.Bootstrap, error)
	ListActiveTodos(ctx context.Context, userID string) ([]models.Todo, error)
	ListArchivedTodos(ctx context.Context, userID string) ([]models.Todo, error)
	CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error)
	UpdateTodoTitle(ctx context.Context, userID, todoID, title string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
	AddSubtask(ctx context.Context, userID, todoID, label string) (*models.Subtask, error)
	UpdateSubtask(ctx context.Context, userID, subtaskID string, upd models.SubtaskUpdate) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, userID, subtaskID string) error
	AutoArchive(ctx context.Context, userID string) (int, error)
	RestoreTodo(ctx context.Context, userID, todoID string) error
	RecordSession(ctx context.Context, userID string, req models.SessionRequest) (*models.SessionResult, error)
	Stats(ctx context.Context, userID string) (*stats.Report, error)
	ClearAll(ctx context.Context, userID string) error
}

// Server is the HTTP API.
type Server struct {
	svc    Service
	router *gin.Engine
	log    *slog.Logger
	secret []byte
	addr   string
}

// New builds the router. Call config.ValidateServer before New.
func New(svc Service, cfg config.ServerConfig, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		svc:    svc,
		router: gin.New(),
		log:    logging.OrDefault(log),
		secret: []byte(cfg.JWTSecret),
		addr:   cfg.Addr,
	}

	s.router.Use(gin.Recovery(), s.logRequests)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api", s.authenticate)
	{
		api.GET("/bootstrap", s.handleBootstrap)
		api.GET("/stats", s.handleStats)
		api.DELETE("/data", s.handleClearAll)

		api.GET("/todos", s.handleListTodos)
		api.POST("/todos", s.handleCreateTodo)
		api.PATCH("/todos/:id", s.handleUpdateTodo)
		api.DELETE("/todos/:id", s.handleDeleteTodo)
		api.POST("/todos/:id/subtasks", s.handleAddSubtask)

		api.PATCH("/subtasks/:id", s.handleUpdateSubtask)
		api.DELETE("/subtasks/:id", s.handleDeleteSubtask)

		api.POST("/archive/auto", s.handleAutoArchive)
		api.POST("/archive/restore", s.handleRestore)

		api.POST("/sessions", s.handleRecordSession)
	}

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("api listening", slog.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) authenticate(c *gin.Context) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if err == nil {
		var userID string

		userID, err = UserIDFromToken(token, s.secret)
		if err == nil {
			c.Set(userIDKey, userID)
			c.Next()

			return
		}
	}

	s.abort(c, err)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()

	c.Next()

	s.log.Info("request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("latency", time.Since(start)),
		slog.String(userIDKey, c.GetString(userIDKey)),
	)
}
