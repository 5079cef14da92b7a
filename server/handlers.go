package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/models"
)

var (
	errBadRequest = &apperr.Error{
		Message: "malformed request body",
		Kind:    apperr.Validation,
	}

	errMissingTodoID = &apperr.Error{
		Message: "todoId is required",
		Kind:    apperr.Validation,
	}
)

type (
	titleRequest struct {
		Title string `json:"title"`
	}

	labelRequest struct {
		Label string `json:"label"`
	}

	restoreRequest struct {
		TodoID string `json:"todoId"`
	}
)

// statusOf maps an error kind to an HTTP status.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abort writes err as {"error": msg}. Causes of internal errors are logged
// but not returned to the client.
func (s *Server) abort(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()

	if status == http.StatusInternalServerError {
		s.log.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)

		msg = http.StatusText(status)

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (s *Server) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.abort(c, errBadRequest.Wrap(err))
		return false
	}

	return true
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func (s *Server) handleBootstrap(c *gin.Context) {
	b, err := s.svc.Bootstrap(c.Request.Context(), userID(c))
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (s *Server) handleStats(c *gin.Context) {
	r, err := s.svc.Stats(c.Request.Context(), userID(c))
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (s *Server) handleClearAll(c *gin.Context) {
	if err := s.svc.ClearAll(c.Request.Context(), userID(c)); err != nil {
		s.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleListTodos(c *gin.Context) {
	var (
		todos []models.Todo
		err   error
	)

	if c.Query("archived") == "true" {
		todos, err = s.svc.ListArchivedTodos(c.Request.Context(), userID(c))
	} else {
		todos, err = s.svc.ListActiveTodos(c.Request.Context(), userID(c))
	}

	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var req titleRequest
	if !s.bind(c, &req) {
		return
	}

	todo, err := s.svc.CreateTodo(c.Request.Context(), userID(c), req.Title)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	var req titleRequest
	if !s.bind(c, &req) {
		return
	}

	todo, err := s.svc.UpdateTodoTitle(c.Request.Context(), userID(c), c.Param("id"), req.Title)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	if err := s.svc.DeleteTodo(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAddSubtask(c *gin.Context) {
	var req labelRequest
	if !s.bind(c, &req) {
		return
	}

	st, err := s.svc.AddSubtask(c.Request.Context(), userID(c), c.Param("id"), req.Label)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, st)
}

func (s *Server) handleUpdateSubtask(c *gin.Context) {
	var req models.SubtaskUpdate
	if !s.bind(c, &req) {
		return
	}

	st, err := s.svc.UpdateSubtask(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

func (s *Server) handleDeleteSubtask(c *gin.Context) {
	if err := s.svc.DeleteSubtask(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAutoArchive(c *gin.Context) {
	n, err := s.svc.AutoArchive(c.Request.Context(), userID(c))
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived": n})
}

func (s *Server) handleRestore(c *gin.Context) {
	var req restoreRequest
	if !s.bind(c, &req) {
		return
	}

	if req.TodoID == "" {
		s.abort(c, errMissingTodoID)
		return
	}

	if err := s.svc.RestoreTodo(c.Request.Context(), userID(c), req.TodoID); err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRecordSession(c *gin.Context) {
	var req models.SessionRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.svc.RecordSession(c.Request.Context(), userID(c), req)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
