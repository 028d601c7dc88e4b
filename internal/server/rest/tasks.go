package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Title   string     `json:"title"`
	Text    *string    `json:"text"`
	Tags    *string    `json:"tags"`
	DueDate *time.Time `json:"dueDate"`
}

// updateTaskRequest lists the fields a client may change. Anything else in
// the body, such as id or ownerId, is dropped by decoding. An explicit null
// clears text, tags or dueDate.
type updateTaskRequest struct {
	Title     *string             `json:"title"`
	Text      nullable[string]    `json:"text"`
	Tags      nullable[string]    `json:"tags"`
	DueDate   nullable[time.Time] `json:"dueDate"`
	Completed looseBool           `json:"completed"`
}

// nullable tells a missing field apart from an explicit null.
type nullable[T any] struct {
	Present bool
	Value   *T
}

func (n *nullable[T]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n nullable[T]) cleared() bool {
	return n.Present && n.Value == nil
}

// looseBool is true only for JSON true or the string "true". Every other
// value, including a missing one, decodes to false without error.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case `true`, `"true"`:
		*b = true
	default:
		*b = false
	}
	return nil
}

type taskResponse struct {
	Task *models.Task `json:"task"`
}

type taskListResponse struct {
	Tasks []*models.Task `json:"tasks"`
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badBody())
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c).ID, &models.NewTask{
		Title:   req.Title,
		Text:    req.Text,
		Tags:    req.Tags,
		DueDate: req.DueDate,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) listTasks(c *gin.Context) {
	list, err := s.tasks.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.Task{}
	}
	c.JSON(http.StatusOK, taskListResponse{Tasks: list})
}

func (s *Server) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse{Task: task})
}

// updateTask rejects a malformed id before reading the body, so a bad id is
// always 404 whatever the body holds.
func (s *Server) updateTask(c *gin.Context) {
	if !models.IsTaskID(c.Param("id")) {
		s.writeError(c, common.ErrNotFound)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badBody())
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), &models.TaskPatch{
		Title:        req.Title,
		Text:         req.Text.Value,
		Tags:         req.Tags.Value,
		DueDate:      req.DueDate.Value,
		Completed:    bool(req.Completed),
		ClearText:    req.Text.cleared(),
		ClearTags:    req.Tags.cleared(),
		ClearDueDate: req.DueDate.cleared(),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (s *Server) deleteTask(c *gin.Context) {
	task, err := s.tasks.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse{Task: task})
}
