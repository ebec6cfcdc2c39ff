package handler

import (
	"net/http"
	"time"

	"synergysphere/internal/middleware"
	"synergysphere/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) Create(c *gin.Context) {
	projectID, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	var req struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		AssigneeID  *uint      `json:"assignee_id"`
		Priority    string     `json:"priority"`
		Deadline    *time.Time `json:"deadline"`
		Tags        []string   `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.svc.CreateTask(c.Request.Context(), middleware.GetIdentity(c), service.CreateTaskInput{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Assign(c *gin.Context) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}
	var req struct {
		AssigneeID uint `json:"assignee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.svc.AssignTask(c.Request.Context(), middleware.GetIdentity(c), taskID, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}
	task, err := h.svc.CompleteTask(c.Request.Context(), middleware.GetIdentity(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) ListComments(c *gin.Context) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}
	comments, err := h.svc.ListComments(c.Request.Context(), middleware.GetIdentity(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}
	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.svc.AddComment(c.Request.Context(), middleware.GetIdentity(c), taskID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
