package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/models"
	"tasktrack/internal/services"
	"tasktrack/internal/validation"
)

const (
	defaultPageIndex = 1
	defaultPageSize  = 10
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	log.Printf("[task][list] q=%v", c.Request.URL.RawQuery)

	pageIndex := defaultPageIndex
	if v, ok := c.GetQuery("pageIndex"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Validation failed.",
				validation.Fields{"pageIndex": "Page index must be an integer."})
			return
		}
		pageIndex = n
	}
	pageSize := defaultPageSize
	if v, ok := c.GetQuery("pageSize"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Validation failed.",
				validation.Fields{"pageSize": "Page size must be an integer."})
			return
		}
		pageSize = n
	}
	if errs := validation.CheckListQuery(pageIndex, pageSize); len(errs) > 0 {
		log.Printf("[task][list][bad] %v", errs)
		respondError(c, http.StatusBadRequest, "Validation failed.", errs)
		return
	}

	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok && v != "" {
		st, err := models.ParseTaskStatus(v)
		if err != nil {
			log.Printf("[task][list][bad] status=%q", v)
			respondError(c, http.StatusBadRequest, "Validation failed.",
				validation.Fields{"status": "Invalid status value."})
			return
		}
		filter.Status = &st
	}

	page, err := h.service.List(c.Request.Context(), filter, pageIndex, pageSize)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve tasks.", err.Error())
		return
	}
	log.Printf("[task][list][ok] page=%d size=%d total=%d", pageIndex, pageSize, page.TotalCount)
	c.JSON(http.StatusOK, page)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][get][bad] id=%q", c.Param("id"))
		respondError(c, http.StatusBadRequest, "Invalid task id.", nil)
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][get][err] id=%d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to get task.", err.Error())
		return
	}
	if task == nil {
		log.Printf("[task][get][404] id=%d", id)
		respondError(c, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found.", id), nil)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}

	due, errs := validation.CheckCreate(req)
	if len(errs) > 0 {
		log.Printf("[task][create][bad] %v", errs)
		respondError(c, http.StatusBadRequest, "Validation failed.", errs)
		return
	}

	created, err := h.service.Create(c.Request.Context(), services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
	})
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			log.Printf("[task][create][bad] entity: %v", verr)
			respondError(c, http.StatusBadRequest, "Validation failed.", verr.Fields)
			return
		}
		log.Printf("[task][create][err] %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create task.", err.Error())
		return
	}
	log.Printf("[task][create][ok] id=%d title=%q", created.ID, created.Title)
	c.Header("Location", fmt.Sprintf("/tasks/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][update][bad] id=%q", c.Param("id"))
		respondError(c, http.StatusBadRequest, "Invalid task id.", nil)
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}

	due, status, errs := validation.CheckUpdate(req)
	if len(errs) > 0 {
		log.Printf("[task][update][bad] id=%d %v", id, errs)
		respondError(c, http.StatusBadRequest, "Validation failed.", errs)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      status,
	})
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			log.Printf("[task][update][bad] id=%d entity: %v", id, verr)
			respondError(c, http.StatusBadRequest, "Validation failed.", verr.Fields)
			return
		}
		log.Printf("[task][update][err] id=%d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update task.", err.Error())
		return
	}
	if updated == nil {
		log.Printf("[task][update][404] id=%d", id)
		respondError(c, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found.", id), nil)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updated)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][delete][bad] id=%q", c.Param("id"))
		respondError(c, http.StatusBadRequest, "Invalid task id.", nil)
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to delete task.", err.Error())
		return
	}
	if !deleted {
		log.Printf("[task][delete][404] id=%d", id)
		respondError(c, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found.", id), nil)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
