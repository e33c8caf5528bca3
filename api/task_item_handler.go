package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/errs"
	"github.com/taskboard/backend/models"
)

type taskItemHandler struct {
	responder   Responder
	logger      zerolog.Logger
	taskRepo    *database.TaskItemRepo
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
}

func newTaskItemHandler(taskRepo *database.TaskItemRepo, projectRepo *database.ProjectRepo, userRepo *database.UserRepo) taskItemHandler {
	logger := log.With().Str("handlerName", "taskItemHandler").Logger()

	return taskItemHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// TaskItemDTO is the wire projection of a task item
type TaskItemDTO struct {
	ID               uuid.UUID           `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	ProjectID        uuid.UUID           `json:"project_id"`
	AssignedToUserID *uuid.UUID          `json:"assigned_to_user_id,omitempty"`
	Status           models.TaskStatus   `json:"status"`
	Priority         models.TaskPriority `json:"priority"`
}

func toTaskItemDTO(task *models.TaskItem) TaskItemDTO {
	return TaskItemDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		ProjectID:        task.ProjectID,
		AssignedToUserID: task.AssignedToUserID,
		Status:           task.Status,
		Priority:         task.Priority,
	}
}

// CreateTaskItemRequest is the payload for creating a task item
type CreateTaskItemRequest struct {
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	ProjectID        uuid.UUID           `json:"project_id"`
	AssignedToUserID *uuid.UUID          `json:"assigned_to_user_id,omitempty"`
	Status           models.TaskStatus   `json:"status,omitempty"`
	Priority         models.TaskPriority `json:"priority,omitempty"`
}

// UpdateTaskItemRequest carries optional fields for PUT
type UpdateTaskItemRequest struct {
	Title            string              `json:"title,omitempty"`
	Description      string              `json:"description,omitempty"`
	AssignedToUserID *uuid.UUID          `json:"assigned_to_user_id,omitempty"`
	Status           models.TaskStatus   `json:"status,omitempty"`
	Priority         models.TaskPriority `json:"priority,omitempty"`
}

// getAllTaskItems lists task items. Developer callers only see tasks in
// projects they are members of.
func (h taskItemHandler) getAllTaskItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var tasks []*models.TaskItem
		if claims.Role == models.RoleDeveloper {
			callerID, err := claims.UserID()
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			tasks, err = h.taskRepo.FindAllVisibleTo(callerID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find tasks", "task items", err))
				return
			}
		} else {
			tasks, err = h.taskRepo.FindAll()
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find tasks", "task items", err))
				return
			}
		}

		dtos := make([]TaskItemDTO, 0, len(tasks))
		for _, task := range tasks {
			dtos = append(dtos, toTaskItemDTO(task))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

// getTaskItem retrieves a task item by ID
func (h taskItemHandler) getTaskItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskItemID, err := uuid.Parse(chi.URLParam(r, "taskItemID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid taskItemID"))
			return
		}

		task, err := h.taskRepo.FindByID(taskItemID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task item", err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task item not found"))
			return
		}

		h.responder.WriteJSON(w, toTaskItemDTO(task))
	}
}

// createTaskItem validates the referenced project and assignee, then
// persists the task.
func (h taskItemHandler) createTaskItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTaskItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode task item request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}

		if req.Status == "" {
			req.Status = models.StatusNew
		}
		if req.Priority == "" {
			req.Priority = models.PriorityMedium
		}
		if !req.Status.Valid() {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid status", "status", string(req.Status)))
			return
		}
		if !req.Priority.Valid() {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid priority", "priority", string(req.Priority)))
			return
		}

		projectExists, err := h.projectRepo.Exists(req.ProjectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if !projectExists {
			h.responder.WriteError(w, errs.NewBadRequestError("project does not exist"))
			return
		}

		if req.AssignedToUserID != nil {
			assigneeExists, err := h.userRepo.Exists(*req.AssignedToUserID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find assignee", "user", err))
				return
			}
			if !assigneeExists {
				h.responder.WriteError(w, errs.NewBadRequestError("assigned user does not exist"))
				return
			}
		}

		task := models.TaskItem{
			ID:               uuid.New(),
			Title:            req.Title,
			Description:      req.Description,
			ProjectID:        req.ProjectID,
			AssignedToUserID: req.AssignedToUserID,
			Status:           req.Status,
			Priority:         req.Priority,
		}
		if err := h.taskRepo.Add(&task); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create task", "task item", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/TaskItems/"+task.ID.String(), toTaskItemDTO(&task))
	}
}

// updateTaskItem replaces the mutable fields of a task item
func (h taskItemHandler) updateTaskItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskItemID, err := uuid.Parse(chi.URLParam(r, "taskItemID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid taskItemID"))
			return
		}

		task, err := h.taskRepo.FindByID(taskItemID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task item", err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task item not found"))
			return
		}

		var req UpdateTaskItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode task item request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != "" {
			task.Title = req.Title
		}
		if req.Description != "" {
			task.Description = req.Description
		}
		if req.Status != "" {
			if !req.Status.Valid() {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid status", "status", string(req.Status)))
				return
			}
			task.Status = req.Status
		}
		if req.Priority != "" {
			if !req.Priority.Valid() {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid priority", "priority", string(req.Priority)))
				return
			}
			task.Priority = req.Priority
		}
		if req.AssignedToUserID != nil {
			assigneeExists, err := h.userRepo.Exists(*req.AssignedToUserID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find assignee", "user", err))
				return
			}
			if !assigneeExists {
				h.responder.WriteError(w, errs.NewBadRequestError("assigned user does not exist"))
				return
			}
			task.AssignedToUserID = req.AssignedToUserID
		}

		if err := h.taskRepo.Update(task); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update task", "task item", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteTaskItem removes a task item by ID
func (h taskItemHandler) deleteTaskItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskItemID, err := uuid.Parse(chi.URLParam(r, "taskItemID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid taskItemID"))
			return
		}

		task, err := h.taskRepo.FindByID(taskItemID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task item", err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task item not found"))
			return
		}

		if err := h.taskRepo.Delete(taskItemID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete task", "task item", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
