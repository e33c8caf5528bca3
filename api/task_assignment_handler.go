package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/errs"
	"github.com/taskboard/backend/models"
)

type taskAssignmentHandler struct {
	responder      Responder
	logger         zerolog.Logger
	assignmentRepo *database.TaskAssignmentRepo
	taskRepo       *database.TaskItemRepo
	userRepo       *database.UserRepo
}

func newTaskAssignmentHandler(assignmentRepo *database.TaskAssignmentRepo, taskRepo *database.TaskItemRepo, userRepo *database.UserRepo) taskAssignmentHandler {
	logger := log.With().Str("handlerName", "taskAssignmentHandler").Logger()

	return taskAssignmentHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		assignmentRepo: assignmentRepo,
		taskRepo:       taskRepo,
		userRepo:       userRepo,
	}
}

// TaskAssignmentDTO is the wire projection of an assignment record
type TaskAssignmentDTO struct {
	ID               uuid.UUID `json:"id"`
	TaskItemID       uuid.UUID `json:"task_item_id"`
	AssignedToUserID uuid.UUID `json:"assigned_to_user_id"`
	AssignedByUserID uuid.UUID `json:"assigned_by_user_id"`
	AssignedAt       time.Time `json:"assigned_at"`
	Comment          *string   `json:"comment,omitempty"`
}

func toTaskAssignmentDTO(assignment *models.TaskAssignment) TaskAssignmentDTO {
	return TaskAssignmentDTO{
		ID:               assignment.ID,
		TaskItemID:       assignment.TaskItemID,
		AssignedToUserID: assignment.AssignedToUserID,
		AssignedByUserID: assignment.AssignedByUserID,
		AssignedAt:       assignment.AssignedAt,
		Comment:          assignment.Comment,
	}
}

// CreateTaskAssignmentRequest is the payload for recording an assignment.
// AssignedAt is set server-side.
type CreateTaskAssignmentRequest struct {
	TaskItemID       uuid.UUID `json:"task_item_id"`
	AssignedToUserID uuid.UUID `json:"assigned_to_user_id"`
	Comment          *string   `json:"comment,omitempty"`
}

// UpdateTaskAssignmentRequest amends the assignee or comment of a record
type UpdateTaskAssignmentRequest struct {
	AssignedToUserID *uuid.UUID `json:"assigned_to_user_id,omitempty"`
	Comment          *string    `json:"comment,omitempty"`
}

// getAllAssignments lists every assignment record
func (h taskAssignmentHandler) getAllAssignments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignments, err := h.assignmentRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find assignments", "task assignments", err))
			return
		}

		dtos := make([]TaskAssignmentDTO, 0, len(assignments))
		for _, assignment := range assignments {
			dtos = append(dtos, toTaskAssignmentDTO(assignment))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

// getAssignment retrieves an assignment record by ID
func (h taskAssignmentHandler) getAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid assignmentID"))
			return
		}

		assignment, err := h.assignmentRepo.FindByID(assignmentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find assignment", "task assignment", err))
			return
		}
		if assignment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task assignment not found"))
			return
		}

		h.responder.WriteJSON(w, toTaskAssignmentDTO(assignment))
	}
}

// createAssignment records who assigned a task to whom. The assigning user
// is taken from the token, and the task is updated to point at the new
// assignee.
func (h taskAssignmentHandler) createAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		callerID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		var req CreateTaskAssignmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode assignment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		task, err := h.taskRepo.FindByID(req.TaskItemID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task item", err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewBadRequestError("task item does not exist"))
			return
		}

		assigneeExists, err := h.userRepo.Exists(req.AssignedToUserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find assignee", "user", err))
			return
		}
		if !assigneeExists {
			h.responder.WriteError(w, errs.NewBadRequestError("assigned user does not exist"))
			return
		}

		assignment := models.TaskAssignment{
			ID:               uuid.New(),
			TaskItemID:       req.TaskItemID,
			AssignedToUserID: req.AssignedToUserID,
			AssignedByUserID: callerID,
			AssignedAt:       time.Now().UTC(),
			Comment:          req.Comment,
		}
		if err := h.assignmentRepo.Record(&assignment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create assignment", "task assignment", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/TaskAssignments/"+assignment.ID.String(), toTaskAssignmentDTO(&assignment))
	}
}

// updateAssignment amends the assignee or comment of an existing record
func (h taskAssignmentHandler) updateAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid assignmentID"))
			return
		}

		assignment, err := h.assignmentRepo.FindByID(assignmentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find assignment", "task assignment", err))
			return
		}
		if assignment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task assignment not found"))
			return
		}

		var req UpdateTaskAssignmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode assignment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
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
			assignment.AssignedToUserID = *req.AssignedToUserID
		}
		if req.Comment != nil {
			assignment.Comment = req.Comment
		}

		if err := h.assignmentRepo.Update(assignment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update assignment", "task assignment", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteAssignment removes an assignment record by ID
func (h taskAssignmentHandler) deleteAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid assignmentID"))
			return
		}

		assignment, err := h.assignmentRepo.FindByID(assignmentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find assignment", "task assignment", err))
			return
		}
		if assignment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task assignment not found"))
			return
		}

		if err := h.assignmentRepo.Delete(assignmentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete assignment", "task assignment", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
