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

type taskTagHandler struct {
	responder   Responder
	logger      zerolog.Logger
	taskTagRepo *database.TaskTagRepo
	taskRepo    *database.TaskItemRepo
	tagRepo     *database.TagRepo
}

func newTaskTagHandler(taskTagRepo *database.TaskTagRepo, taskRepo *database.TaskItemRepo, tagRepo *database.TagRepo) taskTagHandler {
	logger := log.With().Str("handlerName", "taskTagHandler").Logger()

	return taskTagHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		taskTagRepo: taskTagRepo,
		taskRepo:    taskRepo,
		tagRepo:     tagRepo,
	}
}

// TaskTagDTO is the wire projection of a task-tag link
type TaskTagDTO struct {
	TaskItemID uuid.UUID `json:"task_item_id"`
	TagID      uuid.UUID `json:"tag_id"`
}

func toTaskTagDTO(taskTag *models.TaskTag) TaskTagDTO {
	return TaskTagDTO{
		TaskItemID: taskTag.TaskItemID,
		TagID:      taskTag.TagID,
	}
}

// TaskTagRequest names the task and tag to link
type TaskTagRequest struct {
	TaskItemID uuid.UUID `json:"task_item_id"`
	TagID      uuid.UUID `json:"tag_id"`
}

// getAllTaskTags lists every task-tag link
func (h taskTagHandler) getAllTaskTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskTags, err := h.taskTagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task tags", "task tags", err))
			return
		}

		dtos := make([]TaskTagDTO, 0, len(taskTags))
		for _, taskTag := range taskTags {
			dtos = append(dtos, toTaskTagDTO(taskTag))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

func (h taskTagHandler) parseKey(r *http.Request) (uuid.UUID, uuid.UUID, *errs.ApiErr) {
	taskItemID, err := uuid.Parse(chi.URLParam(r, "taskItemID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.NewBadRequestError("invalid taskItemID")
	}
	tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.NewBadRequestError("invalid tagID")
	}
	return taskItemID, tagID, nil
}

// getTaskTag retrieves a link by its composite key
func (h taskTagHandler) getTaskTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskItemID, tagID, apiErr := h.parseKey(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		taskTag, err := h.taskTagRepo.FindByKey(taskItemID, tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task tag", "task tag", err))
			return
		}
		if taskTag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task tag not found"))
			return
		}

		h.responder.WriteJSON(w, toTaskTagDTO(taskTag))
	}
}

// createTaskTag attaches a tag to a task. Attaching the same tag twice is
// rejected.
func (h taskTagHandler) createTaskTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TaskTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode task tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		taskExists, err := h.taskRepo.Exists(req.TaskItemID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task", "task item", err))
			return
		}
		if !taskExists {
			h.responder.WriteError(w, errs.NewBadRequestError("task item does not exist"))
			return
		}

		tagExists, err := h.tagRepo.Exists(req.TagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if !tagExists {
			h.responder.WriteError(w, errs.NewBadRequestError("tag does not exist"))
			return
		}

		linked, err := h.taskTagRepo.Exists(req.TaskItemID, req.TagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task tag", "task tag", err))
			return
		}
		if linked {
			h.responder.WriteError(w, errs.NewBadRequestError("tag is already assigned to this task"))
			return
		}

		taskTag := models.TaskTag{
			TaskItemID: req.TaskItemID,
			TagID:      req.TagID,
		}
		if err := h.taskTagRepo.Add(&taskTag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create task tag", "task tag", err))
			return
		}

		location := "/api/TaskTags/" + taskTag.TaskItemID.String() + "/" + taskTag.TagID.String()
		h.responder.WriteCreatedJSON(w, location, toTaskTagDTO(&taskTag))
	}
}

// patchTaskTag moves a link to a different task or tag. Both halves of the
// key can change, so the old row is replaced in one transaction.
func (h taskTagHandler) patchTaskTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskItemID, tagID, apiErr := h.parseKey(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		taskTag, err := h.taskTagRepo.FindByKey(taskItemID, tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task tag", "task tag", err))
			return
		}
		if taskTag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task tag not found"))
			return
		}

		var req TaskTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode task tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		newTaskItemID := taskItemID
		if req.TaskItemID != uuid.Nil {
			newTaskItemID = req.TaskItemID
		}
		newTagID := tagID
		if req.TagID != uuid.Nil {
			newTagID = req.TagID
		}

		if newTaskItemID != taskItemID {
			taskExists, err := h.taskRepo.Exists(newTaskItemID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find task", "task item", err))
				return
			}
			if !taskExists {
				h.responder.WriteError(w, errs.NewBadRequestError("task item does not exist"))
				return
			}
		}
		if newTagID != tagID {
			tagExists, err := h.tagRepo.Exists(newTagID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
				return
			}
			if !tagExists {
				h.responder.WriteError(w, errs.NewBadRequestError("tag does not exist"))
				return
			}
		}

		if newTaskItemID != taskItemID || newTagID != tagID {
			linked, err := h.taskTagRepo.Exists(newTaskItemID, newTagID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find task tag", "task tag", err))
				return
			}
			if linked {
				h.responder.WriteError(w, errs.NewBadRequestError("tag is already assigned to this task"))
				return
			}
		}

		updated := models.TaskTag{TaskItemID: newTaskItemID, TagID: newTagID}
		if err := h.taskTagRepo.Rekey(taskItemID, tagID, &updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update task tag", "task tag", err))
			return
		}

		h.responder.WriteJSON(w, toTaskTagDTO(&updated))
	}
}

// deleteTaskTag detaches a tag from a task
func (h taskTagHandler) deleteTaskTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskItemID, tagID, apiErr := h.parseKey(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		taskTag, err := h.taskTagRepo.FindByKey(taskItemID, tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find task tag", "task tag", err))
			return
		}
		if taskTag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("task tag not found"))
			return
		}

		if err := h.taskTagRepo.Delete(taskItemID, tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete task tag", "task tag", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
