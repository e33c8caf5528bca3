package api

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/errs"
	"github.com/taskboard/backend/models"
)

var colorHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// TagDTO is the wire projection of a tag
type TagDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ColorHex string    `json:"color_hex"`
}

func toTagDTO(tag *models.Tag) TagDTO {
	return TagDTO{
		ID:       tag.ID,
		Name:     tag.Name,
		ColorHex: tag.ColorHex,
	}
}

// TagRequest is the payload for creating or updating a tag
type TagRequest struct {
	Name     string `json:"name"`
	ColorHex string `json:"color_hex,omitempty"`
}

// getAllTags lists every tag
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		dtos := make([]TagDTO, 0, len(tags))
		for _, tag := range tags {
			dtos = append(dtos, toTagDTO(tag))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

// getTag retrieves a tag by ID
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		h.responder.WriteJSON(w, toTagDTO(tag))
	}
}

// createTag persists a new tag
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}
		if req.ColorHex == "" {
			req.ColorHex = "#000000"
		}
		if !colorHexPattern.MatchString(req.ColorHex) {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid color", "color_hex", req.ColorHex))
			return
		}

		tag := models.Tag{
			ID:       uuid.New(),
			Name:     req.Name,
			ColorHex: req.ColorHex,
		}
		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tag", "tag", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/Tags/"+tag.ID.String(), toTagDTO(&tag))
	}
}

// updateTag replaces the mutable fields of a tag
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name != "" {
			tag.Name = req.Name
		}
		if req.ColorHex != "" {
			if !colorHexPattern.MatchString(req.ColorHex) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid color", "color_hex", req.ColorHex))
				return
			}
			tag.ColorHex = req.ColorHex
		}

		if err := h.tagRepo.Update(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update tag", "tag", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteTag removes a tag by ID
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		if err := h.tagRepo.Delete(tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete tag", "tag", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
