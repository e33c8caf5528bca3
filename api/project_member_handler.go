package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/backend/auth"
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/errs"
	"github.com/taskboard/backend/models"
)

type projectMemberHandler struct {
	responder   Responder
	logger      zerolog.Logger
	memberRepo  *database.ProjectMemberRepo
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
}

func newProjectMemberHandler(memberRepo *database.ProjectMemberRepo, projectRepo *database.ProjectRepo, userRepo *database.UserRepo) projectMemberHandler {
	logger := log.With().Str("handlerName", "projectMemberHandler").Logger()

	return projectMemberHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		memberRepo:  memberRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ProjectMemberDTO is the wire projection of a project membership
type ProjectMemberDTO struct {
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
}

func toProjectMemberDTO(member *models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{ProjectID: member.ProjectID, UserID: member.UserID}
}

// CreateProjectMemberRequest is the payload for adding a user to a project
type CreateProjectMemberRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
}

// getAllMembers lists memberships. Developer callers only see members of
// projects they belong to.
func (h projectMemberHandler) getAllMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var members []*models.ProjectMember
		if claims.Role == models.RoleDeveloper {
			callerID, err := claims.UserID()
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			members, err = h.memberRepo.FindAllVisibleTo(callerID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find members", "project members", err))
				return
			}
		} else {
			members, err = h.memberRepo.FindAll()
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find members", "project members", err))
				return
			}
		}

		dtos := make([]ProjectMemberDTO, 0, len(members))
		for _, member := range members {
			dtos = append(dtos, toProjectMemberDTO(member))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

// getMember retrieves a membership by its composite key
func (h projectMemberHandler) getMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		member, err := h.memberRepo.FindByKey(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find member", "project member", err))
			return
		}
		if member == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project member not found"))
			return
		}

		callerID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		isMember, err := h.memberRepo.IsMember(projectID, callerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find membership", "project member", err))
			return
		}
		if !auth.CanViewProject(claims.Role, isMember) {
			h.responder.WriteError(w, errs.NewForbiddenError("not a member of this project"))
			return
		}

		h.responder.WriteJSON(w, toProjectMemberDTO(member))
	}
}

// createMember adds a user to a project, rejecting duplicates
func (h projectMemberHandler) createMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project member request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
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

		userExists, err := h.userRepo.Exists(req.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if !userExists {
			h.responder.WriteError(w, errs.NewBadRequestError("user does not exist"))
			return
		}

		exists, err := h.memberRepo.IsMember(req.ProjectID, req.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find member", "project member", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewBadRequestError("member already exists"))
			return
		}

		member := models.ProjectMember{
			ProjectID: req.ProjectID,
			UserID:    req.UserID,
		}
		if err := h.memberRepo.Add(&member); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create member", "project member", err))
			return
		}

		location := "/api/ProjectMembers/" + member.ProjectID.String() + "/" + member.UserID.String()
		h.responder.WriteCreatedJSON(w, location, toProjectMemberDTO(&member))
	}
}

// updateMember replaces a membership by its composite key. The join row
// carries no mutable columns beyond its key, so a successful update only
// confirms the pair exists.
func (h projectMemberHandler) updateMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		member, err := h.memberRepo.FindByKey(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find member", "project member", err))
			return
		}
		if member == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project member not found"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteMember removes a membership by its composite key
func (h projectMemberHandler) deleteMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		member, err := h.memberRepo.FindByKey(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find member", "project member", err))
			return
		}
		if member == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project member not found"))
			return
		}

		if err := h.memberRepo.Delete(projectID, userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete member", "project member", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
