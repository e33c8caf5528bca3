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

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	memberRepo  *database.ProjectMemberRepo
	userRepo    *database.UserRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, memberRepo *database.ProjectMemberRepo, userRepo *database.UserRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
	}
}

// ProjectDTO is the wire projection of a project
type ProjectDTO struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

func toProjectDTO(project *models.Project) ProjectDTO {
	memberIDs := make([]uuid.UUID, 0, len(project.Members))
	for _, m := range project.Members {
		memberIDs = append(memberIDs, m.UserID)
	}
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		MemberIDs:   memberIDs,
	}
}

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// UpdateProjectRequest carries optional fields for PUT and PATCH
type UpdateProjectRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// getAllProjects lists projects. Developer callers only see projects they
// are members of.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var projects []*models.Project
		if claims.Role == models.RoleDeveloper {
			callerID, err := claims.UserID()
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			projects, err = h.projectRepo.FindAllForMember(callerID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
				return
			}
		} else {
			projects, err = h.projectRepo.FindAll()
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
				return
			}
		}

		dtos := make([]ProjectDTO, 0, len(projects))
		for _, project := range projects {
			dtos = append(dtos, toProjectDTO(project))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

// getProject retrieves a project by ID, applying the membership rule for
// Developer callers.
func (h projectHandler) getProject() http.HandlerFunc {
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

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
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

		h.responder.WriteJSON(w, toProjectDTO(project))
	}
}

// createProject creates a project. A Manager caller is always recorded as
// the owner; other roles must name an existing owner.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}

		callerID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		if auth.MustOwnProject(claims.Role) {
			req.OwnerID = callerID
		}

		ownerExists, err := h.userRepo.Exists(req.OwnerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find owner", "user", err))
			return
		}
		if !ownerExists {
			h.responder.WriteError(w, errs.NewBadRequestError("owner user does not exist"))
			return
		}

		project := models.Project{
			ID:          uuid.New(),
			Name:        req.Name,
			Description: req.Description,
			OwnerID:     req.OwnerID,
		}
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/Projects/"+project.ID.String(), toProjectDTO(&project))
	}
}

// updateProject replaces the mutable fields of a project. A Manager caller
// must own the project.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyProjectUpdate(w, r, false)
	}
}

// patchProject applies only the provided fields and returns the updated DTO.
func (h projectHandler) patchProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyProjectUpdate(w, r, true)
	}
}

func (h projectHandler) applyProjectUpdate(w http.ResponseWriter, r *http.Request, respondWithBody bool) {
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

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
		return
	}
	if project == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
		return
	}

	callerID, err := claims.UserID()
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidTokenError())
		return
	}

	if auth.MustOwnProject(claims.Role) && project.OwnerID != callerID {
		h.responder.WriteError(w, errs.NewForbiddenError("managers may only modify their own projects"))
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode project request body")
		h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}

	if err := h.projectRepo.Update(project); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
		return
	}

	if respondWithBody {
		h.responder.WriteJSON(w, toProjectDTO(project))
		return
	}
	h.responder.WriteNoContent(w)
}

// deleteProject removes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
