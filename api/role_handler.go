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

type roleHandler struct {
	responder Responder
	logger    zerolog.Logger
	roleRepo  *database.RoleRepo
}

func newRoleHandler(roleRepo *database.RoleRepo) roleHandler {
	logger := log.With().Str("handlerName", "roleHandler").Logger()

	return roleHandler{
		responder: NewResponder(logger),
		logger:    logger,
		roleRepo:  roleRepo,
	}
}

// RoleDTO is the wire projection of a role
type RoleDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toRoleDTO(role *models.Role) RoleDTO {
	return RoleDTO{ID: role.ID, Name: role.Name}
}

// RoleRequest is the payload for creating or renaming a role
type RoleRequest struct {
	Name string `json:"name"`
}

func (h roleHandler) getAllRoles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := h.roleRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find roles", "roles", err))
			return
		}

		dtos := make([]RoleDTO, 0, len(roles))
		for _, role := range roles {
			dtos = append(dtos, toRoleDTO(role))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

func (h roleHandler) getRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := uuid.Parse(chi.URLParam(r, "roleID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid roleID"))
			return
		}

		role, err := h.roleRepo.FindByID(roleID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find role", "role", err))
			return
		}
		if role == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("role not found"))
			return
		}

		h.responder.WriteJSON(w, toRoleDTO(role))
	}
}

func (h roleHandler) createRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode role request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}

		role := models.Role{
			ID:   uuid.New(),
			Name: req.Name,
		}
		if err := h.roleRepo.Add(&role); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create role", "role", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/Roles/"+role.ID.String(), toRoleDTO(&role))
	}
}

// updateRole renames a role. The seeded SuperAdmin role cannot be renamed.
func (h roleHandler) updateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := uuid.Parse(chi.URLParam(r, "roleID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid roleID"))
			return
		}

		role, err := h.roleRepo.FindByID(roleID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find role", "role", err))
			return
		}
		if role == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("role not found"))
			return
		}

		if auth.IsProtectedRole(roleID) {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot modify SuperAdmin role"))
			return
		}

		var req RoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode role request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("name is required"))
			return
		}

		role.Name = req.Name
		if err := h.roleRepo.Update(role); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update role", "role", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteRole removes a role. The seeded SuperAdmin role cannot be deleted.
func (h roleHandler) deleteRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := uuid.Parse(chi.URLParam(r, "roleID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid roleID"))
			return
		}

		role, err := h.roleRepo.FindByID(roleID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find role", "role", err))
			return
		}
		if role == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("role not found"))
			return
		}

		if auth.IsProtectedRole(roleID) {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot delete SuperAdmin role"))
			return
		}

		if err := h.roleRepo.Delete(roleID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete role", "role", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
