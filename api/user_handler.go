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

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	roleRepo  *database.RoleRepo
}

func newUserHandler(userRepo *database.UserRepo, roleRepo *database.RoleRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
	}
}

// UserDTO is the wire projection of a user, without the password hash
type UserDTO struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	RoleID uuid.UUID `json:"role_id"`
	Role   string    `json:"role,omitempty"`
}

func toUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Email:  user.Email,
		RoleID: user.RoleID,
		Role:   user.Role.Name,
	}
}

// CreateUserRequest is the payload for creating a user directly
type CreateUserRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	RoleID   uuid.UUID `json:"role_id"`
}

// UpdateUserRequest carries optional fields for PUT and PATCH
type UpdateUserRequest struct {
	Email    string     `json:"email,omitempty"`
	Password string     `json:"password,omitempty"`
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
}

// getAllUsers retrieves all users with their roles
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find users", "users", err))
			return
		}

		dtos := make([]UserDTO, 0, len(users))
		for _, user := range users {
			dtos = append(dtos, toUserDTO(user))
		}

		h.responder.WriteJSON(w, dtos)
	}
}

// getUser retrieves a specific user by ID
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, toUserDTO(user))
	}
}

// createUser creates a new user with a hashed password
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email is required"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("password is required"))
			return
		}

		roleExists, err := h.roleRepo.Exists(req.RoleID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find role", "role", err))
			return
		}
		if !roleExists {
			h.responder.WriteError(w, errs.NewBadRequestError("role does not exist"))
			return
		}

		taken, err := h.userRepo.EmailTaken(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewBadRequestError("email already registered"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := models.User{
			ID:           uuid.New(),
			Email:        req.Email,
			PasswordHash: hash,
			RoleID:       req.RoleID,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/Users/"+user.ID.String(), toUserDTO(&user))
	}
}

// applyUserUpdate merges the provided fields onto the stored user.
func (h userHandler) applyUserUpdate(user *models.User, req UpdateUserRequest) error {
	if req.Email != "" && req.Email != user.Email {
		taken, err := h.userRepo.EmailTaken(req.Email)
		if err != nil {
			return wrapDatabaseError("find user", "user", err)
		}
		if taken {
			return errs.NewBadRequestError("email already registered")
		}
		user.Email = req.Email
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return errs.NewInternalErrorWithCause("failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	if req.RoleID != nil {
		if auth.IsProtectedRole(*req.RoleID) {
			return errs.NewBadRequestError("cannot assign SuperAdmin role")
		}
		roleExists, err := h.roleRepo.Exists(*req.RoleID)
		if err != nil {
			return wrapDatabaseError("find role", "role", err)
		}
		if !roleExists {
			return errs.NewBadRequestError("role does not exist")
		}
		user.RoleID = *req.RoleID
		user.Role = models.Role{}
	}

	return nil
}

// updateUser replaces the mutable fields of a user
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.applyUserUpdate(user, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// patchUser applies only the provided fields and returns the updated DTO
func (h userHandler) patchUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.applyUserUpdate(user, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		// reload to pick up the Role association; the row can vanish
		// under a concurrent delete
		updated, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated user", "user", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, toUserDTO(updated))
	}
}

// deleteUser removes a user. The account holding the SuperAdmin role is
// protected.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		if auth.IsProtectedRole(user.RoleID) {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot delete SuperAdmin"))
			return
		}

		if err := h.userRepo.Delete(userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete user", "user", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
