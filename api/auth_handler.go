package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/backend/auth"
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/errs"
	"github.com/taskboard/backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	roleRepo  *database.RoleRepo
	tokens    auth.TokenService
}

func newAuthHandler(userRepo *database.UserRepo, roleRepo *database.RoleRepo, tokens auth.TokenService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		tokens:    tokens,
	}
}

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
}

// LoginRequest is the payload for exchanging credentials for a token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// register creates a new account. The role defaults to Developer; requesting
// the SuperAdmin role requires a bearer token already holding that role.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode register request body")
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

		roleID := models.RoleDeveloperID
		if req.RoleID != nil {
			roleID = *req.RoleID
		}

		if auth.IsProtectedRole(roleID) && !h.callerIsSuperAdmin(r) {
			h.responder.WriteError(w, errs.NewForbiddenError("only a SuperAdmin may register SuperAdmin accounts"))
			return
		}

		roleExists, err := h.roleRepo.Exists(roleID)
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
			RoleID:       roleID,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/Users/"+user.ID.String(), toUserDTO(&user))
	}
}

// login verifies credentials and returns a signed token. Unknown email and
// wrong password produce identical responses.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.Generate(user.ID, user.Email, user.Role.Name)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to generate token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: token})
	}
}

// callerIsSuperAdmin inspects an optional bearer token on an otherwise
// unauthenticated route.
func (h authHandler) callerIsSuperAdmin(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	claims, err := h.tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return false
	}
	return claims.Role == models.RoleSuperAdmin
}
