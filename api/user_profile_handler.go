package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/backend/auth"
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/errs"
	"github.com/taskboard/backend/models"
)

const (
	defaultProfilePageSize = 20
	maxProfilePageSize     = 100
)

type userProfileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.UserProfileRepo
	userRepo    *database.UserRepo
}

func newUserProfileHandler(profileRepo *database.UserProfileRepo, userRepo *database.UserRepo) userProfileHandler {
	logger := log.With().Str("handlerName", "userProfileHandler").Logger()

	return userProfileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// UserProfileDTO is the wire projection of a profile
type UserProfileDTO struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
}

func toUserProfileDTO(profile *models.UserProfile) UserProfileDTO {
	return UserProfileDTO{
		UserID:   profile.UserID,
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Address:  profile.Address,
	}
}

// ProfilePage is the paginated listing envelope
type ProfilePage struct {
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	TotalItems int64            `json:"totalItems"`
	Items      []UserProfileDTO `json:"items"`
}

// CreateUserProfileRequest is the payload for creating a profile
type CreateUserProfileRequest struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone,omitempty"`
	Address  string    `json:"address,omitempty"`
}

// UpdateUserProfileRequest carries optional fields for PUT and PATCH
type UpdateUserProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// getAllProfiles lists profiles with pagination and sorting. Only SuperAdmin
// may enumerate profiles across users.
func (h userProfileHandler) getAllProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if claims.Role != models.RoleSuperAdmin {
			h.responder.WriteError(w, errs.NewForbiddenError("only SuperAdmin may list all profiles"))
			return
		}

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid page", "page", raw))
				return
			}
			page = parsed
		}

		pageSize := defaultProfilePageSize
		if raw := r.URL.Query().Get("pageSize"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid pageSize", "pageSize", raw))
				return
			}
			if parsed > maxProfilePageSize {
				parsed = maxProfilePageSize
			}
			pageSize = parsed
		}

		sortBy := r.URL.Query().Get("sortBy")
		sortOrder := r.URL.Query().Get("sortOrder")

		profiles, total, err := h.profileRepo.FindPage(page, pageSize, sortBy, sortOrder)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find profiles", "user profiles", err))
			return
		}

		items := make([]UserProfileDTO, 0, len(profiles))
		for _, profile := range profiles {
			items = append(items, toUserProfileDTO(profile))
		}

		totalPages := int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}

		h.responder.WriteJSON(w, ProfilePage{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
			Items:      items,
		})
	}
}

// getProfile retrieves the profile of a user. Non-admin callers may only
// read their own profile.
func (h userProfileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

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
		if !auth.CanActOnProfile(claims.Role, callerID, userID) {
			h.responder.WriteError(w, errs.NewForbiddenError("cannot access another user's profile"))
			return
		}

		profile, err := h.profileRepo.FindByUserID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find profile", "user profile", err))
			return
		}
		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user profile not found"))
			return
		}

		h.responder.WriteJSON(w, toUserProfileDTO(profile))
	}
}

// createProfile persists a profile for a user. A user can only have one
// profile, and non-admin callers can only create their own.
func (h userProfileHandler) createProfile() http.HandlerFunc {
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

		var req CreateUserProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.FullName == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("full_name is required"))
			return
		}

		if !auth.CanActOnProfile(claims.Role, callerID, req.UserID) {
			h.responder.WriteError(w, errs.NewForbiddenError("cannot create a profile for another user"))
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

		taken, err := h.profileRepo.Exists(req.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find profile", "user profile", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewBadRequestError("profile already exists for this user"))
			return
		}

		profile := models.UserProfile{
			UserID:   req.UserID,
			FullName: req.FullName,
			Phone:    req.Phone,
			Address:  req.Address,
		}
		if err := h.profileRepo.Add(&profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create profile", "user profile", err))
			return
		}

		h.responder.WriteCreatedJSON(w, "/api/UserProfiles/"+profile.UserID.String(), toUserProfileDTO(&profile))
	}
}

func (h userProfileHandler) applyProfileUpdate(w http.ResponseWriter, r *http.Request, respondWithBody bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
		return
	}

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
	if !auth.CanActOnProfile(claims.Role, callerID, userID) {
		h.responder.WriteError(w, errs.NewForbiddenError("cannot modify another user's profile"))
		return
	}

	profile, err := h.profileRepo.FindByUserID(userID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find profile", "user profile", err))
		return
	}
	if profile == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("user profile not found"))
		return
	}

	var req UpdateUserProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode profile request body")
		h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
		return
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := h.profileRepo.Update(profile); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update profile", "user profile", err))
		return
	}

	if respondWithBody {
		h.responder.WriteJSON(w, toUserProfileDTO(profile))
		return
	}
	h.responder.WriteNoContent(w)
}

// updateProfile replaces the mutable fields of a profile
func (h userProfileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyProfileUpdate(w, r, false)
	}
}

// patchProfile applies a partial update and returns the result
func (h userProfileHandler) patchProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyProfileUpdate(w, r, true)
	}
}

// deleteProfile removes the profile of a user
func (h userProfileHandler) deleteProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

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
		if !auth.CanActOnProfile(claims.Role, callerID, userID) {
			h.responder.WriteError(w, errs.NewForbiddenError("cannot delete another user's profile"))
			return
		}

		profile, err := h.profileRepo.FindByUserID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find profile", "user profile", err))
			return
		}
		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user profile not found"))
			return
		}

		if err := h.profileRepo.Delete(userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete profile", "user profile", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
