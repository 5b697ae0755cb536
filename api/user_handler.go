package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/auth"
	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/natakamm/My-Art-Gallery-BE/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// userStore is the slice of the database the user handler needs.
type userStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
	ProfileByID(id uuid.UUID) (*models.User, error)
	FindActiveProfileByID(id uuid.UUID) (*models.User, error)
	FindActiveByIdentifier(identifier string) (*models.User, error)
	ActiveEmailExists(email string) (bool, error)
	ActiveUsernameExists(username string) (bool, error)
	EmailTakenByOther(email string, id uuid.UUID) (bool, error)
	UsernameTakenByOther(username string, id uuid.UUID) (bool, error)
	Add(user *models.User) error
	UpdateDetails(id uuid.UUID, updates map[string]any) (*models.User, error)
	UpdateAvatar(id uuid.UUID, avatar string) error
	Deactivate(id uuid.UUID) error
	ListActive() ([]*models.User, error)
	Follow(followerID, followeeID uuid.UUID) (bool, error)
	Unfollow(followerID, followeeID uuid.UUID) (bool, error)
}

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     userStore
	tokens    auth.TokenService
	blobs     storage.Store
}

func newUserHandler(users userStore, tokens auth.TokenService, blobs storage.Store) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
		blobs:     blobs,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type sessionResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// signup creates a new account
// @Summary Sign up
// @Tags Users
// @Success 200 {object} sessionResponse
// @Failure 400 {object} ErrorResponse "Validation or duplicate email/username"
// @Router /user/signup [post]
func (h userHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		if req.Email == "" || req.Password == "" || req.Username == "" {
			h.responder.WriteError(w, errs.Validation("All fields must be filled."))
			return
		}
		if err := auth.ValidateEmail(req.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := auth.ValidatePassword(req.Password); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Only active holders block the address: a deactivated account's
		// email or username may be claimed again.
		if taken, err := h.users.ActiveEmailExists(req.Email); err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "user", err))
			return
		} else if taken {
			h.responder.WriteError(w, errs.Conflict("Email already in use."))
			return
		}
		if taken, err := h.users.ActiveUsernameExists(req.Username); err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "user", err))
			return
		} else if taken {
			h.responder.WriteError(w, errs.Conflict("Username is already taken."))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not hash password", err))
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Avatar:       models.DefaultAvatar,
			IsActive:     true,
		}
		if err := h.users.Add(&user); err != nil {
			h.responder.WriteError(w, errs.FromStore("create", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID, user.Username)
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not issue token", err))
			return
		}

		h.responder.WriteJSON(w, sessionResponse{Username: user.Username, Token: token})
	}
}

// login exchanges credentials for a session token
// @Summary Log in
// @Tags Users
// @Success 200 {object} sessionResponse
// @Failure 401 {object} ErrorResponse "Unknown identifier or wrong password"
// @Router /user/login [post]
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		if req.Identifier == "" || req.Password == "" {
			h.responder.WriteError(w, errs.Validation("All fields must be filled."))
			return
		}

		user, err := h.users.FindActiveByIdentifier(req.Identifier)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Incorrect username or email."))
			return
		}
		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.Unauthorized("Incorrect password."))
			return
		}

		token, err := h.tokens.Issue(user.ID, user.Username)
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not issue token", err))
			return
		}

		h.responder.WriteJSON(w, sessionResponse{Username: user.Username, Token: token})
	}
}

// getProfile returns the caller's full profile with all relation sets
// @Summary Own profile
// @Tags Users
// @Router /user [get]
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		user, err := h.users.ProfileByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// getAllUsers lists active users (username and avatar only)
// @Summary List users
// @Tags Users
// @Router /user/all [get]
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.users.ListActive()
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "users", err))
			return
		}
		if len(users) == 0 {
			h.responder.WriteError(w, errs.NotFound("No users found."))
			return
		}

		h.responder.WriteJSON(w, users)
	}
}

// getOtherUser returns one active user's public profile
// @Summary Public profile
// @Tags Users
// @Failure 404 {object} ErrorResponse "Unknown or deactivated user"
// @Router /user/{userID} [get]
func (h userHandler) getOtherUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid userID"))
			return
		}

		user, err := h.users.FindActiveProfileByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

type editDetailsRequest struct {
	Email       *string `json:"email"`
	Username    *string `json:"username"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
}

// editDetails edits the caller's profile fields
// @Summary Edit profile
// @Tags Users
// @Failure 400 {object} ErrorResponse "Email or username already in use"
// @Router /user/profile/details [put]
func (h userHandler) editDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		var req editDetailsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		updates := map[string]any{}
		if req.Email != nil && *req.Email != "" {
			if err := auth.ValidateEmail(*req.Email); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			taken, err := h.users.EmailTakenByOther(*req.Email, userID)
			if err != nil {
				h.responder.WriteError(w, errs.FromStore("find", "user", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.Conflict("Email is already in use"))
				return
			}
			updates["email"] = *req.Email
		}
		if req.Username != nil && *req.Username != "" {
			taken, err := h.users.UsernameTakenByOther(*req.Username, userID)
			if err != nil {
				h.responder.WriteError(w, errs.FromStore("find", "user", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.Conflict("Username is already in use"))
				return
			}
			updates["username"] = *req.Username
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Location != nil {
			updates["location"] = *req.Location
		}
		if req.Website != nil {
			updates["website"] = *req.Website
		}

		user, err := h.users.UpdateDetails(userID, updates)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// editAvatar replaces the caller's avatar with an uploaded image
// @Summary Replace avatar
// @Tags Users
// @Accept multipart/form-data
// @Router /user/profile/avatar [put]
func (h userHandler) editAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.Validation("No avatar file provided."))
			return
		}
		_, header, err := r.FormFile("avatar")
		if err != nil {
			h.responder.WriteError(w, errs.Validation("No avatar file provided."))
			return
		}

		url, key, err := saveUpload(r.Context(), h.blobs, "avatars", header)
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not store avatar", err))
			return
		}

		if err := h.users.UpdateAvatar(userID, url); err != nil {
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, []string{key},
				errs.FromStore("update", "user", err)))
			return
		}

		user, err := h.users.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "User profile picture updated",
			"user":    user,
		})
	}
}

// deleteAccount soft-deletes the caller's account
// @Summary Deactivate account
// @Tags Users
// @Router /user/delete-account [delete]
func (h userHandler) deleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		if err := h.users.Deactivate(userID); err != nil {
			h.responder.WriteError(w, errs.FromStore("deactivate", "user", err))
			return
		}

		h.responder.WriteMessage(w, "User account deactivated")
	}
}

// follow adds the caller to another user's followers
// @Summary Follow user
// @Tags Users
// @Failure 400 {object} ErrorResponse "Self-follow or already following"
// @Failure 404 {object} ErrorResponse "Unknown user"
// @Router /user/follow/{userID} [put]
func (h userHandler) follow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid userID"))
			return
		}
		if targetID == callerID {
			h.responder.WriteError(w, errs.Validation("You can't follow yourself."))
			return
		}

		if _, err := h.users.FindByID(targetID); err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "user", err))
			return
		}

		followed, err := h.users.Follow(callerID, targetID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("follow", "user", err))
			return
		}
		if !followed {
			h.responder.WriteError(w, errs.Conflict("You are already following this user."))
			return
		}

		h.responder.WriteMessage(w, "Followed successfully")
	}
}

// unfollow removes the caller from another user's followers. Removing an
// absent relation succeeds, so a retried unfollow never surfaces a partial
// state.
// @Summary Unfollow user
// @Tags Users
// @Router /user/unfollow/{userID} [put]
func (h userHandler) unfollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid userID"))
			return
		}

		if _, err := h.users.Unfollow(callerID, targetID); err != nil {
			h.responder.WriteError(w, errs.FromStore("unfollow", "user", err))
			return
		}

		h.responder.WriteMessage(w, "Unfollowed successfully")
	}
}
