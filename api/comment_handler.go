package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// commentStore is the slice of the database the comment handler needs.
type commentStore interface {
	FindByID(id uuid.UUID) (*models.Comment, error)
	FindByProject(projectID uuid.UUID) ([]*models.Comment, error)
	FindByAuthor(authorID uuid.UUID) ([]*models.Comment, error)
	FindByAuthorAndProject(authorID, projectID uuid.UUID) ([]*models.Comment, error)
	Add(comment *models.Comment) error
	UpdateContent(id uuid.UUID, content string) (*models.Comment, error)
	Delete(id uuid.UUID) error
}

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	comments  commentStore
}

func newCommentHandler(comments commentStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		comments:  comments,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// getAllCommentsOnProject lists a project's comments, newest context last;
// comments from deactivated authors render without their author
// @Summary Project comments
// @Tags Comments
// @Router /comment/project/{projectID} [get]
func (h commentHandler) getAllCommentsOnProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		comments, err := h.comments.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "comments", err))
			return
		}
		if len(comments) == 0 {
			h.responder.WriteMessage(w, "No comments yet.")
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

// getAllYourComments lists every comment the caller has written
// @Summary Own comments
// @Tags Comments
// @Router /comment/your [get]
func (h commentHandler) getAllYourComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		comments, err := h.comments.FindByAuthor(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "comments", err))
			return
		}
		if len(comments) == 0 {
			h.responder.WriteMessage(w, "You have not commented on anything yet.")
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

// getYourCommentsOnProject lists the caller's comments on one project
// @Summary Own comments on project
// @Tags Comments
// @Router /comment/your/{projectID} [get]
func (h commentHandler) getYourCommentsOnProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		comments, err := h.comments.FindByAuthorAndProject(userID, projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "comments", err))
			return
		}
		if len(comments) == 0 {
			h.responder.WriteMessage(w, "You have not commented on this project yet.")
			return
		}

		h.responder.WriteJSON(w, comments)
	}
}

// createComment attaches a comment to an existing project
// @Summary Create comment
// @Tags Comments
// @Failure 404 {object} ErrorResponse "Unknown project"
// @Router /comment/create/{projectID} [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.ValidationField("content", "The comment needs content."))
			return
		}

		comment := models.Comment{
			Content:   req.Content,
			UserID:    userID,
			ProjectID: projectID,
		}
		if err := h.comments.Add(&comment); err != nil {
			// The only not-found the insert can surface is the project check.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NotFound("Project not found."))
				return
			}
			h.responder.WriteError(w, errs.FromStore("create", "comment", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "Comment added successfully.",
			"comment": comment,
		})
	}
}

// editComment rewrites a comment's content (author only, guarded upstream)
// @Summary Edit comment
// @Tags Comments
// @Router /comment/{commentID} [put]
func (h commentHandler) editComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid commentID"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.ValidationField("content", "The comment needs content."))
			return
		}

		comment, err := h.comments.UpdateContent(commentID, req.Content)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("update", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Comment updated.",
			"comment": comment,
		})
	}
}

// deleteYourComment removes one of the caller's own comments (guarded
// upstream by the ownership middleware)
// @Summary Delete own comment
// @Tags Comments
// @Router /comment/{commentID} [delete]
func (h commentHandler) deleteYourComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid commentID"))
			return
		}

		if err := h.comments.Delete(commentID); err != nil {
			h.responder.WriteError(w, errs.FromStore("delete", "comment", err))
			return
		}

		h.responder.WriteMessage(w, "Comment deleted.")
	}
}

// deleteCommentOnOwnProject lets a project owner moderate any comment on
// that project. Project ownership is guarded upstream; here the comment
// only has to exist and belong to the routed project.
// @Summary Moderate comment
// @Tags Comments
// @Failure 404 {object} ErrorResponse "Unknown comment"
// @Router /comment/projects/{projectID}/comments/{commentID} [delete]
func (h commentHandler) deleteCommentOnOwnProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}
		commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid commentID"))
			return
		}

		comment, err := h.comments.FindByID(commentID)
		if err != nil {
			h.responder.WriteError(w, errs.NotFound("Comment not found."))
			return
		}
		if comment.ProjectID != projectID {
			h.responder.WriteError(w, errs.NotFound("Comment not found."))
			return
		}

		if err := h.comments.Delete(commentID); err != nil {
			h.responder.WriteError(w, errs.FromStore("delete", "comment", err))
			return
		}

		h.responder.WriteMessage(w, "Comment deleted.")
	}
}
