package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/natakamm/My-Art-Gallery-BE/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// projectStore is the slice of the database the project handler needs.
type projectStore interface {
	FindAll(page, limit int) ([]*models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Project, error)
	FindByOwner(ownerID uuid.UUID) ([]*models.Project, error)
	Add(project *models.Project) error
	UpdateTitleDescription(id uuid.UUID, title, description *string) error
	UpdateMainImage(id uuid.UUID, mainImage string) error
	UpdateImages(id uuid.UUID, images []string) error
	Delete(id uuid.UUID) error
	Like(projectID, userID uuid.UUID) (bool, error)
	Unlike(projectID, userID uuid.UUID) (bool, error)
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
	blobs     storage.Store
}

func newProjectHandler(projects projectStore, blobs storage.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		blobs:     blobs,
	}
}

// pageParams reads ?page= and ?limit= with the listing defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// getAllProjects lists projects; inactive owners render as absent
// @Summary List projects
// @Tags Projects
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Router /project/all-projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pageParams(r)

		projects, err := h.projects.FindAll(page, limit)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "projects", err))
			return
		}
		if len(projects) == 0 {
			h.responder.WriteMessage(w, "There are no active projects here yet.")
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getOneProject fetches one project; 404 when absent or when the owner is
// deactivated
// @Summary Get project
// @Tags Projects
// @Failure 404 {object} ErrorResponse "Unknown project or inactive owner"
// @Router /project/all-projects/{projectID} [get]
func (h projectHandler) getOneProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}
		if project.User == nil || !project.User.IsActive {
			h.responder.WriteError(w, errs.NotFound("Project was not found or user is inactive."))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getUserProjects lists one user's projects
// @Summary Projects by user
// @Tags Projects
// @Router /project/by-user/{userID} [get]
func (h projectHandler) getUserProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid userID"))
			return
		}

		projects, err := h.projects.FindByOwner(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "projects", err))
			return
		}
		if len(projects) == 0 {
			h.responder.WriteError(w, errs.NotFound("There are no projects for this user."))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getYourProjects lists the caller's projects
// @Summary Own projects
// @Tags Projects
// @Router /project/your-projects [get]
func (h projectHandler) getYourProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		projects, err := h.projects.FindByOwner(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "projects", err))
			return
		}
		if len(projects) == 0 {
			h.responder.WriteMessage(w, "You have no projects yet.")
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getOneOfYourProjects fetches one of the caller's own projects
// @Summary Own project
// @Tags Projects
// @Router /project/your-projects/{projectID} [get]
func (h projectHandler) getOneOfYourProjects() http.HandlerFunc {
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

		project, err := h.projects.FindByIDAndOwner(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a project from a multipart form: title, description,
// one mainImage file and at least one gallery image
// @Summary Create project
// @Tags Projects
// @Accept multipart/form-data
// @Success 201 {object} models.Project
// @Router /project/create [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.Validation("File upload failed."))
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		mainImages := r.MultipartForm.File["mainImage"]
		galleryFiles := r.MultipartForm.File["images"]

		var emptyFields []string
		if title == "" {
			emptyFields = append(emptyFields, "title")
		}
		if description == "" {
			emptyFields = append(emptyFields, "description")
		}
		if len(mainImages) == 0 {
			emptyFields = append(emptyFields, "mainImage")
		}
		if len(galleryFiles) == 0 {
			emptyFields = append(emptyFields, "images")
		}
		if len(emptyFields) > 0 {
			e := errs.Validation("Please fill all fields")
			e.Field = emptyFields[0]
			h.responder.WriteError(w, e)
			return
		}

		mainURL, mainKey, err := saveUpload(r.Context(), h.blobs, "projects", mainImages[0])
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not store main image", err))
			return
		}
		galleryURLs, galleryKeys, err := saveUploads(r.Context(), h.blobs, "projects", galleryFiles)
		if err != nil {
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, []string{mainKey},
				errs.Internal("could not store gallery images", err)))
			return
		}

		project := models.Project{
			Title:       title,
			Description: &description,
			MainImage:   mainURL,
			Images:      galleryURLs,
			UserID:      userID,
		}
		if err := h.projects.Add(&project); err != nil {
			keys := append([]string{mainKey}, galleryKeys...)
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, keys,
				errs.FromStore("create", "project", err)))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "Project created successfully",
			"project": project,
		})
	}
}

type titleDescriptionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// updateTitleAndDescription edits a project's text fields (owner only)
// @Summary Update title/description
// @Tags Projects
// @Router /project/{projectID}/title-description [put]
func (h projectHandler) updateTitleAndDescription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		var req titleDescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		if err := h.projects.UpdateTitleDescription(projectID, req.Title, req.Description); err != nil {
			h.responder.WriteError(w, errs.FromStore("update", "project", err))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Project successfully updated.",
			"project": project,
		})
	}
}

// updateMainImage replaces the single main image wholesale (owner only)
// @Summary Replace main image
// @Tags Projects
// @Accept multipart/form-data
// @Router /project/{projectID}/main-image [put]
func (h projectHandler) updateMainImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.Validation("No mainImage file provided."))
			return
		}
		_, header, err := r.FormFile("mainImage")
		if err != nil {
			h.responder.WriteError(w, errs.Validation("No mainImage file provided."))
			return
		}

		url, key, err := saveUpload(r.Context(), h.blobs, "projects", header)
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not store main image", err))
			return
		}

		if err := h.projects.UpdateMainImage(projectID, url); err != nil {
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, []string{key},
				errs.FromStore("update", "project", err)))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Main Image successfully updated.",
			"project": project,
		})
	}
}

// addImagesToGallery appends uploaded images to the ordered gallery (owner
// only); existing entries are never replaced
// @Summary Add gallery images
// @Tags Projects
// @Accept multipart/form-data
// @Router /project/{projectID}/images/add [put]
func (h projectHandler) addImagesToGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.Validation("File upload failed."))
			return
		}
		files := r.MultipartForm.File["images"]

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}

		if len(files) > 0 {
			urls, keys, err := saveUploads(r.Context(), h.blobs, "projects", files)
			if err != nil {
				h.responder.WriteError(w, errs.Internal("could not store gallery images", err))
				return
			}

			images := append([]string(project.Images), urls...)
			if err := h.projects.UpdateImages(projectID, images); err != nil {
				h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, keys,
					errs.FromStore("update", "project", err)))
				return
			}
			project.Images = images
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Images added successfully.",
			"project": project,
		})
	}
}

type removeImagesRequest struct {
	Images []string `json:"images"`
}

// removeImagesFromGallery filters the given references out of the gallery,
// preserving the relative order of the survivors (owner only)
// @Summary Remove gallery images
// @Tags Projects
// @Router /project/{projectID}/images/remove [delete]
func (h projectHandler) removeImagesFromGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		var req removeImagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}

		if len(req.Images) > 0 {
			remove := make(map[string]bool, len(req.Images))
			for _, img := range req.Images {
				remove[img] = true
			}
			var kept []string
			for _, img := range project.Images {
				if !remove[img] {
					kept = append(kept, img)
				}
			}

			if err := h.projects.UpdateImages(projectID, kept); err != nil {
				h.responder.WriteError(w, errs.FromStore("update", "project", err))
				return
			}
			project.Images = kept
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Images removed successfully.",
			"project": project,
		})
	}
}

// deleteProject removes a project with its likes and comments (owner only)
// @Summary Delete project
// @Tags Projects
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid projectID"))
			return
		}

		if err := h.projects.Delete(projectID); err != nil {
			h.responder.WriteError(w, errs.FromStore("delete", "project", err))
			return
		}

		h.responder.WriteMessage(w, "Project has been deleted.")
	}
}

// likeProject adds the caller to the project's likes; the same write adds
// the project to the caller's favorites
// @Summary Like project
// @Tags Projects
// @Failure 403 {object} ErrorResponse "Own project or already liked"
// @Failure 404 {object} ErrorResponse "Unknown project"
// @Router /project/like/{projectID} [post]
func (h projectHandler) likeProject() http.HandlerFunc {
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

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}
		if project.UserID == userID {
			h.responder.WriteError(w, errs.Forbidden("You can't like your own project."))
			return
		}

		liked, err := h.projects.Like(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("like", "project", err))
			return
		}
		if !liked {
			h.responder.WriteError(w, errs.ToggleConflict("You have already liked this project."))
			return
		}

		h.responder.WriteMessage(w, "Project liked successfully.")
	}
}

// unlikeProject removes the caller from the project's likes and the project
// from the caller's favorites
// @Summary Unlike project
// @Tags Projects
// @Failure 403 {object} ErrorResponse "Not liked yet"
// @Router /project/unlike/{projectID} [post]
func (h projectHandler) unlikeProject() http.HandlerFunc {
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

		if _, err := h.projects.FindByID(projectID); err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "project", err))
			return
		}

		removed, err := h.projects.Unlike(projectID, userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("unlike", "project", err))
			return
		}
		if !removed {
			h.responder.WriteError(w, errs.ToggleConflict("You have not liked this project yet."))
			return
		}

		h.responder.WriteMessage(w, "Project removed from likes successfully.")
	}
}
