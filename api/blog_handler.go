package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/natakamm/My-Art-Gallery-BE/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Blog content bounds, enforced at creation.
const (
	blogTitleMinLen   = 2
	blogTitleMaxLen   = 150
	blogContentMinLen = 25
)

// blogStore is the slice of the database the blog handler needs.
type blogStore interface {
	FindAll(page, limit int) ([]*models.Blog, error)
	FindByID(id uuid.UUID) (*models.Blog, error)
	FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Blog, error)
	FindByOwner(ownerID uuid.UUID) ([]*models.Blog, error)
	Add(blog *models.Blog) error
	UpdateTitleContent(id uuid.UUID, title, content *string) error
	UpdateMainImage(id uuid.UUID, mainImage string) error
	UpdateImages(id uuid.UUID, images []string) error
	Delete(id uuid.UUID) error
	Save(blogID, userID uuid.UUID) (bool, error)
	Unsave(blogID, userID uuid.UUID) (bool, error)
}

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     blogStore
	blobs     storage.Store
}

func newBlogHandler(blogs blogStore, blobs storage.Store) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
		blobs:     blobs,
	}
}

// getAllBlogs lists blogs; inactive owners render as absent
// @Summary List blogs
// @Tags Blogs
// @Router /blog/all [get]
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pageParams(r)

		blogs, err := h.blogs.FindAll(page, limit)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blogs", err))
			return
		}
		if len(blogs) == 0 {
			h.responder.WriteMessage(w, "There are no active blogs here yet.")
			return
		}

		h.responder.WriteJSON(w, blogs)
	}
}

// getYourBlogs lists the caller's blogs
// @Summary Own blogs
// @Tags Blogs
// @Router /blog/your [get]
func (h blogHandler) getYourBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		blogs, err := h.blogs.FindByOwner(userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blogs", err))
			return
		}
		if len(blogs) == 0 {
			h.responder.WriteMessage(w, "You have no blogs yet.")
			return
		}

		h.responder.WriteJSON(w, blogs)
	}
}

// getOneBlog fetches one blog; 404 when absent or the owner is deactivated
// @Summary Get blog
// @Tags Blogs
// @Failure 404 {object} ErrorResponse "Unknown blog or inactive owner"
// @Router /blog/{blogID} [get]
func (h blogHandler) getOneBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}
		if blog.User == nil || !blog.User.IsActive {
			h.responder.WriteError(w, errs.NotFound("Blog was not found or user is inactive."))
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// getOneOfYourBlogs fetches one of the caller's own blogs
// @Summary Own blog
// @Tags Blogs
// @Router /blog/your/{blogID} [get]
func (h blogHandler) getOneOfYourBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		blog, err := h.blogs.FindByIDAndOwner(blogID, userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}

// createBlog creates a blog from a multipart form: title, content, one
// mainImage file and an optional gallery
// @Summary Create blog
// @Tags Blogs
// @Accept multipart/form-data
// @Success 201 {object} models.Blog
// @Router /blog/create [post]
func (h blogHandler) createBlog() http.HandlerFunc {
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
		content := r.FormValue("content")
		mainImages := r.MultipartForm.File["mainImage"]
		galleryFiles := r.MultipartForm.File["images"]

		var emptyFields []string
		if title == "" {
			emptyFields = append(emptyFields, "title")
		}
		if content == "" {
			emptyFields = append(emptyFields, "content")
		}
		if len(mainImages) == 0 {
			emptyFields = append(emptyFields, "mainImage")
		}
		if len(emptyFields) > 0 {
			e := errs.Validation("Please fill all fields")
			e.Field = emptyFields[0]
			h.responder.WriteError(w, e)
			return
		}

		if len(title) < blogTitleMinLen || len(title) > blogTitleMaxLen {
			h.responder.WriteError(w, errs.ValidationField("title",
				"Title must be between 2 and 150 characters."))
			return
		}
		if len(content) < blogContentMinLen {
			h.responder.WriteError(w, errs.ValidationField("content",
				"Content must be at least 25 characters long."))
			return
		}

		mainURL, mainKey, err := saveUpload(r.Context(), h.blobs, "blogs", mainImages[0])
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not store main image", err))
			return
		}
		galleryURLs, galleryKeys, err := saveUploads(r.Context(), h.blobs, "blogs", galleryFiles)
		if err != nil {
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, []string{mainKey},
				errs.Internal("could not store gallery images", err)))
			return
		}

		blog := models.Blog{
			Title:     title,
			Content:   content,
			MainImage: mainURL,
			Images:    galleryURLs,
			UserID:    userID,
		}
		if err := h.blogs.Add(&blog); err != nil {
			keys := append([]string{mainKey}, galleryKeys...)
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, keys,
				errs.FromStore("create", "blog", err)))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{
			"message": "Blog created successfully",
			"blog":    blog,
		})
	}
}

type titleContentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// updateTitleAndContent edits a blog's text fields (owner only)
// @Summary Update title/content
// @Tags Blogs
// @Router /blog/{blogID}/title-content [put]
func (h blogHandler) updateTitleAndContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		var req titleContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		if req.Content != nil && len(*req.Content) < blogContentMinLen {
			h.responder.WriteError(w, errs.ValidationField("content",
				"Content must be at least 25 characters long."))
			return
		}

		if err := h.blogs.UpdateTitleContent(blogID, req.Title, req.Content); err != nil {
			h.responder.WriteError(w, errs.FromStore("update", "blog", err))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Blog successfully updated.",
			"blog":    blog,
		})
	}
}

// updateMainImage replaces the single main image wholesale (owner only)
// @Summary Replace main image
// @Tags Blogs
// @Accept multipart/form-data
// @Router /blog/{blogID}/main-image [put]
func (h blogHandler) updateMainImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
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

		url, key, err := saveUpload(r.Context(), h.blobs, "blogs", header)
		if err != nil {
			h.responder.WriteError(w, errs.Internal("could not store main image", err))
			return
		}

		if err := h.blogs.UpdateMainImage(blogID, url); err != nil {
			h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, []string{key},
				errs.FromStore("update", "blog", err)))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Main Image successfully updated.",
			"blog":    blog,
		})
	}
}

// addImagesToGallery appends uploaded images to the gallery (owner only)
// @Summary Add gallery images
// @Tags Blogs
// @Accept multipart/form-data
// @Router /blog/{blogID}/images/add [put]
func (h blogHandler) addImagesToGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.Validation("File upload failed."))
			return
		}
		files := r.MultipartForm.File["images"]

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}

		if len(files) > 0 {
			urls, keys, err := saveUploads(r.Context(), h.blobs, "blogs", files)
			if err != nil {
				h.responder.WriteError(w, errs.Internal("could not store gallery images", err))
				return
			}

			images := append([]string(blog.Images), urls...)
			if err := h.blogs.UpdateImages(blogID, images); err != nil {
				h.responder.WriteError(w, rollbackUploads(r.Context(), h.blobs, keys,
					errs.FromStore("update", "blog", err)))
				return
			}
			blog.Images = images
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Images added successfully.",
			"blog":    blog,
		})
	}
}

// removeImagesFromGallery filters references out of the gallery, keeping
// survivor order (owner only)
// @Summary Remove gallery images
// @Tags Blogs
// @Router /blog/{blogID}/images/remove [delete]
func (h blogHandler) removeImagesFromGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		var req removeImagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Validation("malformed request body"))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}

		if len(req.Images) > 0 {
			remove := make(map[string]bool, len(req.Images))
			for _, img := range req.Images {
				remove[img] = true
			}
			var kept []string
			for _, img := range blog.Images {
				if !remove[img] {
					kept = append(kept, img)
				}
			}

			if err := h.blogs.UpdateImages(blogID, kept); err != nil {
				h.responder.WriteError(w, errs.FromStore("update", "blog", err))
				return
			}
			blog.Images = kept
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Images removed successfully.",
			"blog":    blog,
		})
	}
}

// deleteBlog removes a blog and every saved-list entry pointing at it
// (owner only)
// @Summary Delete blog
// @Tags Blogs
// @Router /blog/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		if err := h.blogs.Delete(blogID); err != nil {
			h.responder.WriteError(w, errs.FromStore("delete", "blog", err))
			return
		}

		h.responder.WriteMessage(w, "Blog has been deleted.")
	}
}

// saveBlog appends the blog to the caller's saved list. There is no
// mirrored field on the blog itself; the asymmetry with project likes is
// intentional.
// @Summary Save blog
// @Tags Blogs
// @Failure 403 {object} ErrorResponse "Own blog or already saved"
// @Router /blog/save/{blogID} [post]
func (h blogHandler) saveBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("find", "blog", err))
			return
		}
		if blog.UserID == userID {
			h.responder.WriteError(w, errs.Forbidden("You can't save your own blog posts."))
			return
		}

		saved, err := h.blogs.Save(blogID, userID)
		if err != nil {
			h.responder.WriteError(w, errs.FromStore("save", "blog", err))
			return
		}
		if !saved {
			h.responder.WriteError(w, errs.ToggleConflict("You already have saved this blog."))
			return
		}

		h.responder.WriteMessage(w, "Blog saved successfully!")
	}
}

// unsaveBlog removes the blog from the caller's saved list; removing an
// absent entry still succeeds
// @Summary Unsave blog
// @Tags Blogs
// @Router /blog/unsave/{blogID} [post]
func (h blogHandler) unsaveBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.Validation("invalid blogID"))
			return
		}

		if _, err := h.blogs.Unsave(blogID, userID); err != nil {
			h.responder.WriteError(w, errs.FromStore("unsave", "blog", err))
			return
		}

		h.responder.WriteMessage(w, "Blog removed from saved list!")
	}
}
