package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/database"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, db database.Database) {
	ownership := newOwnershipMiddleware()

	projectLookup := func(id uuid.UUID) (owned, error) {
		return db.ProjectRepo().FindByID(id)
	}
	blogLookup := func(id uuid.UUID) (owned, error) {
		return db.BlogRepo().FindByID(id)
	}
	commentLookup := func(id uuid.UUID) (owned, error) {
		return db.CommentRepo().FindByID(id)
	}

	ownProject := ownership.require("project", "projectID", projectLookup)
	ownBlog := ownership.require("blog", "blogID", blogLookup)
	ownComment := ownership.require("comment", "commentID", commentLookup)

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", handlers.userHandler.signup())
		r.Post("/login", handlers.userHandler.login())
		r.Get("/all", handlers.userHandler.getAllUsers())
		r.Get("/{userID}", handlers.userHandler.getOtherUser())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/", handlers.userHandler.getProfile())
			r.Put("/profile/details", handlers.userHandler.editDetails())
			r.Put("/profile/avatar", handlers.userHandler.editAvatar())
			r.Delete("/delete-account", handlers.userHandler.deleteAccount())
			r.Put("/follow/{userID}", handlers.userHandler.follow())
			r.Put("/unfollow/{userID}", handlers.userHandler.unfollow())
		})
	})

	r.Route("/project", func(r chi.Router) {
		r.Get("/all-projects", handlers.projectHandler.getAllProjects())
		r.Get("/all-projects/{projectID}", handlers.projectHandler.getOneProject())
		r.Get("/by-user/{userID}", handlers.projectHandler.getUserProjects())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/your-projects", handlers.projectHandler.getYourProjects())
			r.Get("/your-projects/{projectID}", handlers.projectHandler.getOneOfYourProjects())
			r.Post("/create", handlers.projectHandler.createProject())
			r.Post("/like/{projectID}", handlers.projectHandler.likeProject())
			r.Post("/unlike/{projectID}", handlers.projectHandler.unlikeProject())

			r.Group(func(r chi.Router) {
				r.Use(ownProject)

				r.Put("/{projectID}/title-description", handlers.projectHandler.updateTitleAndDescription())
				r.Put("/{projectID}/main-image", handlers.projectHandler.updateMainImage())
				r.Put("/{projectID}/images/add", handlers.projectHandler.addImagesToGallery())
				r.Delete("/{projectID}/images/remove", handlers.projectHandler.removeImagesFromGallery())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})
		})
	})

	r.Route("/blog", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/all", handlers.blogHandler.getAllBlogs())
		r.Get("/your", handlers.blogHandler.getYourBlogs())
		r.Get("/your/{blogID}", handlers.blogHandler.getOneOfYourBlogs())
		r.Get("/{blogID}", handlers.blogHandler.getOneBlog())
		r.Post("/create", handlers.blogHandler.createBlog())
		r.Post("/save/{blogID}", handlers.blogHandler.saveBlog())
		r.Post("/unsave/{blogID}", handlers.blogHandler.unsaveBlog())

		r.Group(func(r chi.Router) {
			r.Use(ownBlog)

			r.Put("/{blogID}/title-content", handlers.blogHandler.updateTitleAndContent())
			r.Put("/{blogID}/main-image", handlers.blogHandler.updateMainImage())
			r.Put("/{blogID}/images/add", handlers.blogHandler.addImagesToGallery())
			r.Delete("/{blogID}/images/remove", handlers.blogHandler.removeImagesFromGallery())
			r.Delete("/{blogID}", handlers.blogHandler.deleteBlog())
		})
	})

	r.Route("/comment", func(r chi.Router) {
		// Listing lives under /project/{projectID} so the wildcard segment
		// stays unambiguous next to /{commentID}.
		r.Get("/project/{projectID}", handlers.commentHandler.getAllCommentsOnProject())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/your", handlers.commentHandler.getAllYourComments())
			r.Get("/your/{projectID}", handlers.commentHandler.getYourCommentsOnProject())
			r.Post("/create/{projectID}", handlers.commentHandler.createComment())
			r.With(ownComment).Put("/{commentID}", handlers.commentHandler.editComment())
			r.With(ownComment).Delete("/{commentID}", handlers.commentHandler.deleteYourComment())
			r.With(ownProject).Delete("/projects/{projectID}/comments/{commentID}",
				handlers.commentHandler.deleteCommentOnOwnProject())
		})
	})
}
