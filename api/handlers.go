package api

import (
	"github.com/natakamm/My-Art-Gallery-BE/auth"
	"github.com/natakamm/My-Art-Gallery-BE/database"
	"github.com/natakamm/My-Art-Gallery-BE/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens auth.TokenService, blobs storage.Store) *routeHandlers {
	return &routeHandlers{
		userHandler:    newUserHandler(database.UserRepo(), tokens, blobs),
		projectHandler: newProjectHandler(database.ProjectRepo(), blobs),
		blogHandler:    newBlogHandler(database.BlogRepo(), blobs),
		commentHandler: newCommentHandler(database.CommentRepo()),
	}
}
