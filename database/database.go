package database

import (
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo    *UserRepo
	projectRepo *ProjectRepo
	blogRepo    *BlogRepo
	commentRepo *CommentRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		projectRepo: NewProjectRepo(db),
		blogRepo:    NewBlogRepo(db),
		commentRepo: NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

// Migrate creates or updates the schema for every model, join tables
// included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Blog{},
		&models.Comment{},
		&models.UserFollow{},
		&models.ProjectLike{},
		&models.BlogSave{},
	)
}
