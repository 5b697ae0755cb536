package database

import (
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by its ID
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByProject returns all comments on a project, oldest first, with
// inactive authors rendered absent.
func (r *CommentRepo) FindByProject(projectID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Preload("User", activeUsers).
		Where("project_id = ?", projectID).
		Find(&comments).Error
	return comments, err
}

// FindByAuthor returns all comments a user has written.
func (r *CommentRepo) FindByAuthor(userID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Where("user_id = ?", userID).Find(&comments).Error
	return comments, err
}

// FindByAuthorAndProject returns one user's comments on one project.
func (r *CommentRepo) FindByAuthorAndProject(userID, projectID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Find(&comments).Error
	return comments, err
}

// Add creates the comment against an existing project. The existence check
// and the insert run in one transaction: the comment and the project's
// comment list can never end up referencing each other partially.
func (r *CommentRepo) Add(comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id").First(&project, "id = ?", comment.ProjectID).Error; err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
}

// UpdateContent replaces a comment's content and returns the fresh record.
func (r *CommentRepo) UpdateContent(id uuid.UUID, content string) (*models.Comment, error) {
	res := r.db.Model(&models.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

// Delete removes the comment row; the project's comment list is the reverse
// side of the same reference, so it is pruned in the same write.
func (r *CommentRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
