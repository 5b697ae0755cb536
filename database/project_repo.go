package database

import (
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns a page of projects. Owners and likers that are inactive
// render as absent; the projects themselves stay in the listing.
func (r *ProjectRepo) FindAll(page, limit int) ([]*models.Project, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var projects []*models.Project
	err := r.db.
		Preload("User", activeUsers).
		Preload("Likes", activeUsers).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&projects).Error
	return projects, err
}

// FindByID returns one project with owner, likes and comments loaded. The
// owner is loaded unconditionally so callers can apply the activity rule.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("User").
		Preload("Likes", activeUsers).
		Preload("Comments").
		Preload("Comments.User", activeUsers).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDAndOwner returns the project only when owner matches; anything
// else reads as not found.
func (r *ProjectRepo) FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Likes", activeUsers).
		Preload("Comments").
		Preload("Comments.User", activeUsers).
		First(&project, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByOwner returns all of one user's projects with their likes.
func (r *ProjectRepo) FindByOwner(ownerID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Preload("User", activeUsers).
		Preload("Likes", activeUsers).
		Where("user_id = ?", ownerID).
		Find(&projects).Error
	return projects, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.Create(project).Error
}

// UpdateTitleDescription updates only the provided fields.
func (r *ProjectRepo) UpdateTitleDescription(id uuid.UUID, title, description *string) error {
	updates := map[string]any{}
	if title != nil {
		updates["title"] = *title
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateMainImage overwrites the single main image reference.
func (r *ProjectRepo) UpdateMainImage(id uuid.UUID, mainImage string) error {
	res := r.db.Model(&models.Project{}).Where("id = ?", id).Update("main_image", mainImage)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateImages replaces the ordered gallery list. Callers compute the new
// list (append or filtered) from the current one.
func (r *ProjectRepo) UpdateImages(id uuid.UUID, images []string) error {
	res := r.db.Model(&models.Project{}).Where("id = ?", id).
		Update("images", datatypes.NewJSONSlice(images))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project together with its like edges and comments in one
// transaction so no dangling references survive.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Like records userID in the project's likes; the same row is the user's
// favorites entry, so both sets move together. Returns false when already
// liked. Add-if-absent semantics make concurrent duplicate calls safe.
func (r *ProjectRepo) Like(projectID, userID uuid.UUID) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProjectLike{ProjectID: projectID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Unlike removes the like edge, which removes the project from the user's
// favorites in the same write. Returns false when there was no like.
func (r *ProjectRepo) Unlike(projectID, userID uuid.UUID) (bool, error) {
	res := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
