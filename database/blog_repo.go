package database

import (
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// FindAll returns a page of blogs with inactive owners rendered absent.
func (r *BlogRepo) FindAll(page, limit int) ([]*models.Blog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var blogs []*models.Blog
	err := r.db.
		Preload("User", activeUsers).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&blogs).Error
	return blogs, err
}

// FindByID returns one blog with its owner loaded unconditionally so
// callers can apply the activity rule.
func (r *BlogRepo) FindByID(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("User").First(&blog, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindByIDAndOwner returns the blog only when owner matches.
func (r *BlogRepo) FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.First(&blog, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindByOwner returns all of one user's blogs.
func (r *BlogRepo) FindByOwner(ownerID uuid.UUID) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.
		Preload("User", activeUsers).
		Where("user_id = ?", ownerID).
		Find(&blogs).Error
	return blogs, err
}

// Add inserts a new blog into the database
func (r *BlogRepo) Add(blog *models.Blog) error {
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	return r.db.Create(blog).Error
}

// UpdateTitleContent updates only the provided fields.
func (r *BlogRepo) UpdateTitleContent(id uuid.UUID, title, content *string) error {
	updates := map[string]any{}
	if title != nil {
		updates["title"] = *title
	}
	if content != nil {
		updates["content"] = *content
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.Model(&models.Blog{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateMainImage overwrites the single main image reference.
func (r *BlogRepo) UpdateMainImage(id uuid.UUID, mainImage string) error {
	res := r.db.Model(&models.Blog{}).Where("id = ?", id).Update("main_image", mainImage)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateImages replaces the ordered gallery list.
func (r *BlogRepo) UpdateImages(id uuid.UUID, images []string) error {
	res := r.db.Model(&models.Blog{}).Where("id = ?", id).
		Update("images", datatypes.NewJSONSlice(images))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a blog and every saved-list entry pointing at it in one
// transaction.
func (r *BlogRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogSave{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Blog{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Save appends the blog to the user's saved list. There is deliberately no
// mirrored field on the blog itself. Returns false when already saved.
func (r *BlogRepo) Save(blogID, userID uuid.UUID) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlogSave{UserID: userID, BlogID: blogID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Unsave removes the saved-list entry; removing an absent entry is a no-op.
func (r *BlogRepo) Unsave(blogID, userID uuid.UUID) (bool, error) {
	res := r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.BlogSave{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
