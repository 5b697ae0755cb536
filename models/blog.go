package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Blog is a long-form post. Unlike projects, blogs carry no likes or
// comments of their own; users keep a private saved list instead.
type Blog struct {
	ID        uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Content   string                      `json:"content" db:"content" gorm:"type:text;not null"`
	MainImage string                      `json:"mainImage" db:"main_image" gorm:"type:text;not null"`
	Images    datatypes.JSONSlice[string] `json:"images,omitempty" db:"images"`
	UserID    uuid.UUID                   `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// OwnerID satisfies the ownership guard.
func (b *Blog) OwnerID() uuid.UUID { return b.UserID }

// BlogSave is one entry in a user's saved-blogs list.
type BlogSave struct {
	UserID uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;primaryKey"`
	BlogID uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;primaryKey"`
}
