package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is a media post with a mandatory main image and a non-empty
// ordered gallery. The owning user reference is set at creation and never
// reassigned.
type Project struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description *string                     `json:"description,omitempty" db:"description" gorm:"type:text"`
	MainImage   string                      `json:"mainImage" db:"main_image" gorm:"type:text;not null"`
	Images      datatypes.JSONSlice[string] `json:"images" db:"images" gorm:"not null"`
	UserID      uuid.UUID                   `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Likes    []User    `json:"likes,omitempty" gorm:"many2many:project_likes;joinForeignKey:ProjectID;joinReferences:UserID"`
}

// OwnerID satisfies the ownership guard.
func (p *Project) OwnerID() uuid.UUID { return p.UserID }

// ProjectLike is one like edge. The row doubles as the liking user's
// favorites entry.
type ProjectLike struct {
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;primaryKey"`
}
