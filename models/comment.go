package models

import "github.com/google/uuid"

// Comment lives on exactly one project. The ProjectID column is the
// back-reference that keeps the project's comment list consistent; deleting
// the row prunes the list in the same write.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// OwnerID satisfies the ownership guard; a comment is owned by its author.
func (c *Comment) OwnerID() uuid.UUID { return c.UserID }
