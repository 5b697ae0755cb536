package models

import "github.com/google/uuid"

// DefaultAvatar is assigned to every new account until the user uploads
// their own picture.
const DefaultAvatar = "https://cdn.myportfolio.com/c728a553-9706-473c-adca-fa2ea3652db5/dfc91b3a-2282-4570-8e73-f71eedaa3ba1_rw_1200.jpg?h=3c291787e4a9e913b367241e1e2d5839"

// User represents an account. Accounts are never hard-deleted; IsActive=false
// marks a deactivated account whose content is filtered from active views.
// Username and email are unique among active accounts only (partial indexes),
// so a deactivated account's identifiers can be claimed by a new signup.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;index:idx_users_active_username,unique,where:is_active"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;index:idx_users_active_email,unique,where:is_active"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Avatar       string    `json:"avatar" db:"avatar" gorm:"type:text;not null"`
	Description  *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	Location     *string   `json:"location,omitempty" db:"location" gorm:"type:text"`
	Website      *string   `json:"website,omitempty" db:"website" gorm:"type:text"`
	IsActive     bool      `json:"isActive" db:"is_active" gorm:"not null;default:true"`

	// Favorites are the projects this user has liked; it is the reverse view
	// of Project.Likes over the same join table, so the two can never diverge.
	Favorites  []Project `json:"favorites,omitempty" gorm:"many2many:project_likes;joinForeignKey:UserID;joinReferences:ProjectID"`
	SavedBlogs []Blog    `json:"savedBlogs,omitempty" gorm:"many2many:blog_saves;joinForeignKey:UserID;joinReferences:BlogID"`
	Followers  []*User   `json:"followers,omitempty" gorm:"many2many:user_follows;joinForeignKey:FolloweeID;joinReferences:FollowerID"`
	Following  []*User   `json:"following,omitempty" gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID"`
}

// UserFollow is one edge of the follow graph. A single row covers both the
// follower's "following" list and the followee's "followers" list.
type UserFollow struct {
	FollowerID uuid.UUID `json:"followerId" db:"follower_id" gorm:"type:uuid;primaryKey"`
	FolloweeID uuid.UUID `json:"followeeId" db:"followee_id" gorm:"type:uuid;primaryKey"`
}
