package database

import (
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// activeUsers scopes a joined user preload to active accounts only, so
// deactivated users render as absent instead of erroring.
func activeUsers(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// FindByID returns a user by id regardless of activity. Used by the auth
// middleware to resolve token identities.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileByID returns the caller's full profile with all relation sets
// loaded. Followers and following lists hide deactivated accounts.
func (r *UserRepo) ProfileByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Favorites").
		Preload("SavedBlogs").
		Preload("Followers", activeUsers).
		Preload("Following", activeUsers).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveProfileByID returns a public profile. Deactivated users are
// reported as not found.
func (r *UserRepo) FindActiveProfileByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Favorites").
		Preload("SavedBlogs").
		Preload("Followers", activeUsers).
		Preload("Following", activeUsers).
		First(&user, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByIdentifier looks an active user up by username or email.
func (r *UserRepo) FindActiveByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("(username = ? OR email = ?) AND is_active = ?", identifier, identifier, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ActiveEmailExists reports whether an active account already holds email.
func (r *UserRepo) ActiveEmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND is_active = ?", email, true).
		Count(&count).Error
	return count > 0, err
}

// ActiveUsernameExists reports whether an active account already holds username.
func (r *UserRepo) ActiveUsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? AND is_active = ?", username, true).
		Count(&count).Error
	return count > 0, err
}

// EmailTakenByOther reports whether any account other than id holds email.
func (r *UserRepo) EmailTakenByOther(email string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&count).Error
	return count > 0, err
}

// UsernameTakenByOther reports whether any account other than id holds username.
func (r *UserRepo) UsernameTakenByOther(username string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, id).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

// UpdateDetails applies the given column updates and returns the fresh record.
func (r *UserRepo) UpdateDetails(id uuid.UUID, updates map[string]any) (*models.User, error) {
	if len(updates) > 0 {
		res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(id)
}

// UpdateAvatar replaces the avatar reference wholesale.
func (r *UserRepo) UpdateAvatar(id uuid.UUID, avatar string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("avatar", avatar)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes the account. Content stays in the store and is
// filtered from active views at read time.
func (r *UserRepo) Deactivate(id uuid.UUID) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActive returns the public listing of active users.
func (r *UserRepo) ListActive() ([]*models.User, error) {
	var users []*models.User
	err := r.db.
		Select("id", "username", "avatar", "is_active").
		Where("is_active = ?", true).
		Find(&users).Error
	return users, err
}

// Follow records the follower→followee edge. The single row covers both the
// followers and following sets. Returns false when the edge already exists;
// the insert is an add-if-absent so concurrent duplicates cannot race past
// the check.
func (r *UserRepo) Follow(followerID, followeeID uuid.UUID) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserFollow{FollowerID: followerID, FolloweeID: followeeID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Unfollow removes the edge from both sides at once. Removing an absent
// edge is a no-op, reported via the boolean.
func (r *UserRepo) Unfollow(followerID, followeeID uuid.UUID) (bool, error) {
	res := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.UserFollow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
