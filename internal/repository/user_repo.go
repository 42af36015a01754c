package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hatemates/internal/db"
)

// UserRepository provides data access for accounts, profiles, preferences
// and dislike selections.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByEmail returns (nil, nil) when no account exists for the address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertProfile inserts or overwrites a user's profile info.
func (r *UserRepository) UpsertProfile(ctx context.Context, profile *db.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"birthday", "gender", "phone", "contact", "updated_at"}),
	}).Create(profile).Error
}

// UpsertPreference inserts or overwrites a user's friend preference.
func (r *UserRepository) UpsertPreference(ctx context.Context, pref *db.FriendPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"city", "zip_code", "lat", "lng", "mile_radius", "friend_gender", "friend_age", "updated_at",
		}),
	}).Create(pref).Error
}

// UpsertDislikes records a user's selections, one per category. Existing
// selections for the same categories are overwritten.
func (r *UserRepository) UpsertDislikes(ctx context.Context, selections []db.DislikedSelection) error {
	if len(selections) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selection_id", "updated_at"}),
	}).Create(&selections).Error
}
