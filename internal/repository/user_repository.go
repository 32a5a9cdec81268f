package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"buslink/internal/model"
)

// userMutableColumns are the columns overwritten on each authentication.
var userMutableColumns = []string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}

// UserRepository defines user persistence operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or, on primary-key conflict, overwrites every
// mutable field and refreshes the update timestamp. Idempotent under retry
// with identical input; returns the resulting row.
func (r *userRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(userMutableColumns),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, user.ID)
}
