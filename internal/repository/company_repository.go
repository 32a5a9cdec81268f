package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"buslink/internal/model"
)

// CompanyRepository defines company persistence operations, keyed by the
// owning user.
type CompanyRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Company, error)
	Create(ctx context.Context, company *model.Company) error
	UpdateByUserID(ctx context.Context, userID string, fields map[string]interface{}) error
	Upsert(ctx context.Context, company *model.Company, fields map[string]interface{}) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository builds a GORM-backed repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// FindByUserID returns the company owned by userID. Ordered most-recently-
// updated first so any rows predating the unique index resolve
// deterministically.
func (r *companyRepository) FindByUserID(ctx context.Context, userID string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Create inserts a new company, stamping creation and update timestamps.
// Fails if a company already exists for the same user. Seeding and admin
// tooling use it directly; the profile endpoint goes through Upsert so a
// first write racing a second one cannot insert twice.
func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// UpdateByUserID updates the single row owned by userID, refreshing the
// update timestamp. Returns gorm.ErrRecordNotFound when no row matches,
// so it suits callers that must not create a missing profile; the profile
// endpoint uses Upsert instead to create-or-update in one statement.
func (r *companyRepository) UpdateByUserID(ctx context.Context, userID string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.Company{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Upsert inserts the company or, on conflict with the unique user_id index,
// applies only the provided fields plus a fresh update timestamp. A single
// statement, so concurrent writes for one user can never produce two rows.
func (r *companyRepository) Upsert(ctx context.Context, company *model.Company, fields map[string]interface{}) error {
	assigns := make(map[string]interface{}, len(fields)+1)
	for col, val := range fields {
		assigns[col] = val
	}
	assigns["updated_at"] = time.Now()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assigns),
	}).Create(company).Error
}
