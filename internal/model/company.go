package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the profile of a bus transport company. Each user owns at most
// one company; the unique index on UserID backs the conflict-based upsert in
// the repository, and the foreign key cascades so a company never outlives
// its owner.
type Company struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"userId" gorm:"size:64;not null;uniqueIndex"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name        string    `json:"name" gorm:"size:255;not null;default:''"`
	Phone       string    `json:"phone" gorm:"size:50"`
	Address     string    `json:"address" gorm:"type:text"`
	City        string    `json:"city" gorm:"size:100"`
	Description string    `json:"description" gorm:"type:text"`
	LogoURL     string    `json:"logoUrl" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID before inserting the record.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
