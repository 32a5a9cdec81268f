package model

import "time"

// User represents an authenticated panel user. The identifier is the stable
// subject issued by the external identity provider, so records are upserted
// wholesale on every successful login rather than created once.
type User struct {
	ID              string    `json:"id" gorm:"size:64;primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:255"`
	FirstName       string    `json:"firstName" gorm:"size:255"`
	LastName        string    `json:"lastName" gorm:"size:255"`
	ProfileImageURL string    `json:"profileImageUrl" gorm:"size:500"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
