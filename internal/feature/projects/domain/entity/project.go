// Package entity defines the domain entities for the projects feature.
package entity

import "time"

// Project is a board owned by exactly one user. Ownership is the sole
// authorization boundary: only the owner may read or mutate the project
// and its tasks.
type Project struct {
	// ID is the unique identifier for the project.
	ID uint `gorm:"primaryKey"`

	// Name is the display name of the board.
	Name string `gorm:"size:255;not null"`

	// Description holds optional free-form detail.
	Description string `gorm:"type:text"`

	// OwnerID references the owning user.
	OwnerID uint `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
