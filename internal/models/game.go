package models

import "time"

// Game represents a rated game in the catalog. The six rating fields are
// required and constrained to [0.0, 10.0]; everything else beyond the unique
// name is optional metadata.
type Game struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"size:255;uniqueIndex;not null"`

	ImageURL    *string `gorm:"size:512"`
	ReleaseYear *int
	Developer   *string `gorm:"size:255"`
	Publisher   *string `gorm:"size:255"`
	Platform    *string `gorm:"size:255"`

	ArtRating         float64 `gorm:"not null"`
	MusicRating       float64 `gorm:"not null"`
	StoryRating       float64 `gorm:"not null"`
	PlayabilityRating float64 `gorm:"not null"`
	InnovationRating  float64 `gorm:"not null"`
	PerformanceRating float64 `gorm:"not null"`

	ReviewText     *string
	MyOverallScore *float64
	IsCompleted    bool `gorm:"not null;default:false"`
	PlayTimeHours  *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	Tags []*Tag `gorm:"many2many:game_tags;"`
}
