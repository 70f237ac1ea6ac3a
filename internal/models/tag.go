package models

// Tag is a label attachable to any number of games (e.g. "RPG", "Action").
// Names are stored trimmed and are unique.
type Tag struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}
