package models

// GameTag is the games<->tags join row. It is declared explicitly (rather
// than letting GORM generate it) so the association endpoints can insert and
// delete individual pairs.
type GameTag struct {
	GameID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}
