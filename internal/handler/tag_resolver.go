package handler

import (
	"errors"
	"strings"

	"gamerate/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// getOrCreateTags maps tag names to tag IDs, creating rows for names that do
// not exist yet, and returns the IDs in input order. Names are trimmed first
// and empty names are skipped. Duplicate names within one call resolve to the
// same ID because the lookup runs before every insert.
func getOrCreateTags(tx *gorm.DB, names []string) ([]uint, error) {
	var ids []uint
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tag models.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// attachTags resolves names via getOrCreateTags and inserts any associations
// the game does not already have. Existing pairs are left alone; the return
// value counts only newly inserted rows.
func attachTags(tx *gorm.DB, gameID uint, names []string) (int, error) {
	tagIDs, err := getOrCreateTags(tx, names)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, tagID := range tagIDs {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.GameTag{GameID: gameID, TagID: tagID})
		if res.Error != nil {
			return added, res.Error
		}
		if res.RowsAffected > 0 {
			added++
		}
	}
	return added, nil
}
