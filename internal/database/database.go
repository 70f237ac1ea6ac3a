package database

import (
	"log"
	"os"
	"time"

	"gamerate/backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQLite database at path and runs migrations. The returned
// handle is passed to the handlers; there is no package-level global.
//
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey and can be matched by kind instead of by message text.
func Connect(path string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// The join table is managed through the explicit GameTag model.
	if err := db.SetupJoinTable(&models.Game{}, "Tags", &models.GameTag{}); err != nil {
		return nil, err
	}

	// Run migrations
	if err := db.AutoMigrate(&models.Game{}, &models.Tag{}); err != nil {
		return nil, err
	}

	return db, nil
}
