package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the relational tables. Posts are migrated
// even when the Mongo post store is active; the table then stays empty.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Follow{},
		&Post{},
		&Comment{},
		&Like{},
		&CommentLike{},
		&SavedPost{},
		&Notification{},
	)
}
