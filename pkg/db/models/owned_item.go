package models

import (
	"time"

	"github.com/google/uuid"
)

// OwnedItem is the row shape shared by the bookmarks and cart_items tables.
// Both tables enforce a unique (user_id, movie_id) pair and cascade-delete
// with their owning user. The table is chosen by the repository, so this
// struct deliberately has no TableName.
type OwnedItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	MovieID   string    `gorm:"column:movie_id;not null"`
	Title     string    `gorm:"column:title;not null"`
	Author    *string   `gorm:"column:author"`
	Price     *string   `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
}
