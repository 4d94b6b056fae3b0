package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Film is static reference data seeded at bootstrap. Genres are stored
// lowercase so lookups stay case-insensitive.
type Film struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title      string    `gorm:"column:title;not null"`
	TitleRU    *string   `gorm:"column:title_ru"`
	Author     *string   `gorm:"column:author"`
	Price      *string   `gorm:"column:price"`
	GenreTitle string    `gorm:"column:genre_title;not null;index:film_list_genre_idx"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Film) TableName() string { return "film_list" }

func (f *Film) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
