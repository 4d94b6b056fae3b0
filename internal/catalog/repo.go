package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/videoteka/videoteka-backend/pkg/db/models"
)

// Repository reads and replaces the film reference table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ByGenre lists films filed under the genre, case-insensitively. Genres are
// stored lowercase, so folding the input suffices.
func (r *Repository) ByGenre(ctx context.Context, genre string) ([]models.Film, error) {
	var films []models.Film
	err := r.db.WithContext(ctx).
		Where("genre_title = ?", strings.ToLower(strings.TrimSpace(genre))).
		Order("title").
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	return films, nil
}

// Count reports the total number of films.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Film{}).Count(&count).Error
	return count, err
}

// ReplaceAll swaps the entire table contents inside the caller's transaction.
func (r *Repository) ReplaceAll(tx *gorm.DB, films []models.Film) error {
	if err := tx.Where("1 = 1").Delete(&models.Film{}).Error; err != nil {
		return err
	}
	if len(films) == 0 {
		return nil
	}
	return tx.Create(&films).Error
}
