package collections

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/videoteka/videoteka-backend/pkg/db/models"
)

// Table names backing the two per-user collections. Both share the same row
// shape and constraints, so one repository serves them both.
const (
	TableBookmarks = "bookmarks"
	TableCartItems = "cart_items"
)

// Repository persists a single per-user collection. The table name is fixed
// at construction; everything else is identical between bookmarks and cart.
type Repository struct {
	db    *gorm.DB
	table string
}

// NewBookmarksRepository builds a repo over the bookmarks table.
func NewBookmarksRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, table: TableBookmarks}
}

// NewCartRepository builds a repo over the cart_items table.
func NewCartRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, table: TableCartItems}
}

// List returns the user's items in insertion order.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]models.OwnedItem, error) {
	var items []models.OwnedItem
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert inserts the item or, when the (user_id, movie_id) pair already
// exists, refreshes its denormalized film fields. The stored row is returned
// either way, so repeated adds are idempotent from the caller's view.
func (r *Repository) Upsert(ctx context.Context, item models.OwnedItem) (models.OwnedItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).
		Table(r.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "author", "price"}),
		}).
		Create(&item).Error
	if err != nil {
		return models.OwnedItem{}, err
	}

	// The ON CONFLICT path keeps the original id and created_at, so read the
	// row back rather than trust the in-memory copy.
	var stored models.OwnedItem
	err = r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND movie_id = ?", item.UserID, item.MovieID).
		First(&stored).Error
	if err != nil {
		return models.OwnedItem{}, err
	}
	return stored, nil
}

// Remove deletes the user's item for the given movie. It reports
// gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Remove(ctx context.Context, userID uuid.UUID, movieID string) error {
	res := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.OwnedItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count reports the number of items the user holds.
func (r *Repository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
