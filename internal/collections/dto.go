package collections

import (
	"time"

	"github.com/videoteka/videoteka-backend/pkg/db/models"
)

// ItemInput is the caller-supplied film snapshot stored alongside the
// ownership row.
type ItemInput struct {
	MovieID string  `json:"movie_id" validate:"required"`
	Title   string  `json:"title" validate:"required"`
	Author  *string `json:"author"`
	Price   *string `json:"price"`
}

// ItemDTO is the serialized shape of a collection entry.
type ItemDTO struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	Title     string    `json:"title"`
	Author    *string   `json:"author"`
	Price     *string   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(item models.OwnedItem) ItemDTO {
	return ItemDTO{
		ID:        item.ID.String(),
		MovieID:   item.MovieID,
		Title:     item.Title,
		Author:    item.Author,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
	}
}

func toDTOs(items []models.OwnedItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toDTO(item))
	}
	return out
}
