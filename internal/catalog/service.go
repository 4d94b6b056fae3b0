package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/videoteka/videoteka-backend/pkg/db"
	"github.com/videoteka/videoteka-backend/pkg/db/models"
	apperr "github.com/videoteka/videoteka-backend/pkg/errors"
	"github.com/videoteka/videoteka-backend/pkg/logger"
)

// FilmDTO is the serialized catalog entry.
type FilmDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	TitleRU    *string `json:"title_ru"`
	Author     *string `json:"author"`
	Price      *string `json:"price"`
	GenreTitle string  `json:"genre_title"`
}

// Service serves the read-only film catalog and owns its seeding.
type Service struct {
	repo   *Repository
	client *db.Client
	logg   *logger.Logger
}

// NewService wires the catalog service. The db client is needed beyond the
// repo because seeding runs transactionally.
func NewService(repo *Repository, client *db.Client, logg *logger.Logger) *Service {
	return &Service{repo: repo, client: client, logg: logg}
}

// ByGenre lists films for a genre. Unknown genres yield an empty list, not an
// error.
func (s *Service) ByGenre(ctx context.Context, genre string) ([]FilmDTO, error) {
	films, err := s.repo.ByGenre(ctx, genre)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to list films")
	}
	out := make([]FilmDTO, 0, len(films))
	for _, film := range films {
		out = append(out, toDTO(film))
	}
	return out, nil
}

func toDTO(film models.Film) FilmDTO {
	return FilmDTO{
		ID:         film.ID.String(),
		Title:      film.Title,
		TitleRU:    film.TitleRU,
		Author:     film.Author,
		Price:      film.Price,
		GenreTitle: film.GenreTitle,
	}
}

// EnsureSeed installs the curated catalog when the table is empty. A
// non-empty table is left untouched.
func (s *Service) EnsureSeed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "failed to count films")
	}
	if count > 0 {
		return nil
	}
	if err := s.Reseed(ctx); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "films", len(curatedFilms)), "catalog seeded")
	}
	return nil
}

// Reseed wipes and reinstalls the curated catalog in one transaction, so
// readers never observe a partially filled table.
func (s *Service) Reseed(ctx context.Context) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.ReplaceAll(tx, SeedFilms())
	})
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "failed to seed catalog")
	}
	return nil
}
