package collections

import (
	"context"

	"github.com/videoteka/videoteka-backend/pkg/db"
	"github.com/videoteka/videoteka-backend/pkg/db/models"
	apperr "github.com/videoteka/videoteka-backend/pkg/errors"
)

// UserLookup resolves an authenticated username to its account row.
// *users.Repository satisfies this.
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service implements one per-user collection (bookmarks or cart) on top of a
// table-bound repository.
type Service struct {
	repo  *Repository
	users UserLookup
	// label names the collection in error messages, e.g. "bookmark".
	label string
}

// NewBookmarksService wires the bookmarks collection.
func NewBookmarksService(repo *Repository, users UserLookup) *Service {
	return &Service{repo: repo, users: users, label: "bookmark"}
}

// NewCartService wires the cart collection.
func NewCartService(repo *Repository, users UserLookup) *Service {
	return &Service{repo: repo, users: users, label: "cart item"}
}

func (s *Service) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to load user")
	}
	return user, nil
}

// List returns the user's items in the order they were added.
func (s *Service) List(ctx context.Context, username string) ([]ItemDTO, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to list "+s.label+"s")
	}
	return toDTOs(items), nil
}

// Add stores the film snapshot for the user. Adding an already-present movie
// refreshes the stored fields instead of failing, so the operation is safe to
// retry and two concurrent adds collapse into one row.
func (s *Service) Add(ctx context.Context, username string, input ItemInput) (ItemDTO, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return ItemDTO{}, err
	}

	stored, err := s.repo.Upsert(ctx, models.OwnedItem{
		UserID:  user.ID,
		MovieID: input.MovieID,
		Title:   input.Title,
		Author:  input.Author,
		Price:   input.Price,
	})
	if err != nil {
		return ItemDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to add "+s.label)
	}
	return toDTO(stored), nil
}

// Remove deletes the user's entry for the movie, reporting not-found when no
// such entry exists.
func (s *Service) Remove(ctx context.Context, username, movieID string) error {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, user.ID, movieID); err != nil {
		if db.IsNotFound(err) {
			return apperr.New(apperr.CodeNotFound, s.label+" not found")
		}
		return apperr.Wrap(apperr.CodeInternal, err, "failed to remove "+s.label)
	}
	return nil
}
