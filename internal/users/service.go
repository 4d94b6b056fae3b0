package users

import (
	"context"
	"strings"

	"github.com/videoteka/videoteka-backend/pkg/config"
	"github.com/videoteka/videoteka-backend/pkg/db"
	apperr "github.com/videoteka/videoteka-backend/pkg/errors"
	"github.com/videoteka/videoteka-backend/pkg/security"
)

// MaxAvatarChars caps the accepted avatar payload length.
const MaxAvatarChars = 5_000_000

// MinPasswordChars is the lower bound for a replacement password.
const MinPasswordChars = 6

// Service implements account lifecycle operations on top of the repository.
type Service struct {
	repo     *Repository
	password config.PasswordConfig
}

// NewService wires the users service.
func NewService(repo *Repository, password config.PasswordConfig) *Service {
	return &Service{repo: repo, password: password}
}

// Register creates an account. A duplicate username or email surfaces as a
// conflict; the message names whichever field collided.
func (s *Service) Register(ctx context.Context, username, email, password string) (UserDTO, error) {
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return UserDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return UserDTO{}, apperr.Wrap(apperr.CodeConflict, err, conflictMessage(err))
		}
		return UserDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to create user")
	}
	return ToDTO(user), nil
}

// conflictMessage inspects the constraint error to name the duplicated field.
func conflictMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email"):
		return "email already registered"
	case strings.Contains(msg, "username"):
		return "username already taken"
	default:
		return "user already exists"
	}
}

// Authenticate verifies the credential pair and returns the account on
// success. Every failure mode answers the same unauthorized error so the
// response does not reveal which half was wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (UserDTO, error) {
	unauthorized := apperr.New(apperr.CodeUnauthorized, "incorrect username or password")

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return UserDTO{}, unauthorized
		}
		return UserDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to load user")
	}
	if !user.IsActive {
		return UserDTO{}, unauthorized
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return UserDTO{}, unauthorized
	}
	return ToDTO(user), nil
}

// GetByUsername loads the account backing an authenticated request.
func (s *Service) GetByUsername(ctx context.Context, username string) (UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return UserDTO{}, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return UserDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to load user")
	}
	return ToDTO(user), nil
}

// UpdateAvatar stores a new avatar for the account. The payload must be
// non-empty and no longer than MaxAvatarChars.
func (s *Service) UpdateAvatar(ctx context.Context, username, avatar string) (UserDTO, error) {
	if avatar == "" {
		return UserDTO{}, apperr.New(apperr.CodeValidation, "avatar must not be empty")
	}
	if len(avatar) > MaxAvatarChars {
		return UserDTO{}, apperr.New(apperr.CodeValidation, "avatar exceeds maximum size")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return UserDTO{}, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return UserDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to load user")
	}

	if err := s.repo.UpdateAvatar(ctx, user.ID, avatar); err != nil {
		return UserDTO{}, apperr.Wrap(apperr.CodeInternal, err, "failed to update avatar")
	}
	user.AvatarBase64 = &avatar
	return ToDTO(user), nil
}

// ChangePassword swaps the stored credential after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, username, current, next string) error {
	if len(next) < MinPasswordChars {
		return apperr.New(apperr.CodeValidation, "new password must be at least 6 characters")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.New(apperr.CodeNotFound, "user not found")
		}
		return apperr.Wrap(apperr.CodeInternal, err, "failed to load user")
	}

	ok, err := security.VerifyPassword(current, user.PasswordHash)
	if err != nil || !ok {
		return apperr.New(apperr.CodeValidation, "current password is incorrect")
	}

	hash, err := security.HashPassword(next, s.password)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "failed to hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "failed to update password")
	}
	return nil
}
