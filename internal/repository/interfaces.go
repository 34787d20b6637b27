package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/studygo-backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ConflictError reports which unique constraint rejected a write.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("unique constraint %q violated", e.Constraint) }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

const (
	ConstraintUserEmail    = "uq_users_email"
	ConstraintUserUsername = "uq_users_username"
	ConstraintUserModule   = "user_module_unique"
)

type Users interface {
	Create(ctx context.Context, email, username, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (models.User, error)
}

type Posts interface {
	Create(ctx context.Context, userID, content string) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	// DeleteOwned removes the post only if userID owns it; false means no row matched.
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
}

type Progress interface {
	ListByUser(ctx context.Context, userID string) ([]models.Progress, error)
	// Upsert inserts or overwrites the (userID, module) row in one statement.
	Upsert(ctx context.Context, userID, module string, percent int) (models.Progress, error)
}
