package services

import (
	"context"
	"errors"
	"strings"

	"github.com/baharkarakas/studygo-backend/internal/api/validate"
	"github.com/baharkarakas/studygo-backend/internal/auth"
	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/models"
	repo "github.com/baharkarakas/studygo-backend/internal/repository"
)

const (
	msgEmailTaken    = "Email already exists"
	msgUsernameTaken = "Username already exists"
	msgUserNotFound  = "User not found"
)

type UserService struct {
	r  repo.Users
	tm *auth.TokenManager
}

func NewUserService(r repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{r: r, tm: tm}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *RegisterInput) normalize() validate.Errs {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	return validate.Collect(
		validate.Email("email", in.Email),
		validate.Length("username", in.Username, 3, 32),
		validate.Length("password", in.Password, 6, 0),
		validate.MaxBytes("password", in.Password, auth.MaxPasswordBytes),
	)
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if errs := in.normalize(); errs != nil {
		return models.User{}, invalid(errs)
	}

	taken, err := s.r.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, models.NewInternalError(err)
	}
	if taken {
		return models.User{}, models.NewConflictError(msgEmailTaken, nil)
	}
	taken, err = s.r.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return models.User{}, models.NewInternalError(err)
	}
	if taken {
		return models.User{}, models.NewConflictError(msgUsernameTaken, nil)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, models.NewInternalError(err)
	}
	u, err := s.r.Create(ctx, in.Email, in.Username, hash)
	if err != nil {
		// a concurrent registration can pass the checks above
		var ce *repo.ConflictError
		if errors.As(err, &ce) {
			if ce.Constraint == repo.ConstraintUserUsername {
				return models.User{}, models.NewConflictError(msgUsernameTaken, err)
			}
			return models.User{}, models.NewConflictError(msgEmailTaken, err)
		}
		return models.User{}, models.NewInternalError(err)
	}
	metrics.AuthEvents.WithLabelValues("register").Inc()
	return u, nil
}

// Login answers unknown email and wrong password identically.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if errs := validate.Collect(
		validate.Email("email", email),
		validate.Required("password", password),
	); errs != nil {
		return "", invalid(errs)
	}

	u, err := s.r.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return "", models.NewInternalError(err)
		}
		auth.BurnVerify(password)
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return "", models.NewInvalidCredentialsError()
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if !ok {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return "", models.NewInvalidCredentialsError()
	}

	tok, err := s.tm.Issue(u.ID, u.Username)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	metrics.AuthEvents.WithLabelValues("login_ok").Inc()
	return tok, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (models.User, error) {
	u, err := s.r.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, notFoundOr(err, msgUserNotFound)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, p models.ProfileUpdate) (models.User, error) {
	u, err := s.r.UpdateProfile(ctx, userID, p)
	if err != nil {
		return models.User{}, notFoundOr(err, msgUserNotFound)
	}
	return u, nil
}
