package services

import (
	"context"

	"github.com/baharkarakas/studygo-backend/internal/api/validate"
	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/models"
	repo "github.com/baharkarakas/studygo-backend/internal/repository"
)

type ProgressService struct{ r repo.Progress }

func NewProgressService(r repo.Progress) *ProgressService { return &ProgressService{r: r} }

func (s *ProgressService) List(ctx context.Context, userID string) ([]models.Progress, error) {
	rows, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

// ProgressInput is a progress report; a nil Percent means the field was absent.
type ProgressInput struct {
	Module  string `json:"module"`
	Percent *int   `json:"percent"`
}

func (in ProgressInput) check() validate.Errs {
	if in.Percent == nil {
		return validate.Collect(
			validate.Length("module", in.Module, 1, 128),
			validate.RequiredInt("percent", in.Percent),
		)
	}
	return validate.Collect(
		validate.Length("module", in.Module, 1, 128),
		validate.IntRange("percent", *in.Percent, 0, 100),
	)
}

func (s *ProgressService) Upsert(ctx context.Context, userID string, in ProgressInput) (models.Progress, error) {
	if errs := in.check(); errs != nil {
		return models.Progress{}, invalid(errs)
	}
	p, err := s.r.Upsert(ctx, userID, in.Module, *in.Percent)
	if err != nil {
		return models.Progress{}, notFoundOr(err, msgUserNotFound)
	}
	metrics.ProgressUpserts.Inc()
	return p, nil
}
