package services

import (
	"context"

	"github.com/baharkarakas/studygo-backend/internal/api/validate"
	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/models"
	repo "github.com/baharkarakas/studygo-backend/internal/repository"
)

// FeedLimit caps the public post list.
const FeedLimit = 50

// FeedCache is satisfied by *cache.FeedCache. Implementations treat every
// failure as a miss. Set must drop posts read under a generation that an
// Invalidate has since superseded.
type FeedCache interface {
	Get(ctx context.Context) ([]models.Post, bool)
	Generation(ctx context.Context) (int64, bool)
	Set(ctx context.Context, gen int64, posts []models.Post)
	Invalidate(ctx context.Context)
}

type PostService struct {
	r     repo.Posts
	cache FeedCache
}

// NewPostService accepts a nil cache.
func NewPostService(r repo.Posts, cache FeedCache) *PostService {
	return &PostService{r: r, cache: cache}
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	if s.cache == nil {
		return s.listRecent(ctx)
	}
	if posts, ok := s.cache.Get(ctx); ok {
		return posts, nil
	}
	// generation first, so a write that lands during the read voids the Set
	gen, cacheable := s.cache.Generation(ctx)
	posts, err := s.listRecent(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Set(ctx, gen, posts)
	}
	return posts, nil
}

func (s *PostService) listRecent(ctx context.Context) ([]models.Post, error) {
	posts, err := s.r.ListRecent(ctx, FeedLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, userID, content string) (models.Post, error) {
	if errs := validate.Collect(validate.Length("content", content, 1, 5000)); errs != nil {
		return models.Post{}, invalid(errs)
	}
	p, err := s.r.Create(ctx, userID, content)
	if err != nil {
		return models.Post{}, notFoundOr(err, msgUserNotFound)
	}
	s.invalidate(ctx)
	metrics.Posts.WithLabelValues("create").Inc()
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.r.GetByID(ctx, postID)
	if err != nil {
		return notFoundOr(err, "Not found")
	}
	if p.UserID != userID {
		return models.NewForbiddenError()
	}
	deleted, err := s.r.DeleteOwned(ctx, postID, userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !deleted {
		// removed between the read and the delete
		return models.NewNotFoundError("Not found")
	}
	s.invalidate(ctx)
	metrics.Posts.WithLabelValues("delete").Inc()
	return nil
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
