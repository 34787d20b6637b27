package postgres

import (
	repo "github.com/baharkarakas/studygo-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users    repo.Users
	Posts    repo.Posts
	Progress repo.Progress
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    NewUsers(pool),
		Posts:    NewPosts(pool),
		Progress: NewProgress(pool),
	}
}
