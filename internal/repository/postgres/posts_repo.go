package postgres

import (
	"context"

	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts {
	return &postsRepo{pool: pool}
}

func (r *postsRepo) Create(ctx context.Context, userID, content string) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts(id, user_id, content) VALUES($1,$2,$3)
		 RETURNING id, user_id, content, created_at`,
		uuid.NewString(), userID, content,
	).Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt)
	return p, translate(err)
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, content, created_at FROM posts WHERE id=$1`, id,
	).Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt)
	return p, translate(err)
}

func (r *postsRepo) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, content, created_at
		   FROM posts
		  ORDER BY created_at DESC, id DESC
		  LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
