package postgres

import (
	"context"

	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userColumns = `id, email, username, password_hash, bio, avatar_url, background_url, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Bio, &u.AvatarURL, &u.BackgroundURL, &u.CreatedAt, &u.UpdatedAt)
	return u, translate(err)
}

func (r *usersRepo) Create(ctx context.Context, email, username, hash string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users(id, email, username, password_hash) VALUES($1,$2,$3,$4)
		 RETURNING `+userColumns,
		uuid.NewString(), email, username, hash,
	))
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	return exists, err
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`, username).Scan(&exists)
	return exists, err
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users
		    SET bio = COALESCE($2, bio),
		        avatar_url = COALESCE($3, avatar_url),
		        background_url = COALESCE($4, background_url),
		        updated_at = now()
		  WHERE id = $1
		  RETURNING `+userColumns,
		id, p.Bio, p.AvatarURL, p.BackgroundURL,
	))
}
