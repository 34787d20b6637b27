package postgres

import (
	"context"

	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type progressRepo struct{ pool *pgxpool.Pool }

func NewProgress(pool *pgxpool.Pool) repository.Progress {
	return &progressRepo{pool: pool}
}

func (r *progressRepo) ListByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, module, percent, updated_at
		   FROM progress
		  WHERE user_id=$1
		  ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Progress{}
	for rows.Next() {
		var p models.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Module, &p.Percent, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert relies on user_module_unique: concurrent first reports for the same
// pair collapse into one row instead of racing a read-then-insert.
func (r *progressRepo) Upsert(ctx context.Context, userID, module string, percent int) (models.Progress, error) {
	var p models.Progress
	err := r.pool.QueryRow(ctx,
		`INSERT INTO progress(id, user_id, module, percent) VALUES($1,$2,$3,$4)
		 ON CONFLICT ON CONSTRAINT user_module_unique DO UPDATE
		    SET percent = EXCLUDED.percent,
		        updated_at = now()
		 RETURNING id, user_id, module, percent, updated_at`,
		uuid.NewString(), userID, module, percent,
	).Scan(&p.ID, &p.UserID, &p.Module, &p.Percent, &p.UpdatedAt)
	return p, translate(err)
}
