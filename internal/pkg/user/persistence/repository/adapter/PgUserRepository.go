package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// PgUserRepository persists user accounts in Postgres.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id::text, username, email, avatar_url, status, last_seen, created_at, updated_at`

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	u := user.User{}
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM chat.app_user
		WHERE id = $1::uuid
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.AvatarURL, &status, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Status = user.Status(status)
	return &u, nil
}

func (r *PgUserRepository) Search(ctx context.Context, keyword, excludeID string) ([]user.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM chat.app_user
		WHERE (username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		  AND id <> $2::uuid
		ORDER BY username
	`, keyword, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u := user.User{}
		var status string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.AvatarURL, &status, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Status = user.Status(status)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.app_user
		SET avatar_url = $2, updated_at = now()
		WHERE id = $1::uuid
	`, id, avatarURL)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) UpdatePresence(ctx context.Context, id string, status user.Status, lastSeen time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.app_user
		SET status = $2, last_seen = $3, updated_at = now()
		WHERE id = $1::uuid
	`, id, string(status), lastSeen)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}
