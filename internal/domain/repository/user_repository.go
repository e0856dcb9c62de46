package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, hashed_password, first_name, last_name, role, bio, profile_picture, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.FirstName, &user.LastName, &user.Role, &user.Bio,
		&user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, hashed_password, first_name, last_name, role, bio, profile_picture)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.HashedPassword,
		user.FirstName, user.LastName, user.Role, user.Bio, user.ProfilePicture,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET
	            username = $1, email = $2, first_name = $3, last_name = $4,
	            role = $5, bio = $6, profile_picture = $7, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.Role, user.Bio, user.ProfilePicture, user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	query := `UPDATE users SET hashed_password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, hashedPassword, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List count: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List rows: %w", err)
	}
	return users, total, nil
}
