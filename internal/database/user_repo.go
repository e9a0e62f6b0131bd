package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

const userColumns = `id, full_name, email, password_hash, is_active, created_at`

func (d *Database) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(d.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(d.QueryRowContext(ctx, q, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (d *Database) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := d.QueryRowContext(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

func (d *Database) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	const q = `
	INSERT INTO users (id, full_name, email, password_hash, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()

	created, err := scanUser(d.QueryRowContext(ctx, q, user.ID, user.FullName, user.Email,
		user.PasswordHash, user.IsActive, user.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func scanUser(s rowScanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
