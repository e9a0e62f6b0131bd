package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

const homeColumns = `id, user_id, name, address, latitude, longitude, area, status, created_at`

func (d *Database) GetHomeByID(ctx context.Context, id uuid.UUID) (*model.Home, error) {
	q := `SELECT ` + homeColumns + ` FROM homes WHERE id = $1`
	home, err := scanHome(d.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get home: %w", err)
	}
	return home, nil
}

func (d *Database) GetAllHomes(ctx context.Context) ([]model.Home, error) {
	q := `SELECT ` + homeColumns + ` FROM homes ORDER BY created_at DESC`
	rows, err := d.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get homes: %w", err)
	}
	defer rows.Close()

	var homes []model.Home
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan home: %w", err)
		}
		homes = append(homes, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate homes: %w", err)
	}
	return homes, nil
}

func (d *Database) CreateHome(ctx context.Context, home *model.Home) (*model.Home, error) {
	const q = `
	INSERT INTO homes (id, user_id, name, address, latitude, longitude, area, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + homeColumns

	home.ID = uuid.New()
	home.CreatedAt = time.Now().UTC()

	created, err := scanHome(d.QueryRowContext(ctx, q, home.ID, home.UserID, home.Name,
		home.Address, home.Latitude, home.Longitude, home.Area, string(home.Status), home.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}
	return created, nil
}

func (d *Database) UpdateHome(ctx context.Context, id uuid.UUID, home *model.Home) (bool, error) {
	const q = `
	UPDATE homes
	SET name = $2, address = $3, latitude = $4, longitude = $5, area = $6, status = $7
	WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id, home.Name, home.Address, home.Latitude,
		home.Longitude, home.Area, string(home.Status))
	if err != nil {
		return false, fmt.Errorf("update home: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update home: %w", err)
	}
	return affected > 0, nil
}

func (d *Database) DeleteHome(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM homes WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("delete home: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete home: %w", err)
	}
	return affected > 0, nil
}

func scanHome(s rowScanner) (*model.Home, error) {
	var h model.Home
	var status string
	if err := s.Scan(&h.ID, &h.UserID, &h.Name, &h.Address, &h.Latitude,
		&h.Longitude, &h.Area, &status, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.Status = model.HomeStatus(status)
	return &h, nil
}
