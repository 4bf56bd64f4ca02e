package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
)

// RoomRepo provides access to the rooms catalog. Rooms are created
// once and never updated except for the is_active flag.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a room and returns its generated ID. A duplicate
// name maps to ErrRoomNameExists.
func (r *RoomRepo) Create(ctx context.Context, name string, capacity, halfHourRate uint32) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (name, capacity, half_hour_rate, is_active) VALUES (?, ?, ?, TRUE)`,
		name, capacity, halfHourRate)
	if err != nil {
		// 1062 = MySQL duplicate entry
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrRoomNameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one room. ErrRoomNotFound when no row matches.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, capacity, half_hour_rate, is_active, created_at
	           FROM rooms WHERE id = ?`
	var m model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Capacity, &m.HalfHourRate, &m.IsActive, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActive returns all rooms currently open for booking, ordered
// by name for deterministic output.
func (r *RoomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name, capacity, half_hour_rate, is_active, created_at
	           FROM rooms WHERE is_active = TRUE ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.ID, &m.Name, &m.Capacity, &m.HalfHourRate, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetActive toggles a room's active flag.
func (r *RoomRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
