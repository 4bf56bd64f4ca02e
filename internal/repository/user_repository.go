package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
)

// UserRepo provides access to the identity store. Users carry no
// credentials; the (name, phone_number) pair is the natural key.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user and returns its generated ID. A duplicate
// (name, phone) pair maps to ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, name, phoneNumber string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, phone_number) VALUES (?, ?)`,
		strings.TrimSpace(name), strings.TrimSpace(phoneNumber))
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByNameAndPhone looks a user up by the natural key. Returns
// ErrUserNotFound when no row matches.
func (r *UserRepo) GetByNameAndPhone(ctx context.Context, name, phoneNumber string) (*model.User, error) {
	const q = `SELECT id, name, phone_number, created_at
	           FROM users WHERE name = ? AND phone_number = ? LIMIT 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(name), strings.TrimSpace(phoneNumber)).
		Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
