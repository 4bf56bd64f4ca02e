package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. All
// timestamp columns are stored in UTC. Methods with a Tx suffix run
// inside a caller-owned transaction; the caller commits or rolls
// back.
type ReservationRepo struct {
	db *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a reservation within the given transaction and
// populates the generated ID on the record. Status should be one of
// the model.Reservation* constants.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, room_id, start_time, end_time, total_amount, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.RoomID, res.StartTime.UTC(), res.EndTime.UTC(), res.TotalAmount, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// ListForRoomAfterTx returns the room's reservations still running
// at or starting after the given instant, ordered by start ascending,
// locked FOR UPDATE. The lock serializes concurrent bookings of the
// same room so that two overlapping requests cannot both pass the
// overlap check.
func (r *ReservationRepo) ListForRoomAfterTx(ctx context.Context, tx *sql.Tx, roomID uint64, after time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, start_time, end_time, total_amount, status, created_at
	           FROM reservations
	           WHERE room_id = ? AND end_time > ? AND status <> 'CANCELLED'
	           ORDER BY start_time
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, roomID, after.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListForRoomAfter is the plain-read variant used by the availability
// endpoint, where no lock is needed.
func (r *ReservationRepo) ListForRoomAfter(ctx context.Context, roomID uint64, after time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, start_time, end_time, total_amount, status, created_at
	           FROM reservations
	           WHERE room_id = ? AND end_time > ? AND status <> 'CANCELLED'
	           ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, roomID, after.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for rows.Next() {
		var m model.Reservation
		if err := rows.Scan(&m.ID, &m.UserID, &m.RoomID, &m.StartTime, &m.EndTime,
			&m.TotalAmount, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID fetches one reservation. ErrReservationNotFound when no
// row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, start_time, end_time, total_amount, status, created_at
	           FROM reservations WHERE id = ?`
	var m model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.UserID, &m.RoomID,
		&m.StartTime, &m.EndTime, &m.TotalAmount, &m.Status, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByIDForUserTx fetches a reservation restricted to the given
// owner, locked FOR UPDATE. ErrReservationNotFound covers both a
// missing reservation and one owned by a different user, so the
// caller cannot probe other users' bookings.
func (r *ReservationRepo) GetByIDForUserTx(ctx context.Context, tx *sql.Tx, id, userID uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, start_time, end_time, total_amount, status, created_at
	           FROM reservations WHERE id = ? AND user_id = ? FOR UPDATE`
	var m model.Reservation
	err := tx.QueryRowContext(ctx, q, id, userID).Scan(&m.ID, &m.UserID, &m.RoomID,
		&m.StartTime, &m.EndTime, &m.TotalAmount, &m.Status, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ReservationDetail is a reservation joined with its room name for
// listing endpoints.
type ReservationDetail struct {
	ID          uint64 `json:"id"`
	RoomID      uint64 `json:"room_id"`
	RoomName    string `json:"room_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TotalAmount uint32 `json:"total_amount"`
	Status      string `json:"status"`
}

// ListByUser returns all reservations created by the user, newest
// first, with the room name resolved.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT res.id, res.room_id, rm.name, res.start_time, res.end_time, res.total_amount, res.status
	           FROM reservations res
	           JOIN rooms rm ON rm.id = res.room_id
	           WHERE res.user_id = ?
	           ORDER BY res.start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ReservationDetail{}
	for rows.Next() {
		var d ReservationDetail
		var start, end time.Time
		if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomName, &start, &end, &d.TotalAmount, &d.Status); err != nil {
			return nil, err
		}
		d.StartTime = start.UTC().Format(time.RFC3339)
		d.EndTime = end.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ConfirmTx moves a reservation from PENDING to CONFIRMED within the
// given transaction. It is the only write path into CONFIRMED and is
// driven exclusively by a successful payment reconciliation.
func (r *ReservationRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE reservations SET status = 'CONFIRMED' WHERE id = ? AND status = 'PENDING'`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

// DeleteTx removes a reservation. Associated payments must already be
// gone; the caller deletes them first in the same transaction.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}
