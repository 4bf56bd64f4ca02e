package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/room-reservation/internal/model"
)

// PaymentRepo provides access to payment rows. The dispatch path
// writes through the plain methods; the webhook reconciliation path
// uses the Tx variants inside its own, independent transaction.
type PaymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) DB() *sql.DB { return r.db }

// Create inserts a PENDING payment for a reservation and returns the
// generated internal payment id. This happens before any provider is
// contacted, so a payment row always exists by the time a settlement
// webhook can arrive.
func (r *PaymentRepo) Create(ctx context.Context, reservationID uint64, amount uint32) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (reservation_id, amount, status) VALUES (?, ?, 'PENDING')`,
		reservationID, amount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateTx is Create inside a caller-owned transaction, used when the
// payment row is created together with its reservation.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, reservationID uint64, amount uint32) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payments (reservation_id, amount, status) VALUES (?, ?, 'PENDING')`,
		reservationID, amount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateExternalID records the provider-assigned id from the
// synchronous dispatch acknowledgement.
func (r *PaymentRepo) UpdateExternalID(ctx context.Context, id uint64, externalID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET external_payment_id = ? WHERE id = ?`, externalID, id)
	return err
}

// UpdateStatus sets a payment's status outside any transaction. Used
// by the dispatch path to mark a payment FAILED when the strategy
// call itself fails.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = ? WHERE id = ?`, status, id)
	return err
}

// GetByIDTx fetches a payment locked FOR UPDATE inside the webhook
// transaction. ErrPaymentNotFound when no row matches.
func (r *PaymentRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Payment, error) {
	const q = `SELECT id, payment_provider_id, reservation_id, amount, status, external_payment_id, created_at, updated_at
	           FROM payments WHERE id = ? FOR UPDATE`
	return scanPayment(tx.QueryRowContext(ctx, q, id))
}

// GetByID fetches a payment without locking.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (*model.Payment, error) {
	const q = `SELECT id, payment_provider_id, reservation_id, amount, status, external_payment_id, created_at, updated_at
	           FROM payments WHERE id = ?`
	return scanPayment(r.db.QueryRowContext(ctx, q, id))
}

func scanPayment(row *sql.Row) (*model.Payment, error) {
	var m model.Payment
	var providerID sql.NullInt64
	var externalID sql.NullString
	err := row.Scan(&m.ID, &providerID, &m.ReservationID, &m.Amount, &m.Status,
		&externalID, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	if providerID.Valid {
		v := uint64(providerID.Int64)
		m.ProviderID = &v
	}
	if externalID.Valid {
		v := externalID.String
		m.ExternalPaymentID = &v
	}
	return &m, nil
}

// UpdateStatusAndProviderTx applies the reconciled status and the
// resolved provider reference in one statement inside the webhook
// transaction.
func (r *PaymentRepo) UpdateStatusAndProviderTx(ctx context.Context, tx *sql.Tx, id uint64, status string, providerID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = ?, payment_provider_id = ? WHERE id = ?`,
		status, providerID, id)
	return err
}

// DeleteByReservationTx removes all payments of a reservation before
// the reservation itself is deleted.
func (r *PaymentRepo) DeleteByReservationTx(ctx context.Context, tx *sql.Tx, reservationID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE reservation_id = ?`, reservationID)
	return err
}

// ProviderName resolves the display name for a payment's provider
// reference. Returns "" when the payment has no provider yet.
func (r *PaymentRepo) ProviderName(ctx context.Context, providerID *uint64) (string, error) {
	if providerID == nil {
		return "", nil
	}
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM payment_providers WHERE id = ?`, *providerID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}
