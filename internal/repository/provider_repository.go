package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ProviderRepo stores payment provider metadata. Rows are only ever
// written by the webhook reconciliation path, which upserts by the
// provider's unique display name.
type ProviderRepo struct {
	db *sql.DB
}

func NewProviderRepo(db *sql.DB) *ProviderRepo { return &ProviderRepo{db: db} }

// UpsertByNameTx returns the provider with the given name, creating
// it from the webhook metadata when it does not exist yet. A lost
// insert race against a concurrent webhook falls back to re-reading
// the winner's row, so the unique name constraint never surfaces to
// the caller.
func (r *ProviderRepo) UpsertByNameTx(ctx context.Context, tx *sql.Tx, p *model.PaymentProvider) (*model.PaymentProvider, error) {
	existing, err := r.getByNameTx(ctx, tx, p.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO payment_providers (name, api_endpoint, auth_info, type) VALUES (?, ?, ?, ?)`,
		p.Name, p.APIEndpoint, p.AuthInfo, p.Type)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return r.getByNameTx(ctx, tx, p.Name)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	created := *p
	created.ID = uint64(id)
	return &created, nil
}

func (r *ProviderRepo) getByNameTx(ctx context.Context, tx *sql.Tx, name string) (*model.PaymentProvider, error) {
	const q = `SELECT id, name, api_endpoint, auth_info, type
	           FROM payment_providers WHERE name = ? LIMIT 1`
	var m model.PaymentProvider
	err := tx.QueryRowContext(ctx, q, name).Scan(&m.ID, &m.Name, &m.APIEndpoint, &m.AuthInfo, &m.Type)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
