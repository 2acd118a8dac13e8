package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/household/internal/database"
	"github.com/dukerupert/household/internal/model"
)

// ProviderStore persists doctors, vets and other service providers.
type ProviderStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewProviderStore(db *sql.DB) *ProviderStore {
	return &ProviderStore{db: db, now: utcNow}
}

func scanProvider(s scanner) (*model.Provider, error) {
	var p model.Provider
	var phone, email, website, address, info sql.NullString
	err := s.Scan(&p.ID, &p.Name, &phone, &email, &website, &address, &info, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Phone = stringPtr(phone)
	p.Email = stringPtr(email)
	p.Website = stringPtr(website)
	p.Address = stringPtr(address)
	p.Info = stringPtr(info)
	return &p, nil
}

const providerCols = `id, name, phone, email, website, address, info, created_at, updated_at`

func getProvider(ctx context.Context, q querier, id int64) (*model.Provider, error) {
	row := q.QueryRowContext(ctx, `SELECT `+providerCols+` FROM providers WHERE id = ?`, id)
	p, err := scanProvider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Provider with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (s *ProviderStore) Create(ctx context.Context, in model.ProviderCreate) (*model.Provider, error) {
	var p *model.Provider
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		now := s.now()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO providers (name, phone, email, website, address, info, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			in.Name, nullString(in.Phone), nullString(in.Email), nullString(in.Website),
			nullString(in.Address), nullString(in.Info), now, now,
		)
		if err != nil {
			return fmt.Errorf("insert provider: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		p, err = getProvider(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProviderStore) GetByID(ctx context.Context, id int64) (*model.Provider, error) {
	return getProvider(ctx, s.db, id)
}

func (s *ProviderStore) List(ctx context.Context) ([]model.Provider, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+providerCols+` FROM providers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, *p)
	}
	return providers, rows.Err()
}

func (s *ProviderStore) Update(ctx context.Context, id int64, u model.ProviderUpdate) (*model.Provider, error) {
	var p *model.Provider
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, providerEntity, id); err != nil {
			return err
		}

		var set updateSet
		if u.Name != nil {
			set.add("name", *u.Name)
		}
		if u.Phone != nil {
			set.add("phone", *u.Phone)
		}
		if u.Email != nil {
			set.add("email", *u.Email)
		}
		if u.Website != nil {
			set.add("website", *u.Website)
		}
		if u.Address != nil {
			set.add("address", *u.Address)
		}
		if u.Info != nil {
			set.add("info", *u.Info)
		}
		if err := set.exec(ctx, tx, "providers", id, s.now()); err != nil {
			return err
		}

		var err error
		p, err = getProvider(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a provider. It fails with a conflict while any appointment
// still references it.
func (s *ProviderStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, providerEntity, id); err != nil {
			return err
		}
		if err := ensureNoDependents(ctx, tx, providerEntity, id, providerDependents); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM providers WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete provider: %w", err)
		}
		return nil
	})
}
