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

// StoreStore persists the shops items are bought at.
type StoreStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStoreStore(db *sql.DB) *StoreStore {
	return &StoreStore{db: db, now: utcNow}
}

func scanStore(s scanner) (*model.Store, error) {
	var st model.Store
	if err := s.Scan(&st.ID, &st.Name, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

const storeCols = `id, name, created_at, updated_at`

func getStore(ctx context.Context, q querier, id int64) (*model.Store, error) {
	row := q.QueryRowContext(ctx, `SELECT `+storeCols+` FROM stores WHERE id = ?`, id)
	st, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Store with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}

func (s *StoreStore) Create(ctx context.Context, name string) (*model.Store, error) {
	var st *model.Store
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureUnique(ctx, tx, storeEntity, "name", name, 0); err != nil {
			return err
		}
		now := s.now()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO stores (name, created_at, updated_at) VALUES (?, ?, ?)`,
			name, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert store: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		st, err = getStore(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StoreStore) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	return getStore(ctx, s.db, id)
}

func (s *StoreStore) List(ctx context.Context) ([]model.Store, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+storeCols+` FROM stores ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, *st)
	}
	return stores, rows.Err()
}

func (s *StoreStore) Update(ctx context.Context, id int64, u model.StoreUpdate) (*model.Store, error) {
	var st *model.Store
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, storeEntity, id); err != nil {
			return err
		}

		var set updateSet
		if u.Name != nil {
			if err := ensureUnique(ctx, tx, storeEntity, "name", *u.Name, id); err != nil {
				return err
			}
			set.add("name", *u.Name)
		}
		if err := set.exec(ctx, tx, "stores", id, s.now()); err != nil {
			return err
		}

		var err error
		st, err = getStore(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes a store. Stores still linked to items cannot be deleted.
func (s *StoreStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, storeEntity, id); err != nil {
			return err
		}
		if err := ensureNoDependents(ctx, tx, storeEntity, id, storeDependents); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete store: %w", err)
		}
		return nil
	})
}
