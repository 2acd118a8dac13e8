package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/household/internal/database"
	"github.com/dukerupert/household/internal/grocery"
	"github.com/dukerupert/household/internal/model"
)

type ItemStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db, now: utcNow}
}

func scanItem(s scanner) (*model.Item, error) {
	var it model.Item
	var defaultQty, section sql.NullString
	var isInt int

	err := s.Scan(&it.ID, &it.Name, &defaultQty, &isInt, &section, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}

	it.DefaultQuantity = stringPtr(defaultQty)
	it.QuantityIsInt = isInt != 0
	it.Section = stringPtr(section)
	return &it, nil
}

const itemCols = `id, name, default_quantity, quantity_is_int, section, created_at, updated_at`

// getItem reads one item and hydrates its stores.
func getItem(ctx context.Context, q querier, id int64) (*model.Item, error) {
	row := q.QueryRowContext(ctx, `SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Item with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if it.Stores, err = itemStores(ctx, q, id); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ItemStore) Create(ctx context.Context, in model.ItemCreate) (*model.Item, error) {
	section := in.Section
	if section == nil || *section == "" {
		if suggested, ok := grocery.SuggestSection(in.Name); ok {
			section = &suggested
		}
	}

	var it *model.Item
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureUnique(ctx, tx, itemEntity, "name", in.Name, 0); err != nil {
			return err
		}
		if err := validateStores(ctx, tx, in.StoreIDs); err != nil {
			return err
		}

		now := s.now()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO items (name, default_quantity, quantity_is_int, section, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			in.Name, nullString(in.DefaultQuantity), boolInt(in.QuantityIsInt), nullString(section), now, now,
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}

		if err := replaceItemStores(ctx, tx, id, in.StoreIDs); err != nil {
			return err
		}
		it, err = getItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	return getItem(ctx, s.db, id)
}

// List returns items ordered by name. With a store filter it returns items
// linked to that store plus items linked to no store at all.
func (s *ItemStore) List(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemCols + ` FROM items WHERE 1=1`
	var args []any

	if f.StoreID != nil {
		query += ` AND (
			EXISTS (SELECT 1 FROM item_stores ist WHERE ist.item_id = items.id AND ist.store_id = ?)
			OR NOT EXISTS (SELECT 1 FROM item_stores ist WHERE ist.item_id = items.id)
		)`
		args = append(args, *f.StoreID)
	}
	if f.Section != nil {
		query += ` AND section = ?`
		args = append(args, *f.Section)
	}
	query += ` ORDER BY name`

	items, err := queryItems(ctx, s.db, query, args...)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Stores, err = itemStores(ctx, s.db, items[i].ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// queryItems scans every row before returning so the connection is free
// for hydration queries.
func queryItems(ctx context.Context, q querier, query string, args ...any) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// Update applies the supplied fields. Every check runs before any write.
// A store_ids-only update replaces associations without touching updated_at.
func (s *ItemStore) Update(ctx context.Context, id int64, u model.ItemUpdate) (*model.Item, error) {
	var it *model.Item
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, itemEntity, id); err != nil {
			return err
		}
		if u.Name != nil {
			if err := ensureUnique(ctx, tx, itemEntity, "name", *u.Name, id); err != nil {
				return err
			}
		}
		if u.StoreIDs != nil {
			if err := validateStores(ctx, tx, *u.StoreIDs); err != nil {
				return err
			}
		}

		var set updateSet
		if u.Name != nil {
			set.add("name", *u.Name)
		}
		if u.DefaultQuantity != nil {
			set.add("default_quantity", *u.DefaultQuantity)
		}
		if u.QuantityIsInt != nil {
			set.add("quantity_is_int", boolInt(*u.QuantityIsInt))
		}
		if u.Section != nil {
			set.add("section", *u.Section)
		}
		if err := set.exec(ctx, tx, "items", id, s.now()); err != nil {
			return err
		}

		if u.StoreIDs != nil {
			if err := replaceItemStores(ctx, tx, id, *u.StoreIDs); err != nil {
				return err
			}
		}

		var err error
		it, err = getItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Delete removes an item together with its store links, grocery list
// entries, and template entries.
func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, itemEntity, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
}
