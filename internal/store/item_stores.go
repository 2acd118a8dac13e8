package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/household/internal/database"
	"github.com/dukerupert/household/internal/model"
)

// SetStores replaces the full set of stores an item is available at.
// Every store id is checked before the existing links are touched.
func (s *ItemStore) SetStores(ctx context.Context, itemID int64, storeIDs []int64) ([]model.Store, error) {
	var stores []model.Store
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, itemEntity, itemID); err != nil {
			return err
		}
		if err := validateStores(ctx, tx, storeIDs); err != nil {
			return err
		}
		if err := replaceItemStores(ctx, tx, itemID, storeIDs); err != nil {
			return err
		}
		var err error
		stores, err = itemStores(ctx, tx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stores, nil
}

// GetStores returns the stores an item is available at, ordered by name.
func (s *ItemStore) GetStores(ctx context.Context, itemID int64) ([]model.Store, error) {
	if err := ensureExists(ctx, s.db, itemEntity, itemID); err != nil {
		return nil, err
	}
	return itemStores(ctx, s.db, itemID)
}

func validateStores(ctx context.Context, q querier, storeIDs []int64) error {
	for _, id := range storeIDs {
		if err := ensureExists(ctx, q, storeEntity, id); err != nil {
			return err
		}
	}
	return nil
}

// replaceItemStores deletes every link for the item and inserts the new
// set. Callers run it inside a transaction after validateStores.
func replaceItemStores(ctx context.Context, q querier, itemID int64, storeIDs []int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM item_stores WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("clear item stores: %w", err)
	}

	seen := make(map[int64]bool, len(storeIDs))
	for _, storeID := range storeIDs {
		if seen[storeID] {
			continue
		}
		seen[storeID] = true
		if _, err := q.ExecContext(ctx,
			`INSERT INTO item_stores (item_id, store_id) VALUES (?, ?)`,
			itemID, storeID,
		); err != nil {
			return fmt.Errorf("insert item store %d: %w", storeID, err)
		}
	}
	return nil
}

func itemStores(ctx context.Context, q querier, itemID int64) ([]model.Store, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at, s.updated_at
		FROM stores s
		JOIN item_stores ist ON ist.store_id = s.id
		WHERE ist.item_id = ?
		ORDER BY s.name`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list item stores: %w", err)
	}
	defer rows.Close()

	stores := []model.Store{}
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item store: %w", err)
		}
		stores = append(stores, *st)
	}
	return stores, rows.Err()
}
