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

// GroceryStore manages the entries on each user's grocery list.
type GroceryStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewGroceryStore(db *sql.DB) *GroceryStore {
	return &GroceryStore{db: db, now: utcNow}
}

func scanGroceryItem(s scanner) (*model.GroceryItem, error) {
	var gi model.GroceryItem
	var quantity sql.NullString
	var intQuantity sql.NullInt64
	var purchased int

	err := s.Scan(
		&gi.ID, &gi.ItemID, &gi.UserID, &quantity, &intQuantity,
		&purchased, &gi.CreatedAt, &gi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	gi.Quantity = stringPtr(quantity)
	gi.IntQuantity = int64Ptr(intQuantity)
	gi.Purchased = purchased != 0
	return &gi, nil
}

const groceryItemCols = `id, item_id, user_id, quantity, int_quantity, purchased, created_at, updated_at`

func getGroceryItem(ctx context.Context, q querier, id int64) (*model.GroceryItem, error) {
	row := q.QueryRowContext(ctx, `SELECT `+groceryItemCols+` FROM grocery_items WHERE id = ?`, id)
	gi, err := scanGroceryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Grocery item with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get grocery item: %w", err)
	}
	if gi.Item, err = getItem(ctx, q, gi.ItemID); err != nil {
		return nil, err
	}
	return gi, nil
}

// insertGroceryItem adds an unpurchased entry and returns its id. It does
// not validate references; callers check them first.
func insertGroceryItem(ctx context.Context, q querier, in model.GroceryItemCreate, now time.Time) (int64, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO grocery_items (item_id, user_id, quantity, int_quantity, purchased, created_at, updated_at) VALUES (?, ?, ?, ?, 0, ?, ?)`,
		in.ItemID, in.UserID, nullString(in.Quantity), nullInt64(in.IntQuantity), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert grocery item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *GroceryStore) Create(ctx context.Context, in model.GroceryItemCreate) (*model.GroceryItem, error) {
	var gi *model.GroceryItem
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, itemEntity, in.ItemID); err != nil {
			return err
		}
		if err := ensureExists(ctx, tx, userEntity, in.UserID); err != nil {
			return err
		}
		id, err := insertGroceryItem(ctx, tx, in, s.now())
		if err != nil {
			return err
		}
		gi, err = getGroceryItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return gi, nil
}

func (s *GroceryStore) GetByID(ctx context.Context, id int64) (*model.GroceryItem, error) {
	return getGroceryItem(ctx, s.db, id)
}

// List returns a user's entries, newest first. With a store filter only
// entries whose item is sold at that store, or at no particular store, are
// included.
func (s *GroceryStore) List(ctx context.Context, userID int64, storeID *int64) ([]model.GroceryItem, error) {
	query := `SELECT ` + groceryItemCols + ` FROM grocery_items gi WHERE gi.user_id = ?`
	args := []any{userID}

	if storeID != nil {
		query += ` AND (
			EXISTS (SELECT 1 FROM item_stores ist WHERE ist.item_id = gi.item_id AND ist.store_id = ?)
			OR NOT EXISTS (SELECT 1 FROM item_stores ist WHERE ist.item_id = gi.item_id)
		)`
		args = append(args, *storeID)
	}
	query += ` ORDER BY gi.created_at DESC, gi.id DESC`

	entries, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	items := make(map[int64]*model.Item)
	for i := range entries {
		it, ok := items[entries[i].ItemID]
		if !ok {
			if it, err = getItem(ctx, s.db, entries[i].ItemID); err != nil {
				return nil, err
			}
			items[entries[i].ItemID] = it
		}
		entries[i].Item = it
	}
	return entries, nil
}

func (s *GroceryStore) query(ctx context.Context, query string, args ...any) ([]model.GroceryItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grocery items: %w", err)
	}
	defer rows.Close()

	var entries []model.GroceryItem
	for rows.Next() {
		gi, err := scanGroceryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grocery item: %w", err)
		}
		entries = append(entries, *gi)
	}
	return entries, rows.Err()
}

func (s *GroceryStore) Update(ctx context.Context, id int64, u model.GroceryItemUpdate) (*model.GroceryItem, error) {
	var gi *model.GroceryItem
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, groceryItemEntity, id); err != nil {
			return err
		}

		var set updateSet
		if u.Quantity != nil {
			set.add("quantity", *u.Quantity)
		}
		if u.IntQuantity != nil {
			set.add("int_quantity", *u.IntQuantity)
		}
		if u.Purchased != nil {
			set.add("purchased", boolInt(*u.Purchased))
		}
		if err := set.exec(ctx, tx, "grocery_items", id, s.now()); err != nil {
			return err
		}

		var err error
		gi, err = getGroceryItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return gi, nil
}

func (s *GroceryStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, groceryItemEntity, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete grocery item: %w", err)
		}
		return nil
	})
}

// ClearPurchased removes every purchased entry from a user's list and
// returns how many were removed.
func (s *GroceryStore) ClearPurchased(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, userEntity, userID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`DELETE FROM grocery_items WHERE user_id = ? AND purchased = 1`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("clear purchased: %w", err)
		}
		count, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
