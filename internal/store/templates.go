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

// TemplateStore manages grocery templates and applies them to grocery lists.
type TemplateStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db, now: utcNow}
}

// --- Template methods ---

func scanTemplate(s scanner) (*model.GroceryTemplate, error) {
	var t model.GroceryTemplate
	var isDefault int
	if err := s.Scan(&t.ID, &t.Name, &isDefault, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.IsDefault = isDefault != 0
	return &t, nil
}

const templateCols = `id, name, is_default, user_id, created_at, updated_at`

func getTemplate(ctx context.Context, q querier, id int64) (*model.GroceryTemplate, error) {
	row := q.QueryRowContext(ctx, `SELECT `+templateCols+` FROM grocery_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Template with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

// clearDefault unsets the default flag on the user's templates other than
// exceptID. It must run in the same transaction as the write that sets the
// new default.
func clearDefault(ctx context.Context, q querier, userID, exceptID int64, now time.Time) error {
	_, err := q.ExecContext(ctx,
		`UPDATE grocery_templates SET is_default = 0, updated_at = ? WHERE user_id = ? AND id != ? AND is_default = 1`,
		now, userID, exceptID,
	)
	if err != nil {
		return fmt.Errorf("clear default template: %w", err)
	}
	return nil
}

func (s *TemplateStore) Create(ctx context.Context, in model.GroceryTemplateCreate) (*model.GroceryTemplate, error) {
	var t *model.GroceryTemplate
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, userEntity, in.UserID); err != nil {
			return err
		}

		now := s.now()
		if in.IsDefault {
			if err := clearDefault(ctx, tx, in.UserID, 0, now); err != nil {
				return err
			}
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO grocery_templates (name, is_default, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			in.Name, boolInt(in.IsDefault), in.UserID, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert template: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		t, err = getTemplate(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the user's templates, default first, then by name.
func (s *TemplateStore) List(ctx context.Context, userID int64) ([]model.GroceryTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+templateCols+` FROM grocery_templates WHERE user_id = ? ORDER BY is_default DESC, name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []model.GroceryTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (s *TemplateStore) GetByID(ctx context.Context, id int64) (*model.GroceryTemplate, error) {
	return getTemplate(ctx, s.db, id)
}

// GetWithItems returns the template and its items in insertion order, each
// hydrated with the full item and its stores.
func (s *TemplateStore) GetWithItems(ctx context.Context, id int64) (*model.GroceryTemplateWithItems, error) {
	t, err := getTemplate(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	items, err := templateItems(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Item, err = getItem(ctx, s.db, items[i].ItemID); err != nil {
			return nil, err
		}
	}
	return &model.GroceryTemplateWithItems{GroceryTemplate: *t, Items: items}, nil
}

func (s *TemplateStore) Update(ctx context.Context, id int64, u model.GroceryTemplateUpdate) (*model.GroceryTemplate, error) {
	var t *model.GroceryTemplate
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		existing, err := getTemplate(ctx, tx, id)
		if err != nil {
			return err
		}

		now := s.now()
		var set updateSet
		if u.Name != nil {
			set.add("name", *u.Name)
		}
		if u.IsDefault != nil {
			if *u.IsDefault {
				if err := clearDefault(ctx, tx, existing.UserID, id, now); err != nil {
					return err
				}
			}
			set.add("is_default", boolInt(*u.IsDefault))
		}
		if err := set.exec(ctx, tx, "grocery_templates", id, now); err != nil {
			return err
		}

		t, err = getTemplate(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a template and, by cascade, its items.
func (s *TemplateStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, templateEntity, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_templates WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		return nil
	})
}

// --- Template item methods ---

func scanTemplateItem(s scanner) (*model.GroceryTemplateItem, error) {
	var ti model.GroceryTemplateItem
	var quantity sql.NullString
	if err := s.Scan(&ti.ID, &ti.TemplateID, &ti.ItemID, &quantity, &ti.CreatedAt); err != nil {
		return nil, err
	}
	ti.Quantity = stringPtr(quantity)
	return &ti, nil
}

const templateItemCols = `id, template_id, item_id, quantity, created_at`

// templateItems returns the template's items in insertion order without
// hydrating them.
func templateItems(ctx context.Context, q querier, templateID int64) ([]model.GroceryTemplateItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+templateItemCols+` FROM grocery_template_items WHERE template_id = ? ORDER BY id`,
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("list template items: %w", err)
	}
	defer rows.Close()

	items := []model.GroceryTemplateItem{}
	for rows.Next() {
		ti, err := scanTemplateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		items = append(items, *ti)
	}
	return items, rows.Err()
}

func (s *TemplateStore) AddItem(ctx context.Context, templateID int64, in model.GroceryTemplateItemCreate) (*model.GroceryTemplateItem, error) {
	var ti *model.GroceryTemplateItem
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, templateEntity, templateID); err != nil {
			return err
		}
		if err := ensureExists(ctx, tx, itemEntity, in.ItemID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO grocery_template_items (template_id, item_id, quantity, created_at) VALUES (?, ?, ?, ?)`,
			templateID, in.ItemID, nullString(in.Quantity), s.now(),
		)
		if err != nil {
			return fmt.Errorf("insert template item: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}

		row := tx.QueryRowContext(ctx, `SELECT `+templateItemCols+` FROM grocery_template_items WHERE id = ?`, id)
		if ti, err = scanTemplateItem(row); err != nil {
			return fmt.Errorf("get template item: %w", err)
		}
		ti.Item, err = getItem(ctx, tx, ti.ItemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ti, nil
}

// RemoveItem deletes a template item. The item must belong to templateID.
func (s *TemplateStore) RemoveItem(ctx context.Context, templateID, templateItemID int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM grocery_template_items WHERE id = ? AND template_id = ?`,
			templateItemID, templateID,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundf("Template item with id %d not found in template %d", templateItemID, templateID)
		}
		if err != nil {
			return fmt.Errorf("get template item: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_template_items WHERE id = ?`, templateItemID); err != nil {
			return fmt.Errorf("delete template item: %w", err)
		}
		return nil
	})
}

// --- Application ---

// Apply adds one grocery list entry for the user per template item. The
// quantity is the template item's override when non-empty, otherwise the
// item's default; integer items also get int_quantity when the quantity
// parses. Entries are always added, never merged with existing ones.
func (s *TemplateStore) Apply(ctx context.Context, templateID, userID int64) (*model.TemplateApplication, error) {
	app := &model.TemplateApplication{TemplateID: templateID, UserID: userID}
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, templateEntity, templateID); err != nil {
			return err
		}
		if err := ensureExists(ctx, tx, userEntity, userID); err != nil {
			return err
		}

		items, err := templateItems(ctx, tx, templateID)
		if err != nil {
			return err
		}

		now := s.now()
		for _, ti := range items {
			var defaultQty sql.NullString
			var isInt int
			err := tx.QueryRowContext(ctx,
				`SELECT quantity_is_int, default_quantity FROM items WHERE id = ?`,
				ti.ItemID,
			).Scan(&isInt, &defaultQty)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("template item %d references missing item %d", ti.ID, ti.ItemID)
			}
			if err != nil {
				return fmt.Errorf("get item %d: %w", ti.ItemID, err)
			}

			quantity := grocery.ResolveQuantity(ti.Quantity, stringPtr(defaultQty))
			entry := model.GroceryItemCreate{
				ItemID:      ti.ItemID,
				UserID:      userID,
				Quantity:    quantity,
				IntQuantity: grocery.IntQuantity(quantity, isInt != 0),
			}
			if _, err := insertGroceryItem(ctx, tx, entry, now); err != nil {
				return err
			}
			app.ItemsAdded++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}
