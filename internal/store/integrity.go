package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface{ Scan(...any) error }

// entity names a table and the label used in error details. Table and
// column names are compile-time constants, never request input.
type entity struct {
	table string
	label string
}

var (
	userEntity        = entity{"users", "User"}
	storeEntity       = entity{"stores", "Store"}
	itemEntity        = entity{"items", "Item"}
	groceryItemEntity = entity{"grocery_items", "Grocery item"}
	templateEntity    = entity{"grocery_templates", "Template"}
	providerEntity    = entity{"providers", "Provider"}
	appointmentEntity = entity{"appointments", "Appointment"}
	taskEntity        = entity{"tasks", "Task"}
)

// dependent describes rows that block deletion of the row they reference.
type dependent struct {
	table string
	fk    string
	noun  string
}

var (
	storeDependents    = dependent{"item_stores", "store_id", "items"}
	providerDependents = dependent{"appointments", "provider_id", "appointments"}
)

func ensureExists(ctx context.Context, q querier, e entity, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM `+e.table+` WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundf("%s with id %d not found", e.label, id)
	}
	if err != nil {
		return fmt.Errorf("check %s exists: %w", e.table, err)
	}
	return nil
}

// ensureUnique fails with a conflict when another row (other than
// excludeID) already has value in field. Pass excludeID 0 on create.
func ensureUnique(ctx context.Context, q querier, e entity, field, value string, excludeID int64) error {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+e.table+` WHERE `+field+` = ? AND id != ?`,
		value, excludeID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check %s %s unique: %w", e.table, field, err)
	}
	if count > 0 {
		return conflictf("%s with %s '%s' already exists", e.label, field, value)
	}
	return nil
}

func ensureNoDependents(ctx context.Context, q querier, e entity, id int64, d dependent) error {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+d.table+` WHERE `+d.fk+` = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count %s: %w", d.table, err)
	}
	if count > 0 {
		label := strings.ToLower(e.label)
		return conflictf("Cannot delete %s: %d %s reference this %s", label, count, d.noun, label)
	}
	return nil
}

// updateSet collects the columns supplied in a partial update.
type updateSet struct {
	cols []string
	args []any
}

func (u *updateSet) add(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

func (u *updateSet) empty() bool { return len(u.cols) == 0 }

// exec writes the collected columns plus updated_at. It does nothing when no
// field was supplied.
func (u *updateSet) exec(ctx context.Context, q querier, table string, id int64, now time.Time) error {
	if u.empty() {
		return nil
	}
	cols := append(u.cols, "updated_at = ?")
	args := append(u.args, now, id)
	_, err := q.ExecContext(ctx, `UPDATE `+table+` SET `+strings.Join(cols, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func utcNow() time.Time { return time.Now().UTC() }
