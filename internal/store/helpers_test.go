package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/household/internal/database"
	"github.com/dukerupert/household/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func clockAt(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func ptr[T any](v T) *T { return &v }

func createTestUser(t *testing.T, db *sql.DB, name string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(context.Background(), name, strings.ToLower(name)+"@example.com")
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func createTestStore(t *testing.T, db *sql.DB, name string) *model.Store {
	t.Helper()
	st, err := NewStoreStore(db).Create(context.Background(), name)
	if err != nil {
		t.Fatalf("create store %s: %v", name, err)
	}
	return st
}

func createTestItem(t *testing.T, db *sql.DB, in model.ItemCreate) *model.Item {
	t.Helper()
	it, err := NewItemStore(db).Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create item %s: %v", in.Name, err)
	}
	return it
}

func assertKind(t *testing.T, err, kind error, detail string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("err = %v, want %v", err, kind)
	}
	if detail != "" && !strings.Contains(err.Error(), detail) {
		t.Errorf("err = %q, want it to contain %q", err.Error(), detail)
	}
}
