package store

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/household/internal/model"
)

func TestStoreCRUD(t *testing.T) {
	db := openTestDB(t)
	ss := NewStoreStore(db)
	ctx := context.Background()

	st, err := ss.Create(ctx, "Costco")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if st.Name != "Costco" {
		t.Errorf("name = %q, want %q", st.Name, "Costco")
	}

	updated, err := ss.Update(ctx, st.ID, model.StoreUpdate{Name: ptr("Costco Wholesale")})
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if updated.Name != "Costco Wholesale" {
		t.Errorf("updated name = %q", updated.Name)
	}

	if err := ss.Delete(ctx, st.ID); err != nil {
		t.Fatalf("delete store: %v", err)
	}
	_, err = ss.GetByID(ctx, st.ID)
	assertKind(t, err, ErrNotFound, "not found")
}

func TestStoreDuplicateName(t *testing.T) {
	db := openTestDB(t)
	ss := NewStoreStore(db)
	ctx := context.Background()

	createTestStore(t, db, "Costco")
	_, err := ss.Create(ctx, "Costco")
	assertKind(t, err, ErrConflict, "Store with name 'Costco' already exists")

	other := createTestStore(t, db, "Safeway")
	_, err = ss.Update(ctx, other.ID, model.StoreUpdate{Name: ptr("Costco")})
	assertKind(t, err, ErrConflict, "Costco")

	// Renaming a store to its own name is not a conflict.
	if _, err := ss.Update(ctx, other.ID, model.StoreUpdate{Name: ptr("Safeway")}); err != nil {
		t.Fatalf("rename to same name: %v", err)
	}
}

func TestStoreListOrderedByName(t *testing.T) {
	db := openTestDB(t)
	createTestStore(t, db, "Whole Foods")
	createTestStore(t, db, "Costco")
	createTestStore(t, db, "Safeway")

	stores, err := NewStoreStore(db).List(context.Background())
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	want := []string{"Costco", "Safeway", "Whole Foods"}
	for i, name := range want {
		if stores[i].Name != name {
			t.Errorf("stores[%d] = %q, want %q", i, stores[i].Name, name)
		}
	}
}

func TestStoreUpdateNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := NewStoreStore(db).Update(context.Background(), 5, model.StoreUpdate{Name: ptr("x")})
	assertKind(t, err, ErrNotFound, "Store with id 5 not found")
}

func TestStoreDeleteBlockedByItems(t *testing.T) {
	db := openTestDB(t)
	ss := NewStoreStore(db)
	ctx := context.Background()

	st := createTestStore(t, db, "Costco")
	it := createTestItem(t, db, model.ItemCreate{Name: "Milk", StoreIDs: []int64{st.ID}})

	err := ss.Delete(ctx, st.ID)
	assertKind(t, err, ErrConflict, "Cannot delete store: 1 items reference this store")

	if _, err := ss.GetByID(ctx, st.ID); err != nil {
		t.Fatalf("store should survive blocked delete: %v", err)
	}

	if _, err := NewItemStore(db).SetStores(ctx, it.ID, nil); err != nil {
		t.Fatalf("clear item stores: %v", err)
	}
	if err := ss.Delete(ctx, st.ID); err != nil {
		t.Fatalf("delete store after unlinking: %v", err)
	}
}

func TestStoreDeleteNotFound(t *testing.T) {
	db := openTestDB(t)
	err := NewStoreStore(db).Delete(context.Background(), 9)
	assertKind(t, err, ErrNotFound, "Store with id 9 not found")
}

func TestStoreUpdatedAt(t *testing.T) {
	db := openTestDB(t)
	ss := NewStoreStore(db)
	ctx := context.Background()

	t0 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t1.Add(time.Hour)

	ss.now = clockAt(t0)
	st, err := ss.Create(ctx, "Costco")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if !st.UpdatedAt.Equal(t0) {
		t.Fatalf("updated_at = %v, want %v", st.UpdatedAt, t0)
	}

	// Supplying a field advances updated_at even when the value is unchanged.
	ss.now = clockAt(t1)
	st, err = ss.Update(ctx, st.ID, model.StoreUpdate{Name: ptr("Costco")})
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if !st.UpdatedAt.Equal(t1) {
		t.Errorf("after same-value update updated_at = %v, want %v", st.UpdatedAt, t1)
	}

	// An empty partial leaves it alone.
	ss.now = clockAt(t2)
	st, err = ss.Update(ctx, st.ID, model.StoreUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if !st.UpdatedAt.Equal(t1) {
		t.Errorf("after empty update updated_at = %v, want %v", st.UpdatedAt, t1)
	}
	if !st.CreatedAt.Equal(t0) {
		t.Errorf("created_at = %v, want %v", st.CreatedAt, t0)
	}
}
