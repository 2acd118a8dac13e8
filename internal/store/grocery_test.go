package store

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/household/internal/model"
)

func TestGroceryItemCreate(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")
	st := createTestStore(t, db, "Costco")
	it := createTestItem(t, db, model.ItemCreate{Name: "Eggs", StoreIDs: []int64{st.ID}})

	gi, err := gs.Create(ctx, model.GroceryItemCreate{
		ItemID:      it.ID,
		UserID:      user.ID,
		Quantity:    ptr("12"),
		IntQuantity: ptr(int64(12)),
	})
	if err != nil {
		t.Fatalf("create grocery item: %v", err)
	}
	if gi.Purchased {
		t.Error("new entry should not be purchased")
	}
	if gi.IntQuantity == nil || *gi.IntQuantity != 12 {
		t.Errorf("int_quantity = %v, want 12", gi.IntQuantity)
	}
	if gi.Item == nil || gi.Item.Name != "Eggs" {
		t.Fatalf("item not hydrated: %+v", gi.Item)
	}
	if len(gi.Item.Stores) != 1 || gi.Item.Stores[0].Name != "Costco" {
		t.Errorf("item stores not hydrated: %v", gi.Item.Stores)
	}
}

func TestGroceryItemCreateMissingReferences(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")
	it := createTestItem(t, db, model.ItemCreate{Name: "Eggs"})

	_, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: 99, UserID: user.ID})
	assertKind(t, err, ErrNotFound, "Item with id 99 not found")

	_, err = gs.Create(ctx, model.GroceryItemCreate{ItemID: it.ID, UserID: 77})
	assertKind(t, err, ErrNotFound, "User with id 77 not found")
}

func TestGroceryListScopedToUser(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")
	milk := createTestItem(t, db, model.ItemCreate{Name: "Milk"})
	eggs := createTestItem(t, db, model.ItemCreate{Name: "Eggs"})

	t0 := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	gs.now = clockAt(t0)
	if _, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: milk.ID, UserID: alice.ID}); err != nil {
		t.Fatal(err)
	}
	gs.now = clockAt(t0.Add(time.Minute))
	if _, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: eggs.ID, UserID: alice.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: milk.ID, UserID: bob.ID}); err != nil {
		t.Fatal(err)
	}

	entries, err := gs.List(ctx, alice.ID, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Item.Name != "Eggs" || entries[1].Item.Name != "Milk" {
		t.Errorf("entries not newest first: %s, %s", entries[0].Item.Name, entries[1].Item.Name)
	}
}

func TestGroceryListStoreFilter(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")
	a := createTestStore(t, db, "A")
	b := createTestStore(t, db, "B")

	onlyA := createTestItem(t, db, model.ItemCreate{Name: "Apples", StoreIDs: []int64{a.ID}})
	onlyB := createTestItem(t, db, model.ItemCreate{Name: "Bread", StoreIDs: []int64{b.ID}})
	anywhere := createTestItem(t, db, model.ItemCreate{Name: "Candles"})
	both := createTestItem(t, db, model.ItemCreate{Name: "Dates", StoreIDs: []int64{a.ID, b.ID}})

	for _, it := range []*model.Item{onlyA, onlyB, anywhere, both} {
		if _, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: it.ID, UserID: user.ID}); err != nil {
			t.Fatalf("create entry for %s: %v", it.Name, err)
		}
	}

	entries, err := gs.List(ctx, user.ID, &a.ID)
	if err != nil {
		t.Fatalf("list at A: %v", err)
	}
	got := map[string]int{}
	for _, e := range entries {
		got[e.Item.Name]++
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(entries), got)
	}
	for _, name := range []string{"Apples", "Candles", "Dates"} {
		if got[name] != 1 {
			t.Errorf("%s appears %d times, want 1", name, got[name])
		}
	}
	if got["Bread"] != 0 {
		t.Error("Bread is only sold at B and should be filtered out")
	}
}

func TestGroceryItemUpdate(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")
	it := createTestItem(t, db, model.ItemCreate{Name: "Milk"})

	gi, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: it.ID, UserID: user.ID, Quantity: ptr("1")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := gs.Update(ctx, gi.ID, model.GroceryItemUpdate{Purchased: ptr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Purchased {
		t.Error("purchased = false, want true")
	}
	if updated.Quantity == nil || *updated.Quantity != "1" {
		t.Errorf("quantity changed by purchased-only update: %v", updated.Quantity)
	}

	_, err = gs.Update(ctx, 404, model.GroceryItemUpdate{Purchased: ptr(true)})
	assertKind(t, err, ErrNotFound, "Grocery item with id 404 not found")
}

func TestGroceryItemDelete(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")
	it := createTestItem(t, db, model.ItemCreate{Name: "Milk"})

	gi, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: it.ID, UserID: user.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := gs.Delete(ctx, gi.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertKind(t, gs.Delete(ctx, gi.ID), ErrNotFound, "not found")
}

func TestGroceryClearPurchased(t *testing.T) {
	db := openTestDB(t)
	gs := NewGroceryStore(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")
	milk := createTestItem(t, db, model.ItemCreate{Name: "Milk"})
	eggs := createTestItem(t, db, model.ItemCreate{Name: "Eggs"})

	bought, _ := gs.Create(ctx, model.GroceryItemCreate{ItemID: milk.ID, UserID: alice.ID})
	if _, err := gs.Create(ctx, model.GroceryItemCreate{ItemID: eggs.ID, UserID: alice.ID}); err != nil {
		t.Fatal(err)
	}
	bobs, _ := gs.Create(ctx, model.GroceryItemCreate{ItemID: milk.ID, UserID: bob.ID})
	for _, id := range []int64{bought.ID, bobs.ID} {
		if _, err := gs.Update(ctx, id, model.GroceryItemUpdate{Purchased: ptr(true)}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := gs.ClearPurchased(ctx, alice.ID)
	if err != nil {
		t.Fatalf("clear purchased: %v", err)
	}
	if n != 1 {
		t.Errorf("cleared %d, want 1", n)
	}

	remaining, _ := gs.List(ctx, alice.ID, nil)
	if len(remaining) != 1 || remaining[0].Item.Name != "Eggs" {
		t.Errorf("unexpected remaining entries: %d", len(remaining))
	}
	if _, err := gs.GetByID(ctx, bobs.ID); err != nil {
		t.Errorf("another user's purchased entry was cleared: %v", err)
	}

	_, err = gs.ClearPurchased(ctx, 999)
	assertKind(t, err, ErrNotFound, "User with id 999 not found")
}
