package store

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/household/internal/model"
)

func TestTaskCreateAndUpdate(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")

	task, err := ts.Create(ctx, model.TaskCreate{Title: "Change air filter", Category: "maintenance", AssignedTo: &user.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.DueDate != nil {
		t.Errorf("due_date = %v, want nil", task.DueDate)
	}
	if task.AssignedTo == nil || *task.AssignedTo != user.ID {
		t.Errorf("assigned_to = %v", task.AssignedTo)
	}

	due := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	updated, err := ts.Update(ctx, task.ID, model.TaskUpdate{Completed: ptr(true), DueDate: &due})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Error("completed = false, want true")
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("due_date = %v, want %v", updated.DueDate, due)
	}
}

func TestTaskAssigneeMustExist(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	ctx := context.Background()

	_, err := ts.Create(ctx, model.TaskCreate{Title: "Walk dog", Category: "pet", AssignedTo: ptr(int64(8))})
	assertKind(t, err, ErrNotFound, "User with id 8 not found")

	task, err := ts.Create(ctx, model.TaskCreate{Title: "Walk dog", Category: "pet"})
	if err != nil {
		t.Fatalf("create unassigned: %v", err)
	}
	_, err = ts.Update(ctx, task.ID, model.TaskUpdate{AssignedTo: ptr(int64(8))})
	assertKind(t, err, ErrNotFound, "User with id 8 not found")
}

func TestTaskListOrdering(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	ctx := context.Background()

	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	done, err := ts.Create(ctx, model.TaskCreate{Title: "Completed", Category: "household", DueDate: date(2025, 10, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ts.Update(ctx, done.ID, model.TaskUpdate{Completed: ptr(true)}); err != nil {
		t.Fatal(err)
	}
	for _, in := range []model.TaskCreate{
		{Title: "Due 12-01", Category: "household", DueDate: date(2025, 12, 1)},
		{Title: "No due date", Category: "household"},
		{Title: "Due 11-15", Category: "household", DueDate: date(2025, 11, 15)},
	} {
		if _, err := ts.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Title, err)
		}
	}

	tasks, err := ts.List(ctx, model.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Due 11-15", "Due 12-01", "No due date", "Completed"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Title, title)
		}
	}
}

func TestTaskListFilters(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")

	for _, in := range []model.TaskCreate{
		{Title: "Vacuum", Category: "household", AssignedTo: &alice.ID},
		{Title: "Vet visit", Category: "pet", AssignedTo: &alice.ID},
		{Title: "Gutters", Category: "household", AssignedTo: &bob.ID},
	} {
		if _, err := ts.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	tasks, err := ts.List(ctx, model.TaskFilter{AssignedTo: &alice.ID, Category: ptr("household")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Vacuum" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}

	household, _ := ts.List(ctx, model.TaskFilter{Category: ptr("household")})
	if len(household) != 2 {
		t.Errorf("got %d household tasks, want 2", len(household))
	}
}

func TestTaskDelete(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	ctx := context.Background()

	task, _ := ts.Create(ctx, model.TaskCreate{Title: "Pack", Category: "travel"})
	if err := ts.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertKind(t, ts.Delete(ctx, task.ID), ErrNotFound, "Task with id")
}
