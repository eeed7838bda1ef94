package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow/internal/kvstore"
	"taskflow/internal/service"
	"taskflow/internal/tasks"
	"taskflow/internal/testutil"
)

var (
	ann = &service.Session{ID: "u1", Email: "ann@x.com", Name: "Ann"}
	bob = &service.Session{ID: "u2", Email: "bob@x.com", Name: "Bob"}
	t0  = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
)

// stepClock advances one minute per call, starting at t0.
func stepClock() func() time.Time {
	n := 0
	return func() time.Time {
		t := t0.Add(time.Duration(n) * time.Minute)
		n++
		return t
	}
}

func openRepo(t *testing.T, store kvstore.Store, sess *service.Session, ids ...string) *tasks.Repository {
	t.Helper()
	r, err := tasks.Open(context.Background(), store, sess,
		tasks.WithClock(stepClock()),
		tasks.WithIDGenerator(testutil.SequenceIDs(ids...)),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return r
}

func TestAdd_RoundTrip(t *testing.T) {
	store := testutil.NewFakeStore()
	r := openRepo(t, store, ann, "t1")
	ctx := context.Background()

	added, err := r.Add(ctx, service.TaskFormData{
		Title:       "Buy milk",
		Description: "2 litres",
		Priority:    service.PriorityLow,
		Category:    "Errands",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID != "t1" || added.Completed || added.CompletedAt != nil {
		t.Errorf("unexpected new task: %+v", added)
	}

	// A fresh repository reads what the first one wrote.
	loaded, err := openRepo(t, store, ann).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 task, got %d", len(loaded))
	}
	got := loaded[0]
	if got.ID != "t1" || got.Title != "Buy milk" || got.Description != "2 litres" ||
		got.Priority != service.PriorityLow || got.Category != "Errands" || got.Completed {
		t.Errorf("fields did not round-trip: %+v", got)
	}
	if !got.CreatedAt.Equal(t0) {
		t.Errorf("expected createdAt %v, got %v", t0, got.CreatedAt)
	}
}

func TestAdd_DefaultsAndValidation(t *testing.T) {
	r := openRepo(t, testutil.NewFakeStore(), ann)
	ctx := context.Background()

	if _, err := r.Add(ctx, service.TaskFormData{Title: "   "}); !errors.Is(err, service.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := r.Add(ctx, service.TaskFormData{Title: "x", Priority: "urgent"}); !errors.Is(err, service.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
	if len(r.Tasks()) != 0 {
		t.Error("rejected adds should not change the snapshot")
	}

	task, err := r.Add(ctx, service.TaskFormData{Title: "x"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.Priority != service.PriorityMedium {
		t.Errorf("expected default priority medium, got %q", task.Priority)
	}
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	r := openRepo(t, testutil.NewFakeStore(), ann, "t1")
	ctx := context.Background()
	r.Add(ctx, service.TaskFormData{Title: "Pay rent"})

	if ok, err := r.Toggle(ctx, "t1"); err != nil || !ok {
		t.Fatalf("Toggle: ok=%v err=%v", ok, err)
	}
	done := r.Tasks()[0]
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("expected completed with completedAt, got %+v", done)
	}
	if !done.CompletedAt.After(done.CreatedAt) {
		t.Errorf("completedAt %v should be after createdAt %v", done.CompletedAt, done.CreatedAt)
	}

	if ok, err := r.Toggle(ctx, "t1"); err != nil || !ok {
		t.Fatalf("second Toggle: ok=%v err=%v", ok, err)
	}
	back := r.Tasks()[0]
	if back.Completed || back.CompletedAt != nil {
		t.Errorf("expected original pending state, got %+v", back)
	}
}

func TestToggle_MissingIDIsNoop(t *testing.T) {
	store := testutil.NewFakeStore()
	r := openRepo(t, store, ann)

	ok, err := r.Toggle(context.Background(), "nope")
	if err != nil || ok {
		t.Errorf("expected no-op, got ok=%v err=%v", ok, err)
	}
	if len(store.Writes()) != 0 {
		t.Errorf("no-op should not write, got %v", store.Writes())
	}
}

func TestUpdate_MergesOnlySetFields(t *testing.T) {
	r := openRepo(t, testutil.NewFakeStore(), ann, "t1")
	ctx := context.Background()
	r.Add(ctx, service.TaskFormData{Title: "Draft", Description: "keep me", Priority: service.PriorityLow, Category: "Work"})

	title := "Final"
	high := service.PriorityHigh
	ok, err := r.Update(ctx, "t1", service.TaskPatch{Title: &title, Priority: &high})
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}

	got := r.Tasks()[0]
	if got.Title != "Final" || got.Priority != service.PriorityHigh {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if got.Description != "keep me" || got.Category != "Work" {
		t.Errorf("unpatched fields changed: %+v", got)
	}
}

func TestUpdate_RejectsBlankTitle(t *testing.T) {
	r := openRepo(t, testutil.NewFakeStore(), ann, "t1")
	ctx := context.Background()
	r.Add(ctx, service.TaskFormData{Title: "Keep"})

	blank := " \t"
	if _, err := r.Update(ctx, "t1", service.TaskPatch{Title: &blank}); !errors.Is(err, service.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if r.Tasks()[0].Title != "Keep" {
		t.Error("title should be unchanged")
	}
}

func TestUpdate_CompletedKeepsExistingTimestamp(t *testing.T) {
	r := openRepo(t, testutil.NewFakeStore(), ann, "t1")
	ctx := context.Background()
	r.Add(ctx, service.TaskFormData{Title: "x"})
	r.Toggle(ctx, "t1")
	first := *r.Tasks()[0].CompletedAt

	yes := true
	r.Update(ctx, "t1", service.TaskPatch{Completed: &yes})

	if got := *r.Tasks()[0].CompletedAt; !got.Equal(first) {
		t.Errorf("re-completing should keep completedAt %v, got %v", first, got)
	}
}

func TestDelete(t *testing.T) {
	store := testutil.NewFakeStore()
	r := openRepo(t, store, ann, "t1", "t2")
	ctx := context.Background()
	r.Add(ctx, service.TaskFormData{Title: "one"})
	r.Add(ctx, service.TaskFormData{Title: "two"})

	if ok, err := r.Delete(ctx, "t1"); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	loaded, _ := openRepo(t, store, ann).Load(ctx)
	for _, task := range loaded {
		if task.ID == "t1" {
			t.Error("deleted task came back")
		}
	}
	if len(loaded) != 1 {
		t.Errorf("expected 1 task left, got %d", len(loaded))
	}

	writes := len(store.Writes())
	if ok, err := r.Delete(ctx, "t1"); err != nil || ok {
		t.Errorf("deleting a missing id should be a no-op, got ok=%v err=%v", ok, err)
	}
	if len(store.Writes()) != writes {
		t.Error("no-op delete should not write")
	}
}

func TestPartitionsAreIsolated(t *testing.T) {
	store := testutil.NewFakeStore()
	ctx := context.Background()

	openRepo(t, store, ann, "a1").Add(ctx, service.TaskFormData{Title: "Ann's"})
	openRepo(t, store, bob, "b1").Add(ctx, service.TaskFormData{Title: "Bob's"})

	annTasks, _ := openRepo(t, store, ann).Load(ctx)
	if len(annTasks) != 1 || annTasks[0].Title != "Ann's" {
		t.Errorf("ann sees %+v", annTasks)
	}
	if _, ok := store.Raw("tasks_u2"); !ok {
		t.Error("expected bob's partition under tasks_u2")
	}

	r := openRepo(t, store, ann)
	if ok, _ := r.Delete(ctx, "b1"); ok {
		t.Error("ann should not be able to delete bob's task")
	}
}

func TestLoad_CorruptIsEmpty(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_u1", `[{"id":`)

	r := openRepo(t, store, ann)
	loaded, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt data should not error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty, got %+v", loaded)
	}
}

func TestLoad_ParsesISOTimestamps(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("tasks_u1", `[
		{"id":"a","title":"Done","description":"","completed":true,"priority":"high","category":"",
		 "createdAt":"2024-05-01T10:00:00.000Z","completedAt":"2024-05-02T11:30:00.000Z"},
		{"id":"b","title":"Open","description":"","completed":false,"priority":"low","category":"",
		 "createdAt":"2024-05-03T08:00:00.000Z","completedAt":"2024-05-04T08:00:00.000Z"}
	]`)

	loaded, err := openRepo(t, store, ann).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(loaded))
	}
	want := time.Date(2024, 5, 2, 11, 30, 0, 0, time.UTC)
	if loaded[0].CompletedAt == nil || !loaded[0].CompletedAt.Equal(want) {
		t.Errorf("expected completedAt %v, got %v", want, loaded[0].CompletedAt)
	}
	if loaded[1].CompletedAt != nil {
		t.Error("pending task should not carry completedAt")
	}
}

func TestNoSession_IsInert(t *testing.T) {
	store := testutil.NewFakeStore()
	r := openRepo(t, store, nil)
	ctx := context.Background()

	if _, err := r.Add(ctx, service.TaskFormData{Title: "x"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if ok, _ := r.Toggle(ctx, "x"); ok {
		t.Error("toggle should be a no-op")
	}
	if loaded, _ := r.Load(ctx); len(loaded) != 0 {
		t.Error("load should be empty")
	}
	if len(store.Writes()) != 0 {
		t.Errorf("expected no writes, got %v", store.Writes())
	}
}

func TestSaveError_KeepsSnapshot(t *testing.T) {
	store := testutil.NewFakeStore()
	store.SetErr["tasks_u1"] = testutil.ErrInjected
	r := openRepo(t, store, ann)

	_, err := r.Add(context.Background(), service.TaskFormData{Title: "x"})
	if !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("expected injected error, got %v", err)
	}
	if len(r.Tasks()) != 0 {
		t.Error("failed save should not change the snapshot")
	}
}

func TestLoad_StoreError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.GetErr["tasks_u1"] = testutil.ErrInjected

	_, err := tasks.Open(context.Background(), store, ann)
	if !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestUpdate_EmptyPatch(t *testing.T) {
	store := testutil.NewFakeStore()
	r := openRepo(t, store, ann, "t1")
	ctx := context.Background()
	if _, err := r.Add(ctx, service.TaskFormData{Title: "x"}); err != nil {
		t.Fatal(err)
	}
	writes := len(store.Writes())

	ok, err := r.Update(ctx, "t1", service.TaskPatch{})
	if err != nil || !ok {
		t.Errorf("expected ok for an existing task, got ok=%v err=%v", ok, err)
	}
	if len(store.Writes()) != writes {
		t.Error("an empty patch should not write")
	}
	if ok, _ := r.Update(ctx, "nope", service.TaskPatch{}); ok {
		t.Error("an empty patch on a missing task should report false")
	}
}

func TestLoad_RepairsHandWrittenData(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put(kvstore.TasksKey(ann.ID), `[
		{"id":"a","title":"done, no timestamp","completed":true,"priority":"high","createdAt":"2024-05-01T10:00:00Z"},
		{"id":"b","title":"odd priority","completed":false,"priority":"urgent","createdAt":"2024-05-01T10:00:00Z"}
	]`)

	loaded, err := openRepo(t, store, ann).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(loaded))
	}

	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if loaded[0].CompletedAt == nil || !loaded[0].CompletedAt.Equal(want) {
		t.Errorf("expected completedAt backfilled to %v, got %v", want, loaded[0].CompletedAt)
	}
	if loaded[0].Priority != service.PriorityHigh {
		t.Errorf("valid priority should be kept, got %q", loaded[0].Priority)
	}
	if loaded[1].Priority != service.PriorityMedium {
		t.Errorf("expected unknown priority to become medium, got %q", loaded[1].Priority)
	}
}
