package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"typetrivia/internal/auth"
	"typetrivia/internal/score"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return store
}

func TestNextIDStartsAtOneAndIncrements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for want := uint64(1); want <= 5; want++ {
		got, err := store.NextID(ctx, score.ScoreSequence)
		if err != nil {
			t.Fatalf("NextID returned error: %v", err)
		}
		if got != want {
			t.Fatalf("NextID = %d, want %d", got, want)
		}
	}
}

func TestNextIDSequencesAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.NextID(ctx, "scores"); err != nil {
		t.Fatalf("NextID returned error: %v", err)
	}
	if _, err := store.NextID(ctx, "scores"); err != nil {
		t.Fatalf("NextID returned error: %v", err)
	}

	got, err := store.NextID(ctx, "other")
	if err != nil {
		t.Fatalf("NextID returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("independent sequence started at %d, want 1", got)
	}
}

func TestNextIDConcurrentCallersGetDistinctIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const callers = 50
	ids := make(chan uint64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.NextID(ctx, score.ScoreSequence)
			if err != nil {
				t.Errorf("NextID returned error: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	count := 0
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id allocated: %d", id)
		}
		seen[id] = true
		count++
	}
	if count != callers {
		t.Fatalf("allocated %d ids, want %d", count, callers)
	}
	// All succeeded, so the sequence must be gap-free.
	for id := uint64(1); id <= callers; id++ {
		if !seen[id] {
			t.Fatalf("missing id %d in gap-free allocation", id)
		}
	}
}

func TestInsertAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	records := []score.Record{
		{ID: 1, Owner: "alice", Score: 250, WPM: 42.5, Accuracy: 96.5, CreatedAt: createdAt},
		{ID: 2, Owner: "bob", Score: 90, WPM: 28, Accuracy: 75, CreatedAt: createdAt},
		{ID: 3, Owner: "alice", Score: 310, WPM: 51, Accuracy: 98, CreatedAt: createdAt},
	}
	for _, record := range records {
		if err := store.Insert(ctx, record); err != nil {
			t.Fatalf("Insert(%d) returned error: %v", record.ID, err)
		}
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll returned %d records, want 3", len(all))
	}

	mine, err := store.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != 1 || mine[1].ID != 3 {
		t.Fatalf("unexpected history: %+v", mine)
	}
	if !mine[0].CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v, want %v", mine[0].CreatedAt, createdAt)
	}
	if mine[1].WPM != 51 || mine[1].Score != 310 || mine[1].Accuracy != 98 {
		t.Fatalf("unexpected record values: %+v", mine[1])
	}
}

func TestInsertDuplicateKeyFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := score.Record{ID: 1, Owner: "alice", CreatedAt: time.Now().UTC()}
	if err := store.Insert(ctx, record); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	err := store.Insert(ctx, record)
	if !errors.Is(err, score.ErrStorageUnavailable) {
		t.Fatalf("duplicate Insert error = %v, want ErrStorageUnavailable", err)
	}
}

func TestListAllEmpty(t *testing.T) {
	store := newTestStore(t)

	all, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d records", len(all))
	}
}

func TestCreateUserAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := auth.User{
		Username:     "alice",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	got, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if got.Username != user.Username || got.PasswordHash != user.PasswordHash {
		t.Fatalf("GetUser = %+v, want %+v", got, user)
	}
}

func TestCreateUserDuplicateDoesNotOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, auth.User{Username: "alice", PasswordHash: "original", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	err := store.CreateUser(ctx, auth.User{Username: "alice", PasswordHash: "attacker", CreatedAt: time.Now()})
	if !errors.Is(err, auth.ErrUserExists) {
		t.Fatalf("duplicate CreateUser error = %v, want ErrUserExists", err)
	}

	got, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if got.PasswordHash != "original" {
		t.Fatalf("duplicate signup overwrote hash: %q", got.PasswordHash)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetUser(context.Background(), "nobody"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("GetUser error = %v, want ErrUserNotFound", err)
	}
}
