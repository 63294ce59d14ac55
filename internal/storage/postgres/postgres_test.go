package postgres

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// newTestStore connects to TEST_DATABASE_URL or skips the test.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Roommates", Members: []string{"Alice", "Bob"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if err := store.AddGroupMember(ctx, group.ID, "Charlie"); err != nil {
		t.Fatalf("AddGroupMember failed: %v", err)
	}
	if err := store.AddGroupMember(ctx, group.ID, "Alice"); err != nil {
		t.Fatalf("AddGroupMember (duplicate) failed: %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !reflect.DeepEqual(got.Members, []string{"Alice", "Bob", "Charlie"}) {
		t.Errorf("Members = %v", got.Members)
	}

	ledger := models.NewLedger(group.ID)
	ledger.AddDebt("Bob", "Alice", 700)
	if err := store.SaveLedger(ctx, ledger); err != nil {
		t.Fatalf("SaveLedger failed: %v", err)
	}
	stored, err := store.GetLedger(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetLedger failed: %v", err)
	}
	if stored.Debt("Bob", "Alice") != 700 || stored.Balance("Alice") != 700 {
		t.Errorf("stored ledger = %+v", stored)
	}

	if _, err := store.GetGroup(ctx, -1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
