package status

import (
	"context"
	"testing"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	run, err := store.Get(ctx, "ep-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if run != nil {
		t.Fatal("Expected nil for unknown episode")
	}

	if err := store.Set(ctx, &models.GenerationRun{EpisodeID: "ep-1", State: models.GenerationStateAnalyzing, Progress: 70}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	run, err = store.Get(ctx, "ep-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if run == nil || run.State != models.GenerationStateAnalyzing || run.Progress != 70 {
		t.Errorf("Unexpected run: %+v", run)
	}

	if err := store.Delete(ctx, "ep-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	run, _ = store.Get(ctx, "ep-1")
	if run != nil {
		t.Error("Expected run to be deleted")
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := &models.GenerationRun{EpisodeID: "ep-1", Progress: 10}
	store.Set(ctx, original)

	// Mutating the caller's value after Set must not leak into the store
	original.Progress = 99

	stored, _ := store.Get(ctx, "ep-1")
	if stored.Progress != 10 {
		t.Errorf("Expected stored progress 10, got %d", stored.Progress)
	}

	// Mutating a Get result must not leak either
	stored.Progress = 55
	again, _ := store.Get(ctx, "ep-1")
	if again.Progress != 10 {
		t.Errorf("Expected stored progress 10, got %d", again.Progress)
	}
}
