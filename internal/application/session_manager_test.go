package application

import (
	"context"
	"testing"
	"time"

	"line-knowledge-bot/internal/domain"
)

// TestGetOrCreateReusesWithinWindow - two queries in the window share one conversation,
// a third after the window opens a new one
func TestGetOrCreateReusesWithinWindow(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	first, err := f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/a", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.clock.Advance(30 * time.Minute)
	second, err := f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/a", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the same conversation within the timeout window")
	}

	f.clock.Advance(testTimeout)
	third, err := f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/a", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == second {
		t.Error("expected a new conversation after the timeout window")
	}

	if len(f.conv.Created) != 2 {
		t.Errorf("expected 2 conversations created, got %d", len(f.conv.Created))
	}
}

func TestGetOrCreateKeepsBindingForLifeOfSession(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	_, _ = f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/a", true)
	_, _ = f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/b", true)

	if len(f.conv.CreatedHandles) != 1 || f.conv.CreatedHandles[0] != "fileSearchStores/a" {
		t.Errorf("expected a single conversation bound to store a, got %v", f.conv.CreatedHandles)
	}

	info, ok := f.sessions.Info("U1")
	if !ok || info.BoundStoreHandle != "fileSearchStores/a" {
		t.Errorf("expected session bound to store a, got %+v", info)
	}
}

func TestGetOrCreateWithoutRetrievalBindsNothing(t *testing.T) {
	f := newFixture(true)

	_, err := f.sessions.GetOrCreate(context.Background(), "U1", "fileSearchStores/a", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.conv.CreatedHandles[0] != "" {
		t.Errorf("expected no retrieval binding, got %s", f.conv.CreatedHandles[0])
	}
}

func TestGetOrCreatePropagatesCreateFailure(t *testing.T) {
	f := newFixture(true)
	f.conv.CreateConversationFunc = func(ctx context.Context, systemPrompt string, handle domain.StoreHandle) (domain.Conversation, error) {
		return nil, errBoom
	}

	if _, err := f.sessions.GetOrCreate(context.Background(), "U1", "", true); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := f.sessions.Info("U1"); ok {
		t.Error("expected no session stored after a failed create")
	}
}

func TestClearReportsWhetherSomethingWasRemoved(t *testing.T) {
	f := newFixture(true)
	_, _ = f.sessions.GetOrCreate(context.Background(), "U1", "", true)

	if !f.sessions.Clear("U1") {
		t.Error("expected clear to report a removed session")
	}
	if f.sessions.Clear("U1") {
		t.Error("expected second clear to report nothing to clear")
	}
}

func TestSweepExpiredCountsRemovedSessions(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	_, _ = f.sessions.GetOrCreate(ctx, "U1", "", true)
	_, _ = f.sessions.GetOrCreate(ctx, "U2", "", true)

	f.clock.Advance(45 * time.Minute)
	_, _ = f.sessions.GetOrCreate(ctx, "U3", "", true)

	f.clock.Advance(20 * time.Minute)
	if removed := f.sessions.SweepExpired(); removed != 2 {
		t.Errorf("expected 2 sessions swept, got %d", removed)
	}
	if _, ok := f.sessions.Info("U3"); !ok {
		t.Error("expected U3 to survive the sweep")
	}
}

func TestInfoReportsAgeAndIdle(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	_, _ = f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/a", true)

	f.clock.Advance(20 * time.Minute)
	_, _ = f.sessions.GetOrCreate(ctx, "U1", "fileSearchStores/a", true)
	f.clock.Advance(5 * time.Minute)

	info, ok := f.sessions.Info("U1")
	if !ok {
		t.Fatal("expected session info")
	}
	if info.Age != 25*time.Minute {
		t.Errorf("expected age 25m, got %v", info.Age)
	}
	if info.Idle != 5*time.Minute {
		t.Errorf("expected idle 5m, got %v", info.Idle)
	}
}
