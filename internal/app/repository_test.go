package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neomorfeo/tourify/internal/app"
	"github.com/neomorfeo/tourify/internal/domain"
)

var fixedNow = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func newProspectRepo(store domain.Store, pub domain.EventPublisher) *app.Repository[domain.Prospect] {
	return app.NewRepository[domain.Prospect](domain.KeyProspects, store, pub, discardLogger(),
		app.WithClock(func() time.Time { return fixedNow }))
}

func draftProspect(name string) domain.Prospect {
	return domain.Prospect{
		ContactName: name,
		Company:     "Inmobiliaria Sur",
		Email:       "contacto@sur.cl",
		Service:     "Tour Virtual 360",
		Status:      domain.StatusNew,
		Tags:        []string{"VIP"},
	}
}

func TestList_EmptyStore(t *testing.T) {
	repo := newProspectRepo(newFakeStore(), nil)

	got := repo.List(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("List = %v, want empty non-nil slice", got)
	}
}

func TestCreate_ThenList(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	repo := newProspectRepo(store, pub)
	ctx := context.Background()

	before := len(repo.List(ctx))

	draft := draftProspect("Ana")
	draft.ID = "caller-id"
	draft.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, draft); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got := repo.List(ctx)
	if len(got) != before+1 {
		t.Fatalf("got %d prospects, want %d", len(got), before+1)
	}

	p := got[0]
	if p.ID == "" || p.ID == "caller-id" {
		t.Errorf("ID = %q, want a fresh repository-assigned id", p.ID)
	}
	if !p.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, fixedNow)
	}
	if p.ContactName != "Ana" || p.Service != "Tour Virtual 360" || p.Status != domain.StatusNew {
		t.Errorf("mutable fields not preserved: %+v", p)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	want := domain.ChangeEvent{Kind: domain.KeyProspects, Action: domain.ActionCreated, ID: p.ID}
	if pub.events[0] != want {
		t.Errorf("event = %+v, want %+v", pub.events[0], want)
	}
}

func TestCreate_AssignsUniqueIDs(t *testing.T) {
	repo := newProspectRepo(newFakeStore(), nil)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if err := repo.Create(ctx, draftProspect("P")); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	seen := map[string]bool{}
	for _, p := range repo.List(ctx) {
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != 20 {
		t.Errorf("got %d distinct ids, want 20", len(seen))
	}
}

func TestCreate_DoesNotTouchSnapshot(t *testing.T) {
	repo := newProspectRepo(newFakeStore(), nil)
	ctx := context.Background()

	repo.List(ctx)
	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if n := len(repo.Snapshot()); n != 0 {
		t.Errorf("snapshot has %d records before re-listing, want 0", n)
	}
	repo.List(ctx)
	if n := len(repo.Snapshot()); n != 1 {
		t.Errorf("snapshot has %d records after re-listing, want 1", n)
	}
}

func TestUpdate_PreservesIdentityAndCreation(t *testing.T) {
	repo := newProspectRepo(newFakeStore(), nil)
	ctx := context.Background()

	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	original := repo.List(ctx)[0]

	patch := original
	patch.ID = "hijacked"
	patch.CreatedAt = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	patch.ContactName = "Ana María"
	patch.Status = domain.StatusContacted

	repo.Update(ctx, original.ID, patch)

	got := repo.List(ctx)
	if len(got) != 1 {
		t.Fatalf("got %d prospects, want 1", len(got))
	}
	if got[0].ID != original.ID {
		t.Errorf("ID = %q, want %q", got[0].ID, original.ID)
	}
	if !got[0].CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, original.CreatedAt)
	}
	if got[0].ContactName != "Ana María" || got[0].Status != domain.StatusContacted {
		t.Errorf("mutable fields not replaced: %+v", got[0])
	}
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	repo := newProspectRepo(store, pub)

	repo.Update(context.Background(), "missing", draftProspect("X"))
	if store.sets != 0 {
		t.Errorf("store written %d times, want 0", store.sets)
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.events))
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	repo := newProspectRepo(newFakeStore(), nil)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Bruno"} {
		if err := repo.Create(ctx, draftProspect(name)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	victim := repo.List(ctx)[0].ID

	if err := repo.Delete(ctx, victim); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	once := repo.List(ctx)

	if err := repo.Delete(ctx, victim); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	twice := repo.List(ctx)

	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("lengths = %d, %d, want 1, 1", len(once), len(twice))
	}
	if once[0].ID != twice[0].ID {
		t.Errorf("remaining ids differ: %q vs %q", once[0].ID, twice[0].ID)
	}
}

func TestList_StorageFailureDegradesToEmpty(t *testing.T) {
	store := newFakeStore()
	repo := newProspectRepo(store, nil)
	ctx := context.Background()

	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if n := len(repo.List(ctx)); n != 1 {
		t.Fatalf("got %d prospects, want 1", n)
	}

	store.failGet = true
	got := repo.List(ctx)
	if got == nil || len(got) != 0 {
		t.Errorf("List = %v, want empty non-nil slice", got)
	}
}

func TestList_CorruptPayloadDegradesToEmpty(t *testing.T) {
	store := newFakeStore()
	store.data[domain.KeyProspects] = []byte(`{not json`)
	repo := newProspectRepo(store, nil)

	if n := len(repo.List(context.Background())); n != 0 {
		t.Errorf("got %d prospects, want 0", n)
	}
}

func TestWrites_StorageFailureKeepsPriorState(t *testing.T) {
	store := newFakeStore()
	repo := newProspectRepo(store, nil)
	ctx := context.Background()

	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	existing := repo.List(ctx)[0]

	store.failSet = true

	var storageErr *domain.StorageUnavailableError
	if err := repo.Create(ctx, draftProspect("Bruno")); !errors.As(err, &storageErr) {
		t.Errorf("Create: expected StorageUnavailableError, got %v", err)
	}
	patch := existing
	patch.ContactName = "Cambiado"
	repo.Update(ctx, existing.ID, patch)
	if err := repo.Delete(ctx, existing.ID); !errors.As(err, &storageErr) {
		t.Errorf("Delete: expected StorageUnavailableError, got %v", err)
	}

	store.failSet = false
	got := repo.List(ctx)
	if len(got) != 1 || got[0].ContactName != "Ana" {
		t.Errorf("collection after failed writes = %+v, want only the original record", got)
	}
}

func TestUpdate_StorageFailureIsSilent(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	repo := newProspectRepo(store, pub)
	ctx := context.Background()

	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	existing := repo.List(ctx)[0]
	events := len(pub.events)

	store.failSet = true
	patch := existing
	patch.ContactName = "Cambiado"
	repo.Update(ctx, existing.ID, patch)
	store.failSet = false

	got := repo.List(ctx)
	if len(got) != 1 || got[0].ContactName != "Ana" {
		t.Errorf("collection after failed update = %+v, want the original record", got)
	}
	if len(pub.events) != events {
		t.Errorf("published %d events for a failed update, want 0", len(pub.events)-events)
	}
}

func TestGet(t *testing.T) {
	store := newFakeStore()
	repo := newProspectRepo(store, nil)
	ctx := context.Background()

	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	want := repo.List(ctx)[0]

	got, err := repo.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != want.ID || got.ContactName != "Ana" {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing): expected ErrNotFound, got %v", err)
	}

	store.failGet = true
	var storageErr *domain.StorageUnavailableError
	if _, err := repo.Get(ctx, want.ID); !errors.As(err, &storageErr) {
		t.Errorf("Get during outage: expected StorageUnavailableError, got %v", err)
	}
	if n := len(repo.Snapshot()); n != 1 {
		t.Errorf("snapshot has %d prospects after failed Get, want 1", n)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &fakePublisher{err: errors.New("queue full")}
	repo := newProspectRepo(newFakeStore(), pub)

	if err := repo.Create(context.Background(), draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if n := len(repo.List(context.Background())); n != 1 {
		t.Errorf("got %d prospects, want 1", n)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	repo := newProspectRepo(newFakeStore(), nil)
	ctx := context.Background()

	if err := repo.Create(ctx, draftProspect("Ana")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	listed := repo.List(ctx)
	listed[0].ContactName = "Mutated"

	if got := repo.Snapshot()[0].ContactName; got != "Ana" {
		t.Errorf("snapshot ContactName = %q, want %q", got, "Ana")
	}
}

func TestToursRepository(t *testing.T) {
	repo := app.NewRepository[domain.Tour](domain.KeyTours, newFakeStore(), nil, discardLogger())
	ctx := context.Background()

	tour := domain.Tour{URL: "https://example.com/t/1", Title: "Casa Vitacura", Label: "Venta"}
	if err := repo.Create(ctx, tour); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got := repo.List(ctx)
	if len(got) != 1 {
		t.Fatalf("got %d tours, want 1", len(got))
	}
	if got[0].ID == "" {
		t.Error("ID should not be empty")
	}
	if got[0].URL != tour.URL || got[0].Title != tour.Title || got[0].Label != tour.Label {
		t.Errorf("tour = %+v, want fields of %+v", got[0], tour)
	}
}

func TestTransactionsRepository_RoundTripsDates(t *testing.T) {
	repo := app.NewRepository[domain.Transaction](domain.KeyTransactions, newFakeStore(), nil, discardLogger())
	ctx := context.Background()

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	draft := domain.Transaction{Type: domain.TypeIncome, Category: "Ventas", Amount: 1200.5, Date: date}
	if err := repo.Create(ctx, draft); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got := repo.List(ctx)[0]
	if !got.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", got.Date, date)
	}
	if got.Amount != 1200.5 {
		t.Errorf("Amount = %v, want 1200.5", got.Amount)
	}
}
