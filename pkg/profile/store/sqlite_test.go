package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := Open(Config{DBPath: filepath.Join(t.TempDir(), "profiles.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storeProfile(id string, cat profile.Category) *profile.Profile {
	p := &profile.Profile{
		ID:       id,
		Name:     "Test " + id,
		Category: cat,
		CautionRules: profile.CautionRules{
			TriggerThreshold:  incident.SeverityMedium,
			FullCourseEnabled: true,
		},
	}
	profile.ApplyDefaults(p)
	return p
}

func TestSQLiteStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := storeProfile("oval-default", profile.CategoryOval)
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "oval-default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != want.Name || got.Category != want.Category {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.PenaltyModel.Strictness != 1.0 {
		t.Errorf("Strictness = %v, want 1.0", got.PenaltyModel.Strictness)
	}
}

func TestSQLiteStore_PutUpserts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := storeProfile("gt3", profile.CategoryRoad)
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	p.PenaltyModel.Strictness = 1.5
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put (update): %v", err)
	}

	got, err := s.Get(ctx, "gt3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PenaltyModel.Strictness != 1.5 {
		t.Errorf("Strictness = %v, want updated 1.5", got.PenaltyModel.Strictness)
	}
}

func TestSQLiteStore_PutRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	bad := storeProfile("bad", profile.CategoryRoad)
	bad.PenaltyModel.ContactTolerance = 2.0

	err := s.Put(ctx, bad)
	var cfgErr *profile.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *profile.ConfigError, got %v", err)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	var nf *profile.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *profile.NotFoundError, got %v", err)
	}
}

func TestSQLiteStore_ListByCategory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, storeProfile("oval-a", profile.CategoryOval))
	s.Put(ctx, storeProfile("oval-b", profile.CategoryOval))
	s.Put(ctx, storeProfile("road-a", profile.CategoryRoad))

	ovals, err := s.List(ctx, profile.CategoryOval)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ovals) != 2 {
		t.Errorf("expected 2 oval profiles, got %d", len(ovals))
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 profiles, got %d", len(all))
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, storeProfile("gone", profile.CategoryDirt))
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var nf *profile.NotFoundError
	if err := s.Delete(ctx, "gone"); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError on double delete, got %v", err)
	}
}

func TestSQLiteStore_AsProfileSource(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, storeProfile("a", profile.CategoryOval))
	s.Put(ctx, storeProfile("b", profile.CategoryRoad))

	registry := profile.NewRegistry()
	if err := registry.Reload(ctx, s); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if registry.Count() != 2 {
		t.Errorf("Count = %d, want 2", registry.Count())
	}
}
