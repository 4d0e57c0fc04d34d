package reference

import (
	"context"
	"errors"
	"testing"

	"recipehub/domain"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testSchema = []string{
	`CREATE TABLE foods (
		id text PRIMARY KEY, name text UNIQUE,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE units (
		id text PRIMARY KEY, name text UNIQUE, abbreviation text,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE categories (
		id text PRIMARY KEY, name text UNIQUE,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE national_cuisines (
		id text PRIMARY KEY, name text UNIQUE,
		created_at datetime, updated_at datetime
	)`,
}

func newTestService(t *testing.T) ReferenceService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}
	return NewReferenceService(NewReferenceRepository(db))
}

func TestReferenceLifecyclePerKind(t *testing.T) {
	kinds := []string{
		domain.ReferenceKindFood,
		domain.ReferenceKindUnit,
		domain.ReferenceKindCategory,
		domain.ReferenceKindCuisine,
	}

	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			service := newTestService(t)
			ctx := context.Background()

			created, err := service.Create(ctx, kind, domain.CreateReferenceRequest{Name: "original", Abbreviation: "o"})
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}

			items, err := service.List(ctx, kind)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(items) != 1 || items[0].ID != created.ID || items[0].Name != "original" {
				t.Fatalf("unexpected listing: %+v", items)
			}

			if err := service.Update(ctx, kind, created.ID, domain.UpdateReferenceRequest{Name: "renamed", Abbreviation: "r"}); err != nil {
				t.Fatalf("update failed: %v", err)
			}
			items, err = service.List(ctx, kind)
			if err != nil {
				t.Fatalf("list after update failed: %v", err)
			}
			if len(items) != 1 || items[0].Name != "renamed" {
				t.Fatalf("expected renamed item, got %+v", items)
			}

			if err := service.Delete(ctx, kind, created.ID); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			items, err = service.List(ctx, kind)
			if err != nil {
				t.Fatalf("list after delete failed: %v", err)
			}
			if len(items) != 0 {
				t.Fatalf("expected empty listing, got %+v", items)
			}
		})
	}
}

func TestReferenceListSorted(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"zucchini", "apple", "mango"} {
		if _, err := service.Create(ctx, domain.ReferenceKindFood, domain.CreateReferenceRequest{Name: name}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := service.List(ctx, domain.ReferenceKindFood)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"apple", "mango", "zucchini"}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("expected %v, got %+v", want, items)
		}
	}
}

func TestReferenceUnknownKind(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if _, err := service.List(ctx, "spices"); !errors.Is(err, domain.ErrReferenceKindUnknown) {
		t.Errorf("expected ErrReferenceKindUnknown from list, got %v", err)
	}
	if _, err := service.Create(ctx, "spices", domain.CreateReferenceRequest{Name: "x"}); !errors.Is(err, domain.ErrReferenceKindUnknown) {
		t.Errorf("expected ErrReferenceKindUnknown from create, got %v", err)
	}
}

func TestReferenceUpdateMissing(t *testing.T) {
	service := newTestService(t)

	err := service.Update(context.Background(), domain.ReferenceKindUnit, uuid.NewString(), domain.UpdateReferenceRequest{Name: "x"})
	if !errors.Is(err, domain.ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}
}
