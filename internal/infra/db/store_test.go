package db

import (
	"testing"

	"biblio/internal/config"
)

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	if !gormConfig().TranslateError {
		t.Fatal("driver error translation must stay enabled so duplicate keys map to ErrConflict")
	}
}

func TestNewStoreWithoutDSN(t *testing.T) {
	store, err := NewStore(config.Config{})
	if err != nil {
		t.Fatalf("no-db mode: %v", err)
	}
	if store.DB != nil {
		t.Fatal("expected nil DB handle in no-db mode")
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate in no-db mode: %v", err)
	}
}
