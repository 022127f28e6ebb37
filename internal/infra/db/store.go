package db

import (
	"errors"
	"fmt"
	"log"

	"biblio/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errDBUnavailable = errors.New("db unavailable")

type Store struct {
	DB *gorm.DB
}

func NewStore(cfg config.Config) (*Store, error) {
	if cfg.PostgresDSN == "" {
		log.Printf("POSTGRES_DSN not set; starting in no-db mode.")
		return &Store{DB: nil}, nil
	}

	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &Store{DB: gdb}, nil
}

// gormConfig must keep TranslateError on: the repositories match
// unique-index violations against gorm.ErrDuplicatedKey, and without
// translation the raw driver error would skip the conflict mapping and
// surface as a plain 500.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Migrate creates or updates the library schema.
func (s *Store) Migrate() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.AutoMigrate(
		&UserModel{},
		&ProfileModel{},
		&BookModel{},
		&CopyModel{},
		&LoanModel{},
	)
}
