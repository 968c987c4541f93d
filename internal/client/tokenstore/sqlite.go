package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/mvasiljevs/commhub/internal/client/migrations"
	"github.com/mvasiljevs/commhub/internal/cryptox"
	"github.com/mvasiljevs/commhub/internal/dbx"
	"github.com/pressly/goose/v3"
)

const (
	keyFileSaltLen   = 16
	keyFileSecretLen = 32
)

// SQLiteStore keeps credentials in a local SQLite database. Values are sealed
// at rest with a key derived from a secret file living next to the database.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

// RunMigrations applies the embedded credential schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the credential database at dsn and
// the sealing-key file at keyPath, and returns a ready store.
func OpenSQLite(ctx context.Context, dsn string, keyPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, key: key}, nil
}

// NewSQLiteStore wraps an already-migrated database with the given sealing key.
func NewSQLiteStore(db *sql.DB, key []byte) *SQLiteStore {
	return &SQLiteStore{db: db, key: key}
}

// loadOrCreateKey reads the sealing-key file, creating it with fresh random
// material on first run. The file layout is salt followed by the raw secret;
// the actual AES key is derived from the two.
func loadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		salt, err := cryptox.GenerateRandBytes(keyFileSaltLen)
		if err != nil {
			return nil, err
		}
		secret, err := cryptox.GenerateRandBytes(keyFileSecretLen)
		if err != nil {
			return nil, err
		}
		data = append(salt, secret...)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write key file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	if len(data) != keyFileSaltLen+keyFileSecretLen {
		return nil, fmt.Errorf("key file %s has unexpected size %d", path, len(data))
	}

	return cryptox.DeriveKey(data[keyFileSaltLen:], data[:keyFileSaltLen]), nil
}

func (s *SQLiteStore) Get(ctx context.Context) (string, string, error) {
	access, err := s.get(ctx, s.db, KeyAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.get(ctx, s.db, KeyRefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *SQLiteStore) Set(ctx context.Context, access string, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, KeyAccessToken, access); err != nil {
			return err
		}
		return s.set(ctx, tx, KeyRefreshToken, refresh)
	})
}

func (s *SQLiteStore) SetAccess(ctx context.Context, access string) error {
	return s.set(ctx, s.db, KeyAccessToken, access)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var sealed []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&sealed)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}

	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to unseal credentials[%s]: %w", key, err)
	}
	return string(plain), nil
}

func (s *SQLiteStore) set(ctx context.Context, db dbx.DBTX, key string, value string) error {
	sealed, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to seal credentials[%s]: %w", key, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, sealed)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}
