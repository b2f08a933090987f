package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - documents + artifacts tables
const currentSchemaVersion = 1

// SQLite implements ports.StateStore on a single sqlite database, WAL mode
// for concurrent reads, one writer connection.
type SQLite struct {
	db *sql.DB
}

var _ ports.StateStore = (*SQLite)(nil)

// NewSQLite creates or opens the database at path and applies pragmas and
// schema migrations.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open state database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, "failed to connect to state database")
	}

	// sqlite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent artifact writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// SaveDocument stores the document and its token list, replacing any previous
// version for the same source path.
func (s *SQLite) SaveDocument(ctx context.Context, doc *domain.Document) error {
	rec, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (path, id, version, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`,
		doc.Path,
		doc.ID.String(),
		doc.Version,
		string(payload),
		doc.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// LoadDocument retrieves the last stored document for a source path.
// Returns nil, nil if not found.
func (s *SQLite) LoadDocument(ctx context.Context, path string) (*domain.Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE path = ?`, path,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var rec documentRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return decodeDocument(rec)
}

// PutArtifact stores the artifact under its input hash.
func (s *SQLite) PutArtifact(ctx context.Context, artifact *domain.CompiledArtifact) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	valid := 0
	if artifact.Valid {
		valid = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts (input_hash, token_path, valid, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(input_hash) DO UPDATE SET
			token_path = excluded.token_path,
			valid = excluded.valid,
			payload = excluded.payload,
			created_at = excluded.created_at
	`,
		artifact.InputHash,
		artifact.TokenPath,
		valid,
		string(payload),
		artifact.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// GetArtifact retrieves the artifact stored for an input hash.
// Returns nil, nil if not found.
func (s *SQLite) GetArtifact(ctx context.Context, inputHash string) (*domain.CompiledArtifact, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM artifacts WHERE input_hash = ?`, inputHash,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var artifact domain.CompiledArtifact
	if err := json.Unmarshal([]byte(payload), &artifact); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return &artifact, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreMigrateFailed.Error()), "pragma", pragma)
		}
	}
	return nil
}

// applySchema creates tables if they do not exist and records the schema
// version. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return zerr.Wrap(err, domain.ErrStoreMigrateFailed.Error())
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return zerr.Wrap(err, domain.ErrStoreMigrateFailed.Error())
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return zerr.Wrap(err, domain.ErrStoreMigrateFailed.Error())
		}
	}
	return nil
}
