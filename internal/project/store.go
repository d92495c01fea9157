package project

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

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cueline/cueline/internal/timeline"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes.
const schemaVersion = 1

// Store manages project and media persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the project database.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf(
			"%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch,
			version,
			schemaVersion,
			s.path,
		)
	}

	return nil
}

// Create inserts a new empty project.
func (s *Store) Create(ctx context.Context, name string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, cues_json, created_at, updated_at)
         VALUES (?, ?, '[]', ?, ?)`,
		id,
		name,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	return s.Get(ctx, id)
}

// Get fetches a complete project snapshot by id.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, name, media_id, cues_json, created_at, updated_at
         FROM projects WHERE id = ?`,
		id,
	)

	proj, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return proj, nil
}

// List returns all projects ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name, media_id, cues_json, created_at, updated_at
         FROM projects ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var projects []*Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// Delete removes a project and its media blob.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var mediaID sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT media_id FROM projects WHERE id = ?", id).Scan(&mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return fmt.Errorf("lookup project: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if mediaID.Valid {
		if _, err := tx.ExecContext(ctx, "DELETE FROM media WHERE id = ?", mediaID.String); err != nil {
			return fmt.Errorf("delete media: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// SaveCues atomically replaces a project's cue collection.
func (s *Store) SaveCues(ctx context.Context, id string, cues []timeline.Cue) error {
	encoded, err := encodeCues(cues)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(
		ctx,
		"UPDATE projects SET cues_json = ?, updated_at = ? WHERE id = ?",
		encoded,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("save cues: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save cues: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// PutWaveform stores a waveform blob under a fresh media id and points the
// project at it, dropping any previously referenced blob.
func (s *Store) PutWaveform(ctx context.Context, projectID string, samples []float64) (string, error) {
	blob, err := json.Marshal(samples)
	if err != nil {
		return "", fmt.Errorf("marshal waveform: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin media tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var previous sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT media_id FROM projects WHERE id = ?", projectID).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		return "", fmt.Errorf("lookup project: %w", err)
	}

	mediaID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if _, err := tx.ExecContext(
		ctx,
		"INSERT INTO media (id, samples, created_at) VALUES (?, ?, ?)",
		mediaID,
		blob,
		now,
	); err != nil {
		return "", fmt.Errorf("insert media: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		"UPDATE projects SET media_id = ?, updated_at = ? WHERE id = ?",
		mediaID,
		now,
		projectID,
	); err != nil {
		return "", fmt.Errorf("update media reference: %w", err)
	}

	if previous.Valid {
		if _, err := tx.ExecContext(ctx, "DELETE FROM media WHERE id = ?", previous.String); err != nil {
			return "", fmt.Errorf("drop previous media: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit media: %w", err)
	}
	return mediaID, nil
}

// GetWaveform loads the waveform samples referenced by a project.
func (s *Store) GetWaveform(ctx context.Context, projectID string) ([]float64, error) {
	proj, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.MediaID == "" {
		return nil, fmt.Errorf("%w: project %s has no waveform", ErrMediaNotFound, projectID)
	}

	var blob []byte
	err = s.db.QueryRowContext(ctx, "SELECT samples FROM media WHERE id = ?", proj.MediaID).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, proj.MediaID)
		}
		return nil, fmt.Errorf("get waveform: %w", err)
	}

	var samples []float64
	if err := json.Unmarshal(blob, &samples); err != nil {
		return nil, fmt.Errorf("unmarshal waveform: %w", err)
	}
	return samples, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		proj      Project
		mediaID   sql.NullString
		cuesJSON  string
		createdAt string
		updatedAt string
	)

	if err := row.Scan(&proj.ID, &proj.Name, &mediaID, &cuesJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if mediaID.Valid {
		proj.MediaID = mediaID.String
	}

	cues, err := decodeCues(cuesJSON)
	if err != nil {
		return nil, err
	}
	proj.Cues = cues

	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		proj.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		proj.UpdatedAt = ts
	}

	return &proj, nil
}
