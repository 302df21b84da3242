package sqlite

import (
	"bytes"
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	_ "github.com/mattn/go-sqlite3"

	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

const schemaVersion = "1"

// ErrEmptyImage is returned by CreateImage for zero-length data
var ErrEmptyImage = errors.New("image data is empty")

// Store implements ports.ImageStore using SQLite. Images are content
// addressed: identical bytes share one row and one hash.
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements the image ports
var (
	_ ports.ImageStore   = (*Store)(nil)
	_ ports.ImageCatalog = (*Store)(nil)
)

// NewStore creates a new SQLite image store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Open opens or creates the database at dbPath
func (s *Store) Open(dbPath string) error {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS images (
			hash TEXT PRIMARY KEY,
			format TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			size INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			last_used_at INTEGER NOT NULL,
			uses INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_images_last_used ON images(last_used_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`,
		schemaVersion,
	); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.dbPath
}

// CreateImage decodes data to validate it and stores it under the SHA-1 of
// its bytes. Storing the same bytes twice returns the same resource.
func (s *Store) CreateImage(ctx context.Context, data []byte) (*domain.ImageResource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	// Full decode catches truncated pixel data that DecodeConfig accepts
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	res := &domain.ImageResource{
		Hash:   HashImage(data),
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Size:   len(data),
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now().Unix()
	if err := tx.insertImage(ctx, res, data, now); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if err := tx.touchImage(ctx, res.Hash, now); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit image: %w", err)
	}

	return res, nil
}

// GetImage returns the stored bytes for hash, or nil if none are stored
func (s *Store) GetImage(ctx context.Context, hash string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM images WHERE hash = ?`, hash).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ListImages returns every stored image, most recently used first
func (s *Store) ListImages(ctx context.Context) ([]domain.ImageResource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, format, width, height, size
		FROM images
		ORDER BY last_used_at DESC, hash
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ImageResource
	for rows.Next() {
		var r domain.ImageResource
		if err := rows.Scan(&r.Hash, &r.Format, &r.Width, &r.Height, &r.Size); err != nil {
			return nil, err
		}
		images = append(images, r)
	}

	return images, rows.Err()
}

// Uses returns how many times an image was created, zero if unknown
func (s *Store) Uses(ctx context.Context, hash string) (int, error) {
	var uses int
	err := s.db.QueryRowContext(ctx, `SELECT uses FROM images WHERE hash = ?`, hash).Scan(&uses)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return uses, err
}

// HashImage returns the hex SHA-1 of data, the key images are stored under
func HashImage(data []byte) string {
	h := sha1.Sum(data)
	return hex.EncodeToString(h[:])
}
