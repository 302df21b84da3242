package sqlite

import (
	"context"
	"database/sql"

	"layerfill/internal/domain"
)

// storeTx groups the writes of a single CreateImage call
type storeTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*storeTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

// insertImage stores an image unless its hash is already present
func (t *storeTx) insertImage(ctx context.Context, res *domain.ImageResource, data []byte, now int64) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO images (hash, format, width, height, size, data, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, res.Hash, res.Format, res.Width, res.Height, res.Size, data, now, now)
	return err
}

// touchImage bumps an image's use count and last use time
func (t *storeTx) touchImage(ctx context.Context, hash string, now int64) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE images SET uses = uses + 1, last_used_at = ? WHERE hash = ?
	`, now, hash)
	return err
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
