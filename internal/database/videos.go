package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no catalog row matches the given id.
	ErrNotFound = errors.New("media item not found")
	// ErrDuplicateFilename is returned when an insert would violate the
	// stored-filename uniqueness invariant.
	ErrDuplicateFilename = errors.New("stored filename already exists")
)

// Insert adds a new catalog row and returns its assigned id. The
// created_at timestamp is assigned here, not by the caller; on success
// the item's ID and CreatedAt fields are filled in.
func (d *Database) Insert(ctx context.Context, item *MediaItem) (id int64, err error) {
	start := time.Now()
	defer func() { recordQuery("insert_video", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	createdAt := time.Now().Unix()
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO videos (name, filename, original_filename, file_size, thumbnail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, item.Name, item.Filename, item.OriginalFilename, item.FileSize, item.Thumbnail, createdAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateFilename, item.Filename)
		}
		return 0, fmt.Errorf("failed to insert media item: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	item.ID = id
	item.CreatedAt = time.Unix(createdAt, 0).UTC()
	return id, nil
}

const selectColumns = "id, name, filename, original_filename, file_size, thumbnail, created_at"

func scanItem(row interface{ Scan(...interface{}) error }) (*MediaItem, error) {
	var (
		item      MediaItem
		thumbnail sql.NullString
		createdAt int64
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Filename, &item.OriginalFilename,
		&item.FileSize, &thumbnail, &createdAt); err != nil {
		return nil, err
	}
	if thumbnail.Valid {
		item.Thumbnail = &thumbnail.String
	}
	item.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &item, nil
}

// ListAll returns every catalog row, most recent first. Ties on
// created_at are broken by id so the order is deterministic.
func (d *Database) ListAll(ctx context.Context) (items []MediaItem, err error) {
	start := time.Now()
	defer func() { recordQuery("list_videos", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM videos ORDER BY created_at DESC, id DESC
	`, selectColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}
	defer rows.Close()

	items = []MediaItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetByID looks up a single catalog row. Returns ErrNotFound when no
// row matches.
func (d *Database) GetByID(ctx context.Context, id int64) (item *MediaItem, err error) {
	start := time.Now()
	defer func() { recordQuery("get_video", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	item, err = scanItem(d.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM videos WHERE id = ?
	`, selectColumns), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media item %d: %w", id, err)
	}
	return item, nil
}

// DeleteByID removes a catalog row. Deleting an id that does not exist
// is a no-op.
func (d *Database) DeleteByID(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { recordQuery("delete_video", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete media item %d: %w", id, err)
	}
	return nil
}

// SetThumbnail attaches a thumbnail filename to an existing row.
func (d *Database) SetThumbnail(ctx context.Context, id int64, thumbnail string) (err error) {
	start := time.Now()
	defer func() { recordQuery("set_thumbnail", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, "UPDATE videos SET thumbnail = ? WHERE id = ?", thumbnail, id)
	if err != nil {
		return fmt.Errorf("failed to set thumbnail for item %d: %w", id, err)
	}
	return nil
}

// CountAll returns the total number of catalog rows.
func (d *Database) CountAll(ctx context.Context) (count int, err error) {
	start := time.Now()
	defer func() { recordQuery("count_videos", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count media items: %w", err)
	}
	return count, nil
}

// CountWithThumbnail returns the number of rows that carry a thumbnail.
func (d *Database) CountWithThumbnail(ctx context.Context) (count int, err error) {
	start := time.Now()
	defer func() { recordQuery("count_thumbnails", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos WHERE thumbnail IS NOT NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count thumbnails: %w", err)
	}
	return count, nil
}

// ListMissingThumbnails returns the rows with no thumbnail reference,
// oldest first, for the backfill pass.
func (d *Database) ListMissingThumbnails(ctx context.Context) (items []MediaItem, err error) {
	start := time.Now()
	defer func() { recordQuery("list_videos", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM videos WHERE thumbnail IS NULL ORDER BY created_at ASC, id ASC
	`, selectColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to list items without thumbnails: %w", err)
	}
	defer rows.Close()

	items = []MediaItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
