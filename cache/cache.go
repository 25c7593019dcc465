package cache

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Cache remembers which channel id a channel page resolved to
type Cache struct {
	db *sql.DB
}

// CacheStats contains cache statistics
type CacheStats struct {
	Channels    int
	OldestEntry time.Time
}

// NewCache initializes cache database at the given path
func NewCache(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// GetChannelID retrieves a cached channel id
// Returns: (channelID, found, error)
func (c *Cache) GetChannelID(pageURL string) (string, bool, error) {
	var channelID string
	accessedAt := time.Now().Unix()

	err := c.db.QueryRow(
		"SELECT channel_id FROM channel_cache WHERE page_url = ?",
		pageURL,
	).Scan(&channelID)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("channel cache read for '%s' with %w", truncate(pageURL, 50), err)
	}

	if _, err := c.db.Exec(
		"UPDATE channel_cache SET accessed_at = ? WHERE page_url = ?",
		accessedAt, pageURL,
	); err != nil {
		slog.Debug("failed to touch channel cache entry", "error", err, "url", truncate(pageURL, 50))
	}

	return channelID, true, nil
}

// SetChannelID stores a resolved channel id
func (c *Cache) SetChannelID(pageURL, channelID string) error {
	now := time.Now().Unix()

	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO channel_cache
		(page_url, channel_id, created_at, accessed_at)
		VALUES (?, ?, ?, ?)
	`, pageURL, channelID, now, now)

	if err != nil {
		return fmt.Errorf("channel cache write for '%s' with %w", truncate(pageURL, 50), err)
	}

	return nil
}

// Clear removes all cache entries
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM channel_cache"); err != nil {
		return fmt.Errorf("failed to clear channel cache: %w", err)
	}
	return nil
}

// Stats returns cache statistics
func (c *Cache) Stats() (CacheStats, error) {
	var stats CacheStats

	err := c.db.QueryRow("SELECT COUNT(*) FROM channel_cache").Scan(&stats.Channels)
	if err != nil {
		return stats, err
	}

	var oldestUnix sql.NullInt64
	err = c.db.QueryRow("SELECT MIN(created_at) FROM channel_cache").Scan(&oldestUnix)
	if err != nil && err != sql.ErrNoRows {
		return stats, err
	}
	if oldestUnix.Valid && oldestUnix.Int64 > 0 {
		stats.OldestEntry = time.Unix(oldestUnix.Int64, 0)
	}

	return stats, nil
}

// Close closes the cache database
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
