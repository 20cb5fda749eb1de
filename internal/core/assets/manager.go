// Package assets caches externally referenced photos on local disk so the
// report renderer can embed them without re-downloading.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the raw bytes of an externally referenced photo.
// The Telegram transport provides the real implementation.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Manager persists fetched photos under a stable key derived from the
// reference. Assets are never evicted for the life of the process.
type Manager struct {
	dir     string
	fetcher Fetcher
	group   singleflight.Group
	log     zerolog.Logger
}

// NewManager creates the cache directory if needed. The fetcher may be nil
// until the transport is connected; Ensure then only reports what is
// already cached.
func NewManager(dir string, fetcher Fetcher, log zerolog.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &Manager{dir: dir, fetcher: fetcher, log: log}, nil
}

// SetFetcher installs the photo source. Call before any Ensure that should
// be able to download.
func (m *Manager) SetFetcher(f Fetcher) {
	m.fetcher = f
}

// Path returns the local path the reference maps to, whether or not the
// file exists yet.
func (m *Manager) Path(ref string) string {
	return filepath.Join(m.dir, key(ref))
}

// Has reports whether a usable local copy already exists.
func (m *Manager) Has(ref string) bool {
	info, err := os.Stat(m.Path(ref))
	return err == nil && info.Size() > 0
}

// Ensure fetches the referenced photo unless it is already cached, and
// reports whether a usable local copy exists afterwards. Repeated and
// concurrent calls for the same reference fetch at most once.
func (m *Manager) Ensure(ctx context.Context, ref string) bool {
	if ref == "" {
		return false
	}
	if m.Has(ref) {
		return true
	}
	if m.fetcher == nil {
		return false
	}

	_, err, _ := m.group.Do(key(ref), func() (any, error) {
		if m.Has(ref) {
			return nil, nil
		}
		data, err := m.fetcher.Fetch(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetch %q: %w", ref, err)
		}
		return nil, m.write(ref, data)
	})
	if err != nil {
		m.log.Warn().Err(err).Str("ref", ref).Msg("photo unavailable")
		return false
	}
	return true
}

// Prune deletes cached files whose names match the doublestar pattern and
// returns how many were removed.
func (m *Manager) Prune(pattern string) (int, error) {
	if !doublestar.ValidatePattern(pattern) {
		return 0, fmt.Errorf("invalid pattern %q", pattern)
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("read asset dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return removed, fmt.Errorf("match %q: %w", entry.Name(), err)
		}
		if !match {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// write lands the bytes atomically: temp file then rename, so a crashed
// download never leaves a half-written asset behind.
func (m *Manager) write(ref string, data []byte) error {
	tmp, err := os.CreateTemp(m.dir, "fetch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.Path(ref)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("store asset: %w", err)
	}
	return nil
}

// key derives the stable cache filename for a reference. Telegram photos
// are JPEG, and the extension is what tells the PDF engine the image type.
func key(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return hex.EncodeToString(sum[:16]) + ".jpg"
}
