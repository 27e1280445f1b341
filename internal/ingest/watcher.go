package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// ApplyFunc receives the normalized records of one dataset file.
type ApplyFunc func(ctx context.Context, records []domain.ShipmentRecord) error

// Watcher polls a local drop directory for dataset files and feeds new or
// modified ones through ApplyFunc. It replaces the old remote-folder sync:
// operations drop an export into the directory and the dashboard picks it
// up on the next tick.
type Watcher struct {
	dir      string
	interval time.Duration
	apply    ApplyFunc
	logger   zerolog.Logger

	seen map[string]time.Time
}

func NewWatcher(dir string, interval time.Duration, apply ApplyFunc, logger zerolog.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		interval: interval,
		apply:    apply,
		logger:   logger.With().Str("component", "watcher").Str("dir", dir).Logger(),
		seen:     make(map[string]time.Time),
	}
}

// Run polls until the context is canceled. The first scan happens
// immediately so a file already present at startup is loaded without
// waiting a full interval.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch dir: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *Watcher) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to read watch dir")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !supportedFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if last, ok := w.seen[path]; ok && !info.ModTime().After(last) {
			continue
		}
		w.seen[path] = info.ModTime()
		if err := w.ingestFile(ctx, path); err != nil {
			w.logger.Error().Err(err).Str("file", entry.Name()).Msg("failed to ingest file")
			continue
		}
		w.logger.Info().Str("file", entry.Name()).Msg("ingested dataset file")
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ParseFile(path, f)
	if err != nil {
		return err
	}
	return w.apply(ctx, records)
}

func supportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".json", ".csv":
		return true
	default:
		return false
	}
}
