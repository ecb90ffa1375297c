package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driving"
	"github.com/arkiv-labs/arkiv-cli/internal/logger"
)

// Ensure BulkService implements the interface.
var _ driving.BulkService = (*BulkService)(nil)

// bulkExtensions is the set of extensions picked up by directory
// ingestion and watch mode.
var bulkExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
	".txt":  true,
	".md":   true,
	".html": true,
}

// settleDelay is how long a watched file must stay quiet before it is
// ingested. Editors and downloads write in bursts; ingesting on the
// first event would read a half-written file.
const settleDelay = 500 * time.Millisecond

// BulkService ingests directory trees, either in one pass or
// continuously via a filesystem watcher.
type BulkService struct {
	ingester driving.IngestService
}

// NewBulkService creates a new bulk service.
func NewBulkService(ingester driving.IngestService) *BulkService {
	return &BulkService{ingester: ingester}
}

// IngestDir recursively ingests every supported file under dir.
// Per-file failures are collected, not fatal: one unreadable file must
// not abort a thousand-file import.
func (s *BulkService) IngestDir(ctx context.Context, dir, category string) (*driving.BulkResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	result := &driving.BulkResult{Failed: make(map[string]string)}
	opts := driving.IngestOptions{Category: category}

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !supportedFile(path) {
			return nil
		}

		res, err := s.ingester.Ingest(ctx, path, opts)
		if err != nil {
			logger.Warn("Bulk ingest of %s failed: %v", path, err)
			result.Failed[path] = err.Error()
			return nil
		}
		result.Succeeded = append(result.Succeeded, *res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	logger.Info("Bulk ingest done: %d succeeded, %d failed", len(result.Succeeded), len(result.Failed))
	return result, nil
}

// Watch ingests supported files as they are created or modified under
// dir, blocking until ctx is cancelled. New subdirectories are watched
// as they appear.
func (s *BulkService) Watch(ctx context.Context, dir, category string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, dir); err != nil {
		return err
	}
	logger.Info("Watching %s", dir)

	opts := driving.IngestOptions{Category: category}

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, timer := range pending {
			timer.Stop()
		}
	}()

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := pending[path]; ok {
			timer.Reset(settleDelay)
			return
		}
		pending[path] = time.AfterFunc(settleDelay, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()

			if ctx.Err() != nil {
				return
			}
			if _, err := s.ingester.Ingest(ctx, path, opts); err != nil {
				logger.Warn("Watch ingest of %s failed: %v", path, err)
				return
			}
			logger.Info("Ingested %s", path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchRecursive(watcher, event.Name); err != nil {
						logger.Warn("Watching new directory %s failed: %v", event.Name, err)
					}
					continue
				}
			}

			if supportedFile(event.Name) {
				schedule(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// watchRecursive adds dir and all its subdirectories to the watcher.
func watchRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// supportedFile reports whether path has a bulk-ingestable extension.
func supportedFile(path string) bool {
	return bulkExtensions[strings.ToLower(filepath.Ext(path))]
}
