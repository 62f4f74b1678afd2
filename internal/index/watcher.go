package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tlockney/quickpost/internal/checksum"
	"github.com/tlockney/quickpost/internal/store"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, slug string)

// Watch starts an fsnotify watcher on the posts directory and processes file
// change events until ctx is cancelled, keeping the search index in step with
// edits made outside the HTTP API. It calls cb (if non-nil) after each index
// mutation.
//
// Post folders created at runtime are added to the watch list. Removals and
// renames trigger a debounced reconciliation pass that diffs the index
// against the directory.
func Watch(ctx context.Context, db *DB, st *store.Store, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := st.Root()
	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	// reconcileTimer debounces reconciliation after removals and renames.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, st, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					// The post itself is indexed once its metadata lands.
					continue
				}
			}

			slug, file, ok := splitPostPath(root, ev.Name)
			if !ok {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if file != "post.md" && file != "meta.json" {
					continue
				}
				post, getErr := st.Get(slug)
				if getErr != nil {
					// Mid-create or invalid folder; reconciliation catches it later.
					continue
				}
				if idxErr := IndexPost(db, slug, post.Title, post.Content); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("slug", slug), slog.String("error", idxErr.Error()))
					continue
				}
				kind := "updated"
				if ev.Op&fsnotify.Create != 0 && file == "meta.json" {
					kind = "created"
				}
				logger.Debug("watcher: indexed", slog.String("slug", slug), slog.String("op", kind))
				if cb != nil {
					cb(kind, slug)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile diffs the index against the posts directory: stale entries are
// removed and changed posts re-indexed.
func reconcile(db *DB, st *store.Store, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	summaries, err := st.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]struct{}, len(summaries))
	for _, sum := range summaries {
		disk[sum.ID] = struct{}{}
	}

	for slug := range checksums {
		if _, ok := disk[slug]; !ok {
			if delErr := db.DeletePost(slug); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("slug", slug))
				if cb != nil {
					cb("deleted", slug)
				}
			}
		}
	}

	for _, sum := range summaries {
		post, getErr := st.Get(sum.ID)
		if getErr != nil {
			continue
		}
		known, indexed := checksums[sum.ID]
		if indexed && known == checksum.Sum([]byte(post.Content)) {
			continue
		}
		if idxErr := IndexPost(db, sum.ID, post.Title, post.Content); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("slug", sum.ID))
			if cb != nil {
				kind := "updated"
				if !indexed {
					kind = "created"
				}
				cb(kind, sum.ID)
			}
		}
	}
}

// splitPostPath maps an absolute event path to (slug, file-within-post-folder).
// Paths outside any post folder report ok=false.
func splitPostPath(root, abs string) (slug, file string, ok bool) {
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[len(parts)-1], true
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
