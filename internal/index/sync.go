package index

import (
	"log/slog"
	"time"

	"github.com/tlockney/quickpost/internal/checksum"
	"github.com/tlockney/quickpost/internal/frontmatter"
	"github.com/tlockney/quickpost/internal/store"
)

// Sync walks the posts directory and brings the index up to date:
//   - new/changed posts are re-read and upserted
//   - posts removed from disk are deleted from the index
func Sync(db *DB, st *store.Store, logger *slog.Logger) error {
	summaries, err := st.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(summaries))
	for _, sum := range summaries {
		disk[sum.ID] = struct{}{}

		post, err := st.Get(sum.ID)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("slug", sum.ID), slog.String("error", err.Error()))
			continue
		}
		if checksums[sum.ID] == checksum.Sum([]byte(post.Content)) {
			continue
		}
		if err := IndexPost(db, sum.ID, post.Title, post.Content); err != nil {
			logger.Warn("sync: index failed", slog.String("slug", sum.ID), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("slug", sum.ID))
		}
	}

	// Remove stale entries.
	for slug := range checksums {
		if _, ok := disk[slug]; !ok {
			if err := db.DeletePost(slug); err != nil {
				logger.Warn("sync: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("slug", slug))
			}
		}
	}

	return nil
}

// IndexPost upserts one post into the index. The frontmatter block is
// stripped so searches only match the markdown body and title.
func IndexPost(db *DB, slug, title, content string) error {
	_, body := frontmatter.Parse(content)
	return db.UpsertPost(PostRow{
		Slug:      slug,
		Title:     title,
		Checksum:  checksum.Sum([]byte(content)),
		UpdatedAt: time.Now(),
	}, body)
}
