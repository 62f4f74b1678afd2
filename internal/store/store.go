// Package store owns the on-disk representation of posts: one folder per
// post containing the markdown content, a JSON metadata file, and an images
// subfolder. Every operation re-reads from disk; there is no in-memory state
// beyond the configured root.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tlockney/quickpost/internal/apperr"
	"github.com/tlockney/quickpost/internal/frontmatter"
	"github.com/tlockney/quickpost/internal/models"
	"github.com/tlockney/quickpost/internal/slug"
)

const (
	contentFile = "post.md"
	metaFile    = "meta.json"
	imagesDir   = "images"
)

// Store is a post store rooted at a posts directory.
type Store struct {
	root string // absolute path to the posts directory
}

// New creates a Store rooted at the given directory, creating it if absent.
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("store: create root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute posts directory.
func (s *Store) Root() string {
	return s.root
}

// UpdateRequest carries the optional fields of an update. Nil means
// "leave unchanged".
type UpdateRequest struct {
	Title   *string
	Content *string
}

// postDir validates id as a plain folder name (no separators, no traversal)
// and returns the absolute path of the post folder.
func (s *Store) postDir(id string) (string, error) {
	if id == "" {
		return "", apperr.ErrNotFound
	}
	cleaned := filepath.Clean(id)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", apperr.ErrNotFound
	}
	abs := filepath.Join(s.root, cleaned)
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", apperr.ErrNotFound
	}
	return abs, nil
}

// Create materializes a new post folder. The slug is derived from a
// frontmatter override when the supplied content carries one, from the title
// otherwise, and is disambiguated with -1, -2, ... suffixes until it names
// nothing under the posts directory.
func (s *Store) Create(title, content string) (*models.Post, error) {
	fields, _ := frontmatter.Parse(content)

	if fmTitle, ok := fields.Get("title"); ok && fmTitle != "" {
		title = fmTitle
	}
	base := slug.Derive(title)
	if fmSlug, ok := fields.Get("slug"); ok && fmSlug != "" {
		base = slug.Derive(fmSlug)
	}
	id := s.uniqueSlug(base)

	dir := filepath.Join(s.root, id)
	now := time.Now().UTC()

	if err := os.MkdirAll(filepath.Join(dir, imagesDir), 0o755); err != nil {
		return nil, ioWrap("create post folder", err)
	}

	content = frontmatter.Ensure(content, title, id)
	if err := writeFileAtomic(filepath.Join(dir, contentFile), []byte(content)); err != nil {
		return nil, err
	}

	meta := models.Meta{
		ID:        id,
		Slug:      id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.writeMeta(dir, meta); err != nil {
		return nil, err
	}

	return postFrom(meta, content), nil
}

// Get returns the post for the given id, or apperr.ErrNotFound when the id is
// unknown, the folder is not a valid post, or its metadata is unparseable.
func (s *Store) Get(id string) (*models.Post, error) {
	dir, err := s.postDir(id)
	if err != nil {
		return nil, err
	}
	meta, err := s.readMeta(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, contentFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.ErrNotFound
		}
		return nil, ioWrap("read content", err)
	}
	return postFrom(meta, string(data)), nil
}

// List enumerates immediate subfolders, silently skipping any without valid
// metadata, and returns summaries sorted newest-first by creation time.
func (s *Store) List() ([]models.PostSummary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, ioWrap("list posts", err)
	}
	out := make([]models.PostSummary, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.readMeta(filepath.Join(s.root, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, meta.Summary())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update overwrites the content and/or title of an existing post and always
// refreshes updatedAt. Returns apperr.ErrNotFound when the id does not resolve.
func (s *Store) Update(id string, req UpdateRequest) (*models.Post, error) {
	dir, err := s.postDir(id)
	if err != nil {
		return nil, err
	}
	meta, err := s.readMeta(dir)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if err := writeFileAtomic(filepath.Join(dir, contentFile), []byte(*req.Content)); err != nil {
			return nil, err
		}
	}
	if req.Title != nil {
		meta.Title = *req.Title
	}
	meta.UpdatedAt = time.Now().UTC()
	if err := s.writeMeta(dir, meta); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, contentFile))
	if err != nil {
		return nil, ioWrap("read content", err)
	}
	return postFrom(meta, string(data)), nil
}

// Delete removes the entire post folder recursively, images included.
// It reports whether a post existed to delete.
func (s *Store) Delete(id string) (bool, error) {
	dir, err := s.postDir(id)
	if err != nil {
		return false, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, ioWrap("delete post", err)
	}
	return true, nil
}

// UploadImage writes data under the post's images folder with a freshly
// generated unique name and the given extension, and returns the relative
// path suitable for embedding in markdown.
func (s *Store) UploadImage(id string, data []byte, ext string) (string, error) {
	dir, err := s.postDir(id)
	if err != nil {
		return "", err
	}
	if _, err := s.readMeta(dir); err != nil {
		return "", err
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: missing image extension", apperr.ErrInvalidInput)
	}

	name := uuid.NewString() + "." + ext
	imgDir := filepath.Join(dir, imagesDir)
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return "", ioWrap("create images folder", err)
	}
	if err := writeFileAtomic(filepath.Join(imgDir, name), data); err != nil {
		return "", err
	}
	return path.Join(imagesDir, id, name), nil
}

// ListImages returns the relative paths of all images belonging to a post,
// or an empty slice when there are none (or the folder is absent).
func (s *Store) ListImages(id string) ([]string, error) {
	dir, err := s.postDir(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.readMeta(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(dir, imagesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, ioWrap("list images", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, path.Join(imagesDir, id, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// ImagePath resolves an image file inside a post folder for serving, guarding
// against traversal in both components.
func (s *Store) ImagePath(id, name string) (string, error) {
	dir, err := s.postDir(id)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", apperr.ErrNotFound
	}
	abs := filepath.Join(dir, imagesDir, cleaned)
	if _, err := os.Stat(abs); err != nil {
		return "", apperr.ErrNotFound
	}
	return abs, nil
}

// uniqueSlug suffixes base with -1, -2, ... until the candidate names nothing
// in the posts directory. An empty base goes straight to suffixing.
func (s *Store) uniqueSlug(base string) string {
	exists := func(name string) bool {
		_, err := os.Lstat(filepath.Join(s.root, name))
		return err == nil
	}
	if base != "" && !exists(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}

func (s *Store) readMeta(dir string) (models.Meta, error) {
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return models.Meta{}, apperr.ErrNotFound
		}
		return models.Meta{}, ioWrap("read metadata", err)
	}
	var meta models.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		// Corrupt metadata degrades to not found rather than failing the read.
		return models.Meta{}, apperr.ErrNotFound
	}
	return meta, nil
}

func (s *Store) writeMeta(dir string, meta models.Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return ioWrap("encode metadata", err)
	}
	return writeFileAtomic(filepath.Join(dir, metaFile), append(data, '\n'))
}

// writeFileAtomic writes content via tmp file, fsync, and rename so readers
// never observe a partial file.
func writeFileAtomic(abs string, content []byte) error {
	dir := filepath.Dir(abs)
	tmp, err := os.CreateTemp(dir, ".quickpost-tmp-*")
	if err != nil {
		return ioWrap("create temp", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return ioWrap("write temp", err)
	}
	if err := tmp.Sync(); err != nil {
		return ioWrap("fsync", err)
	}
	if err := tmp.Close(); err != nil {
		return ioWrap("close temp", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return ioWrap("rename", err)
	}
	success = true
	return nil
}

func postFrom(meta models.Meta, content string) *models.Post {
	return &models.Post{
		ID:        meta.ID,
		Slug:      meta.Slug,
		Title:     meta.Title,
		Content:   content,
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}
}

func ioWrap(op string, err error) error {
	return fmt.Errorf("store: %s: %w: %w", op, apperr.ErrIO, err)
}
