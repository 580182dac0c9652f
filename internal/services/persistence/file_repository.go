package persistence

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const tempPrefix = ".timeline-tmp-"

// fileRepository stores one document per file under a directory
type fileRepository struct {
	dir    string
	format Format
}

// NewFileRepository creates a repository writing <dir>/<media id>.<json|yaml>.
// The directory is created if missing.
func NewFileRepository(dir string, format Format) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create timeline directory %s: %w", dir, err)
	}
	return &fileRepository{dir: dir, format: format}, nil
}

func (r *fileRepository) path(mediaID string) (string, error) {
	if mediaID == "" || mediaID == "." || mediaID == ".." {
		return "", fmt.Errorf("invalid media id %q", mediaID)
	}
	return filepath.Join(r.dir, url.PathEscape(mediaID)+r.format.Extension()), nil
}

// Load reads and decodes the document for a media id
func (r *fileRepository) Load(ctx context.Context, mediaID string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := r.path(mediaID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrTimelineNotFound
		}
		return nil, err
	}
	return DecodeDocument(data, r.format)
}

// Save writes the document to a temp file and renames it over the old one
func (r *fileRepository) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.path(doc.MediaID)
	if err != nil {
		return err
	}
	if doc.SavedAt.IsZero() {
		doc.SavedAt = time.Now().UTC()
	}
	data, err := doc.Encode(r.format)
	if err != nil {
		return fmt.Errorf("failed to encode timeline %s: %w", doc.MediaID, err)
	}

	tmp, err := os.CreateTemp(r.dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Delete removes the file for a media id
func (r *fileRepository) Delete(ctx context.Context, mediaID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.path(mediaID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrTimelineNotFound
		}
		return err
	}
	return nil
}

// List decodes every document in the directory, most recently saved first.
// Unreadable files are skipped.
func (r *fileRepository) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	ext := r.format.Extension()
	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) || strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			continue
		}
		doc, err := DecodeDocument(data, r.format)
		if err != nil {
			continue
		}
		summaries = append(summaries, Summary{
			MediaID:    doc.MediaID,
			TrackCount: len(doc.Tracks),
			ClipCount:  doc.ClipCount(),
			Duration:   doc.Duration,
			SavedAt:    doc.SavedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].SavedAt.After(summaries[j].SavedAt) })
	return summaries, nil
}
