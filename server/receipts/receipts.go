// Package receipts stores the receipt images attached to expenses. An
// expense only keeps the reference returned by Save.
package receipts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Daskott/agenda/server/gstorage"
	"github.com/Daskott/agenda/utils"
)

// UPLOAD_DIR is the reference prefix of every stored receipt.
const UPLOAD_DIR = "media"

const maxStemLength = 40

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ObjectName builds a unique, path-safe reference for an upload named
// filename. It fails for extensions that are not images.
func ObjectName(filename string, now time.Time) (string, error) {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(base))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported receipt type %q", ext)
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, stem)
	if len(stem) > maxStemLength {
		stem = stem[:maxStemLength]
	}

	return path.Join(UPLOAD_DIR, fmt.Sprintf("%d_%s%s", now.UnixNano(), stem, ext)), nil
}

// Local writes receipts under a root directory on disk.
type Local struct {
	root string
	now  func() time.Time
}

func NewLocal(root string) *Local {
	return &Local{root: root, now: time.Now}
}

func (l *Local) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := ObjectName(filename, l.now())
	if err != nil {
		return "", err
	}

	dest := filepath.Join(l.root, filepath.FromSlash(name))
	if err := utils.CreateDirIfNotExist(filepath.Dir(dest)); err != nil {
		return "", err
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return "", err
	}

	return name, f.Close()
}

// GCS uploads receipts to a Google Cloud Storage bucket.
type GCS struct {
	storage *gstorage.GStorage
	bucket  string
	prefix  string
	now     func() time.Time
}

func NewGCS(storage *gstorage.GStorage, bucket, prefix string) *GCS {
	return &GCS{storage: storage, bucket: bucket, prefix: prefix, now: time.Now}
}

func (g *GCS) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := ObjectName(filename, g.now())
	if err != nil {
		return "", err
	}

	object := path.Join(g.prefix, name)
	if err := g.storage.Upload(ctx, g.bucket, object, r); err != nil {
		return "", err
	}

	return name, nil
}
