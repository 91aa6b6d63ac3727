package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Kind distinguishes video sources from still images.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Item is one eligible media file. Identity is its path.
type Item struct {
	Path     string    `json:"path"`
	Kind     Kind      `json:"kind"`
	Modified time.Time `json:"modified"`
}

// Name returns the base filename of the item.
func (i Item) Name() string {
	return filepath.Base(i.Path)
}

// IsImage reports whether the item is a still image.
func (i Item) IsImage() bool {
	return i.Kind == KindImage
}

var (
	videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v"}
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
)

// KindOf classifies path by extension, case-insensitively.
func KindOf(path string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case slices.Contains(videoExtensions, ext):
		return KindVideo, true
	case slices.Contains(imageExtensions, ext):
		return KindImage, true
	default:
		return "", false
	}
}

var nameFolder = cases.Fold()

// List returns the eligible files directly inside folder, ordered by policy.
// Random order reshuffles on every call.
func List(folder string, policy OrderPolicy) ([]Item, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("read media folder: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, ok := KindOf(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		items = append(items, Item{
			Path:     filepath.Join(folder, entry.Name()),
			Kind:     kind,
			Modified: info.ModTime(),
		})
	}

	Sort(items, policy)
	return items, nil
}

// Sort orders items in place according to policy.
func Sort(items []Item, policy OrderPolicy) {
	switch policy {
	case OrderRandom:
		rand.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	case OrderDateNewest:
		slices.SortStableFunc(items, func(a, b Item) int {
			return b.Modified.Compare(a.Modified)
		})
	case OrderDateOldest:
		slices.SortStableFunc(items, func(a, b Item) int {
			return a.Modified.Compare(b.Modified)
		})
	default:
		slices.SortStableFunc(items, func(a, b Item) int {
			return strings.Compare(nameFolder.String(a.Name()), nameFolder.String(b.Name()))
		})
	}
}
