package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"craft-gallery/pkg/models"
)

// imageExtensions are the files listed in a generated manifest
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "file2" < "file10" when using naturalLess
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		// Skip leading spaces
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}

		if i >= len(s1) || j >= len(s2) {
			break
		}

		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			start1 := i
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				i++
			}
			start2 := j
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				j++
			}

			n1, _ := strconv.Atoi(s1[start1:i])
			n2, _ := strconv.Atoi(s2[start2:j])
			if n1 != n2 {
				return n1 < n2
			}
		} else {
			if s1[i] != s2[j] {
				return s1[i] < s2[j]
			}
			i++
			j++
		}
	}

	return len(s1)-i < len(s2)-j
}

func isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func sortManifest(m models.Manifest) {
	for _, files := range m {
		sort.SliceStable(files, func(i, j int) bool {
			return naturalLess(files[i], files[j])
		})
	}
}

// ScanDirectory builds a manifest from root/<category>/<file> images. Every
// category directory appears, even when it holds no images.
func ScanDirectory(root string) (models.Manifest, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	manifest := models.Manifest{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		category := entry.Name()

		files, err := os.ReadDir(filepath.Join(root, category))
		if err != nil {
			return nil, fmt.Errorf("failed to read category %s: %w", category, err)
		}

		names := []string{}
		for _, f := range files {
			if f.IsDir() || !isImage(f.Name()) {
				continue
			}
			names = append(names, f.Name())
		}
		manifest[category] = names
	}

	sortManifest(manifest)
	return manifest, nil
}

// ScanBucket builds a manifest from <prefix><category>/<file> image objects
// in a Cloud Storage bucket.
func ScanBucket(ctx context.Context, client *storage.Client, bucketName, prefix string) (models.Manifest, error) {
	if client == nil {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		defer c.Close()
		client = c
	}

	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	it := client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	manifest := models.Manifest{}
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}

		parts := strings.Split(strings.TrimPrefix(obj.Name, prefix), "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" || !isImage(parts[1]) {
			continue
		}
		manifest[parts[0]] = append(manifest[parts[0]], parts[1])
	}

	sortManifest(manifest)
	return manifest, nil
}

// WriteManifest encodes m as indented JSON
func WriteManifest(w io.Writer, m models.Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// WriteManifestFile writes m to path, replacing any previous file
func WriteManifestFile(path string, m models.Manifest) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	if err := WriteManifest(f, m); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close manifest: %w", err)
	}
	return os.Rename(tmp, path)
}
