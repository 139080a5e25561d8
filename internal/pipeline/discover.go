package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// DiscoverImages walks imageDir and returns all decodable still images,
// sorted lexicographically. Sorting keeps the pool order stable so a fixed
// shuffle seed reproduces the same frame-to-image assignment across runs.
func DiscoverImages(imageDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(imageDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if imageExtensions[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
