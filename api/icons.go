package main

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// IconList returns the URL paths of activity icon files found under dir.
// Only files named *-icon.svg count.
func IconList(dir string) ([]string, error) {
	icons := []string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), "-icon.svg") {
			icons = append(icons, "/"+filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return icons, nil
}
