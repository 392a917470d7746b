// Package scan discovers replay files under a demo root.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ungrouped is the event assigned to replays sitting directly in the root.
const Ungrouped = "ungrouped"

// Demo is one replay file found under the root.
type Demo struct {
	Path  string
	Event string // first directory below the root
}

// Demos walks root and returns every *.dem file, sorted by path. Files whose
// names start with "._" are skipped. A missing root is an error; an empty
// one is not.
func Demos(root string) ([]Demo, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("demo root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("demo root %s is not a directory", root)
	}

	var demos []Demo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "._") || !strings.EqualFold(filepath.Ext(name), ".dem") {
			return nil
		}
		demos = append(demos, Demo{Path: path, Event: eventOf(root, path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(demos, func(i, j int) bool { return demos[i].Path < demos[j].Path })
	return demos, nil
}

func eventOf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return Ungrouped
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return Ungrouped
	}
	return parts[0]
}
