// File discovery for project trees and ad hoc path arguments.
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	viewGlob   = "**/com.inductiveautomation.perspective/views/**/view.json"
	scriptGlob = "**/ignition/script-python/**/*.py"
)

// DiscoverProject finds every view document and script library under a
// project root using the standard export layout. Results are sorted so
// run order is stable.
func DiscoverProject(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	var files []string
	for _, pattern := range []string{viewGlob, scriptGlob} {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	log.Printf("Discovered %d files under %s", len(files), root)
	return files, nil
}

// ExpandPaths resolves a mix of files and directories to a sorted file
// list: a file argument passes through, a directory contributes every
// view.json and .py beneath it.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		for _, pattern := range []string{"**/view.json", "**/*.py"} {
			matches, err := doublestar.FilepathGlob(filepath.Join(path, pattern))
			if err != nil {
				return nil, fmt.Errorf("scanning %s: %w", path, err)
			}
			files = append(files, matches...)
		}
	}
	sort.Strings(files)
	return dedupe(files), nil
}

func dedupe(paths []string) []string {
	out := paths[:0]
	var last string
	for i, p := range paths {
		if i == 0 || p != last {
			out = append(out, p)
		}
		last = p
	}
	return out
}
