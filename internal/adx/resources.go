package adx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResourcesDir is the resources root under the project directory.
const ResourcesDir = "resources"

// Area is a resources sub-directory.
type Area string

const (
	AreaDynamic Area = "dynamic"
	AreaStatic  Area = "static"
	AreaShare   Area = "share"
)

// Areas lists the indexed areas in probe order.
var Areas = []Area{AreaDynamic, AreaStatic, AreaShare}

// AreaForMode maps a content mode to the area holding its file.
func AreaForMode(mode string) (Area, bool) {
	switch strings.ToLower(mode) {
	case ModeDynamic:
		return AreaDynamic, true
	case ModeStatic:
		return AreaStatic, true
	case ModeShare:
		return AreaShare, true
	}
	return "", false
}

// AreaIndex maps lower-cased file names to their on-disk spelling.
type AreaIndex struct {
	Exists bool
	Files  map[string]string
}

// ResourceIndex is a case-insensitive snapshot of the resources tree.
type ResourceIndex struct {
	Exists bool
	areas  map[Area]*AreaIndex
}

// IndexedFile is one entry of the index.
type IndexedFile struct {
	Area Area
	Name string
}

// BuildResourceIndex probes resources/, then resources/dynamic, static and
// share. Missing directories are recorded as absent, not reported as errors.
// Directories and ignorable names inside an area are skipped.
func BuildResourceIndex(projectPath string) (*ResourceIndex, error) {
	idx := &ResourceIndex{areas: make(map[Area]*AreaIndex, len(Areas))}

	root := filepath.Join(projectPath, ResourcesDir)
	exists, err := isDir(root)
	if err != nil {
		return nil, err
	}
	idx.Exists = exists

	for _, area := range Areas {
		ai := &AreaIndex{Files: map[string]string{}}
		idx.areas[area] = ai
		if !idx.Exists {
			continue
		}

		dir := filepath.Join(root, string(area))
		ok, err := isDir(dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ai.Exists = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || IsIgnorable(e.Name()) {
				continue
			}
			ai.Files[strings.ToLower(e.Name())] = e.Name()
		}
	}

	return idx, nil
}

// Area returns the index of one area; unknown areas yield an empty index.
func (ix *ResourceIndex) Area(a Area) *AreaIndex {
	if ai, ok := ix.areas[a]; ok {
		return ai
	}
	return &AreaIndex{Files: map[string]string{}}
}

// Lookup resolves name case-insensitively in area and returns the actual
// spelling.
func (ix *ResourceIndex) Lookup(a Area, name string) (string, bool) {
	actual, ok := ix.Area(a).Files[strings.ToLower(name)]
	return actual, ok
}

// Files returns every indexed file, area by area in probe order and sorted by
// name within an area.
func (ix *ResourceIndex) Files() []IndexedFile {
	var out []IndexedFile
	for _, a := range Areas {
		names := make([]string, 0, len(ix.Area(a).Files))
		for _, actual := range ix.Area(a).Files {
			names = append(names, actual)
		}
		sort.Strings(names)
		for _, n := range names {
			out = append(out, IndexedFile{Area: a, Name: n})
		}
	}
	return out
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return info.IsDir(), nil
}
