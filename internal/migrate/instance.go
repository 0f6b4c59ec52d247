// Package migrate implements scanning and copying of mod-manager
// instances. It is the long-running work the loading dialog runs.
package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Instance describes one mod-manager instance on disk. Mods live in
// per-mod subdirectories directly under Root.
type Instance struct {
	Name string
	Root string
}

// Mod is one mod directory inside an instance.
type Mod struct {
	Name      string
	Path      string
	FileCount int64
	Size      int64
}

// OpenInstance validates that root exists and is a directory.
func OpenInstance(root string) (*Instance, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("instance path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("instance path %s is not a directory", root)
	}

	return &Instance{
		Name: filepath.Base(root),
		Root: root,
	}, nil
}

// Mods lists the mods of the instance, sorted by name, with file counts
// and cumulative sizes. Non-directory entries under Root are ignored.
func (in *Instance) Mods() ([]Mod, error) {
	entries, err := os.ReadDir(in.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list mods in %s: %w", in.Root, err)
	}

	mods := make([]Mod, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		mod := Mod{
			Name: entry.Name(),
			Path: filepath.Join(in.Root, entry.Name()),
		}

		err := filepath.WalkDir(mod.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			mod.FileCount++
			mod.Size += info.Size()
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan mod %s: %w", mod.Name, err)
		}

		mods = append(mods, mod)
	}

	sort.Slice(mods, func(i, j int) bool { return mods[i].Name < mods[j].Name })
	return mods, nil
}

// TotalSize sums the sizes of the given mods.
func TotalSize(mods []Mod) int64 {
	var total int64
	for _, m := range mods {
		total += m.Size
	}
	return total
}
