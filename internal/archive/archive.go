// Package archive manages saved scan folders on disk: one directory per
// scanned account holding the raw showcase snapshot.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"artimentor/internal/logging"
)

// nameRe is the only folder name shape accepted for mutations; it rules
// out path separators and traversal tokens outright.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Marker files that identify a directory as a scan folder.
var markers = []string{"raw.json", "characters_v1.csv"}

// Folder is one archived scan.
type Folder struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Modified time.Time `json:"modified"`
}

// Manager lists and mutates scan folders under a fixed root.
type Manager struct {
	root string
}

// NewManager creates a manager over the given archive root, usually
// .mentor/scans under the workspace.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Root returns the archive root path.
func (m *Manager) Root() string {
	return m.root
}

// ValidName reports whether a folder name is safe to operate on.
func ValidName(name string) bool {
	return nameRe.MatchString(name) && name != "." && name != ".."
}

func isScanFolder(path string) bool {
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return true
		}
	}
	return false
}

// List returns all scan folders under the root, newest first. Hidden
// directories and directories without a scan marker are skipped.
func (m *Manager) List() ([]Folder, error) {
	entries, err := os.ReadDir(m.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archive root: %w", err)
	}

	var folders []Folder
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(m.root, entry.Name())
		if !isScanFolder(path) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		folders = append(folders, Folder{
			Name:     entry.Name(),
			Path:     path,
			Modified: info.ModTime(),
		})
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Modified.After(folders[j].Modified)
	})
	return folders, nil
}

// SaveScan writes a raw showcase snapshot into a scan folder, creating
// it if needed. The raw payload is re-indented for readability.
func (m *Manager) SaveScan(name string, raw []byte) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("invalid folder name %q", name)
	}

	path := filepath.Join(m.root, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create scan folder: %w", err)
	}

	pretty := raw
	var buf map[string]any
	if err := json.Unmarshal(raw, &buf); err == nil {
		if indented, err := json.MarshalIndent(buf, "", "  "); err == nil {
			pretty = indented
		}
	}

	target := filepath.Join(path, "raw.json")
	if err := os.WriteFile(target, pretty, 0644); err != nil {
		return "", fmt.Errorf("failed to write raw snapshot: %w", err)
	}
	logging.Get(logging.CategoryArchive).Info("saved scan snapshot %s", target)
	return path, nil
}

// Delete removes one scan folder. Only folders that pass the name check
// and carry a scan marker can be deleted.
func (m *Manager) Delete(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid folder name %q", name)
	}

	path := filepath.Join(m.root, name)
	info, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
		return fmt.Errorf("folder %s not found", name)
	}
	if err != nil {
		return err
	}
	if !isScanFolder(path) {
		return fmt.Errorf("%s is not a scan folder", name)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	logging.Get(logging.CategoryArchive).Info("deleted scan folder %s", name)
	return nil
}

// Rename renames a scan folder. The destination must not exist.
func (m *Manager) Rename(oldName, newName string) error {
	if !ValidName(oldName) || !ValidName(newName) {
		return fmt.Errorf("invalid folder name")
	}

	oldPath := filepath.Join(m.root, oldName)
	newPath := filepath.Join(m.root, newName)

	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return fmt.Errorf("folder %s not found", oldName)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("folder %s already exists", newName)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	logging.Get(logging.CategoryArchive).Info("renamed %s to %s", oldName, newName)
	return nil
}

// ClearAll deletes every scan folder under the root.
func (m *Manager) ClearAll() (int, error) {
	folders, err := m.List()
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, folder := range folders {
		if err := m.Delete(folder.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
