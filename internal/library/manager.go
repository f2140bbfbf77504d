package library

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

// Manager performs filesystem side effects for the library tree rooted
// at a fixed directory. The zero value is not usable; construct with
// NewManager.
type Manager struct {
	root string
	log  *slog.Logger
}

// NewManager returns a Manager for the given root directory. A nil
// logger falls back to slog.Default.
func NewManager(root string, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		root: strings.TrimRight(root, "/"),
		log:  log,
	}
}

// Root returns the configured root directory.
func (m *Manager) Root() string { return m.root }

// Exists reports whether path currently exists. The error return
// carries failures other than plain absence, so callers get a tri-state
// answer: present, absent, or couldn't tell.
func (m *Manager) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errs.Wrap(errs.ErrInternal, "stat", "exists", path, err)
	}
}

// CreateParentDirs creates the parent directory tree of path if absent.
// Idempotent; a no-op when the tree already exists.
func (m *Manager) CreateParentDirs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return errs.Wrap(errs.ErrPersistence, "write", "mkdir", path, err)
		}
		return errs.Wrap(errs.ErrInternal, "write", "mkdir", path, err)
	}
	return nil
}

// Save writes the full byte buffer to path, truncating any existing
// file.
func (m *Manager) Save(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return errs.Wrap(errs.ErrPersistence, "write", "save", path, err)
		}
		return errs.Wrap(errs.ErrInternal, "write", "save", path, err)
	}
	return nil
}

// Read returns the full contents of path.
func (m *Manager) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, errs.Wrap(errs.ErrPathNotFound, "open", "read", path, err)
	case errors.Is(err, fs.ErrPermission):
		return nil, errs.Wrap(errs.ErrPersistence, "open", "read", path, err)
	default:
		return nil, errs.Wrap(errs.ErrInternal, "open", "read", path, err)
	}
}

// Move relocates a file from oldPath to newPath, creating newPath's
// parents as needed. The existence of oldPath is checked up front:
// a missing source fails with ErrPathNotFound before any rename is
// attempted. After a successful move the now-possibly-empty ancestors
// of oldPath are pruned up to the root.
func (m *Manager) Move(oldPath, newPath string) error {
	present, err := m.Exists(oldPath)
	if err != nil {
		return err
	}
	if !present {
		return errs.Wrap(errs.ErrPathNotFound, "open", "move", oldPath, nil)
	}

	if err := m.CreateParentDirs(newPath); err != nil {
		return err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return errs.Wrap(errs.ErrPersistence, "write", "move", oldPath, err)
		}
		return errs.Wrap(errs.ErrInternal, "write", "move", oldPath, err)
	}

	m.pruneEmptyDirs(filepath.Dir(oldPath))
	return nil
}

// Delete removes the regular file at path and prunes now-empty
// ancestors up to the root. Anything that is not a regular file,
// including a missing path, fails with ErrPathNotFound.
func (m *Manager) Delete(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return errs.Wrap(errs.ErrPathNotFound, "open", "delete", path, err)
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return errs.Wrap(errs.ErrPersistence, "write", "delete", path, err)
		}
		return errs.Wrap(errs.ErrInternal, "write", "delete", path, err)
	}

	m.pruneEmptyDirs(filepath.Dir(path))
	return nil
}

// pruneEmptyDirs walks upward from dir removing empty directories,
// stopping at the first non-empty directory, the first error, or the
// configured root. The root itself is never removed. Failures here are
// best-effort housekeeping: logged and swallowed, never propagated.
func (m *Manager) pruneEmptyDirs(dir string) {
	for m.insideRoot(dir) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			m.log.Warn("prune: cannot read directory", "dir", dir, "error", err)
			return
		}
		if len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			m.log.Warn("prune: cannot remove directory", "dir", dir, "error", err)
			return
		}
		m.log.Debug("pruned empty directory", "dir", dir)
		dir = filepath.Dir(dir)
	}
}

// insideRoot reports whether dir is strictly below the configured root.
func (m *Manager) insideRoot(dir string) bool {
	if dir == m.root || dir == "/" || dir == "." {
		return false
	}
	return strings.HasPrefix(dir, m.root+string(filepath.Separator))
}
