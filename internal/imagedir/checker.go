// Package imagedir tracks the image files available on disk.
//
// Graph nodes reference image files by bare filename. The checker keeps an
// in-memory snapshot of the directory so traversal responses can be filtered
// to images that actually exist without hitting the filesystem per node.
package imagedir

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// imageExtensions are the file extensions treated as images.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// Checker answers existence queries against a directory of image files.
// The directory snapshot is loaded lazily and refreshed via Invalidate.
type Checker struct {
	dir string
	log *logrus.Logger

	mu     sync.RWMutex
	loaded bool
	// byLower maps the lowercased filename to the actual on-disk name so
	// lookups tolerate case differences between the graph and the filesystem.
	byLower map[string]string
}

// New creates a Checker for the given directory.
func New(dir string, log *logrus.Logger) *Checker {
	return &Checker{
		dir: dir,
		log: log,
	}
}

// Dir returns the directory the checker watches.
func (c *Checker) Dir() string {
	return c.dir
}

// Exists reports whether an image with the given filename is present.
// Matching is case-insensitive.
func (c *Checker) Exists(name string) bool {
	_, ok := c.Resolve(name)
	return ok
}

// Resolve returns the actual on-disk filename for name, matching
// case-insensitively. The second return value is false if no file matches.
func (c *Checker) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	c.ensureLoaded()

	c.mu.RLock()
	defer c.mu.RUnlock()

	actual, ok := c.byLower[strings.ToLower(name)]
	return actual, ok
}

// List returns the sorted filenames of all images in the directory.
func (c *Checker) List() []string {
	c.ensureLoaded()

	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byLower))
	for _, actual := range c.byLower {
		names = append(names, actual)
	}
	sort.Strings(names)

	return names
}

// Invalidate drops the cached snapshot. The next query rescans the directory.
func (c *Checker) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.byLower = nil
	c.mu.Unlock()
}

func (c *Checker) ensureLoaded() {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()

	if loaded {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return
	}

	c.byLower = make(map[string]string)

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		// A missing directory means no images exist. Remember the empty
		// snapshot so every lookup does not retry the read.
		c.log.WithError(err).WithField("dir", c.dir).Warn("image directory not readable")
		c.loaded = true

		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		c.byLower[strings.ToLower(name)] = name
	}

	c.loaded = true
	c.log.WithFields(logrus.Fields{
		"dir":    c.dir,
		"images": len(c.byLower),
	}).Debug("image directory scanned")
}
