package imagedir_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/imagedir"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestChecker_ExistsAndResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Sunset.JPG")
	writeFile(t, dir, "forest.png")
	writeFile(t, dir, "notes.txt")

	c := imagedir.New(dir, testLogger())

	if !c.Exists("forest.png") {
		t.Error("forest.png should exist")
	}

	actual, ok := c.Resolve("sunset.jpg")
	if !ok || actual != "Sunset.JPG" {
		t.Errorf("Resolve(sunset.jpg) = %q, %v; want Sunset.JPG, true", actual, ok)
	}

	if c.Exists("notes.txt") {
		t.Error("non-image files should not be reported")
	}

	if c.Exists("") {
		t.Error("empty name should not exist")
	}
}

func TestChecker_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.png")
	writeFile(t, dir, "a.jpg")

	c := imagedir.New(dir, testLogger())

	got := c.List()
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "b.png" {
		t.Errorf("List() = %v, want [a.jpg b.png]", got)
	}
}

func TestChecker_Invalidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := imagedir.New(dir, testLogger())

	if c.Exists("late.png") {
		t.Fatal("late.png should not exist yet")
	}

	writeFile(t, dir, "late.png")

	if c.Exists("late.png") {
		t.Fatal("snapshot should be cached until invalidated")
	}

	c.Invalidate()

	if !c.Exists("late.png") {
		t.Error("late.png should exist after invalidation")
	}
}

func TestChecker_MissingDirectory(t *testing.T) {
	t.Parallel()

	c := imagedir.New(filepath.Join(t.TempDir(), "nope"), testLogger())

	if c.Exists("anything.png") {
		t.Error("missing directory should report no images")
	}

	if got := c.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestPlaceholder_ValidPNG(t *testing.T) {
	t.Parallel()

	data := imagedir.Placeholder()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("placeholder is not a valid PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 64 {
		t.Errorf("placeholder size = %dx%d, want 64x64", bounds.Dx(), bounds.Dy())
	}

	again := imagedir.Placeholder()
	if &data[0] != &again[0] {
		t.Error("placeholder bytes should be generated once and reused")
	}
}
