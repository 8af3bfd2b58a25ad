package turtle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glogo/internal/errs"
)

func TestSaveSVG(t *testing.T) {
	c := NewCanvas(100, 100)
	c.Line(10, 10, 50, 50, 4)

	path := filepath.Join(t.TempDir(), "out.svg")
	if err := c.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "<svg") {
		t.Error("expected an svg document")
	}
	if !strings.Contains(content, "fill:black") {
		t.Error("expected a black background rect")
	}
	// palette index 4 is red
	if !strings.Contains(content, "stroke:#ff0000") {
		t.Errorf("expected a red stroke, got:\n%s", content)
	}
}

func TestSavePNG(t *testing.T) {
	c := NewCanvas(50, 50)
	c.Line(0, 0, 49, 49, 7)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := c.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty png file")
	}
}

func TestSaveUnsupportedExtension(t *testing.T) {
	c := NewCanvas(50, 50)

	for _, path := range []string{"out.txt", "out", "out.jpeg"} {
		err := c.Save(filepath.Join(t.TempDir(), path))
		var saveErr *errs.ImageSaveError
		if !errors.As(err, &saveErr) {
			t.Errorf("expected ImageSaveError for %q, got %v", path, err)
		}
	}
}
